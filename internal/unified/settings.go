package unified

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/notify"
	"github.com/blackwell-systems/optibridge/internal/tui"
)

// settingsField describes one editable entry of the daemon config.
type settingsField struct {
	label  string
	secret bool
	isBool bool
	isInt  bool
}

var settingsFields = []settingsField{
	{label: "Cloudinary cloud name"},
	{label: "Cloudinary API key"},
	{label: "Cloudinary API secret", secret: true},
	{label: "R2 access key ID"},
	{label: "R2 secret access key", secret: true},
	{label: "R2 bucket name"},
	{label: "R2 endpoint"},
	{label: "R2 public domain"},
	{label: "Max width (px)", isInt: true},
	{label: "Auto WebP", isBool: true},
}

// SettingsModel is a passthrough form over the daemon's config record.
// It never interprets the credentials it carries.
type SettingsModel struct {
	toasts *notify.Queue
	client *backend.Client
	keys   tui.ListKeys

	loaded   bool
	loading  bool
	saving   bool
	editing  bool // a text input has focus
	focus    int
	inputs   []textinput.Model
	autoWebP bool
	loadErr  error
}

// NewSettingsModel creates the settings view.
func NewSettingsModel(toasts *notify.Queue, client *backend.Client) SettingsModel {
	inputs := make([]textinput.Model, len(settingsFields))
	for i, f := range settingsFields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		if f.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		inputs[i] = in
	}
	return SettingsModel{toasts: toasts, client: client, keys: tui.NewListKeys(), inputs: inputs}
}

// EnterCmd fetches the daemon config the first time the view is shown.
func (m *SettingsModel) EnterCmd() tea.Cmd {
	if m.loaded || m.loading {
		return nil
	}
	m.loading = true
	return loadConfigCmd(m.client)
}

func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case configLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			m.toasts.Error("Failed to load settings", msg.err, time.Now())
			return m, nil
		}
		m.loaded = true
		m.loadErr = nil
		m.applyConfig(msg.cfg)
		return m, nil

	case configSavedMsg:
		m.saving = false
		now := time.Now()
		if msg.err != nil {
			m.toasts.Error("Failed to save settings", msg.err, now)
			return m, nil
		}
		m.toasts.Success("Settings saved", "", now)
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *SettingsModel) applyConfig(cfg *backend.Config) {
	values := []string{
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		cfg.R2AccessKeyID,
		cfg.R2SecretAccessKey,
		cfg.R2BucketName,
		cfg.R2Endpoint,
		cfg.R2PublicDomain,
		strconv.Itoa(cfg.SettingsMaxWidth),
	}
	for i, v := range values {
		m.inputs[i].SetValue(v)
	}
	m.autoWebP = cfg.SettingsAutoWebP
}

func (m SettingsModel) collectConfig() (*backend.Config, error) {
	maxWidth, err := strconv.Atoi(strings.TrimSpace(m.inputs[8].Value()))
	if err != nil || maxWidth <= 0 {
		return nil, fmt.Errorf("max width must be a positive number")
	}
	return &backend.Config{
		CloudinaryCloudName: m.inputs[0].Value(),
		CloudinaryAPIKey:    m.inputs[1].Value(),
		CloudinaryAPISecret: m.inputs[2].Value(),
		R2AccessKeyID:       m.inputs[3].Value(),
		R2SecretAccessKey:   m.inputs[4].Value(),
		R2BucketName:        m.inputs[5].Value(),
		R2Endpoint:          m.inputs[6].Value(),
		R2PublicDomain:      m.inputs[7].Value(),
		SettingsMaxWidth:    maxWidth,
		SettingsAutoWebP:    m.autoWebP,
	}, nil
}

func (m SettingsModel) updateKeys(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	if !m.loaded {
		if msg.String() == "r" && !m.loading {
			m.loading = true
			return m, loadConfigCmd(m.client)
		}
		return m, nil
	}

	if m.editing {
		switch msg.String() {
		case "enter", "esc":
			m.editing = false
			m.inputs[m.focus].Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			m.focus--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focus < len(settingsFields)-1 {
			m.focus++
		}
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg { return QuitAppMsg{} }
	}

	switch msg.String() {
	case "enter", " ":
		if settingsFields[m.focus].isBool {
			m.autoWebP = !m.autoWebP
			return m, nil
		}
		if msg.String() == "enter" {
			m.editing = true
			return m, m.inputs[m.focus].Focus()
		}
		return m, nil

	case "ctrl+s", "s":
		if m.saving {
			return m, nil
		}
		cfg, err := m.collectConfig()
		if err != nil {
			m.toasts.Error("Invalid settings", err, time.Now())
			return m, nil
		}
		m.saving = true
		return m, saveConfigCmd(m.client, cfg)
	}
	return m, nil
}

func (m SettingsModel) View() string {
	content := lipgloss.NewStyle().Padding(1, 2)

	if m.loading {
		return content.Render(tui.StyleHelp.Render("Loading settings…"))
	}
	if m.loadErr != nil {
		return content.Render(tui.StyleDanger.Render("Could not load settings") +
			"\n" + tui.StyleHelp.Render(m.loadErr.Error()) +
			"\n\n" + tui.StyleHelp.Render("r retry"))
	}
	if !m.loaded {
		return content.Render(tui.StyleHelp.Render("Loading settings…"))
	}

	var s strings.Builder
	s.WriteString(tui.StyleHeader.Render("Daemon Settings"))
	s.WriteString("\n\n")

	for i, f := range settingsFields {
		marker := "  "
		if i == m.focus {
			marker = tui.StyleHighlight.Render("› ")
		}

		var value string
		switch {
		case f.isBool:
			if m.autoWebP {
				value = tui.StyleSuccess.Render("on")
			} else {
				value = tui.StyleHelp.Render("off")
			}
		default:
			value = m.inputs[i].View()
		}

		fmt.Fprintf(&s, "%s%-24s %s\n", marker, tui.StyleNormal.Render(f.label), value)
	}

	s.WriteString("\n")
	s.WriteString(tui.RenderFooterBar([]tui.ShortcutEntry{
		{Label: "↑/↓ field"},
		{Label: "enter edit/toggle"},
		{Label: "s save"},
	}, ""))

	return content.Render(s.String())
}
