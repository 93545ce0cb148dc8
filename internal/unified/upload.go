package unified

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/config"
	"github.com/blackwell-systems/optibridge/internal/ingest"
	"github.com/blackwell-systems/optibridge/internal/notify"
	"github.com/blackwell-systems/optibridge/internal/tui"
	"github.com/blackwell-systems/optibridge/internal/workflow"
)

// UploadModel is the upload view: the ingestion surfaces plus the
// workflow machine's visible state.
type UploadModel struct {
	machine *workflow.Machine
	toasts  *notify.Queue
	client  *backend.Client
	cfg     *config.Config

	picking   bool // file picker overlay active
	fp        filepicker.Model
	spin      spinner.Model
	imgProto  tui.ImageProtocol
	width     int
	height    int
	activeCmd string
}

// NewUploadModel creates the upload view bound to the shared machine.
func NewUploadModel(machine *workflow.Machine, toasts *notify.Queue, client *backend.Client, cfg *config.Config) UploadModel {
	fp := filepicker.New()
	fp.AllowedTypes = allowedTypes()
	fp.DirAllowed = false
	fp.FileAllowed = true
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(tui.ColorCyan)

	return UploadModel{
		machine:  machine,
		toasts:   toasts,
		client:   client,
		cfg:      cfg,
		fp:       fp,
		spin:     sp,
		imgProto: tui.DetectImageProtocol(),
	}
}

func allowedTypes() []string {
	types := make([]string, len(ingest.Extensions))
	for i, e := range ingest.Extensions {
		types[i] = "." + e
	}
	return types
}

func (m UploadModel) Init() tea.Cmd {
	return nil
}

func (m UploadModel) Update(msg tea.Msg) (UploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fp.Height = msg.Height - 8
		return m, nil

	case tui.ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case processDoneMsg:
		// The machine ignores completions for superseded requests.
		if !m.machine.FinishProcess(msg.token, msg.img, msg.err) {
			return m, nil
		}
		now := time.Now()
		if msg.err != nil {
			m.toasts.Error("Processing failed", msg.err, now)
		} else {
			_ = m.machine.SetProvider(m.cfg.DefaultProvider())
			m.toasts.Success("Image processed", "Ready to upload", now)
		}
		return m, nil

	case uploadDoneMsg:
		if !m.machine.FinishUpload(msg.token, msg.res, msg.err) {
			return m, nil
		}
		now := time.Now()
		if msg.err != nil {
			m.toasts.Error("Upload failed", msg.err, now)
			return m, nil
		}
		desc := "Image uploaded to cloud"
		if res := m.machine.Result(); res != nil && m.cfg.Defaults.CopyOnComplete {
			if clipboard.WriteAll(res.URL) == nil {
				desc = "URL copied to clipboard"
			}
		}
		m.toasts.Success("Upload successful", desc, now)
		return m, nil

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicking(msg)
		}
		return m.updateKeys(msg)
	}

	if m.picking {
		var cmd tea.Cmd
		m.fp, cmd = m.fp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m UploadModel) updatePicking(msg tea.KeyMsg) (UploadModel, tea.Cmd) {
	if msg.String() == "esc" || msg.String() == "q" {
		// Cancelled dialog: no event, back to idle view.
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)

	if ok, path := m.fp.DidSelectFile(msg); ok {
		m.picking = false
		cand, err := ingest.FromPath(path)
		if err != nil {
			m.toasts.Error("Cannot use file", err, time.Now())
			return m, cmd
		}
		return m.beginProcess(cand, cmd)
	}
	return m, cmd
}

func (m UploadModel) updateKeys(msg tea.KeyMsg) (UploadModel, tea.Cmd) {
	// Dropped files arrive as pasted path text in a terminal.
	if msg.Paste && m.machine.State() == workflow.StateIdle {
		paths := parseDroppedPaths(string(msg.Runes))
		if len(paths) == 0 {
			return m, nil
		}
		cand, err := ingest.FromDrop(paths)
		if err != nil {
			m.toasts.Error("Cannot use dropped file", err, time.Now())
			return m, nil
		}
		return m.beginProcess(cand, nil)
	}

	switch m.machine.State() {
	case workflow.StateIdle:
		switch msg.String() {
		case "o":
			m.picking = true
			return m, m.fp.Init()
		case "v":
			return m.beginProcess(ingest.FromClipboard(), nil)
		case "q":
			return m, func() tea.Msg { return QuitAppMsg{} }
		}

	case workflow.StateProcessing, workflow.StateUploading:
		// Triggering controls are disabled while a request is
		// outstanding; every key is suppressed, not queued.
		return m, nil

	case workflow.StateReady:
		switch msg.String() {
		case "left", "right", "p":
			m.toggleProvider()
			return m, nil
		case "enter":
			return m.beginUpload()
		case "esc":
			if err := m.machine.Cancel(); err == nil {
				m.activeCmd = "esc"
				return m, tui.HighlightCmd()
			}
			return m, nil
		}

	case workflow.StateCompleted:
		switch msg.String() {
		case "c":
			return m.copyResult()
		case "n", "enter":
			_ = m.machine.Reset()
			return m, nil
		case "q":
			return m, func() tea.Msg { return QuitAppMsg{} }
		}
	}
	return m, nil
}

func (m UploadModel) beginProcess(cand ingest.Candidate, extra tea.Cmd) (UploadModel, tea.Cmd) {
	token, err := m.machine.Begin(cand)
	if err != nil {
		// Re-entry guard: a second candidate while processing is
		// suppressed, not coalesced.
		return m, extra
	}
	return m, tea.Batch(extra, m.spin.Tick, processCmd(m.client, token, cand))
}

func (m UploadModel) beginUpload() (UploadModel, tea.Cmd) {
	token, err := m.machine.BeginUpload()
	if err != nil {
		return m, nil
	}
	img := m.machine.Image()
	return m, tea.Batch(m.spin.Tick, uploadCmd(m.client, token, img.TempID, m.machine.Provider()))
}

func (m *UploadModel) toggleProvider() {
	providers := backend.Providers()
	cur := m.machine.Provider()
	for i, p := range providers {
		if p == cur {
			_ = m.machine.SetProvider(providers[(i+1)%len(providers)])
			return
		}
	}
}

func (m UploadModel) copyResult() (UploadModel, tea.Cmd) {
	res := m.machine.Result()
	if res == nil {
		return m, nil
	}
	now := time.Now()
	if err := clipboard.WriteAll(res.URL); err != nil {
		m.toasts.Error("Copy failed", err, now)
		return m, nil
	}
	m.toasts.Success("Copied", "URL copied to clipboard", now)
	m.activeCmd = "c"
	return m, tui.HighlightCmd()
}

func (m UploadModel) busy() bool {
	s := m.machine.State()
	return s == workflow.StateProcessing || s == workflow.StateUploading
}

// parseDroppedPaths extracts file paths from pasted text. Terminals
// quote paths containing spaces, so split on newlines first and strip
// quoting per line.
func parseDroppedPaths(text string) []string {
	var paths []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, `'"`)
		line = strings.TrimPrefix(line, "file://")
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths
}

func (m UploadModel) View() string {
	content := lipgloss.NewStyle().Padding(1, 2)

	if m.picking {
		var s strings.Builder
		s.WriteString(tui.StyleHeader.Render("Choose an image"))
		s.WriteString("\n\n")
		s.WriteString(m.fp.View())
		s.WriteString("\n")
		s.WriteString(tui.RenderFooterBar([]tui.ShortcutEntry{
			{Label: "enter select"},
			{Label: "esc cancel"},
		}, m.activeCmd))
		return content.Render(s.String())
	}

	switch m.machine.State() {
	case workflow.StateProcessing:
		return content.Render(fmt.Sprintf("%s Processing %s…",
			m.spin.View(), tui.StyleHighlight.Render(m.machine.Candidate().DisplayName)))

	case workflow.StateReady:
		return content.Render(m.viewReady())

	case workflow.StateUploading:
		return content.Render(fmt.Sprintf("%s Uploading to %s…",
			m.spin.View(), tui.StyleProvider.Render(m.machine.Provider().Label())))

	case workflow.StateCompleted:
		return content.Render(m.viewCompleted())

	default:
		return content.Render(m.viewIdle())
	}
}

func (m UploadModel) viewIdle() string {
	hint := lipgloss.JoinVertical(lipgloss.Center,
		tui.StyleHeader.Render("Drag & drop an image"),
		tui.StyleHelp.Render("PNG, JPG, JPEG, WebP, or GIF"),
	)
	box := tui.StyleBorder.Padding(2, 8).Render(hint)

	footer := tui.RenderFooterBar([]tui.ShortcutEntry{
		{Key: "o", Label: "o choose file"},
		{Key: "v", Label: "v paste from clipboard"},
		{Label: "tab views"},
		{Key: "q", Label: "q quit"},
	}, m.activeCmd)

	return lipgloss.JoinVertical(lipgloss.Left, box, "", footer)
}

func (m UploadModel) viewReady() string {
	img := m.machine.Image()

	var details strings.Builder
	details.WriteString(tui.StyleHeader.Render("Image Details"))
	details.WriteString("\n")
	fmt.Fprintf(&details, "  Name: %s\n", img.OriginalName)
	fmt.Fprintf(&details, "  %s\n", img.SizeInfo)

	var radio strings.Builder
	radio.WriteString(tui.StyleHeader.Render("Upload Provider"))
	radio.WriteString("\n")
	for _, p := range backend.Providers() {
		marker := "( )"
		label := tui.StyleNormal.Render(p.Label())
		if p == m.machine.Provider() {
			marker = tui.StyleHighlight.Render("(•)")
			label = tui.StyleHighlight.Render(p.Label())
		}
		fmt.Fprintf(&radio, "  %s %s\n", marker, label)
	}

	footer := tui.RenderFooterBar([]tui.ShortcutEntry{
		{Label: "←/→ provider"},
		{Label: "enter upload"},
		{Key: "esc", Label: "esc cancel"},
	}, m.activeCmd)

	parts := []string{}
	// Inline preview on terminals that can show one; the text summary
	// below carries the same information either way.
	if preview := tui.RenderInlineBase64(img.PreviewBase64, m.imgProto); preview != "" {
		parts = append(parts, preview)
	}
	parts = append(parts,
		tui.StyleBorder.Padding(0, 1).Render(details.String()),
		"",
		radio.String(),
		footer,
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m UploadModel) viewCompleted() string {
	res := m.machine.Result()

	var s strings.Builder
	s.WriteString(tui.StyleSuccess.Render("✓ Upload Complete"))
	s.WriteString("\n\n")
	s.WriteString(tui.StyleHelp.Render("Image URL:"))
	s.WriteString("\n")
	s.WriteString(tui.StyleNormal.Render(res.URL))

	footer := tui.RenderFooterBar([]tui.ShortcutEntry{
		{Key: "c", Label: "c copy url"},
		{Key: "n", Label: "n upload another"},
		{Key: "q", Label: "q quit"},
	}, m.activeCmd)

	return lipgloss.JoinVertical(lipgloss.Left,
		tui.StyleBorder.Padding(1, 2).Render(s.String()),
		"",
		footer,
	)
}
