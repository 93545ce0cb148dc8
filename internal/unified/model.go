package unified

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/config"
	"github.com/blackwell-systems/optibridge/internal/history"
	"github.com/blackwell-systems/optibridge/internal/notify"
	"github.com/blackwell-systems/optibridge/internal/tui"
	"github.com/blackwell-systems/optibridge/internal/workflow"
)

// View represents the current active view
type View string

const (
	ViewUpload   View = "upload"
	ViewHistory  View = "history"
	ViewSettings View = "settings"
)

// Model is the unified TUI orchestrator. It owns the shared state
// containers (workflow machine, history manager, toast queue) and hands
// references into the views; no view mutates a cache directly.
type Model struct {
	currentView View
	width       int
	height      int

	machine *workflow.Machine
	hist    *history.Manager
	toasts  *notify.Queue
	client  *backend.Client
	cfg     *config.Config

	upload   UploadModel
	history  HistoryModel
	settings SettingsModel
}

// New creates the unified model starting at the upload view.
func New(cfg *config.Config, client *backend.Client) Model {
	machine := workflow.New()
	hist := history.New()
	toasts := notify.NewQueue()

	return Model{
		currentView: ViewUpload,
		machine:     machine,
		hist:        hist,
		toasts:      toasts,
		client:      client,
		cfg:         cfg,
		upload:      NewUploadModel(machine, toasts, client, cfg),
		history:     NewHistoryModel(hist, toasts, client),
		settings:    NewSettingsModel(toasts, client),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.upload.Init())
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// All views track their size, not just the visible one.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.upload, cmd = m.upload.Update(msg)
		cmds = append(cmds, cmd)
		m.history, cmd = m.history.Update(msg)
		cmds = append(cmds, cmd)
		m.settings, cmd = m.settings.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tickMsg:
		// Expiry of toasts and the copy highlight is lazy; the tick
		// only forces a re-render so they visibly disappear.
		return m, tickCmd()

	case NavigateMsg:
		return m.navigate(msg.Target)

	case QuitAppMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "tab" && !m.captureKeys() {
			next := m.nextView()
			return m, func() tea.Msg { return NavigateMsg{Target: next} }
		}
		return m.updateCurrentView(msg)

	// The spinner lives in the upload view; its tick chain must stay
	// alive while another tab is showing, or the spinner is frozen
	// when the user tabs back mid-request.
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.upload, cmd = m.upload.Update(msg)
		return m, cmd

	// Completion messages go to the view owning that channel even
	// when the user has navigated away in the meantime.
	case processDoneMsg, uploadDoneMsg:
		var cmd tea.Cmd
		m.upload, cmd = m.upload.Update(msg)
		return m, cmd

	case historyLoadedMsg, deleteDoneMsg:
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd

	case configLoadedMsg, configSavedMsg:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd

	default:
		return m.updateCurrentView(msg)
	}
}

func (m Model) View() string {
	var body string
	switch m.currentView {
	case ViewUpload:
		body = m.upload.View()
	case ViewHistory:
		body = m.history.View()
	case ViewSettings:
		body = m.settings.View()
	}

	parts := []string{m.renderTabs(), body}
	if toasts := tui.RenderToasts(m.toasts.Active(time.Now()), m.width-4); toasts != "" {
		parts = append(parts, toasts)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTabs() string {
	names := []struct {
		view  View
		label string
	}{
		{ViewUpload, "Upload"},
		{ViewHistory, "History"},
		{ViewSettings, "Settings"},
	}

	rendered := make([]string, len(names))
	for i, n := range names {
		if n.view == m.currentView {
			rendered[i] = tui.StyleHighlight.Render("[" + n.label + "]")
		} else {
			rendered[i] = tui.StyleHelp.Render(" " + n.label + " ")
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	title := tui.StyleHeader.Render("optibridge") + tui.StyleHelp.Render("  ·  image uploader")
	return lipgloss.NewStyle().Padding(1, 2, 0, 2).Render(title + "\n" + bar)
}

// captureKeys reports whether the active view needs raw key input
// (text entry, file picking), in which case tab must not switch views.
func (m Model) captureKeys() bool {
	switch m.currentView {
	case ViewUpload:
		return m.upload.picking
	case ViewSettings:
		return m.settings.editing
	default:
		return false
	}
}

func (m Model) nextView() View {
	switch m.currentView {
	case ViewUpload:
		return ViewHistory
	case ViewHistory:
		return ViewSettings
	default:
		return ViewUpload
	}
}

func (m Model) navigate(target View) (tea.Model, tea.Cmd) {
	if target == m.currentView {
		return m, nil
	}
	m.currentView = target
	switch target {
	case ViewHistory:
		// History reloads once on first entry; later entries reuse
		// the cache until a delete or manual reload.
		return m, m.history.EnterCmd()
	case ViewSettings:
		return m, m.settings.EnterCmd()
	default:
		return m, nil
	}
}

func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewUpload:
		m.upload, cmd = m.upload.Update(msg)
	case ViewHistory:
		m.history, cmd = m.history.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return m, cmd
}
