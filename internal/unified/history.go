package unified

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/history"
	"github.com/blackwell-systems/optibridge/internal/notify"
	"github.com/blackwell-systems/optibridge/internal/tui"
)

// HistoryModel is the history view: a paginated table over the cached
// upload history with copy and delete actions.
type HistoryModel struct {
	hist     *history.Manager
	toasts   *notify.Queue
	client   *backend.Client
	keys     tui.ListKeys
	imgProto tui.ImageProtocol

	loaded    bool // first reload already triggered
	reloading bool
	selected  int // index within the current page
	confirm   *backend.HistoryItem
	width     int
	activeCmd string
}

// NewHistoryModel creates the history view bound to the shared manager.
func NewHistoryModel(hist *history.Manager, toasts *notify.Queue, client *backend.Client) HistoryModel {
	return HistoryModel{
		hist:     hist,
		toasts:   toasts,
		client:   client,
		keys:     tui.NewListKeys(),
		imgProto: tui.DetectImageProtocol(),
	}
}

// EnterCmd triggers the initial reload the first time the view is
// shown. Later entries reuse the cache.
func (m *HistoryModel) EnterCmd() tea.Cmd {
	if m.loaded {
		return nil
	}
	m.loaded = true
	return m.reloadCmd()
}

func (m *HistoryModel) reloadCmd() tea.Cmd {
	m.reloading = true
	token := m.hist.BeginReload()
	return loadHistoryCmd(m.client, token)
}

func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tui.ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case historyLoadedMsg:
		// Responses to superseded reloads are dropped entirely:
		// neither the cache nor the toasts see them.
		if !m.hist.IsLatest(msg.token) {
			return m, nil
		}
		m.reloading = false
		if msg.err != nil {
			m.toasts.Error("Failed to load history", msg.err, time.Now())
			return m, nil
		}
		m.hist.FinishReload(msg.token, msg.items, nil)
		m.clampSelection()
		return m, nil

	case deleteDoneMsg:
		now := time.Now()
		if msg.err != nil {
			m.toasts.Error("Delete failed", msg.err, now)
			return m, nil
		}
		m.toasts.Success("Deleted", "Item removed from history", now)
		// Reload instead of splicing locally so the cache never
		// diverges from what the daemon actually holds.
		return m, m.reloadCmd()

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirming(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m HistoryModel) updateConfirming(msg tea.KeyMsg) (HistoryModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		item := *m.confirm
		m.confirm = nil
		return m, deleteCmd(m.client, item)
	case "n", "esc", "q":
		m.confirm = nil
		return m, nil
	}
	return m, nil
}

func (m HistoryModel) updateKeys(msg tea.KeyMsg) (HistoryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.hist.PageItems())-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.hist.PrevPage()
		m.selected = 0
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.hist.NextPage()
		m.selected = 0
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg { return QuitAppMsg{} }
	}

	switch msg.String() {
	case "c":
		return m.copySelected()

	case "d":
		if item := m.selectedItem(); item != nil {
			m.confirm = item
		}
		return m, nil

	case "r":
		if m.reloading {
			return m, nil
		}
		m.activeCmd = "r"
		return m, tea.Batch(m.reloadCmd(), tui.HighlightCmd())
	}
	return m, nil
}

func (m HistoryModel) copySelected() (HistoryModel, tea.Cmd) {
	item := m.selectedItem()
	if item == nil {
		return m, nil
	}
	now := time.Now()
	if err := clipboard.WriteAll(item.URL); err != nil {
		m.toasts.Error("Copy failed", err, now)
		return m, nil
	}
	m.hist.MarkCopied(item.ID, now)
	m.toasts.Success("Copied", "URL copied to clipboard", now)
	return m, nil
}

func (m HistoryModel) selectedItem() *backend.HistoryItem {
	items := m.hist.PageItems()
	if m.selected < 0 || m.selected >= len(items) {
		return nil
	}
	item := items[m.selected]
	return &item
}

func (m *HistoryModel) clampSelection() {
	if n := len(m.hist.PageItems()); m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m HistoryModel) View() string {
	content := lipgloss.NewStyle().Padding(1, 2)

	if m.confirm != nil {
		prompt := fmt.Sprintf("Delete %q from history?\n\n%s",
			m.confirm.OriginalName,
			tui.StyleHelp.Render("The daemon will also remove the provider-side object."))
		box := tui.StyleBorder.BorderForeground(tui.ColorRed).Padding(1, 2).Render(
			tui.StyleDanger.Render("Confirm delete") + "\n\n" + prompt)
		footer := tui.RenderFooterBar([]tui.ShortcutEntry{
			{Label: "y delete"},
			{Label: "n cancel"},
		}, m.activeCmd)
		return content.Render(lipgloss.JoinVertical(lipgloss.Left, box, "", footer))
	}

	if m.reloading && m.hist.Len() == 0 {
		return content.Render(tui.StyleHelp.Render("Loading history…"))
	}
	if m.hist.Len() == 0 {
		return content.Render(tui.StyleHelp.Render("No upload history yet"))
	}

	copied := m.hist.CopiedID(time.Now())
	var rows []string
	for i, item := range m.hist.PageItems() {
		rows = append(rows, m.renderRow(item, i == m.selected, item.ID == copied))
	}

	footer := tui.RenderFooterBar([]tui.ShortcutEntry{
		{Key: "c", Label: "c copy"},
		{Label: "d delete"},
		{Key: "r", Label: "r reload"},
		{Label: "←/→ page"},
	}, m.activeCmd)

	parts := []string{strings.Join(rows, "\n")}
	// Thumbnail of the selected row, on terminals that can show one.
	if item := m.selectedItem(); item != nil {
		if thumb := tui.RenderInlineBase64(item.ThumbnailBase64, m.imgProto); thumb != "" {
			parts = append(parts, "", thumb)
		}
	}
	parts = append(parts, "", m.renderPager(), footer)

	return content.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m HistoryModel) renderRow(item backend.HistoryItem, selected, copied bool) string {
	nameWidth := 28
	urlWidth := m.width - nameWidth - 36
	if urlWidth < 16 {
		urlWidth = 16
	}

	name := ansi.Truncate(item.OriginalName, nameWidth, "…")
	when := time.Unix(item.CreatedAt, 0).Format("2006-01-02 15:04")
	url := ansi.Truncate(item.URL, urlWidth, "…")

	line := fmt.Sprintf("%-*s  %-10s  %s  %s",
		nameWidth, name,
		tui.StyleProvider.Render(item.Provider.Label()),
		tui.StyleHelp.Render(when),
		tui.StyleHelp.Render(url))

	if copied {
		line += "  " + tui.StyleSuccess.Render("✓ copied")
	}

	if selected {
		return tui.StyleHighlight.Render("› ") + line
	}
	return "  " + line
}

// renderPager renders the elided page-number strip, e.g. 1 … 4 [5] 6 … 12.
func (m HistoryModel) renderPager() string {
	if m.hist.PageCount() <= 1 {
		return tui.StyleHelp.Render(fmt.Sprintf("%d item(s)", m.hist.Len()))
	}

	var parts []string
	for _, p := range m.hist.PageNumbers() {
		if p == history.Ellipsis {
			parts = append(parts, tui.StyleHelp.Render("…"))
			continue
		}
		label := fmt.Sprintf("%d", p)
		if p == m.hist.Page() {
			parts = append(parts, tui.StyleHighlight.Render("["+label+"]"))
		} else {
			parts = append(parts, tui.StyleHelp.Render(label))
		}
	}
	return strings.Join(parts, " ")
}
