package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/optibridge/internal/notify"
)

// toast border styles per severity
var (
	toastInfoStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorCyan).
			Padding(0, 1)

	toastSuccessStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorGreen).
				Padding(0, 1)

	toastDangerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorRed).
				Padding(0, 1)
)

// RenderToasts renders the active notifications as a stacked block,
// oldest on top. Returns "" when there is nothing to show.
func RenderToasts(notes []notify.Notification, width int) string {
	if len(notes) == 0 {
		return ""
	}
	if width < 24 {
		width = 24
	}

	rendered := make([]string, 0, len(notes))
	for _, n := range notes {
		style := toastInfoStyle
		switch n.Severity {
		case notify.SeveritySuccess:
			style = toastSuccessStyle
		case notify.SeverityDestructive:
			style = toastDangerStyle
		}

		var s strings.Builder
		s.WriteString(StyleHeader.Render(n.Title))
		if n.Description != "" {
			s.WriteString("\n")
			s.WriteString(StyleHelp.Render(n.Description))
		}
		rendered = append(rendered, style.MaxWidth(width).Render(s.String()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
