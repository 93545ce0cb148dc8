package tui

import "github.com/charmbracelet/lipgloss"

// Color palette matching existing fatih/color usage
var (
	// ColorGreen for success indicators and copied highlights
	ColorGreen = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}

	// ColorCyan for provider names and metadata
	ColorCyan = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}

	// ColorWhite for primary text
	ColorWhite = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}

	// ColorGray for secondary text and help
	ColorGray = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}

	// ColorYellow for warnings and selections
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}

	// ColorRed for destructive notifications and delete prompts
	ColorRed = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
)

// Reusable styles
var (
	// StyleNormal is the base style for regular text
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleHighlight is for selected items
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	// StyleSuccess is for success indicators and copied markers
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleProvider is for provider labels
	StyleProvider = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleHelp is for help text and hints
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleHeader is for section headers
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	// StyleDanger is for destructive prompts and errors
	StyleDanger = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleBorder is for borders and separators
	StyleBorder = lipgloss.NewStyle().
			Foreground(ColorGray).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)
)
