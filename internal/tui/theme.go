package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the order table uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	// Toolbar switches to the highlighted style while rows are selected.
	toolbarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)
	toolbarSelectedStyle = lipgloss.NewStyle().
				Foreground(colorMantle).
				Background(colorFocus).
				Bold(true).
				Padding(0, 2)

	tableHeaderStyle  = lipgloss.NewStyle().Foreground(colorSubtext0).Bold(true)
	activeHeaderStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	separatorStyle    = lipgloss.NewStyle().Foreground(colorSurface2)

	cursorStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(colorSurface0)
	emptyStyle    = lipgloss.NewStyle().Foreground(colorOverlay1).Italic(true)

	paginationStyle = lipgloss.NewStyle().Foreground(colorSubtext1)

	statusStyle  = lipgloss.NewStyle().Foreground(colorInfo)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(colorWarning)

	filterPromptStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)
