package ui

import "github.com/charmbracelet/lipgloss"

const version = "0.3.0"

const maxHistorySize = 120

const (
	colorText      = "#e6e6e6"
	colorDim       = "#5c5c5c"
	colorBg        = "#1a1b26"
	colorGreen     = "#9ece6a"
	colorOrange    = "#ff9e64"
	colorRed       = "#f7768e"
	colorYellow    = "#e0af68"
	colorItalic    = "#a9b1d6"
	colorFocused   = "#7aa2f7"
	colorUnfocused = "#3b4261"
)

var (
	loadColor  = lipgloss.Color(colorGreen)
	drawsColor = lipgloss.Color(colorOrange)
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorText)).
			Background(lipgloss.Color(colorUnfocused)).
			Padding(0, 1)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorFocused)).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)).Bold(true)
)

func styleColor(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

func borderStyle(width, height int, focused bool) lipgloss.Style {
	borderColor := colorFocused
	if !focused {
		borderColor = colorUnfocused
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(0, 1).
		Width(width).
		Height(height)
}

func getPercentColor(percent float64) string {
	switch {
	case percent >= 90:
		return colorRed
	case percent >= 70:
		return colorOrange
	case percent >= 40:
		return colorYellow
	default:
		return colorGreen
	}
}

func ensureMin(width, height, minWidth, minHeight int) (int, int) {
	return max(width, minWidth), max(height, minHeight)
}
