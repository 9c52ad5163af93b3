package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// UI styles and layout settings
// Color palette "Blue Moon" from https://gogh-co.github.io/Gogh/
const (
	colorGray     = "#353b52"
	colorWhite    = "#ffffff"
	colorGreen    = "#acfab4"
	colorGreenDim = "#b4c4b4"
	colorRed      = "#e61f44"
	colorRedDim   = "#d06178"
	colorPurple   = "#b9a3eb"
	colorBlue     = "#89ddff"

	clockTickDuration = time.Second

	bordersAndPaddingWidth = 4
	defaultWidth           = 80
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color(colorGray)).
			Padding(0, 2)
	weekdayStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorPurple)).
			Padding(0, 1)
	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWhite))
	subtitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue))
	questionStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorWhite))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray)).
			Background(lipgloss.Color(colorGreen))
	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGreenDim))
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite))
	textRedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorPurple)).
			Padding(1, 3)

	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.Color(colorBlue)).Padding(0, 1)
	tableCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWhite)).Padding(0, 1)
	tableEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorRedDim)).Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray))
)

// Function to colorize text based on its status
// 0 (default) - unknown, 1 - green, 2 - red
func TextStatusColorize(text string, status int) string {
	switch status {
	case 1:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreenDim)).Render(text)
	case 2:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorRedDim)).Render(text)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Render(text)
	}
}

// Generates pointer symbol when line in focus
func generateLinePointer(isPoint bool, length int) string {
	if isPoint {
		return ">" + strings.Repeat(" ", length-1)
	}
	return strings.Repeat(" ", length)
}

// Chevron for a collapsible question
func expandMarker(expanded bool) string {
	if expanded {
		return "▲"
	}
	return "▼"
}

func contentWidth(width int) int {
	if width <= 0 {
		width = defaultWidth
	}
	return width - bordersAndPaddingWidth
}
