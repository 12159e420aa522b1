// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color (gallery gold).
	PrimaryColor = lipgloss.Color("#D4A72C")
	// PositiveColor marks positive sentiment.
	PositiveColor = lipgloss.Color("#4ECDC4") // Teal
	// NeutralColor marks neutral sentiment.
	NeutralColor = lipgloss.Color("#A0A0A0") // Gray
	// NegativeColor marks negative sentiment.
	NegativeColor = lipgloss.Color("#FF6B6B") // Red
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(PositiveColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(NegativeColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)

	// BarStyle colors the filled part of a text bar chart.
	BarStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	MuseumIcon  = "🏛️"
	ChartIcon   = "📊"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the museum icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(MuseumIcon + " " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, boxTitle, content))
}

// Bar is one labeled value of a text bar chart.
type Bar struct {
	Label string
	Value float64
}

// RenderBars draws a horizontal bar chart scaled so the largest value spans
// width cells. Values are printed with format, e.g. "%.0f".
func RenderBars(bars []Bar, width int, format string) string {
	if len(bars) == 0 {
		return SubtleStyle.Render("no data")
	}

	labelWidth, maxValue := 0, 0.0
	for _, b := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
		maxValue = max(maxValue, b.Value)
	}

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		n := 0
		if maxValue > 0 && b.Value > 0 {
			n = max(1, int(b.Value/maxValue*float64(width)+0.5))
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %s",
			labelWidth, b.Label,
			BarStyle.Render(strings.Repeat("█", n)),
			fmt.Sprintf(format, b.Value)))
	}
	return strings.Join(lines, "\n")
}
