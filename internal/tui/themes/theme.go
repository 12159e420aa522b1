// Package themes holds the color schemes of the terminal dashboard.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	FacetLabel    lipgloss.Style
	FacetOn       lipgloss.Style
	FacetOff      lipgloss.Style
	Cursor        lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusSuccess lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
}

// Default is the default theme.
var Default = newTheme(
	lipgloss.Color("#D4A72C"), // gallery gold
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#10b981"),
)

// Mono renders without colors, for dumb terminals and golden output.
var Mono = newTheme("", "", "", "", "")

func newTheme(primary, muted, border, errColor, success lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Muted:   muted,
		Border:  border,
		Error:   errColor,
		Success: success,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle(),
		Bold:   lipgloss.NewStyle().Bold(true),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Underline(true).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),

		FacetLabel: lipgloss.NewStyle().
			Bold(true).
			Width(10),
		FacetOn: lipgloss.NewStyle().
			Foreground(success),
		FacetOff: lipgloss.NewStyle().
			Foreground(muted),
		Cursor: lipgloss.NewStyle().
			Reverse(true),

		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),

		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
	}
}
