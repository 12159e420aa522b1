package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable draws rows under headers with a normal border.
func RenderTable(headers []string, rows [][]string) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	header := cell.Bold(true).Foreground(PrimaryColor)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	return t.Render()
}
