package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/museum-pulse/internal/cli"
	"github.com/Veraticus/museum-pulse/internal/report"
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.snapshot == nil {
		return m.renderLoading()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderFacets(),
		m.content.View(),
		m.renderStatus(),
		m.help.View(m.keymap),
	)
}

func (m Model) renderLoading() string {
	msg := m.theme.StatusInfo.Render("Loading reviews...")
	if m.lastError != nil {
		msg = m.theme.StatusError.Render("Failed to load reviews: " + m.lastError.Error())
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.Title.Render(cli.MuseumIcon+" Museum Pulse"),
		"",
		msg,
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, len(report.Pages))
	for i, p := range report.Pages {
		label := strings.ToUpper(string(p[:1])) + string(p[1:])
		if i == m.page {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(label))
		}
	}

	total := 0
	if m.dashboard != nil {
		total = m.dashboard.Total
	}
	title := m.theme.Title.Render(cli.MuseumIcon + " Museum Pulse")
	count := m.theme.Subtitle.Render(fmt.Sprintf("%d of %d reviews", total, m.snapshot.Len()))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", count),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

func (m Model) renderFacets() string {
	rows := make([]string, 0, facetCount+1)
	for f := Facet(0); f < facetCount; f++ {
		label := f.String()
		if f == m.facet {
			label = "▸ " + label
		} else {
			label = "  " + label
		}

		values := m.facetValues(f)
		cells := make([]string, 0, len(values))
		for i, v := range values {
			cell := m.theme.FacetOff.Render("[ ] " + v)
			if m.selected(f, i) {
				cell = m.theme.FacetOn.Render("[x] " + v)
			}
			if f == m.facet && i == m.cursors[f] {
				cell = m.theme.Cursor.Render(cell)
			}
			cells = append(cells, cell)
		}
		rows = append(rows, m.theme.FacetLabel.Render(label)+" "+strings.Join(cells, " "))
	}

	if m.searching {
		rows = append(rows, m.keyword.View())
	} else {
		kw := m.spec.Keyword
		if kw == "" {
			kw = m.theme.StatusInfo.Render("none (press / to search)")
		}
		rows = append(rows, "Keyword: "+kw)
	}

	return m.theme.RoundedBox.Render(strings.Join(rows, "\n"))
}

func (m Model) renderStatus() string {
	if m.lastError != nil {
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + m.lastError.Error())
	}
	if m.status != "" {
		return m.theme.StatusSuccess.Render(m.status)
	}
	return m.theme.StatusInfo.Render(fmt.Sprintf("snapshot %s", shortID(m.snapshot.ID)))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
