// Package tui implements the interactive terminal dashboard.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/Veraticus/museum-pulse/internal/dataset"
	"github.com/Veraticus/museum-pulse/internal/filter"
	"github.com/Veraticus/museum-pulse/internal/report"
	"github.com/Veraticus/museum-pulse/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Source supplies snapshots to the dashboard.
type Source interface {
	Current() *dataset.Snapshot
	Reload(ctx context.Context) (bool, error)
}

// Facet identifies one filter row.
type Facet int

// Facet rows in display order.
const (
	FacetYear Facet = iota
	FacetTourist
	FacetSentiment
	FacetRating
	facetCount
)

func (f Facet) String() string {
	switch f {
	case FacetYear:
		return "Year"
	case FacetTourist:
		return "Tourist"
	case FacetSentiment:
		return "Sentiment"
	case FacetRating:
		return "Rating"
	default:
		return "?"
	}
}

// chromeHeight is the number of lines outside the content viewport.
const chromeHeight = 13

// Model holds the dashboard state.
type Model struct {
	ctx       context.Context
	source    Source
	snapshot  *dataset.Snapshot
	dashboard *report.Dashboard
	lastError error
	theme     themes.Theme
	keymap    KeyMap
	help      help.Model
	keyword   textinput.Model
	content   viewport.Model
	status    string
	spec      filter.Spec
	facets    filter.Facets
	config    Config
	cursors   [facetCount]int
	page      int
	facet     Facet
	width     int
	height    int
	searching bool
	quitting  bool
}

// New creates a dashboard reading from source.
func New(ctx context.Context, source Source, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	input := textinput.New()
	input.Prompt = "Keyword: "
	input.Placeholder = "type and press Enter"
	input.CharLimit = 120

	m := Model{
		ctx:     ctx,
		source:  source,
		config:  cfg,
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		keyword: input,
		content: viewport.New(cfg.Width, max(3, cfg.Height-chromeHeight)),
		width:   cfg.Width,
		height:  cfg.Height,
		page:    max(0, slices.Index(report.Pages, cfg.Page)),
	}
	m.setSnapshot(source.Current())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.snapshot == nil {
		return m.reloadSnapshot()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.content.Width = msg.Width
		m.content.Height = max(3, msg.Height-chromeHeight)
		m.help.Width = msg.Width
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		if msg.changed || m.snapshot == nil {
			m.setSnapshot(msg.snapshot)
			if m.snapshot != nil {
				m.status = fmt.Sprintf("Loaded %d reviews", m.snapshot.Len())
			}
		} else {
			m.status = "Source unchanged"
		}
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.NextPage):
		m.setPage((m.page + 1) % len(report.Pages))
	case key.Matches(msg, m.keymap.PrevPage):
		m.setPage((m.page + len(report.Pages) - 1) % len(report.Pages))

	case key.Matches(msg, m.keymap.Up):
		m.content.LineUp(1)
	case key.Matches(msg, m.keymap.Down):
		m.content.LineDown(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.content.ViewUp()
	case key.Matches(msg, m.keymap.PageDown):
		m.content.ViewDown()

	case key.Matches(msg, m.keymap.NextFacet):
		m.facet = (m.facet + 1) % facetCount
	case key.Matches(msg, m.keymap.PrevFacet):
		m.facet = (m.facet + facetCount - 1) % facetCount
	case key.Matches(msg, m.keymap.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.ToggleValue):
		m.toggle(m.facet, m.cursors[m.facet])
	case key.Matches(msg, m.keymap.ClearFilters):
		m.spec = filter.Spec{}
		m.keyword.SetValue("")
		m.rebuild()
		return m, setStatus("Filters cleared")

	case key.Matches(msg, m.keymap.Search):
		m.searching = true
		m.keyword.SetValue(m.spec.Keyword)
		m.keyword.CursorEnd()
		return m, m.keyword.Focus()

	case key.Matches(msg, m.keymap.Reload):
		m.status = "Reloading..."
		return m, m.reloadSnapshot()

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.keyword.Blur()
		m.spec.Keyword = m.keyword.Value()
		m.spec = m.spec.Normalize()
		m.rebuild()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.keyword.Blur()
		m.keyword.SetValue(m.spec.Keyword)
		return m, nil
	}

	var cmd tea.Cmd
	m.keyword, cmd = m.keyword.Update(msg)
	return m, cmd
}

func (m *Model) setSnapshot(snap *dataset.Snapshot) {
	m.snapshot = snap
	if snap != nil {
		m.facets = snap.Facets()
	}
	for f := Facet(0); f < facetCount; f++ {
		if n := len(m.facetValues(f)); m.cursors[f] >= n {
			m.cursors[f] = max(0, n-1)
		}
	}
	m.rebuild()
}

func (m *Model) setPage(page int) {
	m.page = page
	m.rebuild()
	m.content.GotoTop()
}

func (m *Model) moveCursor(delta int) {
	n := len(m.facetValues(m.facet))
	if n == 0 {
		return
	}
	m.cursors[m.facet] = (m.cursors[m.facet] + delta + n) % n
}

// rebuild recomputes the current page for the current filter.
func (m *Model) rebuild() {
	if m.snapshot == nil {
		m.dashboard = nil
		m.content.SetContent("")
		return
	}
	m.dashboard = m.snapshot.Dashboard(m.spec, report.Options{Page: m.Page(), TopN: m.config.TopN})
	m.content.SetContent(report.Text(m.dashboard))
}

// facetValues lists the selectable values of f as display labels.
func (m Model) facetValues(f Facet) []string {
	var out []string
	switch f {
	case FacetYear:
		for _, y := range m.facets.Years {
			out = append(out, strconv.Itoa(y))
		}
	case FacetTourist:
		for _, t := range m.facets.TouristTypes {
			out = append(out, string(t))
		}
	case FacetSentiment:
		for _, s := range m.facets.Sentiments {
			out = append(out, string(s))
		}
	case FacetRating:
		for _, r := range m.facets.Ratings {
			out = append(out, strconv.Itoa(r))
		}
	}
	return out
}

// selected reports whether the i-th value of f is part of the filter. An
// empty facet selects everything, so nothing is marked.
func (m Model) selected(f Facet, i int) bool {
	switch f {
	case FacetYear:
		return i < len(m.facets.Years) && slices.Contains(m.spec.Years, m.facets.Years[i])
	case FacetTourist:
		return i < len(m.facets.TouristTypes) && slices.Contains(m.spec.TouristTypes, m.facets.TouristTypes[i])
	case FacetSentiment:
		return i < len(m.facets.Sentiments) && slices.Contains(m.spec.Sentiments, m.facets.Sentiments[i])
	case FacetRating:
		return i < len(m.facets.Ratings) && slices.Contains(m.spec.Ratings, m.facets.Ratings[i])
	}
	return false
}

func (m *Model) toggle(f Facet, i int) {
	switch f {
	case FacetYear:
		if i < len(m.facets.Years) {
			m.spec.Years = toggled(m.spec.Years, m.facets.Years[i])
		}
	case FacetTourist:
		if i < len(m.facets.TouristTypes) {
			m.spec.TouristTypes = toggled(m.spec.TouristTypes, m.facets.TouristTypes[i])
		}
	case FacetSentiment:
		if i < len(m.facets.Sentiments) {
			m.spec.Sentiments = toggled(m.spec.Sentiments, m.facets.Sentiments[i])
		}
	case FacetRating:
		if i < len(m.facets.Ratings) {
			m.spec.Ratings = toggled(m.spec.Ratings, m.facets.Ratings[i])
		}
	}
	m.spec = m.spec.Normalize()
	m.rebuild()
}

func toggled[T comparable](values []T, v T) []T {
	if i := slices.Index(values, v); i >= 0 {
		return slices.Delete(slices.Clone(values), i, i+1)
	}
	return append(slices.Clone(values), v)
}

// Page returns the page being shown.
func (m Model) Page() report.Page {
	return report.Pages[m.page]
}

// Spec returns the active filter.
func (m Model) Spec() filter.Spec {
	return m.spec
}

// Dashboard returns the projection of the current page.
func (m Model) Dashboard() *report.Dashboard {
	return m.dashboard
}
