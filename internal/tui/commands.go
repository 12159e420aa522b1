package tui

import tea "github.com/charmbracelet/bubbletea"

// reloadSnapshot asks the source for a fresh snapshot.
func (m Model) reloadSnapshot() tea.Cmd {
	source, ctx := m.source, m.ctx
	return func() tea.Msg {
		changed, err := source.Reload(ctx)
		return snapshotMsg{snapshot: source.Current(), changed: changed, err: err}
	}
}

func setStatus(s string) tea.Cmd {
	return func() tea.Msg { return statusMsg(s) }
}
