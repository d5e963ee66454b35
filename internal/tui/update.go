package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"puppy-store/internal/listing"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureSelectionVisible()
		return m, nil

	case snapshotMsg:
		s := listing.Snapshot(msg)
		if s.Version >= m.snap.Version {
			m.applySnapshot(s)
		}
		return m, waitForSnapshot(m.feed)

	case detailMsg:
		if m.screen != screenDetail || msg.id != m.detail.id {
			return m, nil
		}
		m.detail.loading = false
		m.detail.puppy = msg.puppy
		m.detail.found = msg.found
		if msg.err != nil {
			m.detail.err = msg.err.Error()
		}
		return m, nil

	case toggleMsg:
		if msg.err != nil {
			m.status = "error simulation unavailable: " + msg.err.Error()
			return m, nil
		}
		m.errorSim = msg.enabled
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == screenDetail {
			return m.updateDetailKeys(msg)
		}
		return m.updateListKeys(msg)
	}

	return m, nil
}

func (m Model) updateListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		if !m.ctrl.Refresh(m.ctx) {
			m.status = "nothing to refresh right now"
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		if m.snap.State != listing.StateError {
			return m, nil
		}
		return m, retryCmd(m.ctx, m.ctrl, m.toggle)

	case key.Matches(msg, m.keys.Toggle):
		if m.toggle == nil {
			m.status = "error simulation not available"
			return m, nil
		}
		return m, setToggleCmd(m.ctx, m.toggle, !m.errorSim)

	case key.Matches(msg, m.keys.LoadMore):
		m.ctrl.LoadMore(m.ctx)
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if m.snap.State != listing.StateSuccess || len(m.snap.Items) == 0 {
			return m, nil
		}
		id := m.snap.Items[m.selected].ID
		m.screen = screenDetail
		m.detail = detailState{id: id, loading: true}
		return m, lookupCmd(m.ctx, m.lookup, id)

	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-columns)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(columns)
	case key.Matches(msg, m.keys.Top):
		m.moveSelection(-len(m.snap.Items))
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection(len(m.snap.Items))
	}

	return m, nil
}

func (m Model) updateDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = screenList
		m.detail = detailState{}
	}
	return m, nil
}

func (m *Model) applySnapshot(s listing.Snapshot) {
	m.snap = s
	if m.selected >= len(s.Items) {
		m.selected = len(s.Items) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.ensureSelectionVisible()
}

// moveSelection mueve el cursor y, al llegar a la última fila, pide la página siguiente.
func (m *Model) moveSelection(delta int) {
	n := len(m.snap.Items)
	if n == 0 {
		return
	}

	next := m.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= n {
		next = n - 1
	}
	m.selected = next
	m.ensureSelectionVisible()

	if rowOf(m.selected) >= rowOf(n-1) {
		m.ctrl.LoadMore(m.ctx)
	}
}

func (m *Model) ensureSelectionVisible() {
	rows := m.visibleRows()
	row := rowOf(m.selected)
	if row < m.offset {
		m.offset = row
	}
	if row >= m.offset+rows {
		m.offset = row - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func rowOf(i int) int { return i / columns }
