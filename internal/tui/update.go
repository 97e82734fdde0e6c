package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Confirm):
		m.confirmed = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.moveDays(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveDays(1)
	case key.Matches(msg, m.keys.Up):
		m.moveDays(-calendar.DaysPerWeek)
	case key.Matches(msg, m.keys.Down):
		m.moveDays(calendar.DaysPerWeek)
	case key.Matches(msg, m.keys.PrevMonth):
		m.moveMonths(-1)
	case key.Matches(msg, m.keys.NextMonth):
		m.moveMonths(1)
	case key.Matches(msg, m.keys.PrevYear):
		if m.opts.CaptionLayout.ShowYearDropdown() {
			m.moveYears(-1)
		}
	case key.Matches(msg, m.keys.NextYear):
		if m.opts.CaptionLayout.ShowYearDropdown() {
			m.moveYears(1)
		}
	case key.Matches(msg, m.keys.Today):
		m.cursor = m.today
		m.month = calendar.MonthOf(m.today)
	case key.Matches(msg, m.keys.Toggle):
		m.click()
	case key.Matches(msg, m.keys.Clear):
		m.selection = calendar.EmptySelection(m.opts.Mode)
		m.notice = ""
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}
