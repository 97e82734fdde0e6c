package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
	"github.com/alexisbeaulieu97/calgrid/internal/config"
	"github.com/alexisbeaulieu97/calgrid/internal/logger"
)

// Model contains the Bubbletea state of the interactive date picker.
type Model struct {
	title     string
	opts      config.Options
	builder   calendar.Builder
	log       *logger.Logger
	today     calendar.Date
	month     calendar.Month
	cursor    calendar.Date
	selection calendar.Selection
	notice    string
	keys      keyMap
	help      help.Model
	confirmed bool
	cancelled bool
}

// NewModel constructs a picker for the given options, starting from sel.
// A selection of another mode is replaced by an empty one of opts.Mode.
func NewModel(title string, opts config.Options, sel calendar.Selection, builder calendar.Builder, log *logger.Logger) Model {
	if opts.NumberOfMonths < 1 {
		opts.NumberOfMonths = 1
	}
	if sel.Mode() != opts.Mode {
		sel = calendar.EmptySelection(opts.Mode)
	}

	today := builder.Today()
	m := Model{
		title:     title,
		opts:      opts,
		builder:   builder,
		log:       log,
		today:     today,
		month:     calendar.InitialMonth(opts.DefaultMonth, sel, today),
		selection: sel,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}

	m.cursor = m.month.First()
	if anchor, ok := sel.Anchor(); ok && m.visible(anchor) {
		m.cursor = anchor
	} else if m.visible(today) {
		m.cursor = today
	}

	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selection returns the current selection.
func (m Model) Selection() calendar.Selection {
	return m.selection
}

// Month returns the first displayed month.
func (m Model) Month() calendar.Month {
	return m.month
}

// Cursor returns the focused day.
func (m Model) Cursor() calendar.Date {
	return m.cursor
}

// Confirmed reports whether the user saved the selection.
func (m Model) Confirmed() bool {
	return m.confirmed
}

// Cancelled reports whether the user quit without saving.
func (m Model) Cancelled() bool {
	return m.cancelled
}

func (m Model) lastMonth() calendar.Month {
	return m.month.AddMonths(m.opts.NumberOfMonths - 1)
}

func (m Model) visible(d calendar.Date) bool {
	return !d.Before(m.month.First()) && !d.After(m.lastMonth().Last())
}

// follow scrolls the displayed months so the cursor stays on screen.
func (m *Model) follow() {
	switch {
	case m.cursor.Before(m.month.First()):
		m.month = calendar.MonthOf(m.cursor)
	case m.cursor.After(m.lastMonth().Last()):
		m.month = calendar.MonthOf(m.cursor).AddMonths(-(m.opts.NumberOfMonths - 1))
	}
}

func (m *Model) moveDays(n int) {
	m.cursor = m.cursor.AddDays(n)
	m.follow()
}

// moveMonths shifts the view and keeps the cursor on the same day number, clamped to the month length.
func (m *Model) moveMonths(n int) {
	m.month = m.month.AddMonths(n)
	target := calendar.MonthOf(m.cursor).AddMonths(n)
	day := m.cursor.Day
	if last := calendar.DaysInMonth(target.Year, target.Month); day > last {
		day = last
	}
	m.cursor = calendar.NewDate(target.Year, target.Month, day)
	m.follow()
}

// moveYears is bounded by the year dropdown window around today.
func (m *Model) moveYears(n int) {
	years := calendar.YearWindow(m.today.Year)
	target := m.month.Year + n
	if target < years[0] || target > years[len(years)-1] {
		return
	}
	m.moveMonths(12 * n)
}

func (m *Model) click() {
	before := m.selection
	m.selection = calendar.ResolveClick(m.selection, m.cursor, m.opts.Constraints.IsDisabled)
	m.log.Click(m.cursor, before, m.selection)

	m.notice = ""
	if m.opts.Constraints.IsDisabled(m.cursor) {
		m.notice = m.cursor.String() + " is not available"
	}
}
