package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		next, ok := updated.(Model)
		require.True(t, ok)
		m = next
	}
	return m
}

func TestUpdateMovesCursor(t *testing.T) {
	t.Parallel()

	m := newTestModel(testOptions(calendar.ModeSingle), calendar.EmptySelection(calendar.ModeSingle))

	tests := []struct {
		name string
		key  tea.KeyMsg
		want string
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, "2025-01-14"},
		{"h", runes("h"), "2025-01-14"},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, "2025-01-16"},
		{"l", runes("l"), "2025-01-16"},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, "2025-01-08"},
		{"k", runes("k"), "2025-01-08"},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, "2025-01-22"},
		{"j", runes("j"), "2025-01-22"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			moved := press(t, m, tt.key)
			require.Equal(t, date(tt.want), moved.Cursor())
		})
	}
}

func TestUpdateViewFollowsCursor(t *testing.T) {
	t.Parallel()

	m := newTestModel(testOptions(calendar.ModeSingle), calendar.EmptySelection(calendar.ModeSingle))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, date("2024-12-25"), m.Cursor())
	require.Equal(t, calendar.Month{Year: 2024, Month: time.December}, m.Month())

	opts := testOptions(calendar.ModeSingle)
	opts.NumberOfMonths = 2
	two := newTestModel(opts, calendar.EmptySelection(calendar.ModeSingle))
	two = press(t, two, runes("j"), runes("j"), runes("j"))
	require.Equal(t, date("2025-02-05"), two.Cursor())
	require.Equal(t, calendar.Month{Year: 2025, Month: time.January}, two.Month(), "second month is already visible")

	two = press(t, two, runes("j"), runes("j"), runes("j"), runes("j"))
	require.Equal(t, date("2025-03-05"), two.Cursor())
	require.Equal(t, calendar.Month{Year: 2025, Month: time.February}, two.Month())
}

func TestUpdateMonthNavigationClampsDay(t *testing.T) {
	t.Parallel()

	opts := testOptions(calendar.ModeSingle)
	opts.DefaultMonth = &calendar.Month{Year: 2025, Month: time.January}
	m := newTestModel(opts, calendar.Single(date("2025-01-31")))
	require.Equal(t, date("2025-01-31"), m.Cursor())

	m = press(t, m, runes("]"))
	require.Equal(t, calendar.Month{Year: 2025, Month: time.February}, m.Month())
	require.Equal(t, date("2025-02-28"), m.Cursor())

	m = press(t, m, runes("["), runes("["))
	require.Equal(t, calendar.Month{Year: 2024, Month: time.December}, m.Month())
	require.Equal(t, date("2024-12-28"), m.Cursor())
}

func TestUpdateYearNavigationNeedsYearDropdown(t *testing.T) {
	t.Parallel()

	buttons := newTestModel(testOptions(calendar.ModeSingle), calendar.EmptySelection(calendar.ModeSingle))
	buttons = press(t, buttons, runes("}"))
	require.Equal(t, calendar.Month{Year: 2025, Month: time.January}, buttons.Month())

	opts := testOptions(calendar.ModeSingle)
	opts.CaptionLayout = calendar.CaptionDropdown
	dropdown := newTestModel(opts, calendar.EmptySelection(calendar.ModeSingle))
	dropdown = press(t, dropdown, runes("}"))
	require.Equal(t, calendar.Month{Year: 2026, Month: time.January}, dropdown.Month())
	require.Equal(t, date("2026-01-15"), dropdown.Cursor())

	dropdown = press(t, dropdown, runes("{"), runes("{"))
	require.Equal(t, calendar.Month{Year: 2024, Month: time.January}, dropdown.Month())
}

func TestUpdateYearNavigationStaysInWindow(t *testing.T) {
	t.Parallel()

	opts := testOptions(calendar.ModeSingle)
	opts.CaptionLayout = calendar.CaptionDropdownYears
	opts.DefaultMonth = &calendar.Month{Year: 2035, Month: time.June}
	m := newTestModel(opts, calendar.EmptySelection(calendar.ModeSingle))

	m = press(t, m, runes("}"), runes("}"))
	require.Equal(t, 2035, m.Month().Year, "window ends ten years after today")
}

func TestUpdateTodayJumpsBack(t *testing.T) {
	t.Parallel()

	m := newTestModel(testOptions(calendar.ModeSingle), calendar.EmptySelection(calendar.ModeSingle))
	m = press(t, m, runes("]"), runes("]"), runes("l"), runes("t"))
	require.Equal(t, date("2025-01-15"), m.Cursor())
	require.Equal(t, calendar.Month{Year: 2025, Month: time.January}, m.Month())
}

func TestUpdateSelectsRange(t *testing.T) {
	t.Parallel()

	m := newTestModel(testOptions(calendar.ModeRange), calendar.EmptySelection(calendar.ModeRange))
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, calendar.RangeAnchored, m.Selection().RangeState())

	m = press(t, m, runes("h"), runes("h"), tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.Selection().Equal(calendar.CompletedRange(date("2025-01-13"), date("2025-01-15"))))

	m = press(t, m, runes("c"))
	require.True(t, m.Selection().IsEmpty())
	require.Equal(t, calendar.ModeRange, m.Selection().Mode())
}

func TestUpdateIgnoresDisabledDays(t *testing.T) {
	t.Parallel()

	opts := testOptions(calendar.ModeMultiple)
	maxDate := date("2025-01-15")
	opts.Constraints = calendar.Constraints{Max: &maxDate}

	m := newTestModel(opts, calendar.EmptySelection(calendar.ModeMultiple))
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, m.Selection().IsSelected(maxDate))

	m = press(t, m, runes("l"), tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, []calendar.Date{maxDate}, m.Selection().Dates())
	require.Contains(t, m.notice, "2025-01-16 is not available")

	m = press(t, m, runes("h"), tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, m.Selection().IsEmpty())
	require.Empty(t, m.notice)
}

func TestUpdateConfirmAndCancel(t *testing.T) {
	t.Parallel()

	m := newTestModel(testOptions(calendar.ModeSingle), calendar.EmptySelection(calendar.ModeSingle))

	updated, cmd := m.Update(runes("s"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.True(t, updated.(Model).Confirmed())

	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		updated, cmd := m.Update(k)
		require.NotNil(t, cmd, k.String())
		require.IsType(t, tea.QuitMsg{}, cmd())
		require.True(t, updated.(Model).Cancelled(), k.String())
		require.False(t, updated.(Model).Confirmed(), k.String())
	}
}

func TestUpdateHandlesWindowSizeAndHelp(t *testing.T) {
	t.Parallel()

	m := newTestModel(testOptions(calendar.ModeSingle), calendar.EmptySelection(calendar.ModeSingle))
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	require.Nil(t, cmd)
	m = updated.(Model)
	require.Equal(t, 100, m.help.Width)

	m = press(t, m, runes("?"))
	require.True(t, m.help.ShowAll)
}
