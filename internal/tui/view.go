package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
)

const cellWidth = 3

// View renders the current state of the model.
func (m Model) View() string {
	sections := []string{titleStyle.Render(m.heading())}

	grids := m.builder.BuildMonths(m.month, m.opts.NumberOfMonths, m.opts.WeekStart, m.opts.ShowWeekNumbers)
	months := make([]string, len(grids))
	for i, grid := range grids {
		months[i] = monthStyle.Render(m.renderMonth(grid, i == 0, i == len(grids)-1))
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, months...))

	status := "Selected: " + m.selection.String()
	if m.notice != "" {
		status += "  " + warningStyle.Render(m.notice)
	}
	sections = append(sections, statusStyle.Render(status))
	sections = append(sections, helpStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) heading() string {
	if strings.TrimSpace(m.title) != "" {
		return fmt.Sprintf("calgrid • %s", m.title)
	}
	return "calgrid"
}

func (m Model) renderMonth(grid calendar.MonthGrid, first, last bool) string {
	lines := []string{captionStyle.Render(m.caption(grid.DisplayMonth(), first, last))}

	var header strings.Builder
	if m.opts.ShowWeekNumbers {
		header.WriteString(weekNumberStyle.Render(pad("Wk")))
	}
	for _, name := range calendar.DayNames(m.opts.WeekStart, calendar.NameShort, m.opts.Locale) {
		header.WriteString(dayHeaderStyle.Render(pad(truncate(name, 2))))
	}
	lines = append(lines, header.String())

	for _, week := range grid.Weeks {
		var row strings.Builder
		if m.opts.ShowWeekNumbers {
			row.WriteString(weekNumberStyle.Render(fmt.Sprintf("%*d", cellWidth, week.Number)))
		}
		for _, day := range week.Days {
			state := calendar.Describe(day, m.selection, m.opts.Constraints)
			row.WriteString(m.cellStyle(state).Render(fmt.Sprintf("%*d", cellWidth, day.Date.Day)))
		}
		lines = append(lines, row.String())
	}

	return strings.Join(lines, "\n")
}

// caption shows navigation arrows on the outer months only, or dropdown markers for dropdown layouts.
func (m Model) caption(month calendar.Month, first, last bool) string {
	layout := m.opts.CaptionLayout
	name := calendar.MonthName(month.Month, calendar.NameLong, m.opts.Locale)
	year := fmt.Sprintf("%d", month.Year)
	if layout.ShowMonthDropdown() {
		name += " ▾"
	}
	if layout.ShowYearDropdown() {
		year += " ▾"
	}

	text := name + " " + year
	if first {
		text = "‹ " + text
	}
	if last {
		text += " ›"
	}
	return text
}

func (m Model) cellStyle(state calendar.CellState) lipgloss.Style {
	switch {
	case state.Date == m.cursor:
		return cursorStyle
	case state.RangeStart || state.RangeEnd:
		return rangeEdgeStyle
	case state.Selected:
		return selectedStyle
	case state.InRange:
		return inRangeStyle
	case state.Disabled:
		return disabledStyle
	case !state.InMonth:
		return outsideDayStyle
	case state.IsToday:
		return todayStyle
	default:
		return dayStyle
	}
}

func pad(s string) string {
	return fmt.Sprintf("%*s", cellWidth, s)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
