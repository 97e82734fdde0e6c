package api

import (
	"time"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
	"github.com/alexisbeaulieu97/calgrid/internal/store"
)

type selectionView struct {
	Mode  string   `json:"mode"`
	Date  string   `json:"date,omitempty"`
	Dates []string `json:"dates,omitempty"`
	From  string   `json:"from,omitempty"`
	To    string   `json:"to,omitempty"`
}

func newSelectionView(sel calendar.Selection) selectionView {
	view := selectionView{Mode: sel.Mode().String()}
	if d, ok := sel.Date(); ok {
		view.Date = d.String()
	}
	for _, d := range sel.Dates() {
		view.Dates = append(view.Dates, d.String())
	}
	if d, ok := sel.From(); ok {
		view.From = d.String()
	}
	if d, ok := sel.To(); ok {
		view.To = d.String()
	}
	return view
}

type dayView struct {
	Date       string `json:"date"`
	Day        int    `json:"day"`
	InMonth    bool   `json:"in_month"`
	IsToday    bool   `json:"is_today"`
	Selected   bool   `json:"selected"`
	Disabled   bool   `json:"disabled"`
	InRange    bool   `json:"in_range"`
	RangeStart bool   `json:"range_start"`
	RangeEnd   bool   `json:"range_end"`
}

type weekView struct {
	Number int       `json:"number,omitempty"`
	Days   []dayView `json:"days"`
}

type monthView struct {
	Month     string     `json:"month"`
	Caption   string     `json:"caption"`
	WeekStart string     `json:"week_start"`
	DayNames  []string   `json:"day_names"`
	Weeks     []weekView `json:"weeks"`
}

type monthsView struct {
	Calendar  string         `json:"calendar,omitempty"`
	Selection *selectionView `json:"selection,omitempty"`
	Prev      string         `json:"prev"`
	Next      string         `json:"next"`
	Months    []monthView    `json:"months"`
}

func newMonthView(grid calendar.MonthGrid, sel calendar.Selection, constraints calendar.Constraints, locale string) monthView {
	view := monthView{
		Month:     grid.DisplayMonth().String(),
		Caption:   calendar.MonthCaption(grid.DisplayMonth(), locale),
		WeekStart: grid.WeekStart.String(),
		DayNames:  calendar.DayNames(grid.WeekStart, calendar.NameShort, locale),
		Weeks:     make([]weekView, len(grid.Weeks)),
	}
	for i, week := range grid.Weeks {
		days := make([]dayView, len(week.Days))
		for j, day := range week.Days {
			state := calendar.Describe(day, sel, constraints)
			days[j] = dayView{
				Date:       day.Date.String(),
				Day:        day.Date.Day,
				InMonth:    day.InMonth,
				IsToday:    day.IsToday,
				Selected:   state.Selected,
				Disabled:   state.Disabled,
				InRange:    state.InRange,
				RangeStart: state.RangeStart,
				RangeEnd:   state.RangeEnd,
			}
		}
		view.Weeks[i] = weekView{Number: week.Number, Days: days}
	}
	return view
}

type stateView struct {
	Calendar  string        `json:"calendar"`
	Selection selectionView `json:"selection"`
	Month     string        `json:"month"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func newStateView(state store.State) stateView {
	return stateView{
		Calendar:  state.Calendar,
		Selection: newSelectionView(state.Selection),
		Month:     state.Month.String(),
		UpdatedAt: state.UpdatedAt,
	}
}

type clickView struct {
	stateView
	Changed bool `json:"changed"`
}

type resolveView struct {
	Selection selectionView `json:"selection"`
	Token     string        `json:"token"`
	Changed   bool          `json:"changed"`
}
