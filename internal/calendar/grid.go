package calendar

import "time"

// DaysPerWeek is the width of every displayed week.
const DaysPerWeek = 7

// Day is one cell of a month grid.
type Day struct {
	Date    Date `json:"date"`
	InMonth bool `json:"in_month"`
	IsToday bool `json:"is_today"`
}

// Week is one row of a month grid. Number is the ISO-8601 week number,
// or 0 when week numbers were not requested.
type Week struct {
	Number int              `json:"number,omitempty"`
	Days   [DaysPerWeek]Day `json:"days"`
}

// Thursday returns the Thursday inside the week, which determines its ISO week.
func (w Week) Thursday() Date {
	for _, day := range w.Days {
		if day.Date.Weekday() == time.Thursday {
			return day.Date
		}
	}
	return w.Days[0].Date
}

// MonthGrid is the full display grid of one month.
type MonthGrid struct {
	Year      int          `json:"year"`
	Month     time.Month   `json:"month"`
	WeekStart time.Weekday `json:"week_start"`
	Weeks     []Week       `json:"weeks"`
}

// Days flattens the grid into chronological order.
func (g MonthGrid) Days() []Day {
	days := make([]Day, 0, len(g.Weeks)*DaysPerWeek)
	for _, week := range g.Weeks {
		days = append(days, week.Days[:]...)
	}
	return days
}

// DisplayMonth returns the month the grid was built for.
func (g MonthGrid) DisplayMonth() Month {
	return Month{Year: g.Year, Month: g.Month}
}

// Builder produces month grids. Now and Location decide which cell is today;
// the zero Builder uses the system clock in time.Local.
type Builder struct {
	Now      func() time.Time
	Location *time.Location
}

// NewBuilder returns a Builder reading the system clock in loc.
func NewBuilder(loc *time.Location) Builder {
	return Builder{Now: time.Now, Location: loc}
}

// Today returns the builder's current day.
func (b Builder) Today() Date {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	loc := b.Location
	if loc == nil {
		loc = time.Local
	}
	return DateOf(now().In(loc))
}

// BuildMonth builds the grid for year and month with the system clock.
func BuildMonth(year int, month time.Month, weekStart time.Weekday, weekNumbers bool) MonthGrid {
	return Builder{}.BuildMonth(year, month, weekStart, weekNumbers)
}

// BuildMonth builds the display grid of a month. Month overflow is normalized,
// so month 13 of 2025 is January 2026. weekStart is taken modulo 7.
func (b Builder) BuildMonth(year int, month time.Month, weekStart time.Weekday, weekNumbers bool) MonthGrid {
	target := NewMonth(year, month)
	weekStart = normalizeWeekday(weekStart)
	today := b.Today()

	first := target.First()
	daysInMonth := DaysInMonth(target.Year, target.Month)
	leading := (int(first.Weekday()) - int(weekStart) + DaysPerWeek) % DaysPerWeek

	total := leading + daysInMonth
	if rem := total % DaysPerWeek; rem != 0 {
		total += DaysPerWeek - rem
	}

	// Walking from the first leading cell covers the previous month's tail,
	// the month itself and the next month's head in ascending order.
	cursor := first.AddDays(-leading)
	weeks := make([]Week, 0, total/DaysPerWeek)
	for w := 0; w < total/DaysPerWeek; w++ {
		var week Week
		for i := 0; i < DaysPerWeek; i++ {
			week.Days[i] = Day{
				Date:    cursor,
				InMonth: target.Contains(cursor),
				IsToday: cursor.Equal(today),
			}
			cursor = cursor.AddDays(1)
		}
		if weekNumbers {
			_, week.Number = ISOWeek(week.Thursday())
		}
		weeks = append(weeks, week)
	}

	return MonthGrid{
		Year:      target.Year,
		Month:     target.Month,
		WeekStart: weekStart,
		Weeks:     weeks,
	}
}

// BuildMonths builds count consecutive grids starting at start, using the system clock.
func BuildMonths(start Month, count int, weekStart time.Weekday, weekNumbers bool) []MonthGrid {
	return Builder{}.BuildMonths(start, count, weekStart, weekNumbers)
}

// BuildMonths builds count consecutive grids starting at start. A count below one yields one grid.
func (b Builder) BuildMonths(start Month, count int, weekStart time.Weekday, weekNumbers bool) []MonthGrid {
	if count < 1 {
		count = 1
	}
	grids := make([]MonthGrid, 0, count)
	for i := 0; i < count; i++ {
		m := start.AddMonths(i)
		grids = append(grids, b.BuildMonth(m.Year, m.Month, weekStart, weekNumbers))
	}
	return grids
}

func normalizeWeekday(w time.Weekday) time.Weekday {
	return time.Weekday(((int(w) % DaysPerWeek) + DaysPerWeek) % DaysPerWeek)
}
