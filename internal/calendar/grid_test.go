package calendar

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedBuilder(now string) Builder {
	ts := MustParseDate(now).Time().Add(15 * time.Hour)
	return Builder{Now: func() time.Time { return ts }, Location: time.UTC}
}

func inMonthDays(grid MonthGrid) []Date {
	var out []Date
	for _, day := range grid.Days() {
		if day.InMonth {
			out = append(out, day.Date)
		}
	}
	return out
}

func TestBuildMonthCoversEveryMonthExactlyOnce(t *testing.T) {
	t.Parallel()

	for year := 1900; year <= 2100; year++ {
		for month := time.January; month <= time.December; month++ {
			for _, weekStart := range []time.Weekday{time.Sunday, time.Monday, time.Saturday} {
				grid := BuildMonth(year, month, weekStart, false)
				days := grid.Days()
				label := fmt.Sprintf("%04d-%02d start=%s", year, month, weekStart)

				require.Zero(t, len(days)%DaysPerWeek, label)
				require.GreaterOrEqual(t, len(grid.Weeks), 4, label)
				require.LessOrEqual(t, len(grid.Weeks), 6, label)

				current := inMonthDays(grid)
				require.Len(t, current, DaysInMonth(year, month), label)
				for i, d := range current {
					require.Equal(t, NewDate(year, month, i+1), d, label)
				}

				require.Equal(t, weekStart, days[0].Date.Weekday(), label)
				for i := 1; i < len(days); i++ {
					require.Equal(t, days[i-1].Date.AddDays(1), days[i].Date, label)
				}
			}
		}
	}
}

func TestBuildMonthLeadingAndTrailingDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		year      int
		month     time.Month
		weekStart time.Weekday
		first     string
		last      string
		weeks     int
	}{
		{"february leap sunday start", 2024, time.February, time.Sunday, "2024-01-28", "2024-03-02", 5},
		{"january rolls back to december", 2025, time.January, time.Sunday, "2024-12-29", "2025-02-01", 5},
		{"december rolls into january", 2025, time.December, time.Sunday, "2025-11-30", "2026-01-03", 5},
		{"six week month", 2025, time.March, time.Sunday, "2025-02-23", "2025-04-05", 6},
		{"monday start six weeks", 2025, time.March, time.Monday, "2025-02-24", "2025-04-06", 6},
		{"four week february", 2026, time.February, time.Sunday, "2026-02-01", "2026-02-28", 4},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			grid := BuildMonth(tt.year, tt.month, tt.weekStart, false)
			days := grid.Days()
			require.Equal(t, MustParseDate(tt.first), days[0].Date)
			require.Equal(t, MustParseDate(tt.last), days[len(days)-1].Date)
			require.Len(t, grid.Weeks, tt.weeks)
		})
	}
}

func TestBuildMonthPaddingBelongsToAdjacentMonths(t *testing.T) {
	t.Parallel()

	december := BuildMonth(2025, time.December, time.Sunday, false)
	for _, day := range december.Days() {
		if day.InMonth {
			continue
		}
		if day.Date.After(NewDate(2025, time.December, 31)) {
			require.Equal(t, 2026, day.Date.Year)
			require.Equal(t, time.January, day.Date.Month)
		}
	}

	january := BuildMonth(2025, time.January, time.Sunday, false)
	leading := 0
	for _, day := range january.Weeks[0].Days {
		if !day.InMonth {
			leading++
			require.Equal(t, 2024, day.Date.Year)
			require.Equal(t, time.December, day.Date.Month)
		}
	}
	require.Equal(t, 3, leading)
}

func TestBuildMonthLeapYears(t *testing.T) {
	t.Parallel()

	require.Len(t, inMonthDays(BuildMonth(2024, time.February, time.Sunday, false)), 29)
	require.Len(t, inMonthDays(BuildMonth(2023, time.February, time.Sunday, false)), 28)
	require.Len(t, inMonthDays(BuildMonth(2000, time.February, time.Monday, false)), 29)
	require.Len(t, inMonthDays(BuildMonth(1900, time.February, time.Monday, false)), 28)
}

func TestBuildMonthWeekStartOnlyReorders(t *testing.T) {
	t.Parallel()

	key := func(days []Day) []string {
		out := make([]string, 0, len(days))
		for _, d := range days {
			if d.InMonth {
				out = append(out, d.Date.String())
			}
		}
		sort.Strings(out)
		return out
	}

	for month := time.January; month <= time.December; month++ {
		sunday := BuildMonth(2025, month, time.Sunday, false)
		monday := BuildMonth(2025, month, time.Monday, false)
		require.Equal(t, key(sunday.Days()), key(monday.Days()))
		require.Equal(t, time.Monday, monday.Weeks[0].Days[0].Date.Weekday())
		require.Equal(t, time.Sunday, sunday.Weeks[0].Days[0].Date.Weekday())
	}
}

func TestBuildMonthNormalizesOverflow(t *testing.T) {
	t.Parallel()

	grid := BuildMonth(2025, time.Month(13), time.Sunday, false)
	require.Equal(t, 2026, grid.Year)
	require.Equal(t, time.January, grid.Month)

	grid = BuildMonth(2025, time.Month(0), time.Sunday, false)
	require.Equal(t, 2024, grid.Year)
	require.Equal(t, time.December, grid.Month)

	grid = BuildMonth(2025, time.Month(-11), time.Sunday, false)
	require.Equal(t, 2024, grid.Year)
	require.Equal(t, time.January, grid.Month)

	grid = BuildMonth(2025, time.March, time.Weekday(8), false)
	require.Equal(t, time.Monday, grid.WeekStart)
	grid = BuildMonth(2025, time.March, time.Weekday(-1), false)
	require.Equal(t, time.Saturday, grid.WeekStart)
}

func TestBuildMonthMarksToday(t *testing.T) {
	t.Parallel()

	b := fixedBuilder("2025-06-14")
	grid := b.BuildMonth(2025, time.June, time.Monday, false)

	var today []Date
	for _, day := range grid.Days() {
		if day.IsToday {
			today = append(today, day.Date)
		}
	}
	require.Equal(t, []Date{NewDate(2025, time.June, 14)}, today)

	other := b.BuildMonth(2025, time.August, time.Monday, false)
	for _, day := range other.Days() {
		require.False(t, day.IsToday)
	}
}

func TestBuildMonthTodayInPaddingCell(t *testing.T) {
	t.Parallel()

	b := fixedBuilder("2025-07-01")
	grid := b.BuildMonth(2025, time.June, time.Sunday, false)
	last := grid.Weeks[len(grid.Weeks)-1]

	found := false
	for _, day := range last.Days {
		if day.IsToday {
			found = true
			require.False(t, day.InMonth)
		}
	}
	require.True(t, found)
}

func TestBuildMonthWeekNumbers(t *testing.T) {
	t.Parallel()

	t.Run("omitted unless requested", func(t *testing.T) {
		t.Parallel()
		grid := BuildMonth(2025, time.January, time.Monday, false)
		for _, week := range grid.Weeks {
			require.Zero(t, week.Number)
		}
	})

	t.Run("january 2025 starts in week 1", func(t *testing.T) {
		t.Parallel()
		grid := BuildMonth(2025, time.January, time.Monday, true)
		require.Equal(t, []int{1, 2, 3, 4, 5}, weekNumbers(grid))
	})

	t.Run("sunday start still uses the thursday", func(t *testing.T) {
		t.Parallel()
		grid := BuildMonth(2025, time.January, time.Sunday, true)
		require.Equal(t, 1, grid.Weeks[0].Number)
	})

	t.Run("december 2025 ends in week 1 of 2026", func(t *testing.T) {
		t.Parallel()
		grid := BuildMonth(2025, time.December, time.Monday, true)
		require.Equal(t, []int{49, 50, 51, 52, 1}, weekNumbers(grid))
	})

	t.Run("week 53 years", func(t *testing.T) {
		t.Parallel()
		grid := BuildMonth(2020, time.December, time.Monday, true)
		numbers := weekNumbers(grid)
		require.Equal(t, 53, numbers[len(numbers)-1])
	})
}

func TestISOWeek(t *testing.T) {
	t.Parallel()

	year, week := ISOWeek(MustParseDate("2025-01-01"))
	require.Equal(t, 2025, year)
	require.Equal(t, 1, week)

	year, week = ISOWeek(MustParseDate("2025-12-29"))
	require.Equal(t, 2026, year)
	require.Equal(t, 1, week)

	year, week = ISOWeek(MustParseDate("2021-01-03"))
	require.Equal(t, 2020, year)
	require.Equal(t, 53, week)
}

func TestBuildMonths(t *testing.T) {
	t.Parallel()

	grids := BuildMonths(Month{Year: 2025, Month: time.November}, 3, time.Monday, false)
	require.Len(t, grids, 3)
	require.Equal(t, Month{Year: 2025, Month: time.November}, grids[0].DisplayMonth())
	require.Equal(t, Month{Year: 2025, Month: time.December}, grids[1].DisplayMonth())
	require.Equal(t, Month{Year: 2026, Month: time.January}, grids[2].DisplayMonth())

	require.Len(t, BuildMonths(Month{Year: 2025, Month: time.May}, 0, time.Monday, false), 1)
}

func weekNumbers(grid MonthGrid) []int {
	out := make([]int, len(grid.Weeks))
	for i, week := range grid.Weeks {
		out[i] = week.Number
	}
	return out
}
