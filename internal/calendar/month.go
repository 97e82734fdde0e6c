package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MonthLayout is the text form of a Month.
const MonthLayout = "2006-01"

// ErrInvalidMonth is returned when text cannot be parsed as a year and month.
var ErrInvalidMonth = errors.New("invalid month")

// Month identifies a displayed month. It is the navigation state a host keeps.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth returns the normalized month; time.Month(13) is January of the next year
// and time.Month(0) is December of the previous year.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w %q: expected YYYY-MM", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// AddMonths moves n months forward (or backward when n is negative).
func (m Month) AddMonths(n int) Month {
	return NewMonth(m.Year, m.Month+time.Month(n))
}

// Next returns the following month.
func (m Month) Next() Month {
	return m.AddMonths(1)
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	return m.AddMonths(-1)
}

// WithMonth jumps to another month of the same year.
func (m Month) WithMonth(month time.Month) Month {
	return NewMonth(m.Year, month)
}

// WithYear jumps to the same month of another year.
func (m Month) WithYear(year int) Month {
	return NewMonth(year, m.Month)
}

// First returns the first day of the month.
func (m Month) First() Date {
	return NewDate(m.Year, m.Month, 1)
}

// Last returns the last day of the month.
func (m Month) Last() Date {
	return NewDate(m.Year, m.Month+1, 0)
}

// Contains reports whether d falls in the month.
func (m Month) Contains(d Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// Compare orders months chronologically.
func (m Month) Compare(other Month) int {
	return m.First().Compare(other.First())
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MarshalText encodes m as YYYY-MM.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a YYYY-MM value.
func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// InitialMonth picks the month a calendar opens on. An explicit default wins,
// then the month of the current selection, then the month of today.
func InitialMonth(defaultMonth *Month, sel Selection, today Date) Month {
	if defaultMonth != nil {
		return NewMonth(defaultMonth.Year, defaultMonth.Month)
	}
	if anchor, ok := sel.Anchor(); ok {
		return MonthOf(anchor)
	}
	return MonthOf(today)
}

// YearWindow lists the years offered by a year dropdown: a century back and a decade ahead.
func YearWindow(currentYear int) []int {
	const (
		back  = 100
		ahead = 10
	)
	years := make([]int, 0, back+ahead+1)
	for y := currentYear - back; y <= currentYear+ahead; y++ {
		years = append(years, y)
	}
	return years
}

// CaptionLayout controls how a month caption lets users navigate.
type CaptionLayout string

const (
	CaptionButtons        CaptionLayout = "buttons"
	CaptionDropdown       CaptionLayout = "dropdown"
	CaptionDropdownMonths CaptionLayout = "dropdown-months"
	CaptionDropdownYears  CaptionLayout = "dropdown-years"
)

// CaptionLayouts lists the valid caption layouts.
func CaptionLayouts() []CaptionLayout {
	return []CaptionLayout{CaptionButtons, CaptionDropdown, CaptionDropdownMonths, CaptionDropdownYears}
}

// ShowMonthDropdown reports whether the caption offers a month picker.
func (c CaptionLayout) ShowMonthDropdown() bool {
	return c == CaptionDropdown || c == CaptionDropdownMonths
}

// ShowYearDropdown reports whether the caption offers a year picker.
func (c CaptionLayout) ShowYearDropdown() bool {
	return c == CaptionDropdown || c == CaptionDropdownYears
}
