package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultLocale is used for unknown locales.
const DefaultLocale = "en"

var (
	// ErrInvalidNameFormat is returned for unknown name format values.
	ErrInvalidNameFormat = errors.New("invalid name format")
	// ErrInvalidWeekday is returned for unknown weekday names or numbers.
	ErrInvalidWeekday = errors.New("invalid weekday")
)

// NameFormat selects the width of month and weekday labels.
type NameFormat int

const (
	NameLong NameFormat = iota
	NameShort
	NameNarrow
)

// ParseNameFormat parses "long", "short" or "narrow".
func ParseNameFormat(s string) (NameFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long":
		return NameLong, nil
	case "short":
		return NameShort, nil
	case "narrow":
		return NameNarrow, nil
	default:
		return NameLong, fmt.Errorf("%w %q", ErrInvalidNameFormat, s)
	}
}

func (f NameFormat) String() string {
	switch f {
	case NameShort:
		return "short"
	case NameNarrow:
		return "narrow"
	default:
		return "long"
	}
}

type localeNames struct {
	monthsLong    [12]string
	monthsShort   [12]string
	weekdaysLong  [7]string
	weekdaysShort [7]string
}

var locales = map[string]localeNames{
	"en": {
		monthsLong:    [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		monthsShort:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		weekdaysLong:  [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		weekdaysShort: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	},
	"de": {
		monthsLong:    [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		monthsShort:   [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
		weekdaysLong:  [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		weekdaysShort: [7]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."},
	},
	"fr": {
		monthsLong:    [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		monthsShort:   [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
		weekdaysLong:  [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
		weekdaysShort: [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
	},
	"ru": {
		monthsLong:    [12]string{"январь", "февраль", "март", "апрель", "май", "июнь", "июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь"},
		monthsShort:   [12]string{"янв.", "февр.", "март", "апр.", "май", "июнь", "июль", "авг.", "сент.", "окт.", "нояб.", "дек."},
		weekdaysLong:  [7]string{"воскресенье", "понедельник", "вторник", "среда", "четверг", "пятница", "суббота"},
		weekdaysShort: [7]string{"вс", "пн", "вт", "ср", "чт", "пт", "сб"},
	},
}

// SupportedLocales lists the locales with name tables, sorted.
func SupportedLocales() []string {
	out := make([]string, 0, len(locales))
	for code := range locales {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// IsSupportedLocale reports whether a locale has its own name table.
// Region suffixes are ignored, so "de-AT" resolves to "de".
func IsSupportedLocale(locale string) bool {
	_, ok := locales[baseLocale(locale)]
	return ok
}

func namesFor(locale string) localeNames {
	if names, ok := locales[baseLocale(locale)]; ok {
		return names
	}
	return locales[DefaultLocale]
}

func baseLocale(locale string) string {
	code := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	return code
}

// MonthName returns the label of month in locale. Month overflow is normalized.
func MonthName(month time.Month, format NameFormat, locale string) string {
	names := namesFor(locale)
	idx := int(NewMonth(2000, month).Month) - 1
	switch format {
	case NameShort:
		return names.monthsShort[idx]
	case NameNarrow:
		return firstRune(names.monthsLong[idx])
	default:
		return names.monthsLong[idx]
	}
}

// WeekdayName returns the label of weekday in locale.
func WeekdayName(weekday time.Weekday, format NameFormat, locale string) string {
	names := namesFor(locale)
	idx := int(normalizeWeekday(weekday))
	switch format {
	case NameShort:
		return names.weekdaysShort[idx]
	case NameNarrow:
		return firstRune(names.weekdaysLong[idx])
	default:
		return names.weekdaysLong[idx]
	}
}

// DayNames returns the seven weekday labels in display order, starting at weekStart.
func DayNames(weekStart time.Weekday, format NameFormat, locale string) []string {
	out := make([]string, DaysPerWeek)
	for i := range out {
		out[i] = WeekdayName(weekStart+time.Weekday(i), format, locale)
	}
	return out
}

// Weekdays returns the weekdays in display order, starting at weekStart.
func Weekdays(weekStart time.Weekday) []time.Weekday {
	out := make([]time.Weekday, DaysPerWeek)
	for i := range out {
		out[i] = normalizeWeekday(weekStart + time.Weekday(i))
	}
	return out
}

// MonthCaption returns "<month name> <year>" for the month in locale.
func MonthCaption(m Month, locale string) string {
	return fmt.Sprintf("%s %d", MonthName(m.Month, NameLong, locale), m.Year)
}

// ParseWeekday accepts an English weekday name, its three letter prefix or a number 0-6.
func ParseWeekday(s string) (time.Weekday, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	if len(value) == 1 && value[0] >= '0' && value[0] <= '6' {
		return time.Weekday(value[0] - '0'), nil
	}
	if len(value) >= 3 {
		for i, name := range locales[DefaultLocale].weekdaysLong {
			lower := strings.ToLower(name)
			if value == lower || value == lower[:3] {
				return time.Weekday(i), nil
			}
		}
	}
	return time.Sunday, fmt.Errorf("%w %q", ErrInvalidWeekday, s)
}

func firstRune(s string) string {
	for _, r := range s {
		return strings.ToUpper(string(r))
	}
	return ""
}
