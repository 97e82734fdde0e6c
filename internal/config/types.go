package config

import (
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
)

// Config represents the full calgrid configuration document.
type Config struct {
	Version  string   `yaml:"version" validate:"required,semver"`
	Name     string   `yaml:"name" validate:"required,min=1,max=100"`
	Calendar Calendar `yaml:"calendar"`
	Logging  Logging  `yaml:"logging,omitempty"`
	Storage  Storage  `yaml:"storage,omitempty"`
	Server   Server   `yaml:"server,omitempty"`
}

// Calendar holds the display and selection options shared by every host.
type Calendar struct {
	Mode            string   `yaml:"mode" validate:"required,oneof=single multiple range"`
	WeekStart       string   `yaml:"week_start,omitempty" validate:"omitempty,weekday"`
	ShowWeekNumbers bool     `yaml:"show_week_numbers,omitempty"`
	NumberOfMonths  int      `yaml:"number_of_months,omitempty" validate:"min=1,max=12"`
	CaptionLayout   string   `yaml:"caption_layout,omitempty" validate:"omitempty,oneof=buttons dropdown dropdown-months dropdown-years"`
	Locale          string   `yaml:"locale,omitempty" validate:"omitempty,locale"`
	DefaultMonth    string   `yaml:"default_month,omitempty" validate:"omitempty,calendar_month"`
	MinDate         string   `yaml:"min_date,omitempty" validate:"omitempty,calendar_date"`
	MaxDate         string   `yaml:"max_date,omitempty" validate:"omitempty,calendar_date"`
	Disabled        Disabled `yaml:"disabled,omitempty"`
}

// Disabled lists the days a user cannot pick.
type Disabled struct {
	Weekdays []string    `yaml:"weekdays,omitempty" validate:"omitempty,dive,weekday"`
	Dates    []string    `yaml:"dates,omitempty" validate:"omitempty,dive,calendar_date"`
	Ranges   []DateRange `yaml:"ranges,omitempty" validate:"omitempty,dive"`
}

// DateRange is an inclusive span of days.
type DateRange struct {
	From string `yaml:"from" validate:"required,calendar_date"`
	To   string `yaml:"to" validate:"required,calendar_date"`
}

// Logging configures the zerolog output of every host.
type Logging struct {
	Level         string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	HumanReadable bool   `yaml:"human_readable,omitempty"`
}

// Storage selects where named selections are persisted.
type Storage struct {
	Driver string `yaml:"driver,omitempty" validate:"omitempty,oneof=file sqlite"`
	Path   string `yaml:"path,omitempty"`
}

// Server configures the HTTP API.
type Server struct {
	Listen      string `yaml:"listen,omitempty" validate:"omitempty,hostname_port"`
	TokenSecret string `yaml:"token_secret,omitempty" validate:"omitempty,min=16"`
}

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"

	DefaultListen = ":8080"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Name:    "calgrid",
		Calendar: Calendar{
			Mode:           calendar.ModeSingle.String(),
			WeekStart:      "sunday",
			NumberOfMonths: 1,
			CaptionLayout:  string(calendar.CaptionButtons),
			Locale:         calendar.DefaultLocale,
		},
		Logging: Logging{Level: "info", HumanReadable: true},
		Storage: Storage{Driver: DriverFile},
		Server:  Server{Listen: DefaultListen},
	}
}

// Options is the typed form of the calendar section.
type Options struct {
	Mode            calendar.Mode
	WeekStart       time.Weekday
	ShowWeekNumbers bool
	NumberOfMonths  int
	CaptionLayout   calendar.CaptionLayout
	Locale          string
	DefaultMonth    *calendar.Month
	Constraints     calendar.Constraints
}

// Options converts the calendar section to calendar package types.
func (c Calendar) Options() (Options, error) {
	mode, err := calendar.ParseMode(c.Mode)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Mode:            mode,
		WeekStart:       time.Sunday,
		ShowWeekNumbers: c.ShowWeekNumbers,
		NumberOfMonths:  c.NumberOfMonths,
		CaptionLayout:   calendar.CaptionLayout(c.CaptionLayout),
		Locale:          c.Locale,
	}
	if opts.NumberOfMonths < 1 {
		opts.NumberOfMonths = 1
	}
	if opts.CaptionLayout == "" {
		opts.CaptionLayout = calendar.CaptionButtons
	}
	if opts.Locale == "" {
		opts.Locale = calendar.DefaultLocale
	}

	if c.WeekStart != "" {
		if opts.WeekStart, err = calendar.ParseWeekday(c.WeekStart); err != nil {
			return Options{}, err
		}
	}

	if c.DefaultMonth != "" {
		month, err := calendar.ParseMonth(c.DefaultMonth)
		if err != nil {
			return Options{}, err
		}
		opts.DefaultMonth = &month
	}

	if opts.Constraints, err = c.Constraints(); err != nil {
		return Options{}, err
	}

	return opts, nil
}

// Constraints builds the min/max bounds and the disabled-day predicate.
func (c Calendar) Constraints() (calendar.Constraints, error) {
	var constraints calendar.Constraints

	if c.MinDate != "" {
		d, err := calendar.ParseDate(c.MinDate)
		if err != nil {
			return calendar.Constraints{}, err
		}
		constraints.Min = &d
	}
	if c.MaxDate != "" {
		d, err := calendar.ParseDate(c.MaxDate)
		if err != nil {
			return calendar.Constraints{}, err
		}
		constraints.Max = &d
	}

	disabled, err := c.Disabled.Predicate()
	if err != nil {
		return calendar.Constraints{}, err
	}
	constraints.Disabled = disabled

	return constraints, nil
}

// Constraints is a shortcut for cfg.Calendar.Constraints.
func (c *Config) Constraints() (calendar.Constraints, error) {
	return c.Calendar.Constraints()
}

// Predicate returns a function reporting the listed days, or nil when nothing is disabled.
func (d Disabled) Predicate() (calendar.DisabledFunc, error) {
	var weekdays [calendar.DaysPerWeek]bool
	hasWeekdays := false
	for _, name := range d.Weekdays {
		wd, err := calendar.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		weekdays[wd] = true
		hasWeekdays = true
	}

	dates := make(map[calendar.Date]struct{}, len(d.Dates))
	for _, value := range d.Dates {
		day, err := calendar.ParseDate(value)
		if err != nil {
			return nil, err
		}
		dates[day] = struct{}{}
	}

	type span struct{ from, to calendar.Date }
	spans := make([]span, 0, len(d.Ranges))
	for i, r := range d.Ranges {
		from, err := calendar.ParseDate(r.From)
		if err != nil {
			return nil, fmt.Errorf("ranges[%d]: %w", i, err)
		}
		to, err := calendar.ParseDate(r.To)
		if err != nil {
			return nil, fmt.Errorf("ranges[%d]: %w", i, err)
		}
		spans = append(spans, span{from: from, to: to})
	}

	if !hasWeekdays && len(dates) == 0 && len(spans) == 0 {
		return nil, nil
	}

	return func(day calendar.Date) bool {
		if weekdays[day.Weekday()] {
			return true
		}
		if _, ok := dates[day]; ok {
			return true
		}
		for _, s := range spans {
			if day.Between(s.from, s.to) {
				return true
			}
		}
		return false
	}, nil
}
