package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	calerrors "github.com/alexisbeaulieu97/calgrid/pkg/errors"
)

func TestGetValidator(t *testing.T) {
	t.Parallel()

	require.Same(t, GetValidator(), GetValidator())
}

func TestCustomTags(t *testing.T) {
	t.Parallel()

	v := GetValidator()

	tests := []struct {
		name  string
		value string
		tag   string
		valid bool
	}{
		{"semver major minor", "1.0", "semver", true},
		{"semver full", "1.2.3-rc.1", "semver", true},
		{"semver word", "latest", "semver", false},
		{"date", "2025-02-28", "calendar_date", true},
		{"date out of range", "2025-02-30", "calendar_date", false},
		{"date wrong layout", "28/02/2025", "calendar_date", false},
		{"month", "2025-02", "calendar_month", true},
		{"month thirteen", "2025-13", "calendar_month", false},
		{"weekday name", "Friday", "weekday", true},
		{"weekday number", "0", "weekday", true},
		{"weekday bogus", "funday", "weekday", false},
		{"locale", "fr", "locale", true},
		{"locale with region", "ru-RU", "locale", true},
		{"locale unknown", "ja", "locale", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.Var(tt.value, tt.tag)
			require.Equal(t, tt.valid, err == nil, "%s=%q", tt.tag, tt.value)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	withCalendar := func(mutate func(c *Calendar)) *Config {
		cfg := Default()
		mutate(&cfg.Calendar)
		return cfg
	}

	cases := []struct {
		name  string
		cfg   *Config
		field string
	}{
		{name: "defaults are valid", cfg: Default()},
		{name: "nil config", cfg: nil, field: "config"},
		{
			name:  "too many months",
			cfg:   withCalendar(func(c *Calendar) { c.NumberOfMonths = 13 }),
			field: "calendar.number_of_months",
		},
		{
			name:  "unknown caption layout",
			cfg:   withCalendar(func(c *Calendar) { c.CaptionLayout = "scroll" }),
			field: "calendar.caption_layout",
		},
		{
			name:  "bad min date",
			cfg:   withCalendar(func(c *Calendar) { c.MinDate = "yesterday" }),
			field: "calendar.min_date",
		},
		{
			name: "min after max",
			cfg: withCalendar(func(c *Calendar) {
				c.MinDate = "2025-06-01"
				c.MaxDate = "2025-05-31"
			}),
			field: "calendar.min_date",
		},
		{
			name: "min equal max",
			cfg: withCalendar(func(c *Calendar) {
				c.MinDate = "2025-06-01"
				c.MaxDate = "2025-06-01"
			}),
		},
		{
			name:  "bad disabled weekday",
			cfg:   withCalendar(func(c *Calendar) { c.Disabled.Weekdays = []string{"monday", "someday"} }),
			field: "calendar.disabled.weekdays[1]",
		},
		{
			name:  "reversed disabled range",
			cfg:   withCalendar(func(c *Calendar) { c.Disabled.Ranges = []DateRange{{From: "2025-08-15", To: "2025-08-01"}} }),
			field: "calendar.disabled.ranges[0]",
		},
		{
			name: "short token secret",
			cfg: func() *Config {
				cfg := Default()
				cfg.Server.TokenSecret = "short"
				return cfg
			}(),
			field: "server.token_secret",
		},
		{
			name: "unknown storage driver",
			cfg: func() *Config {
				cfg := Default()
				cfg.Storage.Driver = "redis"
				return cfg
			}(),
			field: "storage.driver",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateConfig(tc.cfg)
			if tc.field == "" {
				require.NoError(t, err)
				return
			}

			var validationErr *calerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	type request struct {
		Date string `json:"date" validate:"required,calendar_date"`
	}

	require.NoError(t, ValidateStruct(request{Date: "2025-01-10"}))

	err := ValidateStruct(request{})
	var validationErr *calerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "date", validationErr.Field)
}
