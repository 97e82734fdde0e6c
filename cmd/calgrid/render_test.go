package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
)

func TestFormatCell(t *testing.T) {
	t.Parallel()

	day := calendar.Day{Date: calendar.MustParseDate("2025-01-07"), InMonth: true}

	tests := []struct {
		name  string
		state calendar.CellState
		want  string
	}{
		{name: "plain", state: calendar.CellState{Day: day}, want: "  7 "},
		{name: "selected", state: calendar.CellState{Day: day, Selected: true}, want: "[ 7]"},
		{name: "in range", state: calendar.CellState{Day: day, InRange: true}, want: "~ 7~"},
		{name: "disabled", state: calendar.CellState{Day: day, Disabled: true}, want: "x 7 "},
		{name: "today", state: calendar.CellState{Day: calendar.Day{Date: day.Date, InMonth: true, IsToday: true}}, want: "  7*"},
		{name: "disabled today", state: calendar.CellState{Day: calendar.Day{Date: day.Date, InMonth: true, IsToday: true}, Disabled: true}, want: "x 7*"},
		{name: "outside month", state: calendar.CellState{Day: calendar.Day{Date: day.Date}, Selected: true}, want: "    "},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, formatCell(tt.state, asciiMarkers))
		})
	}
}

func TestShortName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Mo", shortName("Mon"))
	require.Equal(t, "вс", shortName("вс"))
}
