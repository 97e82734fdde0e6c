package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
	"github.com/alexisbeaulieu97/calgrid/internal/store"
)

const cellWidth = 4

type gridMarkers struct {
	today    string
	inRange  string
	disabled string
}

var (
	asciiMarkers   = gridMarkers{today: "*", inRange: "~", disabled: "x"}
	unicodeMarkers = gridMarkers{today: "•", inRange: "·", disabled: "×"}
)

func markersFor(writer any) gridMarkers {
	if supportsUnicode(writer) {
		return unicodeMarkers
	}
	return asciiMarkers
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

type tableOptions struct {
	locale      string
	weekNumbers bool
	markers     gridMarkers
}

// renderMonthTable prints grids one below the other. Days outside the displayed
// month are left blank.
func renderMonthTable(w io.Writer, grids []calendar.MonthGrid, sel calendar.Selection, constraints calendar.Constraints, opts tableOptions) error {
	var b strings.Builder
	for i, grid := range grids {
		if i > 0 {
			b.WriteString("\n")
		}
		writeMonth(&b, grid, sel, constraints, opts)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeMonth(b *strings.Builder, grid calendar.MonthGrid, sel calendar.Selection, constraints calendar.Constraints, opts tableOptions) {
	width := cellWidth * calendar.DaysPerWeek
	if opts.weekNumbers {
		width += cellWidth
	}

	caption := calendar.MonthCaption(grid.DisplayMonth(), opts.locale)
	b.WriteString(strings.TrimRight(lipgloss.PlaceHorizontal(width, lipgloss.Center, caption), " "))
	b.WriteString("\n")

	var header strings.Builder
	if opts.weekNumbers {
		header.WriteString(" Wk ")
	}
	for _, name := range calendar.DayNames(grid.WeekStart, calendar.NameShort, opts.locale) {
		fmt.Fprintf(&header, " %2s ", shortName(name))
	}
	b.WriteString(strings.TrimRight(header.String(), " "))
	b.WriteString("\n")

	for _, week := range grid.Weeks {
		var line strings.Builder
		if opts.weekNumbers {
			fmt.Fprintf(&line, "%3d ", week.Number)
		}
		for _, day := range week.Days {
			line.WriteString(formatCell(calendar.Describe(day, sel, constraints), opts.markers))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}
}

func shortName(name string) string {
	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}

// formatCell renders a day as four columns: a left marker, the day number and a
// right marker. Brackets win over the range and disabled markers.
func formatCell(state calendar.CellState, markers gridMarkers) string {
	if !state.InMonth {
		return strings.Repeat(" ", cellWidth)
	}

	left, right := " ", " "
	switch {
	case state.Selected:
		left, right = "[", "]"
	case state.InRange:
		left, right = markers.inRange, markers.inRange
	case state.Disabled:
		left = markers.disabled
	}
	if state.IsToday && !state.Selected && !state.InRange {
		right = markers.today
	}
	return fmt.Sprintf("%s%2d%s", left, state.Date.Day, right)
}

type monthJSON struct {
	Month    string     `json:"month"`
	Caption  string     `json:"caption"`
	DayNames []string   `json:"day_names"`
	Weeks    []weekJSON `json:"weeks"`
}

type weekJSON struct {
	Number int                  `json:"number,omitempty"`
	Days   []calendar.CellState `json:"days"`
}

func renderMonthJSON(w io.Writer, grids []calendar.MonthGrid, sel calendar.Selection, constraints calendar.Constraints, locale string) error {
	payload := make([]monthJSON, len(grids))
	for i, grid := range grids {
		month := monthJSON{
			Month:    grid.DisplayMonth().String(),
			Caption:  calendar.MonthCaption(grid.DisplayMonth(), locale),
			DayNames: calendar.DayNames(grid.WeekStart, calendar.NameShort, locale),
			Weeks:    make([]weekJSON, len(grid.Weeks)),
		}
		for j, week := range grid.Weeks {
			days := make([]calendar.CellState, len(week.Days))
			for k, day := range week.Days {
				days[k] = calendar.Describe(day, sel, constraints)
			}
			month.Weeks[j] = weekJSON{Number: week.Number, Days: days}
		}
		payload[i] = month
	}
	return writeJSON(w, payload)
}

type stateJSON struct {
	Calendar  string             `json:"calendar"`
	Selection calendar.Selection `json:"selection"`
	Month     string             `json:"month"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty"`
	Token     string             `json:"token,omitempty"`
}

func newStateJSON(state store.State, token string) stateJSON {
	payload := stateJSON{
		Calendar:  state.Calendar,
		Selection: state.Selection,
		Token:     token,
	}
	if state.Month != (calendar.Month{}) {
		payload.Month = state.Month.String()
	}
	if !state.UpdatedAt.IsZero() {
		updated := state.UpdatedAt
		payload.UpdatedAt = &updated
	}
	return payload
}

func writeJSON(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func renderState(w io.Writer, state store.State, stored bool) {
	fmt.Fprintf(w, "Calendar:  %s\n", state.Calendar)
	fmt.Fprintf(w, "Selection: %s\n", state.Selection)
	if !stored {
		fmt.Fprintln(w, "Updated:   never")
		return
	}
	fmt.Fprintf(w, "Month:     %s\n", state.Month)
	fmt.Fprintf(w, "Updated:   %s\n", state.UpdatedAt.Format(time.RFC3339))
}
