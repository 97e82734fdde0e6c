package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned for unknown selection mode names.
var ErrInvalidMode = errors.New("invalid selection mode")

// Mode is the selection mode of a calendar. It is fixed by configuration.
type Mode int

const (
	ModeSingle Mode = iota
	ModeMultiple
	ModeRange
)

// Modes lists the valid selection modes.
func Modes() []Mode {
	return []Mode{ModeSingle, ModeMultiple, ModeRange}
}

// ParseMode parses "single", "multiple" or "range".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return ModeSingle, nil
	case "multiple":
		return ModeMultiple, nil
	case "range":
		return ModeRange, nil
	default:
		return ModeSingle, fmt.Errorf("%w %q", ErrInvalidMode, s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeMultiple:
		return "multiple"
	case ModeRange:
		return "range"
	default:
		return "single"
	}
}

// MarshalText encodes the mode name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// RangeState is the position of a range selection in its click cycle.
type RangeState int

const (
	RangeEmpty RangeState = iota
	RangeAnchored
	RangeCompleted
)

func (s RangeState) String() string {
	switch s {
	case RangeAnchored:
		return "anchored"
	case RangeCompleted:
		return "completed"
	default:
		return "empty"
	}
}

// Selection is the value a calendar holds. The mode discriminator is always
// present; the payload shape follows it:
//
//	single:   zero or one date
//	multiple: a set of dates, unique by calendar day
//	range:    an optional from and, once from is set, an optional to with from <= to
//
// Selection is an immutable value; every operation returns a new one.
type Selection struct {
	mode  Mode
	dates []Date
	from  *Date
	to    *Date
}

// EmptySelection returns a selection of the given mode with nothing selected.
func EmptySelection(mode Mode) Selection {
	return Selection{mode: mode}
}

// Single returns a single-mode selection holding d.
func Single(d Date) Selection {
	return Selection{mode: ModeSingle, dates: []Date{d}}
}

// Multiple returns a multiple-mode selection. Duplicate days are kept once.
func Multiple(dates ...Date) Selection {
	out := make([]Date, 0, len(dates))
	for _, d := range dates {
		if indexOf(out, d) < 0 {
			out = append(out, d)
		}
	}
	return Selection{mode: ModeMultiple, dates: out}
}

// Range returns a range selection anchored at from, waiting for its end.
func Range(from Date) Selection {
	return Selection{mode: ModeRange, from: &from}
}

// CompletedRange returns a completed range between a and b in either order.
func CompletedRange(a, b Date) Selection {
	if b.Before(a) {
		a, b = b, a
	}
	return Selection{mode: ModeRange, from: &a, to: &b}
}

// Mode returns the selection mode.
func (s Selection) Mode() Mode {
	return s.mode
}

// Date returns the selected day of a single selection.
func (s Selection) Date() (Date, bool) {
	if s.mode != ModeSingle || len(s.dates) == 0 {
		return Date{}, false
	}
	return s.dates[0], true
}

// Dates returns the selected days of a multiple selection in insertion order.
func (s Selection) Dates() []Date {
	if s.mode != ModeMultiple || len(s.dates) == 0 {
		return nil
	}
	out := make([]Date, len(s.dates))
	copy(out, s.dates)
	return out
}

// From returns the start of a range selection.
func (s Selection) From() (Date, bool) {
	if s.mode != ModeRange || s.from == nil {
		return Date{}, false
	}
	return *s.from, true
}

// To returns the end of a completed range selection.
func (s Selection) To() (Date, bool) {
	if s.mode != ModeRange || s.to == nil {
		return Date{}, false
	}
	return *s.to, true
}

// RangeState reports where a range selection is in its click cycle.
// Selections of other modes report RangeEmpty.
func (s Selection) RangeState() RangeState {
	switch {
	case s.mode != ModeRange || s.from == nil:
		return RangeEmpty
	case s.to == nil:
		return RangeAnchored
	default:
		return RangeCompleted
	}
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	switch s.mode {
	case ModeRange:
		return s.from == nil
	default:
		return len(s.dates) == 0
	}
}

// Anchor returns the day a calendar should open on for this selection:
// the single date, the first of multiple dates or the range start.
func (s Selection) Anchor() (Date, bool) {
	switch s.mode {
	case ModeRange:
		return s.From()
	case ModeMultiple:
		if len(s.dates) == 0 {
			return Date{}, false
		}
		return s.dates[0], true
	default:
		return s.Date()
	}
}

const secondsPerDay = 24 * 60 * 60

// Len returns the number of selected days, counting every day of a completed range.
func (s Selection) Len() int {
	switch s.RangeState() {
	case RangeAnchored:
		return 1
	case RangeCompleted:
		return int((s.to.Time().Unix()-s.from.Time().Unix())/secondsPerDay) + 1
	}
	if s.mode == ModeRange {
		return 0
	}
	return len(s.dates)
}

// Equal compares two selections by mode and calendar days. Multiple
// selections are compared as sets.
func (s Selection) Equal(other Selection) bool {
	if s.mode != other.mode {
		return false
	}
	switch s.mode {
	case ModeRange:
		return equalOptional(s.from, other.from) && equalOptional(s.to, other.to)
	case ModeMultiple:
		if len(s.dates) != len(other.dates) {
			return false
		}
		for _, d := range s.dates {
			if indexOf(other.dates, d) < 0 {
				return false
			}
		}
		return true
	default:
		a, aok := s.Date()
		b, bok := other.Date()
		return aok == bok && (!aok || a.Equal(b))
	}
}

// IsSelected reports whether d is selected: the single date, a member of the
// multiple set, or either endpoint of a range.
func (s Selection) IsSelected(d Date) bool {
	switch s.mode {
	case ModeRange:
		return s.IsRangeStart(d) || s.IsRangeEnd(d)
	default:
		return indexOf(s.dates, d) >= 0
	}
}

// IsInRange reports whether d lies inside a completed range, endpoints included.
func (s Selection) IsInRange(d Date) bool {
	if s.RangeState() != RangeCompleted {
		return false
	}
	return d.Between(*s.from, *s.to)
}

// IsRangeStart reports whether d is the range start.
func (s Selection) IsRangeStart(d Date) bool {
	from, ok := s.From()
	return ok && from.Equal(d)
}

// IsRangeEnd reports whether d is the end of a completed range.
func (s Selection) IsRangeEnd(d Date) bool {
	to, ok := s.To()
	return ok && to.Equal(d)
}

func (s Selection) String() string {
	switch s.mode {
	case ModeRange:
		switch s.RangeState() {
		case RangeAnchored:
			return fmt.Sprintf("range %s..", *s.from)
		case RangeCompleted:
			return fmt.Sprintf("range %s..%s", *s.from, *s.to)
		}
		return "range (none)"
	case ModeMultiple:
		if len(s.dates) == 0 {
			return "multiple (none)"
		}
		parts := make([]string, len(s.dates))
		for i, d := range s.dates {
			parts[i] = d.String()
		}
		return "multiple " + strings.Join(parts, ", ")
	default:
		if d, ok := s.Date(); ok {
			return "single " + d.String()
		}
		return "single (none)"
	}
}

type selectionJSON struct {
	Mode  Mode   `json:"mode"`
	Date  *Date  `json:"date,omitempty"`
	Dates []Date `json:"dates,omitempty"`
	From  *Date  `json:"from,omitempty"`
	To    *Date  `json:"to,omitempty"`
}

func (s Selection) wire() selectionJSON {
	out := selectionJSON{Mode: s.mode}
	switch s.mode {
	case ModeRange:
		out.From = copyOptional(s.from)
		out.To = copyOptional(s.to)
	case ModeMultiple:
		out.Dates = s.Dates()
	default:
		if d, ok := s.Date(); ok {
			out.Date = &d
		}
	}
	return out
}

func fromWire(in selectionJSON) (Selection, error) {
	switch in.Mode {
	case ModeRange:
		if in.From == nil {
			if in.To != nil {
				return Selection{}, errors.New("range selection has an end without a start")
			}
			return EmptySelection(ModeRange), nil
		}
		if in.To == nil {
			return Range(*in.From), nil
		}
		return CompletedRange(*in.From, *in.To), nil
	case ModeMultiple:
		return Multiple(in.Dates...), nil
	default:
		if in.Date == nil {
			return EmptySelection(ModeSingle), nil
		}
		return Single(*in.Date), nil
	}
}

// MarshalJSON encodes the selection with its mode discriminator.
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire())
}

// UnmarshalJSON decodes a selection, normalizing range order and duplicate days.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var in selectionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	decoded, err := fromWire(in)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

func indexOf(dates []Date, d Date) int {
	for i, candidate := range dates {
		if candidate.Equal(d) {
			return i
		}
	}
	return -1
}

func equalOptional(a, b *Date) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func copyOptional(d *Date) *Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
