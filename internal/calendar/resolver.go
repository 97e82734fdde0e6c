package calendar

// DisabledFunc reports whether a day cannot be selected.
type DisabledFunc func(Date) bool

// Constraints combine an external disabled predicate with optional bounds.
// A day is disabled when any active constraint says so.
type Constraints struct {
	Disabled DisabledFunc
	Min      *Date
	Max      *Date
}

// IsDisabled reports whether d is outside the bounds or rejected by the predicate.
func (c Constraints) IsDisabled(d Date) bool {
	if c.Min != nil && d.Before(*c.Min) {
		return true
	}
	if c.Max != nil && d.After(*c.Max) {
		return true
	}
	return c.Disabled != nil && c.Disabled(d)
}

// AnyOf combines predicates; the result disables a day when any of them does.
func AnyOf(funcs ...DisabledFunc) DisabledFunc {
	active := make([]DisabledFunc, 0, len(funcs))
	for _, fn := range funcs {
		if fn != nil {
			active = append(active, fn)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(d Date) bool {
		for _, fn := range active {
			if fn(d) {
				return true
			}
		}
		return false
	}
}

// ResolveClick returns the selection that follows a click on clicked.
// Disabled days are inert and leave current untouched. A nil isDisabled
// disables nothing.
//
// Single mode replaces the date. Multiple mode toggles the day. Range mode
// starts a new range when empty or completed, and otherwise completes the
// anchored range with from <= to.
func ResolveClick(current Selection, clicked Date, isDisabled DisabledFunc) Selection {
	if isDisabled != nil && isDisabled(clicked) {
		return current
	}

	switch current.Mode() {
	case ModeMultiple:
		dates := current.Dates()
		if i := indexOf(dates, clicked); i >= 0 {
			return Multiple(append(dates[:i], dates[i+1:]...)...)
		}
		return Multiple(append(dates, clicked)...)
	case ModeRange:
		if current.RangeState() != RangeAnchored {
			return Range(clicked)
		}
		from, _ := current.From()
		return CompletedRange(from, clicked)
	default:
		return Single(clicked)
	}
}

// ResolveClicks applies clicks in order.
func ResolveClicks(current Selection, clicks []Date, isDisabled DisabledFunc) Selection {
	for _, clicked := range clicks {
		current = ResolveClick(current, clicked, isDisabled)
	}
	return current
}

// CellState is the per-render view of one grid cell a host needs for highlighting.
type CellState struct {
	Day
	Selected   bool `json:"selected"`
	Disabled   bool `json:"disabled"`
	InRange    bool `json:"in_range"`
	RangeStart bool `json:"range_start"`
	RangeEnd   bool `json:"range_end"`
}

// Describe answers every point query for a cell at once.
func Describe(day Day, sel Selection, constraints Constraints) CellState {
	return CellState{
		Day:        day,
		Selected:   sel.IsSelected(day.Date),
		Disabled:   constraints.IsDisabled(day.Date),
		InRange:    sel.IsInRange(day.Date),
		RangeStart: sel.IsRangeStart(day.Date),
		RangeEnd:   sel.IsRangeEnd(day.Date),
	}
}
