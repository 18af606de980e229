package events

import (
	"net/url"
	"strconv"
)

// View selects which of the two calendar presentations is visible.
type View string

const (
	ViewList View = "list"
	ViewGrid View = "calendar"
)

// ParseView maps a raw value to a view, defaulting to the list.
func ParseView(v string) View {
	if View(v) == ViewGrid {
		return ViewGrid
	}
	return ViewList
}

// State is the complete calendar page state. Filter and Cursor are independent: no
// method on State changes one as a side effect of changing the other.
type State struct {
	View   View
	Filter Filter
	Cursor Cursor
}

// Toggle switches the visible view and keeps the filter and cursor.
func (s State) Toggle(v View) State {
	s.View = v
	return s
}

// WithFilter replaces the filter and keeps the cursor.
func (s State) WithFilter(f Filter) State {
	s.Filter = f
	return s
}

// WithCursor replaces the cursor and keeps the filter.
func (s State) WithCursor(c Cursor) State {
	s.Cursor = c
	return s
}

// Query encodes the state as URL query values (type, month, view, cm, cy).
func (s State) Query() url.Values {
	q := url.Values{}
	q.Set("type", s.Filter.Type)
	q.Set("month", s.Filter.MonthValue())
	q.Set("view", string(s.View))
	q.Set("cm", strconv.Itoa(s.Cursor.Month))
	q.Set("cy", strconv.Itoa(s.Cursor.Year))
	return q
}

// ParseState reads a state from query values, using def for the cursor fallback.
func ParseState(q url.Values, def Cursor) State {
	return State{
		View:   ParseView(q.Get("view")),
		Filter: ParseFilter(q.Get("type"), q.Get("month")),
		Cursor: ParseCursor(q.Get("cm"), q.Get("cy"), def),
	}
}
