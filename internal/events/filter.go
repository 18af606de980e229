package events

import (
	"strconv"
	"strings"
)

// AllTypes and AllMonths are the "no restriction" selections.
const (
	AllTypes  = "all"
	AllMonths = -1
)

// Filter is the user's type/month selection. The zero value is not "all"; use NewFilter
// or ParseFilter.
type Filter struct {
	Type  string
	Month int
}

// NewFilter returns the unrestricted filter.
func NewFilter() Filter {
	return Filter{Type: AllTypes, Month: AllMonths}
}

// ParseFilter builds a filter from raw form values. Empty or invalid values select "all";
// a type string is only checked against the loaded records by Known.
func ParseFilter(typ, month string) Filter {
	f := NewFilter()
	if t := strings.TrimSpace(typ); t != "" {
		f.Type = t
	}
	if m, err := strconv.Atoi(strings.TrimSpace(month)); err == nil && m >= 0 && m <= 11 {
		f.Month = m
	}
	return f
}

// Known resets a type selection that none of types carries to "all".
func (f Filter) Known(types []string) Filter {
	if f.Type == AllTypes {
		return f
	}
	for _, t := range types {
		if t == f.Type {
			return f
		}
	}
	f.Type = AllTypes
	return f
}

// MonthValue renders the month selection as a form value.
func (f Filter) MonthValue() string {
	if f.Month == AllMonths {
		return AllTypes
	}
	return strconv.Itoa(f.Month)
}

// Match reports whether a record passes both predicates.
func (f Filter) Match(e Event) bool {
	if f.Type != AllTypes && e.Type != f.Type {
		return false
	}
	if f.Month == AllMonths {
		return true
	}
	t, ok := e.Time()
	if !ok {
		return false
	}
	return int(t.Month())-1 == f.Month
}

// Apply returns a fresh slice of the records that match, preserving order.
// The input is never modified.
func (f Filter) Apply(all []Event) []Event {
	out := make([]Event, 0, len(all))
	for _, e := range all {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
