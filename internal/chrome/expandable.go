package chrome

import (
	"net/url"
	"sort"
	"strings"
)

// Expandable is a collapsed section that can be expanded once and never collapses
// again. The toggle is hidden after expansion.
type Expandable struct {
	ID       string
	expanded bool
}

// Expand opens the section. It reports false when it was already open.
func (e *Expandable) Expand() bool {
	if e.expanded {
		return false
	}
	e.expanded = true
	return true
}

// Expanded reports whether the section is open.
func (e *Expandable) Expanded() bool { return e.expanded }

// ToggleVisible reports whether the expand button is still shown.
func (e *Expandable) ToggleVisible() bool { return !e.expanded }

// Class returns the state class of the section.
func (e *Expandable) Class() string {
	if e.expanded {
		return "is-expanded"
	}
	return "is-collapsed"
}

// Expandables tracks the open sections of a page, carried in the "open" query parameter.
type Expandables map[string]bool

// ParseExpandables reads a comma-separated list of open section ids.
func ParseExpandables(q url.Values) Expandables {
	set := Expandables{}
	for _, raw := range q["open"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				set[id] = true
			}
		}
	}
	return set
}

// Section returns the state of one section.
func (s Expandables) Section(id string) *Expandable {
	return &Expandable{ID: id, expanded: s[id]}
}

// Expand opens a section by id; already-open sections are left alone.
func (s Expandables) Expand(id string) bool {
	if id == "" || s[id] {
		return false
	}
	s[id] = true
	return true
}

// Value encodes the set for the "open" parameter, sorted for stable URLs.
func (s Expandables) Value() string {
	ids := make([]string, 0, len(s))
	for id, open := range s {
		if open {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}
