package events

import (
	"fmt"
	"sort"
	"strings"
)

var monthNames = [12]string{
	"Ianuarie", "Februarie", "Martie", "Aprilie", "Mai", "Iunie",
	"Iulie", "August", "Septembrie", "Octombrie", "Noiembrie", "Decembrie",
}

var monthNamesShort = [12]string{
	"IAN", "FEB", "MAR", "APR", "MAI", "IUN", "IUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// MonthName returns the Romanian month name for a zero-based month.
func MonthName(month int) string {
	if month < 0 || month > 11 {
		return ""
	}
	return monthNames[month]
}

// MonthNameShort returns the abbreviated Romanian month name for a zero-based month.
func MonthNameShort(month int) string {
	if month < 0 || month > 11 {
		return ""
	}
	return monthNamesShort[month]
}

// Entry is one row of the list view.
type Entry struct {
	Event
	Day   int
	Month string
}

// List is the list view model. Empty is true when the filtered set had no records.
type List struct {
	Entries []Entry
	Empty   bool
}

// SortByDate sorts records ascending by date, stable for equal days. Records whose date
// does not parse go after all dated ones, ordered lexically among themselves.
func SortByDate(evts []Event) {
	sort.SliceStable(evts, func(i, j int) bool {
		_, iok := evts[i].Time()
		_, jok := evts[j].Time()
		if iok != jok {
			return iok
		}
		return evts[i].Date < evts[j].Date
	})
}

// ListView sorts a copy of the filtered set and builds the timeline entries.
func ListView(filtered []Event) List {
	if len(filtered) == 0 {
		return List{Empty: true}
	}
	sorted := make([]Event, len(filtered))
	copy(sorted, filtered)
	SortByDate(sorted)

	entries := make([]Entry, 0, len(sorted))
	for _, e := range sorted {
		entry := Entry{Event: e}
		if t, ok := e.Time(); ok {
			entry.Day = t.Day()
			entry.Month = MonthNameShort(int(t.Month()) - 1)
		}
		entries = append(entries, entry)
	}
	return List{Entries: entries}
}

// Meta is the "type • fast" line of an entry.
func (e Entry) Meta() string {
	if e.Fast == "" {
		return e.Type
	}
	return e.Type + " • " + e.Fast
}

// FormatDate renders an ISO date as "7 Ianuarie 2025". Unparsable input is returned as-is.
func FormatDate(date string) string {
	t, ok := Event{Date: date}.Time()
	if !ok {
		return date
	}
	return fmt.Sprintf("%d %s %d", t.Day(), MonthName(int(t.Month())-1), t.Year())
}

// DayEvents returns the filtered records that fall exactly on date.
func DayEvents(filtered []Event, date string) []Event {
	var out []Event
	for _, e := range filtered {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// DayMessage is the plain-text summary shown when a has-event day is selected.
// It returns "" when there is nothing to show.
func DayMessage(date string, dayEvents []Event) string {
	return DayMessageTitled("Evenimente pentru", date, dayEvents)
}

// DayMessageTitled is DayMessage with a translated heading.
func DayMessageTitled(heading, date string, dayEvents []Event) string {
	if len(dayEvents) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s:\n\n", heading, FormatDate(date))
	for _, e := range dayEvents {
		fmt.Fprintf(&b, "• %s\n", e.Title)
		if e.Type != "" {
			fmt.Fprintf(&b, "  %s\n", e.Type)
		}
		if e.Fast != "" {
			fmt.Fprintf(&b, "  %s\n", e.Fast)
		}
		b.WriteString("\n")
	}
	return b.String()
}
