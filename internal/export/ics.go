// Package export writes the filtered calendar as iCalendar, CSV and JSON downloads.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/mitropolia-targovistei/calendar-site/internal/events"
)

// Calendar identity written into every export.
const (
	ProductID    = "-//Mitropolia Targovistei//Calendar 2025//RO"
	Timezone     = "Europe/Bucharest"
	CalendarName = "Calendar Ortodox 2025"
	Filename     = "calendar-ortodox-2025.ics"
	UIDDomain    = "mitropolia-targovistei.ro"
	FeedTTL      = "PT1H"
)

const icsDateLayout = "20060102"

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://"+UIDDomain))

// Reminder is a VALARM fired DaysBefore the event day at the local wall time At ("HH:MM").
type Reminder struct {
	DaysBefore int
	At         string
}

// Options controls a single export.
type Options struct {
	// Now stamps DTSTAMP and, with PerExportUIDs, the UIDs. Zero means time.Now.
	Now time.Time
	// CalName overrides X-WR-CALNAME.
	CalName string
	// PerExportUIDs derives UIDs from the date and the export time instead of the record
	// content, so repeated exports never update each other.
	PerExportUIDs bool
	// Feed adds the subscription refresh hint.
	Feed      bool
	Reminders []Reminder
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// Calendar builds the VCALENDAR for the filtered records, one all-day VEVENT per record.
// Records whose date does not parse are skipped.
func Calendar(filtered []events.Event, opts Options) *ics.Calendar {
	now := opts.now()

	cal := ics.NewCalendarFor("Mitropolia Targovistei")
	cal.SetProductId(ProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)
	name := opts.CalName
	if name == "" {
		name = CalendarName
	}
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(Timezone)
	if opts.Feed {
		cal.SetXPublishedTTL(FeedTTL)
	}

	seen := make(map[string]int, len(filtered))
	for _, e := range filtered {
		day, ok := e.Time()
		if !ok {
			continue
		}
		key := uidKey(e, opts.PerExportUIDs)
		seq := seen[key]
		seen[key]++
		ev := cal.AddEvent(UID(e, seq, now, opts.PerExportUIDs))
		ev.SetDtStampTime(now)
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day)
		ev.SetSummary(e.Title)
		ev.SetDescription(Description(e))
		if e.Type != "" {
			ev.AddCategory(e.Type)
		}
		for _, r := range opts.Reminders {
			addAlarm(ev, day, r, e.Title)
		}
	}
	return cal
}

// ICS serializes the calendar with CRLF line endings, folded at 75 octets.
func ICS(w io.Writer, filtered []events.Event, opts Options) error {
	if err := Calendar(filtered, opts).SerializeTo(w, ics.WithNewLineWindows); err != nil {
		return fmt.Errorf("serialize calendar: %w", err)
	}
	return nil
}

// Description joins type, fast and description with " - ", skipping empty parts.
func Description(e events.Event) string {
	desc := e.Type
	if e.Fast != "" {
		desc += " - " + e.Fast
	}
	if e.Description != "" {
		desc += " - " + e.Description
	}
	return desc
}

// UID returns the event identifier. By default it is a name-based UUID over the record's
// fields, so the same record always gets the same UID across exports. seq is the record's
// ordinal among earlier records with the same key (see uidKey) and tells duplicates apart.
func UID(e events.Event, seq int, now time.Time, perExport bool) string {
	if perExport {
		if seq > 0 {
			return fmt.Sprintf("%s-%d-%d@%s", e.Date, now.UnixMilli(), seq, UIDDomain)
		}
		return fmt.Sprintf("%s-%d@%s", e.Date, now.UnixMilli(), UIDDomain)
	}
	name := uidKey(e, false)
	if seq > 0 {
		name += "\x00" + strconv.Itoa(seq)
	}
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@" + UIDDomain
}

// uidKey groups the records that would otherwise share a UID: same-day records for
// per-export UIDs, identical records for name-based ones.
func uidKey(e events.Event, perExport bool) string {
	if perExport {
		return e.Date
	}
	return strings.Join([]string{e.Date, e.Title, e.Type, e.Fast, e.Description}, "\x00")
}

// ParseReminder reads a reminder from a days count and an "HH:MM" time.
func ParseReminder(daysBefore int, at string) (Reminder, bool) {
	if _, _, ok := parseClock(at); !ok || daysBefore < 0 {
		return Reminder{}, false
	}
	return Reminder{DaysBefore: daysBefore, At: at}, true
}

func parseClock(at string) (hour, minute int, ok bool) {
	h, m, found := strings.Cut(at, ":")
	if !found {
		return 0, 0, false
	}
	hour, err1 := strconv.Atoi(h)
	minute, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// addAlarm attaches a display alarm. The trigger is relative to the start of the
// all-day event (midnight), so a reminder the evening before is negative.
func addAlarm(ev *ics.VEvent, day time.Time, r Reminder, title string) {
	hour, minute, ok := parseClock(r.At)
	if !ok {
		return
	}
	at := day.AddDate(0, 0, -r.DaysBefore).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)

	alarm := ev.AddAlarm()
	alarm.SetAction(ics.ActionDisplay)
	alarm.SetDescription("Amintire: " + title)
	alarm.SetTrigger(Trigger(at.Sub(day)))
}

// Trigger formats a signed offset as an iCalendar duration such as "-P0DT6H0M".
func Trigger(d time.Duration) string {
	sign := ""
	total := int(d.Minutes())
	if total < 0 {
		sign = "-"
		total = -total
	}
	days := total / (24 * 60)
	rest := total % (24 * 60)
	return fmt.Sprintf("%sP%dDT%dH%dM", sign, days, rest/60, rest%60)
}
