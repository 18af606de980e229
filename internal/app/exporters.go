package app

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/mitropolia-targovistei/calendar-site/internal/events"
	"github.com/mitropolia-targovistei/calendar-site/internal/export"
)

// reminderParams maps each reminder checkbox to its time field and lead in days.
var reminderParams = []struct {
	enabled, at string
	days        int
}{
	{"reminder2Days", "time2Days", 2},
	{"reminder1Day", "time1Day", 1},
	{"reminderSameDay", "timeSameDay", 0},
}

// parseReminders reads the reminder checkboxes of the export form. Entries with a
// missing or malformed time are ignored.
func parseReminders(q url.Values) []export.Reminder {
	var out []export.Reminder
	for _, p := range reminderParams {
		if q.Get(p.enabled) != "true" {
			continue
		}
		if r, ok := export.ParseReminder(p.days, q.Get(p.at)); ok {
			out = append(out, r)
		}
	}
	return out
}

// filtered applies the type and month filter of the request to the loaded events.
func (a *App) filtered(r *http.Request) ([]events.Event, events.Filter) {
	q := r.URL.Query()
	all := a.store.Snapshot().Events
	f := events.ParseFilter(q.Get("type"), q.Get("month")).Known(events.Types(all))
	return f.Apply(all), f
}

// download buffers an export so a failure can still be reported as a 500.
func (a *App) download(w http.ResponseWriter, contentType, filename string, write func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		a.logger.Error("export failed", zap.String("filename", filename), zap.Error(err))
		http.Error(w, ErrFailedToExport, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	}
	_, _ = w.Write(buf.Bytes())
}

// HandleExportICS downloads the filtered events as an iCalendar file with optional
// reminders.
func (a *App) HandleExportICS(w http.ResponseWriter, r *http.Request) {
	filtered, _ := a.filtered(r)
	opts := export.Options{
		Now:           a.now(),
		PerExportUIDs: a.cfg.PerExportUIDs,
		Reminders:     parseReminders(r.URL.Query()),
	}
	a.download(w, "text/calendar; charset=utf-8", export.Filename, func(buf *bytes.Buffer) error {
		return export.ICS(buf, filtered, opts)
	})
}

// HandleFeed serves the subscription feed: inline, with stable UIDs and no alarms.
func (a *App) HandleFeed(w http.ResponseWriter, r *http.Request) {
	filtered, _ := a.filtered(r)
	opts := export.Options{Now: a.now(), Feed: true}
	a.download(w, "text/calendar; charset=utf-8", "", func(buf *bytes.Buffer) error {
		return export.ICS(buf, filtered, opts)
	})
}

// HandleExportCSV downloads the filtered events as CSV.
func (a *App) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	filtered, _ := a.filtered(r)
	a.download(w, "text/csv; charset=utf-8", export.CSVFilename, func(buf *bytes.Buffer) error {
		return export.CSV(buf, filtered)
	})
}

// HandleExportJSON downloads the filtered events as JSON.
func (a *App) HandleExportJSON(w http.ResponseWriter, r *http.Request) {
	filtered, f := a.filtered(r)
	a.download(w, "application/json; charset=utf-8", export.JSONFilename, func(buf *bytes.Buffer) error {
		return export.JSON(buf, filtered, f)
	})
}
