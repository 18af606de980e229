package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mitropolia-targovistei/calendar-site/internal/events"
)

// Download names for the tabular formats.
const (
	CSVFilename  = "calendar-ortodox-2025.csv"
	JSONFilename = "calendar-ortodox-2025.json"
)

var csvHeader = []string{"Data", "Titlu", "Tip", "Post", "Descriere"}

// CSV writes one row per record under a Romanian header row.
func CSV(w io.Writer, filtered []events.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range filtered {
		if err := cw.Write([]string{e.Date, e.Title, e.Type, e.Fast, e.Description}); err != nil {
			return fmt.Errorf("write csv row %s: %w", e.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Document is the JSON download body.
type Document struct {
	Calendar string         `json:"calendar"`
	Type     string         `json:"type"`
	Month    string         `json:"month"`
	Count    int            `json:"count"`
	Events   []events.Event `json:"events"`
}

// JSON writes the filtered records together with the filter that produced them.
func JSON(w io.Writer, filtered []events.Event, f events.Filter) error {
	if filtered == nil {
		filtered = []events.Event{}
	}
	doc := Document{
		Calendar: CalendarName,
		Type:     f.Type,
		Month:    f.MonthValue(),
		Count:    len(filtered),
		Events:   filtered,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return nil
}
