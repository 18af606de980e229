// Package events loads, filters and lays out the calendar event records shown on the
// calendar page: a chronological list view and a month grid.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mitropolia-targovistei/calendar-site/internal/fetch"
)

// DateLayout is the ISO calendar-day layout used by every record.
const DateLayout = "2006-01-02"

// Default source names, relative to the data directory.
const (
	DefaultPrimary       = "orthodox-2025.json"
	DefaultSupplementary = "events-local.json"
)

// ErrPrimaryUnavailable wraps any failure to load the required primary collection.
var ErrPrimaryUnavailable = errors.New("primary events unavailable")

// Event is one calendar entry (feast, fast day, local event).
type Event struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Fast        string `json:"fast,omitempty"`
	Description string `json:"description,omitempty"`
}

// Time parses the record date as a timezone-less day (UTC midnight).
func (e Event) Time() (time.Time, bool) {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Sources names the two collections merged into the full event set.
type Sources struct {
	Primary       string
	Supplementary string
}

// DefaultSources returns the standard file names.
func DefaultSources() Sources {
	return Sources{Primary: DefaultPrimary, Supplementary: DefaultSupplementary}
}

// Load fetches both collections concurrently and concatenates them in source order,
// primary first. Duplicates are kept. A missing or malformed supplementary collection
// contributes zero records; a primary failure is returned wrapped in ErrPrimaryUnavailable.
func Load(ctx context.Context, f fetch.Fetcher, src Sources) ([]Event, error) {
	var primary, extra []Event

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := f.Fetch(gctx, src.Primary)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPrimaryUnavailable, err)
		}
		if err := json.Unmarshal(data, &primary); err != nil {
			return fmt.Errorf("%w: decode %s: %w", ErrPrimaryUnavailable, src.Primary, err)
		}
		return nil
	})
	if src.Supplementary != "" {
		g.Go(func() error {
			data, err := f.Fetch(gctx, src.Supplementary)
			if err != nil {
				return nil
			}
			if err := json.Unmarshal(data, &extra); err != nil {
				extra = nil
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]Event, 0, len(primary)+len(extra))
	all = append(all, primary...)
	all = append(all, extra...)
	return all, nil
}

// Types returns the distinct category tags in first-seen order.
func Types(all []Event) []string {
	seen := make(map[string]struct{}, 8)
	var out []string
	for _, e := range all {
		if e.Type == "" {
			continue
		}
		if _, ok := seen[e.Type]; ok {
			continue
		}
		seen[e.Type] = struct{}{}
		out = append(out, e.Type)
	}
	return out
}
