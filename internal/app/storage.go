package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mitropolia-targovistei/calendar-site/internal/events"
	"github.com/mitropolia-targovistei/calendar-site/internal/fetch"
	"github.com/mitropolia-targovistei/calendar-site/internal/gallery"
	"github.com/mitropolia-targovistei/calendar-site/internal/i18n"
	"github.com/mitropolia-targovistei/calendar-site/internal/seo"
)

// Snapshot is one consistent view of every loaded collaborator. It is never mutated
// after Load publishes it.
type Snapshot struct {
	Events   []events.Event
	Gallery  []gallery.Item
	Pages    seo.Pages
	Holidays map[string]string
	LoadedAt time.Time
}

// Store owns the loaded data and swaps it as a whole on reload.
type Store struct {
	fetcher fetch.Fetcher
	bundle  *i18n.Bundle
	sources events.Sources
	year    int
	timeout time.Duration
	logger  *zap.Logger

	mu   sync.RWMutex
	snap Snapshot
}

// NewStore returns an empty store reading through f.
func NewStore(f fetch.Fetcher, bundle *i18n.Bundle, year int, timeout time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		fetcher: f,
		bundle:  bundle,
		sources: events.DefaultSources(),
		year:    year,
		timeout: timeout,
		logger:  logger,
		snap:    Snapshot{Events: []events.Event{}, Gallery: []gallery.Item{}, Pages: seo.Pages{}, Holidays: GetRomanianHolidays(year)},
	}
}

// Load fetches every collaborator and publishes the result. Failures degrade: a missing
// primary event collection or gallery keeps what the previous load published (nothing
// on the first load), and so does unreadable page metadata. Only a missing default
// translation table is returned as an error, after the rest of the snapshot has been
// published.
func (s *Store) Load(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	prev := s.Snapshot()
	next := Snapshot{Holidays: GetRomanianHolidays(s.year), LoadedAt: time.Now()}

	evts, err := events.Load(ctx, s.fetcher, s.sources)
	if err != nil {
		s.logger.Error("failed to load events, keeping previous", zap.Int("events", len(prev.Events)), zap.Error(err))
		evts = prev.Events
	}
	next.Events = evts

	items, err := gallery.Load(ctx, s.fetcher, gallery.DefaultSource)
	if err != nil {
		s.logger.Error("failed to load gallery, keeping previous", zap.Int("gallery", len(prev.Gallery)), zap.Error(err))
		items = prev.Gallery
	}
	next.Gallery = items

	pages, err := seo.LoadPages(ctx, s.fetcher, seo.PagesSource)
	if err != nil {
		s.logger.Warn("failed to load page metadata, keeping previous", zap.Error(err))
		pages = prev.Pages
	}
	next.Pages = pages

	var loadErr error
	if s.bundle != nil {
		if err := s.bundle.LoadAll(ctx, s.fetcher); err != nil {
			s.logger.Error("failed to load translations", zap.Error(err))
			loadErr = fmt.Errorf("load translations: %w", err)
		}
	}

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	s.logger.Info("data loaded",
		zap.Int("events", len(next.Events)),
		zap.Int("gallery", len(next.Gallery)),
		zap.Int("page_languages", len(next.Pages)),
	)
	return loadErr
}

// Snapshot returns the current data.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Bundle returns the translation bundle the store loads into.
func (s *Store) Bundle() *i18n.Bundle { return s.bundle }

// Year returns the calendar year the site displays.
func (s *Store) Year() int { return s.year }
