package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mitropolia-targovistei/calendar-site/internal/fetch"
	"github.com/mitropolia-targovistei/calendar-site/internal/gallery"
	"github.com/mitropolia-targovistei/calendar-site/internal/i18n"
	"github.com/mitropolia-targovistei/calendar-site/internal/views"
)

const shutdownTimeout = 10 * time.Second

// App wires the loaded data to the HTTP handlers.
type App struct {
	cfg     Config
	logger  *zap.Logger
	store   *Store
	fetcher fetch.Fetcher
	views   *views.Renderer
	auth    *Auth
	tiers   gallery.Tiers
	now     func() time.Time
}

// New builds the application. The store is expected to be loaded already.
func New(cfg Config, logger *zap.Logger, store *Store, f fetch.Fetcher, renderer *views.Renderer, auth *Auth) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if auth == nil {
		auth = &Auth{}
	}
	return &App{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		fetcher: f,
		views:   renderer,
		auth:    auth,
		tiers:   gallery.DefaultTiers(),
		now:     time.Now,
	}
}

// Routes returns the router with every page, fragment, export and API route.
func (a *App) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(a.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(HTMX)
	r.Use(i18n.Middleware(a.store.Bundle()))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(a.cfg.AssetsDir))))
	r.Get("/data/*", a.ServeData)

	r.Get("/", a.HandleHome)

	r.Route("/calendar", func(r chi.Router) {
		r.Get("/", a.HandleCalendar)
		r.Get("/list", a.HandleCalendarFragment)
		r.Get("/grid", a.HandleCalendarFragment)
		r.Get("/day/{date}", a.HandleDay)
		r.Get("/export.ics", a.HandleExportICS)
		r.Get("/export.csv", a.HandleExportCSV)
		r.Get("/export.json", a.HandleExportJSON)
		r.Get("/feed.ics", a.HandleFeed)
	})

	r.Route("/gallery", func(r chi.Router) {
		r.Get("/", a.HandleGallery)
		r.Get("/more", a.HandleGalleryMore)
		r.Get("/controls", a.HandleGalleryControls)
		r.Get("/lightbox/close", a.HandleLightboxClose)
		r.Get("/lightbox/{index}", a.HandleLightbox)
		r.Get("/lightbox/{index}/key", a.HandleLightboxKey)
		r.Post("/lightbox/{index}/swipe", a.HandleLightboxSwipe)
	})

	r.Post("/menu", a.HandleMenu)
	r.Get("/lang/{lang}", a.HandleSetLanguage)
	r.Post("/lang/toggle", a.HandleToggleLanguage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", a.HandleConfig)
		r.Get("/holidays", a.HandleHolidays)
	})

	r.With(a.auth.Middleware(a.logger)).Post("/admin/reload", a.HandleReload)

	return r
}

// Serve listens on the configured address until ctx is cancelled, then shuts down
// gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", a.cfg.Addr), zap.String("data_mode", a.cfg.Mode()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
