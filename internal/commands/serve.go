package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mitropolia-targovistei/calendar-site/internal/app"
	"github.com/mitropolia-targovistei/calendar-site/internal/i18n"
	"github.com/mitropolia-targovistei/calendar-site/internal/views"
)

// Serve runs the web server.
func Serve() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{Name: "addr", Aliases: []string{"a"}, Usage: "Listen address, e.g. :8080"},
		&cli.StringFlag{Name: "assets-dir", Usage: "Directory served under /assets"},
		&cli.StringFlag{Name: "auth-file", Usage: "Credential file protecting /admin (see hash-password)"},
		&cli.BoolFlag{Name: "watch", Usage: "Reload the data when files in --data-dir change"},
	}, dataFlags...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the calendar site.",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.IsSet("addr") {
				cfg.Addr = c.String("addr")
			}
			if c.IsSet("assets-dir") {
				cfg.AssetsDir = c.String("assets-dir")
			}
			if c.IsSet("auth-file") {
				cfg.AuthFile = c.String("auth-file")
			}
			if c.IsSet("watch") {
				cfg.Watch = c.Bool("watch")
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			f := newFetcher(cfg)
			bundle := i18n.NewBundle(i18n.Default, i18n.English)
			store := app.NewStore(f, bundle, cfg.Year, cfg.LoadTimeout, logger)
			if err := store.Load(ctx); err != nil {
				// Pages still render with their built-in Romanian texts.
				logger.Warn("starting without translations", zap.Error(err))
			}

			auth, err := app.LoadAuth(cfg.AuthFile, logger)
			if err != nil {
				return fmt.Errorf("failed to load auth credentials: %w", err)
			}

			renderer, err := views.New(bundle)
			if err != nil {
				return fmt.Errorf("failed to parse templates: %w", err)
			}

			if cfg.Watch {
				if cfg.Mode() == app.ModeURL {
					logger.Warn("--watch ignored: data is fetched from a URL", zap.String("data_url", cfg.DataURL))
				} else {
					go func() {
						if err := app.Watch(ctx, cfg.DataDir, store, logger); err != nil {
							logger.Error("watcher stopped", zap.Error(err))
						}
					}()
				}
			}

			return app.New(cfg, logger, store, f, renderer, auth).Serve(ctx)
		},
	}
}
