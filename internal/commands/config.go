// Package commands holds the CLI subcommands of the site binary.
package commands

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mitropolia-targovistei/calendar-site/internal/app"
	"github.com/mitropolia-targovistei/calendar-site/internal/fetch"
)

// Flags shared by every command that reads the data collaborators.
var dataFlags = []cli.Flag{
	&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Optional YAML config file"},
	&cli.StringFlag{Name: "data-dir", Usage: "Directory holding the collaborator files"},
	&cli.StringFlag{Name: "data-url", Usage: "Base URL to fetch the collaborator files from (overrides --data-dir)"},
	&cli.IntFlag{Name: "year", Usage: "Calendar year"},
	&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
}

// loadConfig reads the config layers and applies the flags the user actually set.
func loadConfig(c *cli.Context) (app.Config, error) {
	cfg, err := app.LoadConfig(c.String("config"))
	if err != nil {
		return app.Config{}, err
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}
	if c.IsSet("data-url") {
		cfg.DataURL = c.String("data-url")
	}
	if c.IsSet("year") {
		cfg.Year = c.Int("year")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, nil
}

func newLogger(cfg app.Config) (*zap.Logger, error) {
	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// newFetcher reads from the base URL when one is configured, the data directory otherwise.
func newFetcher(cfg app.Config) fetch.Fetcher {
	if cfg.Mode() == app.ModeURL {
		return fetch.New(cfg.DataURL, nil)
	}
	return fetch.New(cfg.DataDir, os.DirFS(cfg.DataDir))
}
