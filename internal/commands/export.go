package commands

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mitropolia-targovistei/calendar-site/internal/events"
	"github.com/mitropolia-targovistei/calendar-site/internal/export"
)

// Export writes the filtered calendar to a file.
func Export() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: export.Filename, Usage: "Output file"},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "ics", Usage: "ics, csv or json"},
		&cli.StringFlag{Name: "type", Value: events.AllTypes, Usage: "Only events of this type"},
		&cli.IntFlag{Name: "month", Value: events.AllMonths, Usage: "Only events of this month (0-11)"},
		&cli.StringSliceFlag{Name: "reminder", Usage: "Reminder as DAYS@HH:MM, e.g. 1@19:00 (repeatable, ics only)"},
		&cli.BoolFlag{Name: "per-export-uids", Usage: "Derive UIDs from the export time instead of the event"},
	}, dataFlags...)

	return &cli.Command{
		Name:  "export",
		Usage: "Write the calendar as an iCalendar, CSV or JSON file.",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			reminders, err := parseReminderFlags(c.StringSlice("reminder"))
			if err != nil {
				return err
			}

			all, err := events.Load(c.Context, newFetcher(cfg), events.DefaultSources())
			if err != nil {
				return fmt.Errorf("failed to load events: %w", err)
			}
			f := events.ParseFilter(c.String("type"), strconv.Itoa(c.Int("month"))).Known(events.Types(all))
			filtered := f.Apply(all)

			var buf bytes.Buffer
			switch strings.ToLower(c.String("format")) {
			case "ics":
				err = export.ICS(&buf, filtered, export.Options{
					Now:           time.Now(),
					PerExportUIDs: c.Bool("per-export-uids") || cfg.PerExportUIDs,
					Reminders:     reminders,
				})
			case "csv":
				err = export.CSV(&buf, filtered)
			case "json":
				err = export.JSON(&buf, filtered, f)
			default:
				return fmt.Errorf("unknown format %q (expected ics, csv or json)", c.String("format"))
			}
			if err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}

			out := c.String("output")
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			logger.Info("calendar exported",
				zap.String("file", out),
				zap.String("format", c.String("format")),
				zap.Int("events", len(filtered)),
			)
			return nil
		},
	}
}

// parseReminderFlags reads DAYS@HH:MM values.
func parseReminderFlags(values []string) ([]export.Reminder, error) {
	var out []export.Reminder
	for _, v := range values {
		days, at, ok := strings.Cut(v, "@")
		n, err := strconv.Atoi(strings.TrimSpace(days))
		if !ok || err != nil {
			return nil, fmt.Errorf("invalid reminder %q (expected DAYS@HH:MM)", v)
		}
		r, ok := export.ParseReminder(n, strings.TrimSpace(at))
		if !ok {
			return nil, fmt.Errorf("invalid reminder %q (expected DAYS@HH:MM)", v)
		}
		out = append(out, r)
	}
	return out, nil
}
