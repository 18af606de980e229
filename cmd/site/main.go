package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/mitropolia-targovistei/calendar-site/internal/commands"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "site",
		Usage: "Orthodox calendar and gallery site of the Archdiocese of Târgoviște.",
		Commands: []*cli.Command{
			commands.Serve(),
			commands.Export(),
			commands.HashPassword(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
