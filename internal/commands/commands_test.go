package commands

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/mitropolia-targovistei/calendar-site/internal/export"
)

func TestParseReminderFlags(t *testing.T) {
	t.Parallel()

	got, err := parseReminderFlags([]string{"1@19:00", " 0 @ 07:30 "})
	require.NoError(t, err)
	assert.Equal(t, []export.Reminder{{DaysBefore: 1, At: "19:00"}, {DaysBefore: 0, At: "07:30"}}, got)

	for _, bad := range []string{"19:00", "x@19:00", "1@25:00", "-1@10:00"} {
		_, err := parseReminderFlags([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestPromptCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "ok", input: "admin\nParola123\nParola123\n"},
		{name: "empty username", input: "\n", wantErr: "username cannot be empty"},
		{name: "mismatch", input: "admin\nParola123\nAlta\n", wantErr: "passwords do not match"},
		{name: "empty password", input: "admin\n\n\n", wantErr: "password cannot be empty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			user, pass, err := promptCredentials(bufio.NewReader(strings.NewReader(tc.input)), &out, true)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin", user)
			assert.Equal(t, "Parola123", pass)
		})
	}
}

func writeData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"orthodox-2025.json": `[{"date":"2025-01-06","title":"Boboteaza","type":"feast"},{"date":"2025-03-03","title":"Începutul Postului Mare","type":"fast"}]`,
		"events-local.json":  `[{"date":"2025-01-20","title":"Hram","type":"local"}]`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func runExport(t *testing.T, args ...string) error {
	t.Helper()
	a := &cli.App{Name: "site", Commands: []*cli.Command{Export()}}
	return a.Run(append([]string{"site", "export", "--log-level", "error"}, args...))
}

func TestExportCommand(t *testing.T) {
	data := writeData(t)
	out := filepath.Join(t.TempDir(), "cal.ics")

	require.NoError(t, runExport(t, "--data-dir", data, "-o", out, "--month", "0", "--reminder", "1@19:00"))

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	s := string(body)
	assert.Equal(t, 2, strings.Count(s, "BEGIN:VEVENT"), "January holds the feast and the local event")
	assert.Equal(t, 2, strings.Count(s, "BEGIN:VALARM"))
	assert.NotContains(t, s, "Postului Mare")
}

func TestExportCommandJSON(t *testing.T) {
	data := writeData(t)
	out := filepath.Join(t.TempDir(), "cal.json")

	require.NoError(t, runExport(t, "--data-dir", data, "-o", out, "--format", "json", "--type", "local"))

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc export.Document
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, 1, doc.Count)
	assert.Equal(t, "Hram", doc.Events[0].Title)
}

func TestExportCommandErrors(t *testing.T) {
	data := writeData(t)
	out := filepath.Join(t.TempDir(), "cal.txt")

	assert.ErrorContains(t, runExport(t, "--data-dir", data, "-o", out, "--format", "pdf"), "unknown format")
	assert.ErrorContains(t, runExport(t, "--data-dir", data, "-o", out, "--reminder", "soon"), "invalid reminder")
	assert.ErrorContains(t, runExport(t, "--data-dir", t.TempDir(), "-o", out), "failed to load events")
}
