package events

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cursor is the (month, year) pair displayed by the month grid. Month is zero-based.
type Cursor struct {
	Month int
	Year  int
}

// CursorFor returns the cursor for the month containing t, displayed in year.
func CursorFor(t time.Time, year int) Cursor {
	return Cursor{Month: int(t.Month()) - 1, Year: year}
}

// ParseCursor reads raw month/year values, falling back to def for anything invalid.
func ParseCursor(month, year string, def Cursor) Cursor {
	c := def
	if m, err := strconv.Atoi(strings.TrimSpace(month)); err == nil && m >= 0 && m <= 11 {
		c.Month = m
	}
	if y, err := strconv.Atoi(strings.TrimSpace(year)); err == nil && y > 0 {
		c.Year = y
	}
	return c
}

// Next advances one month, wrapping December into January of the next year.
func (c Cursor) Next() Cursor {
	c.Month++
	if c.Month > 11 {
		c.Month = 0
		c.Year++
	}
	return c
}

// Prev goes back one month, wrapping January into December of the previous year.
func (c Cursor) Prev() Cursor {
	c.Month--
	if c.Month < 0 {
		c.Month = 11
		c.Year--
	}
	return c
}

// Title renders "Ianuarie 2025".
func (c Cursor) Title() string {
	return fmt.Sprintf("%s %d", MonthName(c.Month), c.Year)
}

// DateString returns the ISO date of the given day inside the cursor month.
func (c Cursor) DateString(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", c.Year, c.Month+1, day)
}

// CellKind distinguishes padding cells from the displayed month.
type CellKind int

const (
	CellPrev CellKind = iota
	CellCurrent
	CellNext
)

// Cell is one square of the month grid.
type Cell struct {
	Day      int
	Date     string // set for current-month cells only
	Kind     CellKind
	HasEvent bool
	Holiday  string
}

// Grid is the month-grid view model.
type Grid struct {
	Cursor Cursor
	Cells  []Cell
}

// MonthGrid lays out the cursor month. Weeks start on Sunday. The grid starts with the
// trailing days of the previous month, then one cell per day, then padding up to the next
// multiple of 7. A day has an event when some filtered record's date string equals it.
func MonthGrid(c Cursor, filtered []Event) Grid {
	first := time.Date(c.Year, time.Month(c.Month+1), 1, 0, 0, 0, 0, time.UTC)
	firstDay := int(first.Weekday())
	daysInMonth := time.Date(c.Year, time.Month(c.Month+2), 0, 0, 0, 0, 0, time.UTC).Day()
	daysInPrev := time.Date(c.Year, time.Month(c.Month+1), 0, 0, 0, 0, 0, time.UTC).Day()

	dates := make(map[string]struct{}, len(filtered))
	for _, e := range filtered {
		dates[e.Date] = struct{}{}
	}

	total := (firstDay + daysInMonth + 6) / 7 * 7
	cells := make([]Cell, 0, total)

	for i := firstDay - 1; i >= 0; i-- {
		cells = append(cells, Cell{Day: daysInPrev - i, Kind: CellPrev})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := c.DateString(day)
		_, has := dates[date]
		cells = append(cells, Cell{Day: day, Date: date, Kind: CellCurrent, HasEvent: has})
	}
	for day := 1; len(cells) < total; day++ {
		cells = append(cells, Cell{Day: day, Kind: CellNext})
	}

	return Grid{Cursor: c, Cells: cells}
}

// MarkHolidays annotates current-month cells whose date appears in holidays.
func (g Grid) MarkHolidays(holidays map[string]string) Grid {
	for i := range g.Cells {
		if g.Cells[i].Kind != CellCurrent {
			continue
		}
		if name, ok := holidays[g.Cells[i].Date]; ok {
			g.Cells[i].Holiday = name
		}
	}
	return g
}

// CurrentDays counts the cells belonging to the displayed month.
func (g Grid) CurrentDays() int {
	n := 0
	for _, c := range g.Cells {
		if c.Kind == CellCurrent {
			n++
		}
	}
	return n
}

// Weeks splits the cells into rows of seven.
func (g Grid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		weeks = append(weeks, g.Cells[i:i+7])
	}
	return weeks
}
