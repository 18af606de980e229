package app

import (
	"sort"
	"time"
)

// GetRomanianHolidays returns the Romanian public holidays of the given year, including
// the movable ones derived from Orthodox Easter.
func GetRomanianHolidays(year int) map[string]string {
	holidays := make(map[string]string)

	// Fixed holidays
	holidays[formatDate(year, 1, 1)] = "Anul Nou"
	holidays[formatDate(year, 1, 2)] = "Anul Nou"
	holidays[formatDate(year, 1, 6)] = "Boboteaza"
	holidays[formatDate(year, 1, 7)] = "Sfântul Ioan Botezătorul"
	holidays[formatDate(year, 1, 24)] = "Ziua Unirii Principatelor Române"
	holidays[formatDate(year, 5, 1)] = "Ziua Muncii"
	holidays[formatDate(year, 6, 1)] = "Ziua Copilului"
	holidays[formatDate(year, 8, 15)] = "Adormirea Maicii Domnului"
	holidays[formatDate(year, 11, 30)] = "Sfântul Andrei"
	holidays[formatDate(year, 12, 1)] = "Ziua Națională"
	holidays[formatDate(year, 12, 25)] = "Crăciunul"
	holidays[formatDate(year, 12, 26)] = "Crăciunul"

	// Easter-based holidays (movable)
	easter := calculateOrthodoxEaster(year)

	// Vinerea Mare (Good Friday): Easter - 2 days
	holidays[formatDateFromTime(easter.AddDate(0, 0, -2))] = "Vinerea Mare"
	holidays[formatDateFromTime(easter)] = "Paștele"
	holidays[formatDateFromTime(easter.AddDate(0, 0, 1))] = "Paștele"

	// Rusaliile (Pentecost): Easter + 49 and + 50 days
	holidays[formatDateFromTime(easter.AddDate(0, 0, 49))] = "Rusaliile"
	holidays[formatDateFromTime(easter.AddDate(0, 0, 50))] = "Rusaliile"

	return holidays
}

// HolidayList returns the holidays sorted by date.
func HolidayList(holidays map[string]string) []Holiday {
	list := make([]Holiday, 0, len(holidays))
	for date, name := range holidays {
		list = append(list, Holiday{Date: date, Name: name})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Date < list[j].Date
	})
	return list
}

// calculateOrthodoxEaster calculates Orthodox Easter Sunday using the Meeus Julian
// algorithm, converted to the Gregorian calendar (valid for 1900-2099).
func calculateOrthodoxEaster(year int) time.Time {
	a := year % 4
	b := year % 7
	c := year % 19
	d := (19*c + 15) % 30
	e := (2*a + 4*b - d + 34) % 7
	month := (d + e + 114) / 31
	day := ((d + e + 114) % 31) + 1

	// Julian date plus the 13-day offset; noon keeps formatting on the same day.
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC).AddDate(0, 0, 13)
}

// formatDate formats a date as YYYY-MM-DD
func formatDate(year, month, day int) string {
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// formatDateFromTime formats a time.Time as YYYY-MM-DD
func formatDateFromTime(t time.Time) string {
	return t.Format("2006-01-02")
}
