package app

import (
	"testing"
)

func TestCalculateOrthodoxEaster(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{2021, "2021-05-02"},
		{2023, "2023-04-16"},
		{2024, "2024-05-05"},
		{2025, "2025-04-20"},
		{2026, "2026-04-12"},
	}

	for _, tt := range tests {
		if got := formatDateFromTime(calculateOrthodoxEaster(tt.year)); got != tt.want {
			t.Errorf("calculateOrthodoxEaster(%d) = %s, want %s", tt.year, got, tt.want)
		}
	}
}

func TestGetRomanianHolidays(t *testing.T) {
	holidays := GetRomanianHolidays(2025)

	expected := map[string]string{
		"2025-01-01": "Anul Nou",
		"2025-01-24": "Ziua Unirii Principatelor Române",
		"2025-04-18": "Vinerea Mare",
		"2025-04-20": "Paștele",
		"2025-04-21": "Paștele",
		"2025-06-08": "Rusaliile",
		"2025-06-09": "Rusaliile",
		"2025-12-01": "Ziua Națională",
	}
	for date, name := range expected {
		if got := holidays[date]; got != name {
			t.Errorf("holidays[%s] = %q, want %q", date, got, name)
		}
	}

	if _, ok := holidays["2025-03-03"]; ok {
		t.Error("2025-03-03 is not a holiday")
	}
}

func TestHolidayList(t *testing.T) {
	list := HolidayList(GetRomanianHolidays(2025))

	if len(list) != len(GetRomanianHolidays(2025)) {
		t.Fatalf("Expected one entry per holiday, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Date >= list[i].Date {
			t.Errorf("List not sorted at %d: %s >= %s", i, list[i-1].Date, list[i].Date)
		}
	}
	if list[len(list)-1].Date != "2025-12-26" {
		t.Errorf("Last holiday should be 2025-12-26, got %s", list[len(list)-1].Date)
	}
}
