package services

import (
	"errors"
	"testing"
	"time"
)

func TestParseViewMode(t *testing.T) {
	cases := map[string]ViewMode{
		"":      ViewModeDay,
		"day":   ViewModeDay,
		"Week":  ViewModeWeek,
		"MONTH": ViewModeMonth,
	}
	for raw, expected := range cases {
		mode, err := ParseViewMode(raw)
		if err != nil {
			t.Fatalf("ParseViewMode(%q): %v", raw, err)
		}
		if mode != expected {
			t.Fatalf("ParseViewMode(%q) = %v, expected %v", raw, mode, expected)
		}
	}

	if _, err := ParseViewMode("year"); !errors.Is(err, ErrInvalidViewMode) {
		t.Fatalf("expected ErrInvalidViewMode, got %v", err)
	}
}

func TestResolveRangeDayMode(t *testing.T) {
	dateRange, highlights, err := ResolveRange("2026-08-27", ViewModeDay, time.UTC)
	if err != nil {
		t.Fatalf("ResolveRange: %v", err)
	}
	if dateRange.Start != "2026-08-27" || dateRange.End != "2026-08-27" {
		t.Fatalf("expected single-day range, got %+v", dateRange)
	}
	if len(highlights) != 0 {
		t.Fatalf("expected no highlights in day mode, got %v", highlights)
	}
}

func TestResolveRangeWeekAlwaysMondayThroughSunday(t *testing.T) {
	// 2026-08-24 is a Monday; walk every weekday of that week as the anchor.
	for offset := 0; offset < 7; offset++ {
		anchor, err := AddDays("2026-08-24", offset, time.UTC)
		if err != nil {
			t.Fatalf("AddDays: %v", err)
		}

		dateRange, highlights, err := ResolveRange(anchor, ViewModeWeek, time.UTC)
		if err != nil {
			t.Fatalf("ResolveRange(%q): %v", anchor, err)
		}
		if len(highlights) != 7 {
			t.Fatalf("anchor %q: expected 7 highlights, got %d", anchor, len(highlights))
		}
		if dateRange.Start != "2026-08-24" || dateRange.End != "2026-08-30" {
			t.Fatalf("anchor %q: expected 2026-08-24..2026-08-30, got %+v", anchor, dateRange)
		}

		start, err := ParseAPIDate(dateRange.Start, time.UTC)
		if err != nil {
			t.Fatalf("parse start: %v", err)
		}
		if start.Weekday() != time.Monday {
			t.Fatalf("anchor %q: week starts on %v", anchor, start.Weekday())
		}
		for index, date := range highlights {
			expected := FormatAPIDate(start.AddDate(0, 0, index))
			if date != expected {
				t.Fatalf("anchor %q: highlight %d = %q, expected %q", anchor, index, date, expected)
			}
		}
	}
}

func TestResolveRangeWeekCrossesMonthBoundary(t *testing.T) {
	// 2026-09-01 is a Tuesday, so the week starts in August.
	dateRange, _, err := ResolveRange("2026-09-01", ViewModeWeek, time.UTC)
	if err != nil {
		t.Fatalf("ResolveRange: %v", err)
	}
	if dateRange.Start != "2026-08-31" || dateRange.End != "2026-09-06" {
		t.Fatalf("expected 2026-08-31..2026-09-06, got %+v", dateRange)
	}
}

func TestResolveRangeMonthMode(t *testing.T) {
	dateRange, highlights, err := ResolveRange("2026-02-14", ViewModeMonth, time.UTC)
	if err != nil {
		t.Fatalf("ResolveRange: %v", err)
	}
	if dateRange.Start != "2026-02-01" || dateRange.End != "2026-02-28" {
		t.Fatalf("expected full February, got %+v", dateRange)
	}
	if highlights != nil {
		t.Fatalf("month mode must defer highlights to the backend, got %v", highlights)
	}

	dateRange, _, err = ResolveRange("2024-02-10", ViewModeMonth, time.UTC)
	if err != nil {
		t.Fatalf("ResolveRange: %v", err)
	}
	if dateRange.End != "2024-02-29" {
		t.Fatalf("expected leap-year end 2024-02-29, got %q", dateRange.End)
	}
}

func TestDateRangeDays(t *testing.T) {
	days, err := DateRange{Start: "2026-02-26", End: "2026-03-02"}.Days(time.UTC)
	if err != nil {
		t.Fatalf("Days: %v", err)
	}
	expected := []string{"2026-02-26", "2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}
	if len(days) != len(expected) {
		t.Fatalf("expected %d days, got %d (%v)", len(expected), len(days), days)
	}
	for index := range expected {
		if days[index] != expected[index] {
			t.Fatalf("day %d = %q, expected %q", index, days[index], expected[index])
		}
	}
}
