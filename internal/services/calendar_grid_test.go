package services

import (
	"testing"
	"time"
)

func TestCalendarGridAlwaysHas42Cells(t *testing.T) {
	references := []time.Time{
		time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2021, time.February, 10, 0, 0, 0, 0, time.UTC),
	}
	for _, reference := range references {
		grid := BuildCalendarGrid(reference, "", nil, time.UTC)
		if len(grid) != 42 {
			t.Fatalf("grid for %v: expected 42 cells, got %d", reference, len(grid))
		}
	}
}

func TestCalendarGridStartsOnMonday(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		reference := time.Date(2026, month, 10, 0, 0, 0, 0, time.UTC)
		grid := BuildCalendarGrid(reference, "", nil, time.UTC)
		if grid[0].Date.Weekday() != time.Monday {
			t.Fatalf("month %v: first cell is %v, expected Monday", month, grid[0].Date.Weekday())
		}
	}
}

func TestCalendarGridCurrentMonthCells(t *testing.T) {
	reference := time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC)
	grid := BuildCalendarGrid(reference, "", nil, time.UTC)

	inMonth := 0
	for _, cell := range grid {
		if cell.InCurrentMonth {
			inMonth++
			if cell.Date.Month() != time.February {
				t.Fatalf("cell %s flagged in-month but is %v", cell.DateString, cell.Date.Month())
			}
		}
	}
	if inMonth != 28 {
		t.Fatalf("expected 28 in-month cells for February 2026, got %d", inMonth)
	}
}

func TestCalendarGridDaysAreContiguous(t *testing.T) {
	reference := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	grid := BuildCalendarGrid(reference, "", nil, time.UTC)
	for index := 1; index < len(grid); index++ {
		expected := grid[index-1].Date.AddDate(0, 0, 1)
		if !grid[index].Date.Equal(expected) {
			t.Fatalf("cell %d: expected %v, got %v", index, expected, grid[index].Date)
		}
	}
}

func TestCalendarGridSelectionAndHighlights(t *testing.T) {
	reference := time.Date(2026, time.August, 27, 0, 0, 0, 0, time.UTC)
	highlights := map[string]bool{
		"2026-08-03": true,
		"2026-08-27": true,
	}
	grid := BuildCalendarGrid(reference, "2026-08-27", highlights, time.UTC)

	selected := 0
	highlighted := 0
	for _, cell := range grid {
		if cell.Selected {
			selected++
			if cell.DateString != "2026-08-27" {
				t.Fatalf("unexpected selected cell %s", cell.DateString)
			}
		}
		if cell.Highlighted {
			highlighted++
			if !highlights[cell.DateString] {
				t.Fatalf("unexpected highlighted cell %s", cell.DateString)
			}
		}
	}
	if selected != 1 {
		t.Fatalf("expected exactly one selected cell, got %d", selected)
	}
	if highlighted != 2 {
		t.Fatalf("expected two highlighted cells, got %d", highlighted)
	}
}
