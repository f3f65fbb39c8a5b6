package services

import "time"

const calendarGridCells = 42

type CalendarDay struct {
	Date           time.Time
	DateString     string
	Day            int
	InCurrentMonth bool
	Selected       bool
	Highlighted    bool
}

// mondayIndex re-indexes time.Weekday so Monday=0 .. Sunday=6.
func mondayIndex(weekday time.Weekday) int {
	if weekday == time.Sunday {
		return 6
	}
	return int(weekday) - 1
}

// BuildCalendarGrid produces the fixed 6x7 month grid for the month
// containing reference: the tail of the previous month, every day of the
// reference month, then the head of the following month up to exactly 42
// cells. Highlighted and Selected are resolved against YYYY-MM-DD strings.
func BuildCalendarGrid(reference time.Time, selectedDate string, highlights map[string]bool, location *time.Location) []CalendarDay {
	if location == nil {
		location = time.UTC
	}

	monthStart := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, location)
	gridStart := monthStart.AddDate(0, 0, -mondayIndex(monthStart.Weekday()))

	days := make([]CalendarDay, 0, calendarGridCells)
	for offset := 0; offset < calendarGridCells; offset++ {
		day := gridStart.AddDate(0, 0, offset)
		key := FormatAPIDate(day)
		days = append(days, CalendarDay{
			Date:           day,
			DateString:     key,
			Day:            day.Day(),
			InCurrentMonth: day.Month() == monthStart.Month() && day.Year() == monthStart.Year(),
			Selected:       selectedDate != "" && key == selectedDate,
			Highlighted:    highlights[key],
		})
	}

	return days
}
