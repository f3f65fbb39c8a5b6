package services

import (
	"errors"
	"strings"
	"time"
)

type ViewMode int

const (
	ViewModeDay ViewMode = iota
	ViewModeWeek
	ViewModeMonth
)

var ErrInvalidViewMode = errors.New("invalid view mode")

func ParseViewMode(raw string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "day":
		return ViewModeDay, nil
	case "week":
		return ViewModeWeek, nil
	case "month":
		return ViewModeMonth, nil
	default:
		return ViewModeDay, ErrInvalidViewMode
	}
}

func (mode ViewMode) String() string {
	switch mode {
	case ViewModeWeek:
		return "week"
	case ViewModeMonth:
		return "month"
	default:
		return "day"
	}
}

// DateRange is an inclusive calendar date range.
type DateRange struct {
	Start string
	End   string
}

// ResolveRange expands an anchor date into the inclusive range the mode
// covers and the dates to highlight locally.
//
// Week ranges run Monday through Sunday and always highlight exactly seven
// contiguous dates. Month ranges cover the whole anchor month but return no
// local highlights: month highlights mark "data exists" days, and the backend
// is authoritative for those (see StatusService.MonthHighlights).
func ResolveRange(anchor string, mode ViewMode, location *time.Location) (DateRange, []string, error) {
	anchorDay, err := ParseAPIDate(anchor, location)
	if err != nil {
		return DateRange{}, nil, err
	}

	switch mode {
	case ViewModeWeek:
		weekStart := anchorDay.AddDate(0, 0, -mondayIndex(anchorDay.Weekday()))
		highlights := make([]string, 0, 7)
		for offset := 0; offset < 7; offset++ {
			highlights = append(highlights, FormatAPIDate(weekStart.AddDate(0, 0, offset)))
		}
		return DateRange{Start: highlights[0], End: highlights[6]}, highlights, nil

	case ViewModeMonth:
		monthStart := time.Date(anchorDay.Year(), anchorDay.Month(), 1, 0, 0, 0, 0, anchorDay.Location())
		monthEnd := monthStart.AddDate(0, 1, -1)
		return DateRange{Start: FormatAPIDate(monthStart), End: FormatAPIDate(monthEnd)}, nil, nil

	default:
		return DateRange{Start: anchor, End: anchor}, []string{}, nil
	}
}

// Days enumerates every date in the inclusive range.
func (r DateRange) Days(location *time.Location) ([]string, error) {
	start, err := ParseAPIDate(r.Start, location)
	if err != nil {
		return nil, err
	}
	end, err := ParseAPIDate(r.End, location)
	if err != nil {
		return nil, err
	}

	days := make([]string, 0)
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		days = append(days, FormatAPIDate(cursor))
	}
	return days, nil
}
