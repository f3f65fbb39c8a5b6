package services

import (
	"regexp"
	"strings"
	"time"
)

const (
	apiDateLayout     = "2006-01-02"
	displayDateLayout = "02-01-2006"
)

var apiDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
var displayDateRegex = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// ToDisplayDate converts YYYY-MM-DD to DD-MM-YYYY. Pure segment swap with no
// calendar validation; callers pre-validate with IsAPIDate.
func ToDisplayDate(apiDate string) string {
	if apiDate == "" {
		return ""
	}
	return reverseDateSegments(apiDate)
}

// ToAPIDate converts DD-MM-YYYY to YYYY-MM-DD. Pure segment swap with no
// calendar validation; callers pre-validate with IsDisplayDate.
func ToAPIDate(displayDate string) string {
	if displayDate == "" {
		return ""
	}
	return reverseDateSegments(displayDate)
}

func reverseDateSegments(value string) string {
	segments := strings.Split(value, "-")
	for left, right := 0, len(segments)-1; left < right; left, right = left+1, right-1 {
		segments[left], segments[right] = segments[right], segments[left]
	}
	return strings.Join(segments, "-")
}

func IsAPIDate(value string) bool {
	if !apiDateRegex.MatchString(value) {
		return false
	}
	_, err := time.Parse(apiDateLayout, value)
	return err == nil
}

func IsDisplayDate(value string) bool {
	if !displayDateRegex.MatchString(value) {
		return false
	}
	_, err := time.Parse(displayDateLayout, value)
	return err == nil
}

// ParseAPIDate resolves a YYYY-MM-DD string to midnight in the location.
func ParseAPIDate(value string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	return time.ParseInLocation(apiDateLayout, value, location)
}

func FormatAPIDate(value time.Time) string {
	return value.Format(apiDateLayout)
}

// DateAtLocation truncates an instant to midnight of its calendar day in the
// location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns [midnight, next midnight) for the instant's calendar day.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// atNoon anchors date arithmetic at 12:00 local so DST transitions at
// midnight cannot roll the result into a neighbouring day.
func atNoon(value string, location *time.Location) (time.Time, error) {
	parsed, err := ParseAPIDate(value, location)
	if err != nil {
		return time.Time{}, err
	}
	year, month, day := parsed.Date()
	return time.Date(year, month, day, 12, 0, 0, 0, parsed.Location()), nil
}

func AddDays(date string, days int, location *time.Location) (string, error) {
	anchor, err := atNoon(date, location)
	if err != nil {
		return "", err
	}
	return FormatAPIDate(anchor.AddDate(0, 0, days)), nil
}

func AddWeeks(date string, weeks int, location *time.Location) (string, error) {
	return AddDays(date, weeks*7, location)
}

// AddMonths keeps native rollover semantics: Jan 31 + 1 month normalizes past
// the end of February instead of clamping.
func AddMonths(date string, months int, location *time.Location) (string, error) {
	anchor, err := atNoon(date, location)
	if err != nil {
		return "", err
	}
	return FormatAPIDate(anchor.AddDate(0, months, 0)), nil
}

// Today returns the current calendar date in the location.
func Today(location *time.Location) string {
	return FormatAPIDate(DateAtLocation(time.Now(), location))
}
