package services

import (
	"errors"
	"strings"
)

// DefaultPageSize is the fixed page size used by every dashboard table.
const DefaultPageSize = 10

type StatusFilter int

const (
	StatusFilterAll StatusFilter = iota
	StatusFilterAvailable
	StatusFilterMissing
)

var ErrInvalidStatusFilter = errors.New("invalid status filter")

func ParseStatusFilter(raw string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return StatusFilterAll, nil
	case "available":
		return StatusFilterAvailable, nil
	case "missing":
		return StatusFilterMissing, nil
	default:
		return StatusFilterAll, ErrInvalidStatusFilter
	}
}

func (filter StatusFilter) String() string {
	switch filter {
	case StatusFilterAvailable:
		return "available"
	case StatusFilterMissing:
		return "missing"
	default:
		return "all"
	}
}

// StatusRow is one monitored subject's per-column status for a date.
type StatusRow struct {
	SubjectID string
	Statuses  map[string]string
}

// MatchesFilter applies the status filter asymmetry: "available" demands
// every monitored column be Available, "missing" demands at least one
// Missing column.
func (row StatusRow) MatchesFilter(columns []string, filter StatusFilter) bool {
	switch filter {
	case StatusFilterAvailable:
		for _, column := range columns {
			if row.Statuses[column] != "Available" {
				return false
			}
		}
		return true
	case StatusFilterMissing:
		for _, column := range columns {
			if row.Statuses[column] == "Missing" {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// FilterRows applies the status filter, then a case-insensitive substring
// search on the subject id. An empty search term passes every row.
func FilterRows(rows []StatusRow, columns []string, filter StatusFilter, search string) []StatusRow {
	needle := strings.ToLower(strings.TrimSpace(search))
	filtered := make([]StatusRow, 0, len(rows))
	for _, row := range rows {
		if !row.MatchesFilter(columns, filter) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(row.SubjectID), needle) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// TotalPages is never below one, even for an empty result set.
func TotalPages(totalRows int, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (totalRows + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// PageSlice returns the rows for a 1-based page.
func PageSlice(rows []StatusRow, page int, pageSize int) []StatusRow {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []StatusRow{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// FilterState carries one table's view state. Changing the date, the status
// filter, or the search term always snaps back to page one.
type FilterState struct {
	Date     string
	Filter   StatusFilter
	Search   string
	Page     int
	PageSize int
}

func NewFilterState(date string) FilterState {
	return FilterState{
		Date:     date,
		Filter:   StatusFilterAll,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

func (state *FilterState) SetDate(date string) {
	if state.Date == date {
		return
	}
	state.Date = date
	state.Page = 1
}

func (state *FilterState) SetFilter(filter StatusFilter) {
	if state.Filter == filter {
		return
	}
	state.Filter = filter
	state.Page = 1
}

func (state *FilterState) SetSearch(search string) {
	if state.Search == search {
		return
	}
	state.Search = search
	state.Page = 1
}

// SetPage clamps into [1, totalPages] given the current filtered row count.
func (state *FilterState) SetPage(page int, totalRows int) {
	limit := TotalPages(totalRows, state.PageSize)
	if page < 1 {
		page = 1
	}
	if page > limit {
		page = limit
	}
	state.Page = page
}

// Apply runs the full pipeline: filter, search, then slice the current page.
func (state FilterState) Apply(rows []StatusRow, columns []string) ([]StatusRow, int) {
	filtered := FilterRows(rows, columns, state.Filter, state.Search)
	return PageSlice(filtered, state.Page, state.PageSize), TotalPages(len(filtered), state.PageSize)
}
