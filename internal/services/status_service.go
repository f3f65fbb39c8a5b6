package services

import (
	"fmt"
	"time"

	"pulseboard/internal/db"
	"pulseboard/internal/models"
)

// StatusService builds the dashboard's row and summary views from the
// ingestion and vitals tables. All date strings are YYYY-MM-DD in the
// service's location.
type StatusService struct {
	ingestion *db.IngestionRepository
	vitals    *db.VitalsRepository
	settings  *db.SettingsRepository
	location  *time.Location
}

func NewStatusService(ingestion *db.IngestionRepository, vitals *db.VitalsRepository, settings *db.SettingsRepository, location *time.Location) *StatusService {
	if location == nil {
		location = time.UTC
	}
	return &StatusService{
		ingestion: ingestion,
		vitals:    vitals,
		settings:  settings,
		location:  location,
	}
}

// DailySummary aggregates one day's ingestion outcome. MissingIngestions is
// TotalUsers minus SuccessfulIngestions without clamping, so a custom user
// count below the observed subject count yields a negative missing figure.
type DailySummary struct {
	Date                 string `json:"date"`
	TotalUsers           int    `json:"total_users"`
	SuccessfulIngestions int    `json:"successful_ingestions"`
	MissingIngestions    int    `json:"missing_ingestions"`
}

// RangeSummary is the weekly or monthly breakdown: one DailySummary per day
// in the resolved range plus range totals and the dates that have any data.
type RangeSummary struct {
	Mode                 string         `json:"mode"`
	StartDate            string         `json:"start_date"`
	EndDate              string         `json:"end_date"`
	Days                 []DailySummary `json:"days"`
	TotalUsers           int            `json:"total_users"`
	SuccessfulIngestions int            `json:"successful_ingestions"`
	MissingIngestions    int            `json:"missing_ingestions"`
	HighlightDates       []string       `json:"highlight_dates"`
}

// SyncStatusRows returns one row per known subject with the subject's
// per-stage status for the date. Subjects are ordered ascending by id.
func (service *StatusService) SyncStatusRows(date string) ([]StatusRow, []string, error) {
	day, err := ParseAPIDate(date, service.location)
	if err != nil {
		return nil, nil, fmt.Errorf("parse date: %w", err)
	}
	dayStart, dayEnd := DayRange(day, service.location)

	subjects, err := service.ingestion.DistinctSubjects()
	if err != nil {
		return nil, nil, fmt.Errorf("list subjects: %w", err)
	}

	columns := models.PipelineStages()
	present := make(map[string]map[string]bool, len(columns))
	for _, stage := range columns {
		stagePresent, err := service.ingestion.StageSubjectsOnDay(stage, dayStart, dayEnd)
		if err != nil {
			return nil, nil, fmt.Errorf("load stage %s: %w", stage, err)
		}
		present[stage] = stagePresent
	}

	rows := make([]StatusRow, 0, len(subjects))
	for _, subject := range subjects {
		statuses := make(map[string]string, len(columns))
		for _, stage := range columns {
			if present[stage][subject] {
				statuses[stage] = models.StatusAvailable
			} else {
				statuses[stage] = models.StatusMissing
			}
		}
		rows = append(rows, StatusRow{SubjectID: subject, Statuses: statuses})
	}
	return rows, columns, nil
}

// VitalsRows returns one row per known subject with the subject's per-vital
// status for the date.
func (service *StatusService) VitalsRows(date string) ([]StatusRow, []string, error) {
	day, err := ParseAPIDate(date, service.location)
	if err != nil {
		return nil, nil, fmt.Errorf("parse date: %w", err)
	}
	dayStart, dayEnd := DayRange(day, service.location)

	subjects, err := service.ingestion.DistinctSubjects()
	if err != nil {
		return nil, nil, fmt.Errorf("list subjects: %w", err)
	}

	reported, err := service.vitals.SubjectVitalsOnDay(dayStart, dayEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("load vitals: %w", err)
	}

	columns := models.VitalTypes()
	rows := make([]StatusRow, 0, len(subjects))
	for _, subject := range subjects {
		statuses := make(map[string]string, len(columns))
		for _, vital := range columns {
			if reported[subject][vital] {
				statuses[vital] = models.StatusAvailable
			} else {
				statuses[vital] = models.StatusMissing
			}
		}
		rows = append(rows, StatusRow{SubjectID: subject, Statuses: statuses})
	}
	return rows, columns, nil
}

// Summarize computes the day's summary under the account's user-count logic:
// raw_files counts the observed subject universe, custom_input trusts the
// stored figure. A successful ingestion is a subject with bronze data on the
// date.
func (service *StatusService) Summarize(accountID uint, date string) (DailySummary, error) {
	day, err := ParseAPIDate(date, service.location)
	if err != nil {
		return DailySummary{}, fmt.Errorf("parse date: %w", err)
	}

	totalUsers, err := service.totalUsers(accountID)
	if err != nil {
		return DailySummary{}, err
	}
	return service.summarizeDay(day, totalUsers)
}

// SummarizeRange produces the per-day breakdown over the range the mode
// resolves around the anchor date. Range totals sum the per-day figures, and
// HighlightDates lists the days in range with any bronze data.
func (service *StatusService) SummarizeRange(accountID uint, anchor string, mode ViewMode) (RangeSummary, error) {
	dateRange, _, err := ResolveRange(anchor, mode, service.location)
	if err != nil {
		return RangeSummary{}, fmt.Errorf("resolve range: %w", err)
	}
	days, err := dateRange.Days(service.location)
	if err != nil {
		return RangeSummary{}, err
	}

	totalUsers, err := service.totalUsers(accountID)
	if err != nil {
		return RangeSummary{}, err
	}

	summary := RangeSummary{
		Mode:           mode.String(),
		StartDate:      dateRange.Start,
		EndDate:        dateRange.End,
		Days:           make([]DailySummary, 0, len(days)),
		HighlightDates: make([]string, 0, len(days)),
	}
	for _, date := range days {
		day, err := ParseAPIDate(date, service.location)
		if err != nil {
			return RangeSummary{}, err
		}
		daily, err := service.summarizeDay(day, totalUsers)
		if err != nil {
			return RangeSummary{}, err
		}
		summary.Days = append(summary.Days, daily)
		summary.TotalUsers += daily.TotalUsers
		summary.SuccessfulIngestions += daily.SuccessfulIngestions
		summary.MissingIngestions += daily.MissingIngestions
		if daily.SuccessfulIngestions > 0 {
			summary.HighlightDates = append(summary.HighlightDates, date)
		}
	}
	return summary, nil
}

// MonthHighlights lists the dates in the anchor's month with any bronze
// data. Month-view calendars take this list as authoritative instead of
// enumerating days locally.
func (service *StatusService) MonthHighlights(anchor string) ([]string, error) {
	anchorDay, err := ParseAPIDate(anchor, service.location)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}

	monthStart := time.Date(anchorDay.Year(), anchorDay.Month(), 1, 0, 0, 0, 0, service.location)
	monthEnd := monthStart.AddDate(0, 1, 0)
	dates, err := service.ingestion.StageDatesInRange(models.StageBronze, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("load month dates: %w", err)
	}

	highlights := make([]string, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, date := range dates {
		key := FormatAPIDate(DateAtLocation(date, service.location))
		if !seen[key] {
			seen[key] = true
			highlights = append(highlights, key)
		}
	}
	return highlights, nil
}

func (service *StatusService) summarizeDay(day time.Time, totalUsers int) (DailySummary, error) {
	dayStart, dayEnd := DayRange(day, service.location)
	successful, err := service.ingestion.CountStageSubjectsOnDay(models.StageBronze, dayStart, dayEnd)
	if err != nil {
		return DailySummary{}, fmt.Errorf("count ingestions: %w", err)
	}

	return DailySummary{
		Date:                 FormatAPIDate(day),
		TotalUsers:           totalUsers,
		SuccessfulIngestions: int(successful),
		MissingIngestions:    totalUsers - int(successful),
	}, nil
}

func (service *StatusService) totalUsers(accountID uint) (int, error) {
	settings, err := service.settings.FindByAccount(accountID)
	if err != nil {
		return 0, fmt.Errorf("load settings: %w", err)
	}

	if settings.UserCountLogic == models.UserCountLogicCustomInput && settings.CustomUserCount != nil {
		return *settings.CustomUserCount, nil
	}

	count, err := service.ingestion.CountDistinctSubjects()
	if err != nil {
		return 0, fmt.Errorf("count subjects: %w", err)
	}
	return int(count), nil
}
