package db

import (
	"time"

	"pulseboard/internal/models"

	"gorm.io/gorm"
)

type IngestionRepository struct {
	database *gorm.DB
}

func NewIngestionRepository(database *gorm.DB) *IngestionRepository {
	return &IngestionRepository{database: database}
}

// DistinctSubjects returns every subject id seen in any pipeline stage,
// sorted ascending. The subject universe is derived from the records
// themselves; there is no separate subject registry.
func (repo *IngestionRepository) DistinctSubjects() ([]string, error) {
	subjects := make([]string, 0)
	if err := repo.database.Model(&models.IngestionRecord{}).
		Distinct("subject_id").
		Order("subject_id ASC").
		Pluck("subject_id", &subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (repo *IngestionRepository) CountDistinctSubjects() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.IngestionRecord{}).
		Distinct("subject_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// StageSubjectsOnDay returns the set of subjects with a record for the stage
// within [dayStart, dayEnd).
func (repo *IngestionRepository) StageSubjectsOnDay(stage string, dayStart time.Time, dayEnd time.Time) (map[string]bool, error) {
	subjects := make([]string, 0)
	if err := repo.database.Model(&models.IngestionRecord{}).
		Where("stage = ? AND date >= ? AND date < ?", stage, dayStart, dayEnd).
		Pluck("subject_id", &subjects).Error; err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(subjects))
	for _, subject := range subjects {
		present[subject] = true
	}
	return present, nil
}

func (repo *IngestionRepository) CountStageSubjectsOnDay(stage string, dayStart time.Time, dayEnd time.Time) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.IngestionRecord{}).
		Where("stage = ? AND date >= ? AND date < ?", stage, dayStart, dayEnd).
		Distinct("subject_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// StageDatesInRange returns the distinct record dates for the stage within
// [rangeStart, rangeEnd), ordered ascending.
func (repo *IngestionRepository) StageDatesInRange(stage string, rangeStart time.Time, rangeEnd time.Time) ([]time.Time, error) {
	dates := make([]time.Time, 0)
	if err := repo.database.Model(&models.IngestionRecord{}).
		Where("stage = ? AND date >= ? AND date < ?", stage, rangeStart, rangeEnd).
		Distinct("date").
		Order("date ASC").
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (repo *IngestionRepository) Create(record *models.IngestionRecord) error {
	return repo.database.Create(record).Error
}

func (repo *IngestionRepository) CreateBatch(records []models.IngestionRecord) error {
	if len(records) == 0 {
		return nil
	}
	return repo.database.Create(&records).Error
}
