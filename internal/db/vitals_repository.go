package db

import (
	"time"

	"pulseboard/internal/models"

	"gorm.io/gorm"
)

type VitalsRepository struct {
	database *gorm.DB
}

func NewVitalsRepository(database *gorm.DB) *VitalsRepository {
	return &VitalsRepository{database: database}
}

// SubjectVitalsOnDay returns, per subject, the set of vital types reported
// within [dayStart, dayEnd).
func (repo *VitalsRepository) SubjectVitalsOnDay(dayStart time.Time, dayEnd time.Time) (map[string]map[string]bool, error) {
	records := make([]models.VitalRecord, 0)
	if err := repo.database.
		Select("subject_id", "vital_type").
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Find(&records).Error; err != nil {
		return nil, err
	}

	reported := make(map[string]map[string]bool)
	for _, record := range records {
		if reported[record.SubjectID] == nil {
			reported[record.SubjectID] = make(map[string]bool)
		}
		reported[record.SubjectID][record.VitalType] = true
	}
	return reported, nil
}

func (repo *VitalsRepository) Create(record *models.VitalRecord) error {
	return repo.database.Create(record).Error
}

func (repo *VitalsRepository) CreateBatch(records []models.VitalRecord) error {
	if len(records) == 0 {
		return nil
	}
	return repo.database.Create(&records).Error
}
