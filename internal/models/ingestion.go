package models

import "time"

const (
	StageBronze               = "bronze"
	StageSilverRRBucket       = "silver_rrbucket"
	StageSilverVitalsBaseline = "silver_vitalsbaseline"
	StageSilverVitalsSWT      = "silver_vitalsswt"
)

const (
	StatusAvailable = "Available"
	StatusMissing   = "Missing"
)

// PipelineStages lists the monitored pipeline stages in table-column order.
func PipelineStages() []string {
	return []string{
		StageBronze,
		StageSilverRRBucket,
		StageSilverVitalsBaseline,
		StageSilverVitalsSWT,
	}
}

// IngestionRecord marks that a subject's data landed in a pipeline stage on a
// given date. Presence of a row means "Available" for that stage and date.
type IngestionRecord struct {
	ID        uint      `gorm:"primaryKey"`
	SubjectID string    `gorm:"not null;uniqueIndex:uidx_subject_stage_date"`
	Stage     string    `gorm:"not null;uniqueIndex:uidx_subject_stage_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_subject_stage_date"`
	BatchID   string    `gorm:"not null"`
	CreatedAt time.Time
}
