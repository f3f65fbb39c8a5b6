package models

import "time"

const (
	VitalSteps           = "STEPS"
	VitalHeartRate       = "HEART_RATE"
	VitalHRVSDNN         = "HEART_RATE_VARIABILITY_SDNN"
	VitalBloodOxygen     = "BLOOD_OXYGEN"
	VitalRespiratoryRate = "RESPIRATORY_RATE"
)

// VitalTypes lists the monitored vital signs in table-column order.
func VitalTypes() []string {
	return []string{
		VitalSteps,
		VitalHeartRate,
		VitalHRVSDNN,
		VitalBloodOxygen,
		VitalRespiratoryRate,
	}
}

// VitalRecord marks that a subject reported a vital type on a given date.
type VitalRecord struct {
	ID        uint      `gorm:"primaryKey"`
	SubjectID string    `gorm:"not null;uniqueIndex:uidx_subject_vital_date"`
	VitalType string    `gorm:"not null;uniqueIndex:uidx_subject_vital_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_subject_vital_date"`
	CreatedAt time.Time
}
