package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"pulseboard/internal/db"
	"pulseboard/internal/models"
)

// RunSeedCommand loads a deterministic demo dataset: the given number of
// subjects over the trailing number of days, with gaps so every status
// filter has rows to match. Each run writes under a fresh batch id.
func RunSeedCommand(dbPath string, subjects int, days int) error {
	if subjects < 1 || days < 1 {
		return fmt.Errorf("subjects and days must be positive")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	batchID := uuid.NewString()
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stages := models.PipelineStages()
	vitals := models.VitalTypes()
	ingestionRecords := make([]models.IngestionRecord, 0, subjects*days*len(stages))
	vitalRecords := make([]models.VitalRecord, 0, subjects*days*len(vitals))

	for subjectIndex := 0; subjectIndex < subjects; subjectIndex++ {
		subjectID := fmt.Sprintf("subject-%03d", subjectIndex+1)
		for dayOffset := 0; dayOffset < days; dayOffset++ {
			date := today.AddDate(0, 0, -dayOffset)
			for stageIndex, stage := range stages {
				if (subjectIndex+dayOffset+stageIndex)%7 == 0 {
					continue
				}
				ingestionRecords = append(ingestionRecords, models.IngestionRecord{
					SubjectID: subjectID,
					Stage:     stage,
					Date:      date,
					BatchID:   batchID,
				})
			}
			for vitalIndex, vital := range vitals {
				if (subjectIndex+dayOffset+vitalIndex)%5 == 0 {
					continue
				}
				vitalRecords = append(vitalRecords, models.VitalRecord{
					SubjectID: subjectID,
					VitalType: vital,
					Date:      date,
				})
			}
		}
	}

	repositories := db.NewRepositories(database)
	if err := repositories.Ingestion.CreateBatch(ingestionRecords); err != nil {
		return fmt.Errorf("seed ingestion records: %w", err)
	}
	if err := repositories.Vitals.CreateBatch(vitalRecords); err != nil {
		return fmt.Errorf("seed vital records: %w", err)
	}

	fmt.Println("✅ Demo data loaded")
	fmt.Printf("  Batch:             %s\n", batchID)
	fmt.Printf("  Subjects:          %d\n", subjects)
	fmt.Printf("  Days:              %d\n", days)
	fmt.Printf("  Ingestion records: %d\n", len(ingestionRecords))
	fmt.Printf("  Vital records:     %d\n", len(vitalRecords))
	return nil
}
