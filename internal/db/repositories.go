package db

import "gorm.io/gorm"

type Repositories struct {
	Accounts  *AccountRepository
	Settings  *SettingsRepository
	Ingestion *IngestionRepository
	Vitals    *VitalsRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Accounts:  NewAccountRepository(database),
		Settings:  NewSettingsRepository(database),
		Ingestion: NewIngestionRepository(database),
		Vitals:    NewVitalsRepository(database),
	}
}
