package db

import (
	"errors"

	"pulseboard/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

// FindByAccount returns the stored settings, falling back to defaults when
// the account has never saved any.
func (repo *SettingsRepository) FindByAccount(accountID uint) (models.AccountSettings, error) {
	var settings models.AccountSettings
	err := repo.database.Where("account_id = ?", accountID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultAccountSettings(accountID), nil
	}
	if err != nil {
		return models.AccountSettings{}, err
	}
	return settings, nil
}

func (repo *SettingsRepository) Upsert(settings *models.AccountSettings) error {
	var existing models.AccountSettings
	err := repo.database.Where("account_id = ?", settings.AccountID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.database.Create(settings).Error
	}
	if err != nil {
		return err
	}

	settings.ID = existing.ID
	return repo.database.Save(settings).Error
}
