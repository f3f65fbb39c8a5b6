package services

import (
	"errors"

	"pulseboard/internal/models"
)

var (
	ErrInvalidUserCountLogic = errors.New("user count logic must be raw_files or custom_input")
	ErrInvalidCustomCount    = errors.New("custom user count must be a positive number")
	ErrInvalidTheme          = errors.New("unsupported theme")
)

// SettingsRepository is the persistence surface SettingsService needs.
// *db.SettingsRepository satisfies it.
type SettingsRepository interface {
	FindByAccount(accountID uint) (models.AccountSettings, error)
	Upsert(settings *models.AccountSettings) error
}

type SettingsService struct {
	settings SettingsRepository
}

func NewSettingsService(settings SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

func (service *SettingsService) Get(accountID uint) (models.AccountSettings, error) {
	return service.settings.FindByAccount(accountID)
}

// Update validates and stores the account's settings. custom_input requires
// a positive count; raw_files discards any stored custom count.
func (service *SettingsService) Update(accountID uint, userCountLogic string, customUserCount *int, theme string) (models.AccountSettings, error) {
	if theme == "" {
		theme = models.ThemeLight
	}
	if theme != models.ThemeLight {
		return models.AccountSettings{}, ErrInvalidTheme
	}

	switch userCountLogic {
	case models.UserCountLogicRawFiles:
		customUserCount = nil
	case models.UserCountLogicCustomInput:
		if customUserCount == nil || *customUserCount <= 0 {
			return models.AccountSettings{}, ErrInvalidCustomCount
		}
	default:
		return models.AccountSettings{}, ErrInvalidUserCountLogic
	}

	settings := models.AccountSettings{
		AccountID:       accountID,
		UserCountLogic:  userCountLogic,
		CustomUserCount: customUserCount,
		Theme:           theme,
	}
	if err := service.settings.Upsert(&settings); err != nil {
		return models.AccountSettings{}, err
	}
	return settings, nil
}
