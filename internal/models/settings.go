package models

import "time"

const (
	UserCountLogicRawFiles    = "raw_files"
	UserCountLogicCustomInput = "custom_input"

	ThemeLight = "light"
)

type AccountSettings struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	AccountID       uint      `gorm:"not null;uniqueIndex" json:"-"`
	UserCountLogic  string    `gorm:"not null;default:raw_files" json:"user_count_logic"`
	CustomUserCount *int      `json:"custom_user_count"`
	Theme           string    `gorm:"not null;default:light" json:"theme"`
	UpdatedAt       time.Time `json:"-"`
}

func DefaultAccountSettings(accountID uint) AccountSettings {
	return AccountSettings{
		AccountID:      accountID,
		UserCountLogic: UserCountLogicRawFiles,
		Theme:          ThemeLight,
	}
}
