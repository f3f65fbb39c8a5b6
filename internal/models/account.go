package models

import "time"

const (
	RoleViewer = "viewer"
	RoleAdmin  = "admin"
)

type Account struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	FullName           string    `json:"full_name"`
	Nickname           string    `json:"nickname"`
	Role               string    `gorm:"not null;default:viewer" json:"role"`
	MustChangePassword bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
}
