package api

import (
	"time"

	"pulseboard/internal/services"
)

type Handler struct {
	accounts    *services.AccountService
	settings    *services.SettingsService
	status      *services.StatusService
	secretKey   []byte
	location    *time.Location
	authLimiter *attemptLimiter
}

func NewHandler(accounts *services.AccountService, settings *services.SettingsService, status *services.StatusService, secretKey []byte, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		accounts:    accounts,
		settings:    settings,
		status:      status,
		secretKey:   secretKey,
		location:    location,
		authLimiter: newAttemptLimiter(),
	}
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	resetAttemptLimit  = 5
	resetAttemptWindow = 15 * time.Minute
)

type loginInput struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type checkUserInput struct {
	Username string `json:"username"`
}

type resetPasswordInput struct {
	Username    string `json:"username"`
	NewPassword string `json:"new_password"`
}

type profileInput struct {
	FullName string `json:"full_name"`
	Nickname string `json:"nickname"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type settingsInput struct {
	UserCountLogic  string `json:"user_count_logic"`
	CustomUserCount *int   `json:"custom_user_count"`
	Theme           string `json:"theme"`
}

type adminUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}
