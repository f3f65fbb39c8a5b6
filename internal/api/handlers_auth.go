package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"pulseboard/internal/metrics"
	"pulseboard/internal/services"
)

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	account, err := handler.accounts.Authenticate(input.Username, input.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		metrics.CountLoginAttempt("failure")
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	if account.MustChangePassword {
		metrics.CountLoginAttempt("must_change_password")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":                "password change required",
			"must_change_password": true,
		})
	}

	tokenTTL := defaultAuthTokenTTL
	if input.RememberMe {
		tokenTTL = rememberAuthTokenTTL
	}
	token, err := handler.buildToken(account, tokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	metrics.CountLoginAttempt("success")
	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// CheckUser is step one of the password reset flow: confirm the account
// exists before showing the new-password form.
func (handler *Handler) CheckUser(c *fiber.Ctx) error {
	input := checkUserInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	_, err := handler.accounts.FindByEmail(input.Username)
	if errors.Is(err, services.ErrAccountNotFound) || errors.Is(err, services.ErrInvalidEmail) {
		return apiError(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to check user")
	}
	return c.JSON(fiber.Map{"exists": true})
}

// ResetPassword replaces a verified account's password. Attempts are rate
// limited per client address to slow enumeration.
func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.authLimiter.tooManyRecent(limiterKey, now, resetAttemptLimit, resetAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many reset attempts, try again later")
	}

	input := resetPasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	account, err := handler.accounts.FindByEmail(input.Username)
	if errors.Is(err, services.ErrAccountNotFound) || errors.Is(err, services.ErrInvalidEmail) {
		handler.authLimiter.addFailure(limiterKey, now, resetAttemptWindow)
		return apiError(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	if err := handler.accounts.SetPassword(account.ID, input.NewPassword, false); err != nil {
		if errors.Is(err, services.ErrPasswordRejected) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to reset password")
	}

	handler.authLimiter.reset(limiterKey)
	return c.JSON(fiber.Map{"success": true})
}

// PasswordRequirements lists the policy for the signup and reset forms. It is
// public so the reset form can render it before authentication.
func (handler *Handler) PasswordRequirements(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"requirements": services.PasswordRequirements()})
}

// Logout exists for client symmetry. Bearer tokens are stateless, so the
// client discards its copy and the server just acknowledges.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(account)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.accounts.UpdateProfile(account.ID, input.FullName, input.Nickname); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
	}

	updated, err := handler.accounts.FindByID(account.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
	}
	return c.JSON(updated)
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	err := handler.accounts.ChangePassword(account.ID, input.CurrentPassword, input.NewPassword)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "current password is incorrect")
	case errors.Is(err, services.ErrPasswordRejected):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to change password")
	}
	return c.JSON(fiber.Map{"success": true})
}
