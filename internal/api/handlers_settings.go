package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pulseboard/internal/services"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	settings, err := handler.settings.Get(account.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	return c.JSON(settings)
}

func (handler *Handler) SaveSettings(c *fiber.Ctx) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := settingsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	settings, err := handler.settings.Update(account.ID, input.UserCountLogic, input.CustomUserCount, input.Theme)
	switch {
	case errors.Is(err, services.ErrInvalidUserCountLogic),
		errors.Is(err, services.ErrInvalidCustomCount),
		errors.Is(err, services.ErrInvalidTheme):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to save settings")
	}
	return c.JSON(settings)
}
