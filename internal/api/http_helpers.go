package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pulseboard/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// queryDate validates the date query parameter, defaulting to today when
// absent.
func (handler *Handler) queryDate(c *fiber.Ctx) (string, bool) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		return services.Today(handler.location), true
	}
	if !services.IsAPIDate(date) {
		return "", false
	}
	return date, true
}

func queryInt(c *fiber.Ctx, name string, fallback int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
