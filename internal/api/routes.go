package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pulseboard/internal/metrics"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Use(observeRequests)

	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/check-user", handler.CheckUser)
	auth.Post("/reset-password", handler.ResetPassword)
	auth.Get("/password-requirements", handler.PasswordRequirements)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/profile", handler.AuthRequired, handler.GetProfile)
	auth.Put("/profile", handler.AuthRequired, handler.UpdateProfile)
	auth.Put("/profile/password", handler.AuthRequired, handler.ChangePassword)

	api.Get("/sync-status", handler.AuthRequired, handler.SyncStatus)
	api.Get("/user-vitals", handler.AuthRequired, handler.UserVitals)

	summary := api.Group("/summary", handler.AuthRequired)
	summary.Get("", handler.Summary)
	summary.Get("/weekly", handler.SummaryWeekly)
	summary.Get("/monthly", handler.SummaryMonthly)
	summary.Get("/export", handler.ExportSummary)

	api.Get("/user-settings", handler.AuthRequired, handler.GetSettings)
	api.Post("/user-settings", handler.AuthRequired, handler.SaveSettings)

	admin := api.Group("/admin", handler.AuthRequired, handler.AdminRequired)
	admin.Get("/users", handler.AdminListUsers)
	admin.Post("/users", handler.AdminCreateUser)
	admin.Put("/users/:id", handler.AdminUpdateUser)
	admin.Delete("/users/:id", handler.AdminDeleteUser)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func observeRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	route := c.Route().Path
	if route == "" {
		route = c.Path()
	}
	metrics.ObserveRequest(c.Method(), route, c.Response().StatusCode(), time.Since(start).Seconds())
	return err
}
