package api

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"pulseboard/internal/metrics"
	"pulseboard/internal/services"
)

var summaryExportHeaders = []string{
	"Date",
	"Total Users",
	"Successful Ingestions",
	"Missing Ingestions",
}

// ExportSummary streams the resolved range's per-day summary as a CSV
// attachment. The view parameter picks day, week, or month around the date.
func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	date, validDate := handler.queryDate(c)
	if !validDate {
		return apiError(c, fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	mode, err := services.ParseViewMode(c.Query("view"))
	if errors.Is(err, services.ErrInvalidViewMode) {
		return apiError(c, fiber.StatusBadRequest, "invalid view, expected day, week, or month")
	}

	summary, err := handler.status.SummarizeRange(account.ID, date, mode)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load summary")
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(summaryExportHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	for _, day := range summary.Days {
		if err := writer.Write(summaryExportRow(day.Date, day.TotalUsers, day.SuccessfulIngestions, day.MissingIngestions)); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build export")
		}
	}
	if err := writer.Write(summaryExportRow("Total", summary.TotalUsers, summary.SuccessfulIngestions, summary.MissingIngestions)); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	metrics.CountStatusQuery("export")
	setExportAttachmentHeaders(c, "text/csv", buildSummaryExportFilename(mode, date))
	return c.Send(output.Bytes())
}

func summaryExportRow(label string, total int, successful int, missing int) []string {
	return []string{
		label,
		strconv.Itoa(total),
		strconv.Itoa(successful),
		strconv.Itoa(missing),
	}
}

func buildSummaryExportFilename(mode services.ViewMode, date string) string {
	return fmt.Sprintf("pulseboard-summary-%s-%s.csv", mode, date)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
