package api

import (
	"github.com/gofiber/fiber/v2"

	"pulseboard/internal/metrics"
	"pulseboard/internal/services"
)

// statusRowsResponse assembles the shared table payload: rows filtered,
// searched, and sliced with the page-filter pipeline.
func statusRowsResponse(c *fiber.Ctx, date string, rows []services.StatusRow, columns []string) error {
	filter, err := services.ParseStatusFilter(c.Query("status"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid status filter")
	}

	state := services.NewFilterState(date)
	state.SetFilter(filter)
	state.SetSearch(c.Query("search"))
	state.PageSize = queryInt(c, "page_size", services.DefaultPageSize)

	filtered := services.FilterRows(rows, columns, state.Filter, state.Search)
	state.SetPage(queryInt(c, "page", 1), len(filtered))
	pageRows := services.PageSlice(filtered, state.Page, state.PageSize)

	data := make([]fiber.Map, 0, len(pageRows))
	for _, row := range pageRows {
		entry := fiber.Map{"user_id": row.SubjectID}
		for _, column := range columns {
			entry[column] = row.Statuses[column]
		}
		data = append(data, entry)
	}

	return c.JSON(fiber.Map{
		"date":        date,
		"data":        data,
		"columns":     columns,
		"total_users": len(filtered),
		"total_pages": services.TotalPages(len(filtered), state.PageSize),
		"page":        state.Page,
		"page_size":   state.PageSize,
	})
}

func (handler *Handler) SyncStatus(c *fiber.Ctx) error {
	date, ok := handler.queryDate(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	rows, columns, err := handler.status.SyncStatusRows(date)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load sync status")
	}

	metrics.CountStatusQuery("sync")
	return statusRowsResponse(c, date, rows, columns)
}

func (handler *Handler) UserVitals(c *fiber.Ctx) error {
	date, ok := handler.queryDate(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	rows, columns, err := handler.status.VitalsRows(date)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load vitals")
	}

	metrics.CountStatusQuery("vitals")
	return statusRowsResponse(c, date, rows, columns)
}

func (handler *Handler) Summary(c *fiber.Ctx) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	date, validDate := handler.queryDate(c)
	if !validDate {
		return apiError(c, fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	summary, err := handler.status.Summarize(account.ID, date)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load summary")
	}

	metrics.CountStatusQuery("summary")
	return c.JSON(summary)
}

func (handler *Handler) SummaryWeekly(c *fiber.Ctx) error {
	return handler.rangeSummary(c, services.ViewModeWeek, "weekly")
}

func (handler *Handler) SummaryMonthly(c *fiber.Ctx) error {
	return handler.rangeSummary(c, services.ViewModeMonth, "monthly")
}

func (handler *Handler) rangeSummary(c *fiber.Ctx, mode services.ViewMode, view string) error {
	account, ok := currentAccount(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	date, validDate := handler.queryDate(c)
	if !validDate {
		return apiError(c, fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	summary, err := handler.status.SummarizeRange(account.ID, date, mode)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load summary")
	}

	// Month view calendars highlight days that have data; the stored records
	// are authoritative for the whole month, not just the summary's range.
	if mode == services.ViewModeMonth {
		highlights, err := handler.status.MonthHighlights(date)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load summary")
		}
		summary.HighlightDates = highlights
	}

	metrics.CountStatusQuery(view)
	return c.JSON(summary)
}
