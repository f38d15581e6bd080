package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kaicrotty88/MyStudyPlanner/internal/infrastructure/logger"
	"github.com/kaicrotty88/MyStudyPlanner/internal/ports"
)

// dateLayout is the wire format for calendar-day query parameters.
const dateLayout = "2006-01-02"

// ViewsHandler serves the derived read-only queries the dashboard and
// calendar are built from.
type ViewsHandler struct {
	views  ports.ViewService
	logger *logger.Logger
}

// NewViewsHandler creates a new views handler
func NewViewsHandler(views ports.ViewService, logger *logger.Logger) *ViewsHandler {
	return &ViewsHandler{
		views:  views,
		logger: logger,
	}
}

// GetDay returns the tasks due and sessions logged on one calendar day.
// Defaults to today when no date is given.
func (h *ViewsHandler) GetDay(c echo.Context) error {
	date := time.Now()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}

	return c.JSON(http.StatusOK, h.views.ItemsForDate(date))
}

// GetSubjectMinutes returns per-subject study time totals, optionally
// bounded by from/to calendar days.
func (h *ViewsHandler) GetSubjectMinutes(c echo.Context) error {
	var r ports.TimeRange

	if raw := c.QueryParam("from"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
		}
		r.From = &parsed
	}
	if raw := c.QueryParam("to"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
		}
		r.To = &parsed
	}

	return c.JSON(http.StatusOK, h.views.MinutesBySubject(r))
}

// GetAssessmentMinutes returns study time totals grouped by linked
// assessment task.
func (h *ViewsHandler) GetAssessmentMinutes(c echo.Context) error {
	return c.JSON(http.StatusOK, h.views.MinutesByAssessment())
}

// GetSummary returns the dashboard headline numbers.
func (h *ViewsHandler) GetSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.views.Summary())
}
