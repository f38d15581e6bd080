package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kaicrotty88/MyStudyPlanner/internal/infrastructure/logger"
	"github.com/kaicrotty88/MyStudyPlanner/internal/ports"
)

// SessionHandler handles study session requests
type SessionHandler struct {
	planner ports.PlannerService
	logger  *logger.Logger
}

// NewSessionHandler creates a new study session handler
func NewSessionHandler(planner ports.PlannerService, logger *logger.Logger) *SessionHandler {
	return &SessionHandler{
		planner: planner,
		logger:  logger,
	}
}

// ListSessions returns all study sessions
func (h *SessionHandler) ListSessions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.planner.Sessions())
}

// CreateSession logs a new study session
func (h *SessionHandler) CreateSession(c echo.Context) error {
	var req ports.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.planner.AddSession(c.Request().Context(), req)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, session)
}

// UpdateSession handles study session updates
func (h *SessionHandler) UpdateSession(c echo.Context) error {
	var req ports.UpdateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.planner.UpdateSession(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, session)
}

// DeleteSession handles study session deletion
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	if err := h.planner.DeleteSession(c.Request().Context(), c.Param("id")); err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Study session deleted"})
}

// ToggleSession flips a study session's completion state
func (h *SessionHandler) ToggleSession(c echo.Context) error {
	session, err := h.planner.ToggleSessionCompleted(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, session)
}
