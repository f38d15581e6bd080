package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kaicrotty88/MyStudyPlanner/internal/domain/entities"
	"github.com/kaicrotty88/MyStudyPlanner/internal/infrastructure/logger"
	"github.com/kaicrotty88/MyStudyPlanner/internal/ports"
)

// SubjectHandler handles subject-related requests
type SubjectHandler struct {
	planner ports.PlannerService
	logger  *logger.Logger
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(planner ports.PlannerService, logger *logger.Logger) *SubjectHandler {
	return &SubjectHandler{
		planner: planner,
		logger:  logger,
	}
}

// ListSubjects returns all subjects
func (h *SubjectHandler) ListSubjects(c echo.Context) error {
	return c.JSON(http.StatusOK, h.planner.Subjects())
}

// CreateSubject handles subject creation
func (h *SubjectHandler) CreateSubject(c echo.Context) error {
	var req ports.CreateSubjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	subject, err := h.planner.AddSubject(c.Request().Context(), req)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, subject)
}

// UpdateSubject handles subject updates
func (h *SubjectHandler) UpdateSubject(c echo.Context) error {
	var req ports.UpdateSubjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	subject, err := h.planner.UpdateSubject(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, subject)
}

// DeleteSubject handles subject deletion, cascading to dependent tasks and
// study sessions.
func (h *SubjectHandler) DeleteSubject(c echo.Context) error {
	if err := h.planner.DeleteSubject(c.Request().Context(), c.Param("id")); err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Subject deleted"})
}

// TaskHandler handles task-related requests
type TaskHandler struct {
	planner ports.PlannerService
	views   ports.ViewService
	logger  *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(planner ports.PlannerService, views ports.ViewService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		planner: planner,
		views:   views,
		logger:  logger,
	}
}

// ListTasks returns all tasks
func (h *TaskHandler) ListTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.planner.Tasks())
}

// CreateTask handles task creation
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.planner.AddTask(c.Request().Context(), req)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// UpdateTask handles task updates
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.planner.UpdateTask(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles task deletion. Linked study sessions survive with
// their link cleared.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	if err := h.planner.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}

// ToggleTask flips a task's completion state
func (h *TaskHandler) ToggleTask(c echo.Context) error {
	task, err := h.planner.ToggleTaskCompleted(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// GetDeadlines returns upcoming task deadlines, soonest first
func (h *TaskHandler) GetDeadlines(c echo.Context) error {
	limit := intQueryParam(c, "limit", 5)
	return c.JSON(http.StatusOK, h.views.UpcomingDeadlines(limit))
}

// Utility functions and helper types

// mapDomainError translates store sentinels into HTTP errors. The store
// itself never surfaces these to the user; the adapter decides.
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, entities.ErrSubjectNotFound),
		errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrInvalidSubject),
		errors.Is(err, entities.ErrInvalidTask),
		errors.Is(err, entities.ErrInvalidSession):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal error")
	}
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
