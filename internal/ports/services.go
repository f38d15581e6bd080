package ports

import (
	"context"
	"time"

	"github.com/kaicrotty88/MyStudyPlanner/internal/domain/entities"
)

// PlannerService is the entity store: it owns the subject, task, and study
// session collections and every mutation that touches them.
type PlannerService interface {
	Hydrate(ctx context.Context) error

	Subjects() []entities.Subject
	AddSubject(ctx context.Context, req CreateSubjectRequest) (*entities.Subject, error)
	UpdateSubject(ctx context.Context, id string, req UpdateSubjectRequest) (*entities.Subject, error)
	DeleteSubject(ctx context.Context, id string) error

	Tasks() []entities.Task
	AddTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ToggleTaskCompleted(ctx context.Context, id string) (*entities.Task, error)

	Sessions() []entities.StudySession
	AddSession(ctx context.Context, req CreateSessionRequest) (*entities.StudySession, error)
	UpdateSession(ctx context.Context, id string, req UpdateSessionRequest) (*entities.StudySession, error)
	DeleteSession(ctx context.Context, id string) error
	ToggleSessionCompleted(ctx context.Context, id string) (*entities.StudySession, error)
}

// ViewService answers read-only queries over the current collections.
type ViewService interface {
	ItemsForDate(date time.Time) DayItems
	MinutesBySubject(r TimeRange) []SubjectMinutes
	MinutesByAssessment() []AssessmentMinutes
	UpcomingDeadlines(limit int) []entities.Task
	Summary() PlannerSummary
}

// Request/Response Types

// Subject related types
type CreateSubjectRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}

type UpdateSubjectRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Color *string `json:"color"`
}

// Task related types
type CreateTaskRequest struct {
	Title     string            `json:"title" validate:"required"`
	SubjectID string            `json:"subjectId" validate:"required"`
	DueDate   time.Time         `json:"dueDate" validate:"required"`
	Type      entities.TaskType `json:"type" validate:"required,oneof=task assignment exam homework"`
}

type UpdateTaskRequest struct {
	Title     *string            `json:"title" validate:"omitempty,min=1"`
	SubjectID *string            `json:"subjectId"`
	DueDate   *time.Time         `json:"dueDate"`
	Type      *entities.TaskType `json:"type" validate:"omitempty,oneof=task assignment exam homework"`
}

// Study session related types
type CreateSessionRequest struct {
	SubjectID    string    `json:"subjectId" validate:"required"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date" validate:"required"`
	StartTime    string    `json:"startTime"`
	Duration     string    `json:"duration"`
	LinkedTaskID *string   `json:"linkedTaskId"`
}

type UpdateSessionRequest struct {
	SubjectID    *string    `json:"subjectId"`
	Title        *string    `json:"title"`
	Date         *time.Time `json:"date"`
	StartTime    *string    `json:"startTime"`
	Duration     *string    `json:"duration"`
	LinkedTaskID *string    `json:"linkedTaskId"`
	ClearLink    bool       `json:"clearLink"`
}

// View related types

// TimeRange bounds a query by calendar day; nil ends are unbounded.
type TimeRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

type DayItems struct {
	Tasks    []entities.Task         `json:"tasks"`
	Sessions []entities.StudySession `json:"sessions"`
}

type SubjectMinutes struct {
	SubjectID string `json:"subjectId"`
	Name      string `json:"name"`
	Minutes   int    `json:"minutes"`
	Display   string `json:"display"`
}

type AssessmentMinutes struct {
	TaskID  string `json:"taskId"`
	Title   string `json:"title"`
	Minutes int    `json:"minutes"`
	Display string `json:"display"`
}

type PlannerSummary struct {
	TopSubject            *SubjectMinutes    `json:"topSubject"`
	MostStudiedAssessment *AssessmentMinutes `json:"mostStudiedAssessment"`
}
