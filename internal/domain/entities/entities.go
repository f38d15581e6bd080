package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrSessionNotFound = errors.New("study session not found")
	ErrInvalidSubject  = errors.New("invalid subject")
	ErrInvalidTask     = errors.New("invalid task")
	ErrInvalidSession  = errors.New("invalid study session")
)

// DefaultSessionTitle replaces blank study session titles.
const DefaultSessionTitle = "Study session"

// Enums and types
type TaskType string

const (
	TaskTypeTask       TaskType = "task"
	TaskTypeAssignment TaskType = "assignment"
	TaskTypeExam       TaskType = "exam"
	TaskTypeHomework   TaskType = "homework"
)

// Subject represents a user-defined study category
type Subject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Task represents a dated, typed work item under a subject
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	SubjectID   string     `json:"subjectId"`
	DueDate     time.Time  `json:"dueDate"`
	Type        TaskType   `json:"type"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// StudySession represents a logged block of study time
type StudySession struct {
	ID           string     `json:"id"`
	SubjectID    string     `json:"subjectId"`
	Title        string     `json:"title"`
	Date         time.Time  `json:"date"`
	StartTime    string     `json:"startTime"`
	Duration     string     `json:"duration"`
	LinkedTaskID *string    `json:"linkedTaskId,omitempty"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// NewID generates an opaque stable entity identifier
func NewID() string {
	return uuid.NewString()
}

// Business logic methods for Task
func (t *Task) MarkCompleted(now time.Time) {
	t.Completed = true
	t.CompletedAt = &now
}

func (t *Task) MarkIncomplete() {
	t.Completed = false
	t.CompletedAt = nil
}

// ToggleCompleted flips the completion state while keeping the
// completed/completedAt pairing intact.
func (t *Task) ToggleCompleted(now time.Time) {
	if t.Completed {
		t.MarkIncomplete()
	} else {
		t.MarkCompleted(now)
	}
}

// IsAssessment reports whether the task can be a study session link target.
func (t *Task) IsAssessment() bool {
	return t.Type == TaskTypeExam || t.Type == TaskTypeAssignment
}

func (t *Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate.Before(now)
}

// Business logic methods for StudySession
func (ss *StudySession) MarkCompleted(now time.Time) {
	ss.Completed = true
	ss.CompletedAt = &now
}

func (ss *StudySession) MarkIncomplete() {
	ss.Completed = false
	ss.CompletedAt = nil
}

func (ss *StudySession) ToggleCompleted(now time.Time) {
	if ss.Completed {
		ss.MarkIncomplete()
	} else {
		ss.MarkCompleted(now)
	}
}

// NormalizeTitle replaces blank or whitespace-only titles with the
// default placeholder.
func (ss *StudySession) NormalizeTitle() {
	if strings.TrimSpace(ss.Title) == "" {
		ss.Title = DefaultSessionTitle
	}
}

// Utility methods
func (tt TaskType) IsValid() bool {
	switch tt {
	case TaskTypeTask, TaskTypeAssignment, TaskTypeExam, TaskTypeHomework:
		return true
	default:
		return false
	}
}

// DefaultSubjects returns the subject list a fresh (or subject-less legacy)
// planner starts with. A planner without subjects is unusable, so these also
// fill in when a stored snapshot predates the subjects collection.
func DefaultSubjects() []Subject {
	return []Subject{
		{ID: NewID(), Name: "Mathematics", Color: "blue"},
		{ID: NewID(), Name: "Science", Color: "green"},
		{ID: NewID(), Name: "English", Color: "purple"},
	}
}
