package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/kaicrotty88/MyStudyPlanner/internal/adapters/codec"
	"github.com/kaicrotty88/MyStudyPlanner/internal/domain/entities"
	"github.com/kaicrotty88/MyStudyPlanner/internal/infrastructure/logger"
	"github.com/kaicrotty88/MyStudyPlanner/internal/ports"
)

// PlannerService owns the subject, task, and study session collections and
// every mutation over them. Reads always come from memory; the snapshot
// repository is written after each mutation and only read back during
// Hydrate. Mutations are logically single-writer, the mutex just keeps
// concurrent handler goroutines from interleaving.
type PlannerService struct {
	repo      ports.SnapshotRepository
	logger    *logger.Logger
	retention time.Duration
	demo      bool
	now       func() time.Time

	mu   sync.Mutex
	snap codec.Snapshot
}

// NewPlannerService creates a new planner service. When demo is true, a
// missing snapshot seeds the demo dataset instead of an empty planner.
func NewPlannerService(repo ports.SnapshotRepository, retention time.Duration, demo bool, appLogger *logger.Logger) *PlannerService {
	return &PlannerService{
		repo:      repo,
		logger:    appLogger,
		retention: retention,
		demo:      demo,
		now:       time.Now,
	}
}

// Hydrate loads the stored snapshot into memory. It runs once at startup,
// before any mutation is accepted. A missing snapshot seeds the mode's
// starter state; a corrupt one is logged and replaced by the same seed, so
// the planner always comes up usable.
func (s *PlannerService) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrSnapshotNotFound) {
			s.snap = s.seed()
			s.logger.Info("No stored snapshot, seeded fresh state", "demo", s.demo)
			s.persist(ctx)
			return nil
		}
		return err
	}

	snap, err := codec.Decode(data)
	if err != nil {
		s.logger.Error("Stored snapshot is corrupt, falling back to seed", "error", err)
		s.snap = s.seed()
		return nil
	}

	s.snap = snap
	s.sweep()
	s.logger.Info("Snapshot hydrated",
		"subjects", len(s.snap.Subjects),
		"tasks", len(s.snap.Tasks),
		"sessions", len(s.snap.Sessions),
	)
	return nil
}

func (s *PlannerService) seed() codec.Snapshot {
	if s.demo {
		return demoSnapshot(s.now())
	}
	return codec.Snapshot{Subjects: entities.DefaultSubjects()}
}

// Accessors

func (s *PlannerService) Subjects() []entities.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Subject(nil), s.snap.Subjects...)
}

func (s *PlannerService) Tasks() []entities.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Task(nil), s.snap.Tasks...)
}

func (s *PlannerService) Sessions() []entities.StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.StudySession(nil), s.snap.Sessions...)
}

// Subject operations

// AddSubject creates a new subject. Invalid input declines the operation
// without mutating anything.
func (s *PlannerService) AddSubject(ctx context.Context, req ports.CreateSubjectRequest) (*entities.Subject, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, entities.ErrInvalidSubject
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subject := entities.Subject{
		ID:    entities.NewID(),
		Name:  req.Name,
		Color: req.Color,
	}
	s.snap.Subjects = append(s.snap.Subjects, subject)
	s.persist(ctx)

	s.logger.Info("Subject created", "subject_id", subject.ID, "name", subject.Name)
	return &subject, nil
}

// UpdateSubject updates a subject's display fields.
func (s *PlannerService) UpdateSubject(ctx context.Context, id string, req ports.UpdateSubjectRequest) (*entities.Subject, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, entities.ErrInvalidSubject
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subject := s.findSubject(id)
	if subject == nil {
		return nil, entities.ErrSubjectNotFound
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Color != nil {
		subject.Color = *req.Color
	}
	s.persist(ctx)

	updated := *subject
	return &updated, nil
}

// DeleteSubject removes a subject and cascades to every task and study
// session referencing it. The cascade completes before the snapshot is
// persisted, so no observer ever sees a half-deleted subject.
func (s *PlannerService) DeleteSubject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findSubject(id) == nil {
		return entities.ErrSubjectNotFound
	}

	subjects := s.snap.Subjects[:0]
	for _, sub := range s.snap.Subjects {
		if sub.ID != id {
			subjects = append(subjects, sub)
		}
	}
	s.snap.Subjects = subjects

	tasks := make([]entities.Task, 0, len(s.snap.Tasks))
	removedTasks := 0
	for _, t := range s.snap.Tasks {
		if t.SubjectID == id {
			removedTasks++
			continue
		}
		tasks = append(tasks, t)
	}
	s.snap.Tasks = tasks

	sessions := make([]entities.StudySession, 0, len(s.snap.Sessions))
	removedSessions := 0
	for _, ss := range s.snap.Sessions {
		if ss.SubjectID == id {
			removedSessions++
			continue
		}
		sessions = append(sessions, ss)
	}
	s.snap.Sessions = sessions

	s.persist(ctx)

	s.logger.Info("Subject deleted",
		"subject_id", id,
		"cascaded_tasks", removedTasks,
		"cascaded_sessions", removedSessions,
	)
	return nil
}

// Task operations

// AddTask creates a new task under an existing subject.
func (s *PlannerService) AddTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	if strings.TrimSpace(req.Title) == "" || !req.Type.IsValid() || req.DueDate.IsZero() {
		return nil, entities.ErrInvalidTask
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findSubject(req.SubjectID) == nil {
		return nil, entities.ErrSubjectNotFound
	}

	task := entities.Task{
		ID:        entities.NewID(),
		Title:     req.Title,
		SubjectID: req.SubjectID,
		DueDate:   req.DueDate,
		Type:      req.Type,
	}
	s.snap.Tasks = append(s.snap.Tasks, task)
	s.persist(ctx)

	s.logger.Info("Task created", "task_id", task.ID, "title", task.Title, "type", task.Type)
	return &task, nil
}

// UpdateTask updates a task's fields.
func (s *PlannerService) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, entities.ErrInvalidTask
	}
	if req.Type != nil && !req.Type.IsValid() {
		return nil, entities.ErrInvalidTask
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTask(id)
	if task == nil {
		return nil, entities.ErrTaskNotFound
	}
	if req.SubjectID != nil && s.findSubject(*req.SubjectID) == nil {
		return nil, entities.ErrSubjectNotFound
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.SubjectID != nil {
		task.SubjectID = *req.SubjectID
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Type != nil {
		task.Type = *req.Type
	}
	s.persist(ctx)

	updated := *task
	return &updated, nil
}

// DeleteTask removes a task. Study sessions linked to it are kept and
// unlinked, not deleted.
func (s *PlannerService) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findTask(id) == nil {
		return entities.ErrTaskNotFound
	}

	tasks := s.snap.Tasks[:0]
	for _, t := range s.snap.Tasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	s.snap.Tasks = tasks

	unlinked := 0
	for i := range s.snap.Sessions {
		if s.snap.Sessions[i].LinkedTaskID != nil && *s.snap.Sessions[i].LinkedTaskID == id {
			s.snap.Sessions[i].LinkedTaskID = nil
			unlinked++
		}
	}

	s.persist(ctx)

	s.logger.Info("Task deleted", "task_id", id, "unlinked_sessions", unlinked)
	return nil
}

// ToggleTaskCompleted flips a task's completion state, stamping or clearing
// completedAt as it goes.
func (s *PlannerService) ToggleTaskCompleted(ctx context.Context, id string) (*entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTask(id)
	if task == nil {
		return nil, entities.ErrTaskNotFound
	}

	task.ToggleCompleted(s.now())
	updated := *task
	s.persist(ctx)

	s.logger.Info("Task completion toggled", "task_id", id, "completed", updated.Completed)
	return &updated, nil
}

// Study session operations

// AddSession logs a new study session. A link target must be an existing
// exam or assignment task.
func (s *PlannerService) AddSession(ctx context.Context, req ports.CreateSessionRequest) (*entities.StudySession, error) {
	if req.Date.IsZero() {
		return nil, entities.ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findSubject(req.SubjectID) == nil {
		return nil, entities.ErrSubjectNotFound
	}
	if req.LinkedTaskID != nil && !s.isAssessment(*req.LinkedTaskID) {
		return nil, entities.ErrInvalidSession
	}

	session := entities.StudySession{
		ID:           entities.NewID(),
		SubjectID:    req.SubjectID,
		Title:        req.Title,
		Date:         req.Date,
		StartTime:    req.StartTime,
		Duration:     req.Duration,
		LinkedTaskID: req.LinkedTaskID,
	}
	session.NormalizeTitle()
	s.snap.Sessions = append(s.snap.Sessions, session)
	s.persist(ctx)

	s.logger.Info("Study session created", "session_id", session.ID, "subject_id", session.SubjectID)
	return &session, nil
}

// UpdateSession updates a study session's fields. ClearLink removes an
// existing task link.
func (s *PlannerService) UpdateSession(ctx context.Context, id string, req ports.UpdateSessionRequest) (*entities.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.findSession(id)
	if session == nil {
		return nil, entities.ErrSessionNotFound
	}
	if req.SubjectID != nil && s.findSubject(*req.SubjectID) == nil {
		return nil, entities.ErrSubjectNotFound
	}
	if req.LinkedTaskID != nil && !s.isAssessment(*req.LinkedTaskID) {
		return nil, entities.ErrInvalidSession
	}

	if req.SubjectID != nil {
		session.SubjectID = *req.SubjectID
	}
	if req.Title != nil {
		session.Title = *req.Title
		session.NormalizeTitle()
	}
	if req.Date != nil {
		session.Date = *req.Date
	}
	if req.StartTime != nil {
		session.StartTime = *req.StartTime
	}
	if req.Duration != nil {
		session.Duration = *req.Duration
	}
	if req.ClearLink {
		session.LinkedTaskID = nil
	} else if req.LinkedTaskID != nil {
		session.LinkedTaskID = req.LinkedTaskID
	}
	s.persist(ctx)

	updated := *session
	return &updated, nil
}

// DeleteSession removes a study session. Sessions are leaves, nothing
// cascades.
func (s *PlannerService) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findSession(id) == nil {
		return entities.ErrSessionNotFound
	}

	sessions := s.snap.Sessions[:0]
	for _, ss := range s.snap.Sessions {
		if ss.ID != id {
			sessions = append(sessions, ss)
		}
	}
	s.snap.Sessions = sessions
	s.persist(ctx)

	s.logger.Info("Study session deleted", "session_id", id)
	return nil
}

// ToggleSessionCompleted flips a session's completion state.
func (s *PlannerService) ToggleSessionCompleted(ctx context.Context, id string) (*entities.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.findSession(id)
	if session == nil {
		return nil, entities.ErrSessionNotFound
	}

	session.ToggleCompleted(s.now())
	updated := *session
	s.persist(ctx)

	s.logger.Info("Study session completion toggled", "session_id", id, "completed", updated.Completed)
	return &updated, nil
}

// Internals. All of these expect the mutex to be held.

func (s *PlannerService) findSubject(id string) *entities.Subject {
	for i := range s.snap.Subjects {
		if s.snap.Subjects[i].ID == id {
			return &s.snap.Subjects[i]
		}
	}
	return nil
}

func (s *PlannerService) findTask(id string) *entities.Task {
	for i := range s.snap.Tasks {
		if s.snap.Tasks[i].ID == id {
			return &s.snap.Tasks[i]
		}
	}
	return nil
}

func (s *PlannerService) findSession(id string) *entities.StudySession {
	for i := range s.snap.Sessions {
		if s.snap.Sessions[i].ID == id {
			return &s.snap.Sessions[i]
		}
	}
	return nil
}

func (s *PlannerService) isAssessment(taskID string) bool {
	task := s.findTask(taskID)
	return task != nil && task.IsAssessment()
}

// sweep hard-deletes completed tasks past the retention window.
func (s *PlannerService) sweep() {
	kept, removed := SweepCompletedTasks(s.snap.Tasks, s.now(), s.retention)
	if len(removed) == 0 {
		return
	}
	s.snap.Tasks = kept
	for _, t := range removed {
		s.logger.Info("Completed task swept", "task_id", t.ID, "completed_at", t.CompletedAt)
	}
}

// persist sweeps expired tasks, re-encodes the snapshot, and writes it out.
// The write is fire-and-forget: a failure leaves the in-memory state
// authoritative for the rest of the session, it just will not survive a
// restart.
func (s *PlannerService) persist(ctx context.Context) {
	s.sweep()

	data, err := codec.Encode(s.snap)
	if err != nil {
		s.logger.Error("Failed to encode snapshot", "error", err)
		return
	}

	if err := s.repo.Save(ctx, data); err != nil {
		s.logger.Warn("Failed to save snapshot, continuing with in-memory state", "error", err)
	}
}
