package services

import (
	"time"

	"github.com/kaicrotty88/MyStudyPlanner/internal/adapters/codec"
	"github.com/kaicrotty88/MyStudyPlanner/internal/domain/entities"
)

// demoSnapshot builds the fixed demo dataset used when the planner runs in
// demo mode and no snapshot exists yet. Dates are relative to now so the
// demo always shows an active week.
func demoSnapshot(now time.Time) codec.Snapshot {
	subjects := entities.DefaultSubjects()
	math, science := subjects[0], subjects[1]

	exam := entities.Task{
		ID:        entities.NewID(),
		Title:     "Algebra midterm",
		SubjectID: math.ID,
		DueDate:   now.AddDate(0, 0, 5),
		Type:      entities.TaskTypeExam,
	}
	assignment := entities.Task{
		ID:        entities.NewID(),
		Title:     "Lab report: titration",
		SubjectID: science.ID,
		DueDate:   now.AddDate(0, 0, 3),
		Type:      entities.TaskTypeAssignment,
	}
	homework := entities.Task{
		ID:        entities.NewID(),
		Title:     "Problem set 4",
		SubjectID: math.ID,
		DueDate:   now.AddDate(0, 0, 1),
		Type:      entities.TaskTypeHomework,
	}

	sessions := []entities.StudySession{
		{
			ID:           entities.NewID(),
			SubjectID:    math.ID,
			Title:        "Quadratics review",
			Date:         now,
			StartTime:    "16:00",
			Duration:     "1h 30m",
			LinkedTaskID: &exam.ID,
		},
		{
			ID:           entities.NewID(),
			SubjectID:    science.ID,
			Title:        entities.DefaultSessionTitle,
			Date:         now.AddDate(0, 0, 1),
			StartTime:    "after school",
			Duration:     "45 min",
			LinkedTaskID: &assignment.ID,
		},
	}

	return codec.Snapshot{
		Subjects: subjects,
		Tasks:    []entities.Task{exam, assignment, homework},
		Sessions: sessions,
	}
}
