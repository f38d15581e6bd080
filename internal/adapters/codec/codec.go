// Package codec serializes the planner collections to a single JSON
// document and reconstructs them on load. Decoding is tolerant: a snapshot
// written by an older build may lack whole collections or individual date
// fields, and each gap fills with a default instead of failing the load.
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kaicrotty88/MyStudyPlanner/internal/domain/entities"
)

// FormatVersion identifies the current wire layout.
const FormatVersion = 1

// Snapshot holds the three entity collections as one unit.
type Snapshot struct {
	Subjects []entities.Subject
	Tasks    []entities.Task
	Sessions []entities.StudySession
}

// Wire layout. Dates travel as strings so a half-written or legacy value
// degrades to a field-level default instead of poisoning the whole blob.
type document struct {
	Version       int          `json:"version"`
	Subjects      []subjectDoc `json:"subjects"`
	Tasks         []taskDoc    `json:"tasks"`
	StudySessions []sessionDoc `json:"studySessions"`
}

type subjectDoc struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type taskDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	SubjectID   string `json:"subjectId"`
	DueDate     string `json:"dueDate"`
	Type        string `json:"type"`
	Completed   *bool  `json:"completed,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
}

type sessionDoc struct {
	ID           string  `json:"id"`
	SubjectID    string  `json:"subjectId"`
	Title        string  `json:"title"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	Duration     string  `json:"duration"`
	LinkedTaskID *string `json:"linkedTaskId,omitempty"`
	Completed    *bool   `json:"completed,omitempty"`
	CompletedAt  string  `json:"completedAt,omitempty"`
}

// Encode serializes a snapshot to its wire form.
func Encode(s Snapshot) ([]byte, error) {
	doc := document{
		Version:       FormatVersion,
		Subjects:      make([]subjectDoc, 0, len(s.Subjects)),
		Tasks:         make([]taskDoc, 0, len(s.Tasks)),
		StudySessions: make([]sessionDoc, 0, len(s.Sessions)),
	}

	for _, sub := range s.Subjects {
		doc.Subjects = append(doc.Subjects, subjectDoc(sub))
	}

	for _, t := range s.Tasks {
		td := taskDoc{
			ID:        t.ID,
			Title:     t.Title,
			SubjectID: t.SubjectID,
			DueDate:   t.DueDate.Format(time.RFC3339),
			Type:      string(t.Type),
		}
		if t.Completed {
			completed := true
			td.Completed = &completed
		}
		if t.CompletedAt != nil {
			td.CompletedAt = t.CompletedAt.Format(time.RFC3339)
		}
		doc.Tasks = append(doc.Tasks, td)
	}

	for _, ss := range s.Sessions {
		sd := sessionDoc{
			ID:           ss.ID,
			SubjectID:    ss.SubjectID,
			Title:        ss.Title,
			Date:         ss.Date.Format(time.RFC3339),
			StartTime:    ss.StartTime,
			Duration:     ss.Duration,
			LinkedTaskID: ss.LinkedTaskID,
		}
		if ss.Completed {
			completed := true
			sd.Completed = &completed
		}
		if ss.CompletedAt != nil {
			sd.CompletedAt = ss.CompletedAt.Format(time.RFC3339)
		}
		doc.StudySessions = append(doc.StudySessions, sd)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode reconstructs a snapshot from its wire form. An unparseable blob is
// the only error; structural gaps fill with defaults. Missing subjects fall
// back to the default subject list since a subject-less planner is unusable,
// while the other collections default to empty.
func Decode(data []byte) (Snapshot, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	now := time.Now()
	snap := Snapshot{
		Subjects: make([]entities.Subject, 0, len(doc.Subjects)),
		Tasks:    make([]entities.Task, 0, len(doc.Tasks)),
		Sessions: make([]entities.StudySession, 0, len(doc.StudySessions)),
	}

	if doc.Subjects == nil {
		snap.Subjects = entities.DefaultSubjects()
	}
	for _, sub := range doc.Subjects {
		snap.Subjects = append(snap.Subjects, entities.Subject(sub))
	}

	for _, td := range doc.Tasks {
		t := entities.Task{
			ID:        td.ID,
			Title:     td.Title,
			SubjectID: td.SubjectID,
			DueDate:   parseDate(td.DueDate, now),
			Type:      entities.TaskType(td.Type),
		}
		if !t.Type.IsValid() {
			t.Type = entities.TaskTypeTask
		}
		t.Completed, t.CompletedAt = parseCompletion(td.Completed, td.CompletedAt, now)
		snap.Tasks = append(snap.Tasks, t)
	}

	for _, sd := range doc.StudySessions {
		ss := entities.StudySession{
			ID:           sd.ID,
			SubjectID:    sd.SubjectID,
			Title:        sd.Title,
			Date:         parseDate(sd.Date, now),
			StartTime:    sd.StartTime,
			Duration:     sd.Duration,
			LinkedTaskID: sd.LinkedTaskID,
		}
		ss.NormalizeTitle()
		ss.Completed, ss.CompletedAt = parseCompletion(sd.Completed, sd.CompletedAt, now)
		snap.Sessions = append(snap.Sessions, ss)
	}

	return snap, nil
}

// parseDate reconstructs a stored date, defaulting to now when the field is
// missing or unparseable.
func parseDate(value string, now time.Time) time.Time {
	if value == "" {
		return now
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return now
	}
	return parsed
}

// parseCompletion restores the completed/completedAt pair, repairing a
// snapshot that recorded one half without the other in favor of the
// completed flag.
func parseCompletion(completed *bool, completedAt string, now time.Time) (bool, *time.Time) {
	if completed == nil || !*completed {
		return false, nil
	}
	ts := parseDate(completedAt, now)
	return true, &ts
}
