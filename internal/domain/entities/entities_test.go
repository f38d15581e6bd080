package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskCompletionPairing(t *testing.T) {
	task := Task{ID: NewID(), Title: "Revise chapter 3", Type: TaskTypeHomework}
	now := time.Now()

	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)

	// Any toggle sequence must keep completed and completedAt in lockstep.
	for i := 0; i < 5; i++ {
		task.ToggleCompleted(now)
		if task.Completed {
			assert.NotNil(t, task.CompletedAt)
			assert.Equal(t, now, *task.CompletedAt)
		} else {
			assert.Nil(t, task.CompletedAt)
		}
	}
}

func TestSessionCompletionPairing(t *testing.T) {
	session := StudySession{ID: NewID(), Title: "Review"}
	now := time.Now()

	session.ToggleCompleted(now)
	assert.True(t, session.Completed)
	assert.NotNil(t, session.CompletedAt)

	session.ToggleCompleted(now)
	assert.False(t, session.Completed)
	assert.Nil(t, session.CompletedAt)
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"empty", "", DefaultSessionTitle},
		{"whitespace", "   \t", DefaultSessionTitle},
		{"kept", "Flashcards", "Flashcards"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := StudySession{Title: tt.title}
			session.NormalizeTitle()
			assert.Equal(t, tt.want, session.Title)
		})
	}
}

func TestTaskTypeIsValid(t *testing.T) {
	for _, valid := range []TaskType{TaskTypeTask, TaskTypeAssignment, TaskTypeExam, TaskTypeHomework} {
		assert.True(t, valid.IsValid())
	}
	assert.False(t, TaskType("chore").IsValid())
	assert.False(t, TaskType("").IsValid())
}

func TestIsAssessment(t *testing.T) {
	assert.True(t, (&Task{Type: TaskTypeExam}).IsAssessment())
	assert.True(t, (&Task{Type: TaskTypeAssignment}).IsAssessment())
	assert.False(t, (&Task{Type: TaskTypeHomework}).IsAssessment())
	assert.False(t, (&Task{Type: TaskTypeTask}).IsAssessment())
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
