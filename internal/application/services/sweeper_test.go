package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kaicrotty88/MyStudyPlanner/internal/domain/entities"
)

func completedTask(id string, completedAt time.Time) entities.Task {
	return entities.Task{
		ID:          id,
		Title:       id,
		Type:        entities.TaskTypeTask,
		Completed:   true,
		CompletedAt: &completedAt,
	}
}

func TestSweepCompletedTasksBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tasks := []entities.Task{
		completedTask("fresh", now.Add(-23*time.Hour)),
		completedTask("exact", now.Add(-24*time.Hour)),
		completedTask("stale", now.Add(-25*time.Hour)),
	}

	kept, removed := SweepCompletedTasks(tasks, now, DefaultRetentionWindow)

	// Exactly 24h old is not yet past the window.
	assert.Len(t, kept, 2)
	assert.Len(t, removed, 1)
	assert.Equal(t, "stale", removed[0].ID)
}

func TestSweepIgnoresIncompleteAndUnstamped(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tasks := []entities.Task{
		{ID: "open", Type: entities.TaskTypeTask},
		// Completed but never stamped, e.g. repaired legacy data.
		{ID: "unstamped", Type: entities.TaskTypeTask, Completed: true},
	}

	kept, removed := SweepCompletedTasks(tasks, now, DefaultRetentionWindow)
	assert.Len(t, kept, 2)
	assert.Empty(t, removed)
}

func TestSweepIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tasks := []entities.Task{
		{ID: "open", Type: entities.TaskTypeTask},
		completedTask("fresh", now.Add(-time.Hour)),
		completedTask("stale", now.Add(-48*time.Hour)),
	}

	first, removed := SweepCompletedTasks(tasks, now, DefaultRetentionWindow)
	assert.Len(t, removed, 1)

	second, removed := SweepCompletedTasks(first, now, DefaultRetentionWindow)
	assert.Empty(t, removed)
	assert.Equal(t, first, second)
}

func TestSweepCustomWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tasks := []entities.Task{completedTask("done", now.Add(-2*time.Hour))}

	kept, _ := SweepCompletedTasks(tasks, now, 72*time.Hour)
	assert.Len(t, kept, 1)

	kept, removed := SweepCompletedTasks(tasks, now, time.Hour)
	assert.Empty(t, kept)
	assert.Len(t, removed, 1)
}

func TestSweepEmptyList(t *testing.T) {
	kept, removed := SweepCompletedTasks(nil, time.Now(), DefaultRetentionWindow)
	assert.Empty(t, kept)
	assert.Empty(t, removed)
}
