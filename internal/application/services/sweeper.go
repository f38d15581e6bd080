package services

import (
	"time"

	"github.com/kaicrotty88/MyStudyPlanner/internal/domain/entities"
)

// DefaultRetentionWindow is how long a completed task survives before the
// sweeper hard-deletes it.
const DefaultRetentionWindow = 24 * time.Hour

// SweepCompletedTasks partitions tasks into kept and removed. A task is
// removed when it is completed, carries a completion timestamp, and that
// timestamp is older than the window. Removal is a hard delete with no
// archive tier; the intent is decluttering, not history. Sweeping a list
// with nothing expired keeps every task, so repeated sweeps are idempotent.
func SweepCompletedTasks(tasks []entities.Task, now time.Time, window time.Duration) (kept, removed []entities.Task) {
	kept = make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed && t.CompletedAt != nil && now.Sub(*t.CompletedAt) > window {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	return kept, removed
}
