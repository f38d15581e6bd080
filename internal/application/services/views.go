package services

import (
	"sort"
	"time"

	"github.com/kaicrotty88/MyStudyPlanner/internal/domain/duration"
	"github.com/kaicrotty88/MyStudyPlanner/internal/domain/entities"
	"github.com/kaicrotty88/MyStudyPlanner/internal/ports"
)

// Derived views. Every query is a pure recomputation over the current
// collections; at hundreds of rows there is nothing worth caching or
// indexing.

// ItemsForDate returns the tasks due and sessions logged on a calendar day.
func (s *PlannerService) ItemsForDate(date time.Time) ports.DayItems {
	s.mu.Lock()
	defer s.mu.Unlock()
	return itemsForDate(s.snap.Tasks, s.snap.Sessions, date)
}

// MinutesBySubject totals parsed session minutes per subject within an
// optional day range, descending by minutes.
func (s *PlannerService) MinutesBySubject(r ports.TimeRange) []ports.SubjectMinutes {
	s.mu.Lock()
	defer s.mu.Unlock()
	return minutesBySubject(s.snap.Subjects, s.snap.Sessions, r)
}

// MinutesByAssessment totals session minutes per linked exam or assignment
// task, descending by minutes. Sessions whose link target was deleted or is
// not an assessment are excluded here but still count toward their subject.
func (s *PlannerService) MinutesByAssessment() []ports.AssessmentMinutes {
	s.mu.Lock()
	defer s.mu.Unlock()
	return minutesByAssessment(s.snap.Tasks, s.snap.Sessions)
}

// UpcomingDeadlines returns tasks due today or later, soonest first, capped
// at limit.
func (s *PlannerService) UpcomingDeadlines(limit int) []entities.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return upcomingDeadlines(s.snap.Tasks, s.now(), limit)
}

// Summary reports the top subject and most studied assessment by total
// minutes. These are advisory rankings: ties break on iteration order.
func (s *PlannerService) Summary() ports.PlannerSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := ports.PlannerSummary{}
	if subjects := minutesBySubject(s.snap.Subjects, s.snap.Sessions, ports.TimeRange{}); len(subjects) > 0 && subjects[0].Minutes > 0 {
		summary.TopSubject = &subjects[0]
	}
	if assessments := minutesByAssessment(s.snap.Tasks, s.snap.Sessions); len(assessments) > 0 {
		summary.MostStudiedAssessment = &assessments[0]
	}
	return summary
}

func itemsForDate(tasks []entities.Task, sessions []entities.StudySession, date time.Time) ports.DayItems {
	items := ports.DayItems{
		Tasks:    []entities.Task{},
		Sessions: []entities.StudySession{},
	}
	for _, t := range tasks {
		if sameDay(t.DueDate, date) {
			items.Tasks = append(items.Tasks, t)
		}
	}
	for _, ss := range sessions {
		if sameDay(ss.Date, date) {
			items.Sessions = append(items.Sessions, ss)
		}
	}
	return items
}

func minutesBySubject(subjects []entities.Subject, sessions []entities.StudySession, r ports.TimeRange) []ports.SubjectMinutes {
	totals := make(map[string]int)
	for _, ss := range sessions {
		if !inRange(ss.Date, r) {
			continue
		}
		totals[ss.SubjectID] += duration.ParseMinutes(ss.Duration)
	}

	names := make(map[string]string, len(subjects))
	for _, sub := range subjects {
		names[sub.ID] = sub.Name
	}

	result := make([]ports.SubjectMinutes, 0, len(totals))
	for subjectID, minutes := range totals {
		result = append(result, ports.SubjectMinutes{
			SubjectID: subjectID,
			Name:      names[subjectID],
			Minutes:   minutes,
			Display:   duration.FormatMinutes(minutes),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Minutes > result[j].Minutes
	})
	return result
}

func minutesByAssessment(tasks []entities.Task, sessions []entities.StudySession) []ports.AssessmentMinutes {
	assessments := make(map[string]entities.Task)
	for _, t := range tasks {
		if t.IsAssessment() {
			assessments[t.ID] = t
		}
	}

	totals := make(map[string]int)
	for _, ss := range sessions {
		if ss.LinkedTaskID == nil {
			continue
		}
		if _, ok := assessments[*ss.LinkedTaskID]; !ok {
			continue
		}
		totals[*ss.LinkedTaskID] += duration.ParseMinutes(ss.Duration)
	}

	result := make([]ports.AssessmentMinutes, 0, len(totals))
	for taskID, minutes := range totals {
		result = append(result, ports.AssessmentMinutes{
			TaskID:  taskID,
			Title:   assessments[taskID].Title,
			Minutes: minutes,
			Display: duration.FormatMinutes(minutes),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Minutes > result[j].Minutes
	})
	return result
}

func upcomingDeadlines(tasks []entities.Task, now time.Time, limit int) []entities.Task {
	today := truncateToDay(now)
	upcoming := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if !truncateToDay(t.DueDate).Before(today) {
			upcoming = append(upcoming, t)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// sameDay compares local wall-clock calendar days; time of day is not
// meaningful on planner dates.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func inRange(date time.Time, r ports.TimeRange) bool {
	day := truncateToDay(date)
	if r.From != nil && day.Before(truncateToDay(*r.From)) {
		return false
	}
	if r.To != nil && day.After(truncateToDay(*r.To)) {
		return false
	}
	return true
}
