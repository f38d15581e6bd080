package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaicrotty88/MyStudyPlanner/internal/domain/entities"
)

func sampleSnapshot() Snapshot {
	completedAt := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)
	linked := "task-1"
	return Snapshot{
		Subjects: []entities.Subject{
			{ID: "sub-1", Name: "Mathematics", Color: "blue"},
			{ID: "sub-2", Name: "History", Color: "orange"},
		},
		Tasks: []entities.Task{
			{
				ID:        "task-1",
				Title:     "Algebra exam",
				SubjectID: "sub-1",
				DueDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
				Type:      entities.TaskTypeExam,
			},
			{
				ID:          "task-2",
				Title:       "Essay draft",
				SubjectID:   "sub-2",
				DueDate:     time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
				Type:        entities.TaskTypeAssignment,
				Completed:   true,
				CompletedAt: &completedAt,
			},
		},
		Sessions: []entities.StudySession{
			{
				ID:           "sess-1",
				SubjectID:    "sub-1",
				Title:        "Practice problems",
				Date:         time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
				StartTime:    "17:00",
				Duration:     "1h 30m",
				LinkedTaskID: &linked,
			},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	original := sampleSnapshot()

	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, original.Subjects, decoded.Subjects)
	assert.Equal(t, len(original.Tasks), len(decoded.Tasks))
	for i := range original.Tasks {
		assert.Equal(t, original.Tasks[i].ID, decoded.Tasks[i].ID)
		assert.Equal(t, original.Tasks[i].Title, decoded.Tasks[i].Title)
		assert.Equal(t, original.Tasks[i].Type, decoded.Tasks[i].Type)
		assert.True(t, original.Tasks[i].DueDate.Equal(decoded.Tasks[i].DueDate))
		assert.Equal(t, original.Tasks[i].Completed, decoded.Tasks[i].Completed)
	}
	require.NotNil(t, decoded.Tasks[1].CompletedAt)
	assert.True(t, original.Tasks[1].CompletedAt.Equal(*decoded.Tasks[1].CompletedAt))

	require.Len(t, decoded.Sessions, 1)
	assert.Equal(t, original.Sessions[0].Title, decoded.Sessions[0].Title)
	assert.Equal(t, original.Sessions[0].Duration, decoded.Sessions[0].Duration)
	require.NotNil(t, decoded.Sessions[0].LinkedTaskID)
	assert.Equal(t, "task-1", *decoded.Sessions[0].LinkedTaskID)
}

func TestDecodeCorruptBlob(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestDecodeLegacyMissingCollections(t *testing.T) {
	// A blob from before the subjects collection existed.
	decoded, err := Decode([]byte(`{"tasks":[],"studySessions":[]}`))
	require.NoError(t, err)

	// A planner without subjects is unusable, so the defaults fill in.
	assert.Len(t, decoded.Subjects, 3)
	assert.Empty(t, decoded.Tasks)
	assert.Empty(t, decoded.Sessions)
}

func TestDecodeMissingTasksAndSessions(t *testing.T) {
	decoded, err := Decode([]byte(`{"subjects":[{"id":"s1","name":"Art","color":"red"}]}`))
	require.NoError(t, err)

	assert.Equal(t, []entities.Subject{{ID: "s1", Name: "Art", Color: "red"}}, decoded.Subjects)
	assert.Empty(t, decoded.Tasks)
	assert.Empty(t, decoded.Sessions)
}

func TestDecodeDateDefaults(t *testing.T) {
	before := time.Now()
	decoded, err := Decode([]byte(`{
		"subjects":[{"id":"s1","name":"Art","color":"red"}],
		"tasks":[{"id":"t1","title":"Sketch","subjectId":"s1","type":"task","dueDate":"not-a-date"}],
		"studySessions":[{"id":"x1","subjectId":"s1","title":"Warmup"}]
	}`))
	require.NoError(t, err)
	after := time.Now()

	// Missing or unparseable dates reconstruct to "now" instead of failing.
	require.Len(t, decoded.Tasks, 1)
	assert.False(t, decoded.Tasks[0].DueDate.Before(before))
	assert.False(t, decoded.Tasks[0].DueDate.After(after))

	require.Len(t, decoded.Sessions, 1)
	assert.False(t, decoded.Sessions[0].Date.Before(before))
}

func TestDecodeRepairsCompletionPairing(t *testing.T) {
	decoded, err := Decode([]byte(`{
		"subjects":[],
		"tasks":[
			{"id":"t1","title":"A","subjectId":"s1","type":"task","completed":true},
			{"id":"t2","title":"B","subjectId":"s1","type":"task","completedAt":"2026-01-01T10:00:00Z"}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, decoded.Tasks, 2)

	// completed without completedAt gets a timestamp; completedAt without
	// completed is dropped.
	assert.True(t, decoded.Tasks[0].Completed)
	assert.NotNil(t, decoded.Tasks[0].CompletedAt)
	assert.False(t, decoded.Tasks[1].Completed)
	assert.Nil(t, decoded.Tasks[1].CompletedAt)
}

func TestDecodeNormalizesSessionTitles(t *testing.T) {
	decoded, err := Decode([]byte(`{
		"subjects":[],
		"studySessions":[
			{"id":"x1","subjectId":"s1","title":"  ","date":"2026-03-11T00:00:00Z"},
			{"id":"x2","subjectId":"s1","title":"Flashcards","date":"2026-03-11T00:00:00Z"}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, decoded.Sessions, 2)

	assert.Equal(t, entities.DefaultSessionTitle, decoded.Sessions[0].Title)
	assert.Equal(t, "Flashcards", decoded.Sessions[1].Title)
}

func TestDecodeUnknownTaskType(t *testing.T) {
	decoded, err := Decode([]byte(`{
		"subjects":[],
		"tasks":[{"id":"t1","title":"A","subjectId":"s1","type":"chore","dueDate":"2026-01-01T00:00:00Z"}]
	}`))
	require.NoError(t, err)
	require.Len(t, decoded.Tasks, 1)
	assert.Equal(t, entities.TaskTypeTask, decoded.Tasks[0].Type)
}
