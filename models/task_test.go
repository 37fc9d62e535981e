package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

func TestNewTask(t *testing.T) {
	task := NewTask("  Buy milk  ", "", "", fixedNow)

	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, DefaultCategory, task.Category)
	assert.False(t, task.Completed)
	assert.Equal(t, "2025-03-14 09:26:53", task.CreatedDate)
	assert.Nil(t, task.CompletedDate)
	assert.Zero(t, task.ID)
}

func TestTask_CompletionTransitions(t *testing.T) {
	task := NewTask("Pay rent", "due monthly", "Urgent", fixedNow)

	later := fixedNow.Add(2 * time.Hour)
	task.MarkCompleted(later)
	require.True(t, task.Completed)
	require.NotNil(t, task.CompletedDate)
	assert.Equal(t, "2025-03-14 11:26:53", *task.CompletedDate)

	task.MarkIncomplete()
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedDate)
	assert.Equal(t, "2025-03-14 09:26:53", task.CreatedDate, "created_date never changes")
}

func TestTask_String(t *testing.T) {
	task := NewTask("Pay rent", "", "Urgent", fixedNow)
	task.ID = 2
	assert.Equal(t, "○ [2] Pay rent (Urgent)", task.String())

	task.MarkCompleted(fixedNow)
	assert.Equal(t, "✓ [2] Pay rent (Urgent)", task.String())
}

func TestTask_RecordIsFieldComplete(t *testing.T) {
	task := NewTask("Buy milk", "", "General", fixedNow)
	task.ID = 1

	data, err := json.Marshal(task.Record())
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range []string{"title", "description", "category", "completed", "created_date", "task_id", "completed_date"} {
		assert.Contains(t, fields, key)
	}
	assert.Nil(t, fields["completed_date"], "completed_date is null while incomplete")
	assert.Equal(t, float64(1), fields["task_id"])
}

func TestFromRecord_Defaults(t *testing.T) {
	task, hasID := FromRecord(Record{Title: "Legacy"}, fixedNow)

	assert.False(t, hasID)
	assert.Equal(t, "Legacy", task.Title)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, DefaultCategory, task.Category)
	assert.False(t, task.Completed)
	assert.Equal(t, fixedNow.Format(TimestampLayout), task.CreatedDate)
	assert.Nil(t, task.CompletedDate)
}

func TestFromRecord_RoundTrip(t *testing.T) {
	original := NewTask("Pay rent", "due monthly", "Urgent", fixedNow)
	original.ID = 7
	original.MarkCompleted(fixedNow.Add(time.Minute))

	restored, hasID := FromRecord(original.Record(), time.Now())

	assert.True(t, hasID)
	assert.Equal(t, original, restored)
}

func TestFromRecord_NonPositiveIDIsReassigned(t *testing.T) {
	for _, id := range []int{0, -3} {
		task, hasID := FromRecord(Record{Title: "Buy milk", TaskID: &id}, fixedNow)
		assert.False(t, hasID, "task_id %d", id)
		assert.Equal(t, 0, task.ID)
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		wantErr bool
	}{
		{
			name: "valid record",
			rec:  Record{Title: "Buy milk"},
		},
		{
			name:    "empty title",
			rec:     Record{Title: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.rec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
