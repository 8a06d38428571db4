package validation

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func messages(t *testing.T, err error) []string {
	t.Helper()
	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	return vErr.Messages
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]interface{}
		wantErrs []string
		check    func(*testing.T, model.Task)
	}{
		{
			name:  "defaults applied",
			input: map[string]interface{}{"title": "Buy milk", "description": "Two litres, skimmed"},
			check: func(t *testing.T, task model.Task) {
				assert.Equal(t, model.StatusPending, task.Status)
				assert.Equal(t, model.PriorityMedium, task.Priority)
				assert.Nil(t, task.DueDate)
				assert.Equal(t, []string{}, task.Tags)
			},
		},
		{
			name: "supplied values kept",
			input: map[string]interface{}{
				"title": "Buy milk", "description": "Two litres, skimmed",
				"status": "in-progress", "priority": "urgent",
			},
			check: func(t *testing.T, task model.Task) {
				assert.Equal(t, model.StatusInProgress, task.Status)
				assert.Equal(t, model.PriorityUrgent, task.Priority)
			},
		},
		{
			name:  "title and description trimmed",
			input: map[string]interface{}{"title": "  Buy milk  ", "description": "  Two litres, skimmed "},
			check: func(t *testing.T, task model.Task) {
				assert.Equal(t, "Buy milk", task.Title)
				assert.Equal(t, "Two litres, skimmed", task.Description)
			},
		},
		{
			name: "tags lowercased and trimmed, duplicates kept",
			input: map[string]interface{}{
				"title": "Buy milk", "description": "Two litres, skimmed",
				"tags": []interface{}{"WORK", " Urgent ", "work"},
			},
			check: func(t *testing.T, task model.Task) {
				assert.Equal(t, []string{"work", "urgent", "work"}, task.Tags)
			},
		},
		{
			name: "unknown fields dropped",
			input: map[string]interface{}{
				"title": "Buy milk", "description": "Two litres, skimmed", "owner": "bob",
			},
			check: func(t *testing.T, task model.Task) {
				assert.Equal(t, "Buy milk", task.Title)
			},
		},
		{
			name: "null due date means none",
			input: map[string]interface{}{
				"title": "Buy milk", "description": "Two litres, skimmed", "dueDate": nil,
			},
			check: func(t *testing.T, task model.Task) {
				assert.Nil(t, task.DueDate)
			},
		},
		{
			name: "future due date accepted",
			input: map[string]interface{}{
				"title": "Buy milk", "description": "Two litres, skimmed",
				"dueDate": now.Add(24 * time.Hour).Format(time.RFC3339),
			},
			check: func(t *testing.T, task model.Task) {
				require.NotNil(t, task.DueDate)
				assert.True(t, task.DueDate.Equal(now.Add(24*time.Hour)))
			},
		},
		{
			name:     "missing required fields",
			input:    map[string]interface{}{},
			wantErrs: []string{"Title is required", "Description is required"},
		},
		{
			name:  "every violation reported",
			input: map[string]interface{}{"title": "Ab", "description": "Short"},
			wantErrs: []string{
				"Title must be at least 3 characters long",
				"Description must be at least 10 characters long",
			},
		},
		{
			name: "enum violations",
			input: map[string]interface{}{
				"title": "Buy milk", "description": "Two litres, skimmed",
				"status": "done", "priority": "critical",
			},
			wantErrs: []string{
				"Status must be one of: pending, in-progress, completed, cancelled",
				"Priority must be one of: low, medium, high, urgent",
			},
		},
		{
			name: "due date in the past",
			input: map[string]interface{}{
				"title": "Buy milk", "description": "Two litres, skimmed",
				"dueDate": now.Add(-24 * time.Hour).Format(time.RFC3339),
			},
			wantErrs: []string{"Due date must be in the future"},
		},
		{
			name: "due date exactly now",
			input: map[string]interface{}{
				"title": "Buy milk", "description": "Two litres, skimmed",
				"dueDate": now.Format(time.RFC3339),
			},
			wantErrs: []string{"Due date must be in the future"},
		},
		{
			name: "garbage due date",
			input: map[string]interface{}{
				"title": "Buy milk", "description": "Two litres, skimmed", "dueDate": "next tuesday",
			},
			wantErrs: []string{"Due date must be a valid date"},
		},
		{
			name: "wrong types",
			input: map[string]interface{}{
				"title": 42.0, "description": nil, "tags": "work",
			},
			wantErrs: []string{
				"Title must be a string",
				"Description must be a string",
				"Tags must be an array of strings",
			},
		},
		{
			name:     "blank title",
			input:    map[string]interface{}{"title": "   ", "description": "Two litres, skimmed"},
			wantErrs: []string{"Title is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := Create(tt.input, now)

			if tt.wantErrs != nil {
				assert.Equal(t, tt.wantErrs, messages(t, err))
				return
			}
			require.NoError(t, err)
			tt.check(t, task)
		})
	}
}

func TestCreate_LengthBoundaries(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		wantErr     string
	}{
		{"title of 3", "abc", strings.Repeat("d", 10), ""},
		{"title of 2", "ab", strings.Repeat("d", 10), "Title must be at least 3 characters long"},
		{"title of 100", strings.Repeat("t", 100), strings.Repeat("d", 10), ""},
		{"title of 101", strings.Repeat("t", 101), strings.Repeat("d", 10), "Title cannot exceed 100 characters"},
		{"description of 10", "abc", strings.Repeat("d", 10), ""},
		{"description of 9", "abc", strings.Repeat("d", 9), "Description must be at least 10 characters long"},
		{"description of 500", "abc", strings.Repeat("d", 500), ""},
		{"description of 501", "abc", strings.Repeat("d", 501), "Description cannot exceed 500 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(map[string]interface{}{"title": tt.title, "description": tt.description}, now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, []string{tt.wantErr}, messages(t, err))
		})
	}
}

func TestCreate_EpochDueDates(t *testing.T) {
	base := map[string]interface{}{"title": "abc", "description": "0123456789"}
	tomorrow := float64(now.Add(24 * time.Hour).UnixMilli())

	tests := []struct {
		name    string
		dueDate interface{}
		wantErr string
	}{
		{"future millis", tomorrow, ""},
		{"future millis as json number", json.Number("1893456000000"), ""},
		{"past millis", float64(now.Add(-time.Hour).UnixMilli()), "Due date must be in the future"},
		{"year 10000 in millis", float64(253402300800000), "Due date must be a valid date"},
		{"beyond date range", 9e15, "Due date must be a valid date"},
		{"far beyond int64", 1e300, "Due date must be a valid date"},
		{"negative beyond date range", -9e15, "Due date must be a valid date"},
		{"infinity", math.Inf(1), "Due date must be a valid date"},
		{"not a number", math.NaN(), "Due date must be a valid date"},
		{"json number beyond range", json.Number("9e15"), "Due date must be a valid date"},
		{"year 10000 string", "10000-01-01", "Due date must be a valid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := map[string]interface{}{"dueDate": tt.dueDate}
			for k, v := range base {
				input[k] = v
			}

			task, err := Create(input, now)
			if tt.wantErr == "" {
				require.NoError(t, err)
				require.NotNil(t, task.DueDate)
				assert.True(t, task.DueDate.After(now))
				return
			}
			assert.Equal(t, []string{tt.wantErr}, messages(t, err))
		})
	}
}

func TestUpdate(t *testing.T) {
	t.Run("empty payload is a no-op", func(t *testing.T) {
		patch, err := Update(map[string]interface{}{"unknown": true}, now)
		require.NoError(t, err)
		assert.True(t, patch.Empty())
	})

	t.Run("partial fields", func(t *testing.T) {
		patch, err := Update(map[string]interface{}{"status": "completed", "tags": []interface{}{"Home"}}, now)
		require.NoError(t, err)
		require.NotNil(t, patch.Status)
		assert.Equal(t, model.StatusCompleted, *patch.Status)
		require.NotNil(t, patch.Tags)
		assert.Equal(t, []string{"home"}, *patch.Tags)
		assert.Nil(t, patch.Title)
	})

	t.Run("null due date clears it", func(t *testing.T) {
		patch, err := Update(map[string]interface{}{"dueDate": nil}, now)
		require.NoError(t, err)
		assert.True(t, patch.ClearDueDate)
		assert.Nil(t, patch.DueDate)
	})

	t.Run("epoch millis due date", func(t *testing.T) {
		due := now.Add(72 * time.Hour)
		patch, err := Update(map[string]interface{}{"dueDate": float64(due.UnixMilli())}, now)
		require.NoError(t, err)
		require.NotNil(t, patch.DueDate)
		assert.True(t, patch.DueDate.Equal(due))
	})

	t.Run("empty title uses update message", func(t *testing.T) {
		_, err := Update(map[string]interface{}{"title": "", "description": "tiny"}, now)
		assert.Equal(t, []string{
			"Title cannot be empty",
			"Description must be at least 10 characters long",
		}, messages(t, err))
	})
}
