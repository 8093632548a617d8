package queue

import (
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
)

func TestStatusKey(t *testing.T) {
	assert.Equal(t, "task_status:abc-123", statusKey("abc-123"))
}

func TestConvertAsynqStatus(t *testing.T) {
	done := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for _, tt := range []struct {
		state    asynq.TaskState
		status   string
		progress float64
	}{
		{asynq.TaskStatePending, "pending", 0},
		{asynq.TaskStateActive, "running", 0.5},
		{asynq.TaskStateCompleted, "completed", 1.0},
		{asynq.TaskStateRetry, "failed", 0},
		{asynq.TaskStateArchived, "failed", 0},
		{asynq.TaskStateScheduled, "pending", 0},
	} {
		got := convertAsynqStatus(&asynq.TaskInfo{
			ID:          "t1",
			State:       tt.state,
			LastErr:     "last error",
			CompletedAt: done,
		})
		assert.Equal(t, "t1", got.TaskID)
		assert.Equal(t, tt.status, got.Status, tt.state.String())
		assert.Equal(t, tt.progress, got.Progress, tt.state.String())
	}
}

func TestConvertAsynqStatusCarriesError(t *testing.T) {
	got := convertAsynqStatus(&asynq.TaskInfo{ID: "t2", State: asynq.TaskStateArchived, LastErr: "boom"})
	assert.Equal(t, "boom", got.Error)
}
