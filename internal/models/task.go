package models

import (
	"time"
)

// TaskStatus is the lifecycle state of an asynchronous extraction task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
	StatusCancelled TaskStatus = "cancelled"
)

// ExtractionTask tracks one queued file extraction. The pipeline itself is
// synchronous and stateless; tasks only exist for the batch API.
type ExtractionTask struct {
	ID        string            `json:"id"`
	Status    TaskStatus        `json:"status"`
	Type      string            `json:"type"`
	Progress  float64           `json:"progress"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt,omitempty"`
}
