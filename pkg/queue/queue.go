package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	cfg "github.com/filecraft/extractor/config"
)

// TaskTypeFileExtract is the asynq task type for one queued file extraction.
const TaskTypeFileExtract = "file:extract"

// Queue is the task queue used by the batch extraction API.
type Queue interface {
	Enqueue(ctx context.Context, task *Task) error
	GetTaskStatus(ctx context.Context, taskID string) (*TaskStatus, error)
	CancelTask(ctx context.Context, taskID string) error
	SaveStatus(ctx context.Context, status *TaskStatus) error
}

// Task carries one file extraction through the queue. The raw bytes live in
// object storage; the payload references them by key.
type Task struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	ObjectKey string            `json:"objectKey"`
	Filename  string            `json:"filename"`
	MimeType  string            `json:"mimeType"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt time.Time         `json:"createdAt"`
}

// TaskStatus is the queue-side view of a task.
type TaskStatus struct {
	TaskID     string    `json:"taskId"`
	Status     string    `json:"status"`
	Progress   float64   `json:"progress"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt,omitempty"`
}

// AsynqQueue backs Queue with asynq plus a redis hash for final statuses.
type AsynqQueue struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	redis     *redis.Client
}

type QueueConfig struct {
	RedisAddr  string
	RedisDB    int
	MaxRetries int
	Timeout    time.Duration
	StatusTTL  time.Duration
}

// GetQueue builds a queue from the environment configuration.
func GetQueue() (*AsynqQueue, error) {
	rc := cfg.GetRedisConfig()
	return NewAsynqQueue(&QueueConfig{
		RedisAddr:  rc.Addr,
		RedisDB:    rc.DB,
		MaxRetries: 3,
		Timeout:    10 * time.Minute,
		StatusTTL:  24 * time.Hour,
	})
}

func NewAsynqQueue(qc *QueueConfig) (*AsynqQueue, error) {
	redisOpt := asynq.RedisClientOpt{Addr: qc.RedisAddr, DB: qc.RedisDB}
	return &AsynqQueue{
		client:    asynq.NewClient(redisOpt),
		inspector: asynq.NewInspector(redisOpt),
		redis: redis.NewClient(&redis.Options{
			Addr: qc.RedisAddr,
			DB:   qc.RedisDB,
		}),
	}, nil
}

// Enqueue serializes the task and places it on the default queue.
func (q *AsynqQueue) Enqueue(ctx context.Context, task *Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Timeout(10 * time.Minute),
		asynq.TaskID(task.ID),
	}

	t := asynq.NewTask(task.Type, payload, opts...)
	if _, err := q.client.EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// GetTaskStatus reads the saved status from redis, falling back to the asynq
// inspector for tasks the worker has not finished yet.
func (q *AsynqQueue) GetTaskStatus(ctx context.Context, taskID string) (*TaskStatus, error) {
	key := statusKey(taskID)
	data, err := q.redis.Get(ctx, key).Bytes()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get status from redis: %w", err)
	}
	if err == nil {
		var status TaskStatus
		if err := json.Unmarshal(data, &status); err != nil {
			return nil, fmt.Errorf("failed to unmarshal status: %w", err)
		}
		return &status, nil
	}

	info, err := q.inspector.GetTaskInfo("default", taskID)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	return convertAsynqStatus(info), nil
}

// CancelTask removes a pending task from the queue.
func (q *AsynqQueue) CancelTask(ctx context.Context, taskID string) error {
	if err := q.inspector.DeleteTask("default", taskID); err != nil {
		return fmt.Errorf("failed to cancel task: %w", err)
	}
	status := &TaskStatus{
		TaskID:     taskID,
		Status:     "cancelled",
		FinishedAt: time.Now(),
	}
	return q.SaveStatus(ctx, status)
}

// SaveStatus stores the task status in redis with a TTL.
func (q *AsynqQueue) SaveStatus(ctx context.Context, status *TaskStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	if err := q.redis.Set(ctx, statusKey(status.TaskID), data, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to save status: %w", err)
	}
	return nil
}

func statusKey(taskID string) string {
	return fmt.Sprintf("task_status:%s", taskID)
}

func convertAsynqStatus(info *asynq.TaskInfo) *TaskStatus {
	status := &TaskStatus{TaskID: info.ID}
	switch info.State {
	case asynq.TaskStatePending:
		status.Status = "pending"
	case asynq.TaskStateActive:
		status.Status = "running"
		status.Progress = 0.5
	case asynq.TaskStateCompleted:
		status.Status = "completed"
		status.Progress = 1.0
		status.FinishedAt = info.CompletedAt
	case asynq.TaskStateRetry, asynq.TaskStateArchived:
		status.Status = "failed"
		status.Error = info.LastErr
	default:
		status.Status = "pending"
	}
	return status
}
