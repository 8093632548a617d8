package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/filecraft/extractor/internal/service/extraction"
	"github.com/filecraft/extractor/pkg/logger"
	"github.com/filecraft/extractor/pkg/queue"
)

// ExtractWorker consumes queued extraction tasks and hands them to the
// service. One failed file never fails the batch; only infrastructure errors
// (storage, queue) cause a retry.
type ExtractWorker struct {
	BaseWorker
	service extraction.Service
}

func NewExtractWorker(cfg *Config, service extraction.Service, log logger.Logger) (*ExtractWorker, error) {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr, DB: cfg.RedisDB},
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues:      cfg.Queues,
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				return time.Duration(n) * time.Minute
			},
		},
	)

	w := &ExtractWorker{
		BaseWorker: BaseWorker{
			server: server,
			mux:    asynq.NewServeMux(),
			logger: log,
		},
		service: service,
	}
	w.mux.HandleFunc(queue.TaskTypeFileExtract, w.handleExtract)
	return w, nil
}

func (w *ExtractWorker) handleExtract(ctx context.Context, t *asynq.Task) error {
	var task queue.Task
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		w.logger.Error("failed to unmarshal task",
			logger.Error(err),
			logger.String("payload", string(t.Payload())),
		)
		return fmt.Errorf("failed to unmarshal task: %w", err)
	}

	w.logger.Info("received extraction task",
		logger.String("taskId", task.ID),
		logger.String("filename", task.Filename),
	)

	if err := w.service.HandleTask(ctx, &task); err != nil {
		w.logger.Error("extraction task failed",
			logger.String("taskId", task.ID),
			logger.Error(err),
		)
		return err
	}
	return nil
}
