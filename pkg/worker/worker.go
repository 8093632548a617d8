package worker

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/filecraft/extractor/pkg/logger"
)

type Worker interface {
	Start(ctx context.Context) error
	Stop() error
}

type Config struct {
	RedisAddr   string
	RedisDB     int
	Concurrency int
	Queues      map[string]int
}

type BaseWorker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger logger.Logger
}

func (w *BaseWorker) Start(ctx context.Context) error {
	return w.server.Start(w.mux)
}

func (w *BaseWorker) Stop() error {
	w.server.Shutdown()
	return nil
}
