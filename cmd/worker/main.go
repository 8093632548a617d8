package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/filecraft/extractor/config"
	"github.com/filecraft/extractor/internal/service/extraction"
	"github.com/filecraft/extractor/pkg/logger"
	"github.com/filecraft/extractor/pkg/worker"
)

func main() {
	log, err := logger.NewLogger(
		logger.WithLevel("info"),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"stdout", "logs/worker.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	svc, err := extraction.GetService(log)
	if err != nil {
		log.Error("Failed to initialize extraction service", logger.Error(err))
		os.Exit(1)
	}

	redisCfg := cfg.GetRedisConfig()
	workerCfg := &worker.Config{
		RedisAddr:   redisCfg.Addr,
		RedisDB:     redisCfg.DB,
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
	}

	extractWorker, err := worker.NewExtractWorker(workerCfg, svc, log)
	if err != nil {
		log.Error("Failed to create worker", logger.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := extractWorker.Start(ctx); err != nil {
		log.Error("Failed to start worker", logger.Error(err))
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down worker...")
	extractWorker.Stop()
	log.Info("Worker stopped")
}
