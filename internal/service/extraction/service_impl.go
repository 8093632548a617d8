package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cfg "github.com/filecraft/extractor/config"
	"github.com/filecraft/extractor/internal/extract"
	"github.com/filecraft/extractor/internal/extract/ocr"
	"github.com/filecraft/extractor/internal/models"
	"github.com/filecraft/extractor/internal/validator"
	"github.com/filecraft/extractor/pkg/converters"
	"github.com/filecraft/extractor/pkg/logger"
	"github.com/filecraft/extractor/pkg/queue"
	"github.com/filecraft/extractor/pkg/storage"
)

type ExtractionService struct {
	coordinator *extract.Coordinator
	validator   *validator.FileValidator
	queue       queue.Queue
	storage     storage.Storage
	converter   *converters.ContextConverter
	logger      logger.Logger
}

func NewService(
	coordinator *extract.Coordinator,
	v *validator.FileValidator,
	q queue.Queue,
	store storage.Storage,
	converter *converters.ContextConverter,
	log logger.Logger,
) Service {
	return &ExtractionService{
		coordinator: coordinator,
		validator:   v,
		queue:       q,
		storage:     store,
		converter:   converter,
		logger:      log,
	}
}

// GetService wires the full service from the environment configuration. The
// secondary OCR engine is constructed once here; if its setup fails the
// chain degrades to primary-only instead of aborting startup.
func GetService(log logger.Logger) (Service, error) {
	pipeCfg := cfg.GetPipelineConfig()
	ocrCfg := cfg.GetOCRConfig()

	primary := ocr.NewTesseractEngine(ocrCfg.Languages)

	var secondary ocr.Engine
	textractEngine, err := ocr.NewTextractEngine(context.Background(), &ocr.TextractConfig{
		Region:        ocrCfg.Region,
		AccessKey:     ocrCfg.AccessKey,
		SecretKey:     ocrCfg.SecretKey,
		MinConfidence: ocrCfg.MinConfidence,
	})
	if err != nil {
		log.Warn("secondary OCR engine unavailable, continuing with primary only",
			logger.Error(err),
		)
	} else {
		secondary = textractEngine
	}

	coordinator := extract.NewCoordinator(log, extract.Options{
		PrimaryOCR:   primary,
		SecondaryOCR: secondary,
		PreviewRows:  pipeCfg.PreviewRows,
	})

	store, err := storage.NewStorage(storage.StorageTypeMinio, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	q, err := queue.GetQueue()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize queue: %w", err)
	}

	v := validator.NewFileValidator(log, &validator.Config{
		MaxFileSize:       pipeCfg.MaxFileSize,
		AllowedExtensions: pipeCfg.AllowedExtensions,
	})

	converter := &converters.ContextConverter{
		ContextCharLimit: pipeCfg.ContextCharLimit,
		PreviewCharLimit: pipeCfg.PreviewCharLimit,
	}

	return NewService(coordinator, v, q, store, converter, log), nil
}

func (s *ExtractionService) ExtractFile(ctx context.Context, data []byte, filename, mimeType string) (extract.Result, error) {
	info, err := s.validator.Validate(data, filename, mimeType)
	if err != nil {
		s.logger.Error("upload rejected",
			logger.String("filename", filename),
			logger.Error(err),
		)
		return extract.Result{}, err
	}

	s.logger.Info("extracting file",
		logger.String("filename", info.Filename),
		logger.Int64("size", info.Size),
		logger.String("detectedMime", info.DetectedMime),
	)
	return s.coordinator.Extract(data, filename, mimeType), nil
}

func (s *ExtractionService) EnqueueBatch(ctx context.Context, files []BatchFile) ([]*models.ExtractionTask, error) {
	tasks := make([]*models.ExtractionTask, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			task, err := s.enqueueOne(ctx, file)
			if err != nil {
				return fmt.Errorf("failed to enqueue %s: %w", file.Filename, err)
			}
			mu.Lock()
			tasks[i] = task
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *ExtractionService) enqueueOne(ctx context.Context, file BatchFile) (*models.ExtractionTask, error) {
	if _, err := s.validator.Validate(file.Data, file.Filename, file.MimeType); err != nil {
		return nil, err
	}

	taskID := uuid.New().String()
	objectKey := fmt.Sprintf("uploads/%s", taskID)

	if _, err := s.storage.Store(ctx, bytes.NewReader(file.Data), objectKey); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	now := time.Now()
	task := &models.ExtractionTask{
		ID:        taskID,
		Status:    models.StatusPending,
		Type:      queue.TaskTypeFileExtract,
		CreatedAt: now,
		UpdatedAt: now,
		Metadata: map[string]string{
			"filename": file.Filename,
			"size":     fmt.Sprintf("%d", len(file.Data)),
		},
	}

	queueTask := &queue.Task{
		ID:        taskID,
		Type:      queue.TaskTypeFileExtract,
		ObjectKey: objectKey,
		Filename:  file.Filename,
		MimeType:  file.MimeType,
		Metadata:  task.Metadata,
		CreatedAt: now,
	}
	if err := s.queue.Enqueue(ctx, queueTask); err != nil {
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}

	if err := s.queue.SaveStatus(ctx, &queue.TaskStatus{
		TaskID:    taskID,
		Status:    string(models.StatusPending),
		StartedAt: now,
	}); err != nil {
		s.logger.Error("failed to save initial status",
			logger.String("taskId", taskID),
			logger.Error(err),
		)
	}

	s.logger.Info("extraction task enqueued",
		logger.String("taskId", taskID),
		logger.String("filename", file.Filename),
	)
	return task, nil
}

func (s *ExtractionService) HandleTask(ctx context.Context, task *queue.Task) error {
	if task == nil || task.ObjectKey == "" {
		return fmt.Errorf("invalid task: missing object key")
	}

	s.logger.Info("processing extraction task",
		logger.String("taskId", task.ID),
		logger.String("filename", task.Filename),
	)

	reader, err := s.storage.Get(ctx, task.ObjectKey)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// The pipeline never returns an error; a bad file yields an error
	// result, the task itself still completes.
	result := s.coordinator.Extract(data, task.Filename, task.MimeType)

	record := converters.FileResult{Name: task.Filename, Result: result}
	resultData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if _, err := s.storage.Store(ctx, bytes.NewReader(resultData), resultKey(task.ID)); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}

	status := &queue.TaskStatus{
		TaskID:     task.ID,
		Status:     string(models.StatusCompleted),
		Progress:   1.0,
		FinishedAt: time.Now(),
	}
	if err := s.queue.SaveStatus(ctx, status); err != nil {
		s.logger.Error("failed to save final status",
			logger.String("taskId", task.ID),
			logger.Error(err),
		)
	}

	s.logger.Info("extraction task completed",
		logger.String("taskId", task.ID),
		logger.Bool("success", result.Success),
	)
	return nil
}

func (s *ExtractionService) GetTaskStatus(ctx context.Context, taskID string) (*queue.TaskStatus, error) {
	return s.queue.GetTaskStatus(ctx, taskID)
}

func (s *ExtractionService) GetResult(ctx context.Context, taskID string) (*converters.FileResult, error) {
	reader, err := s.storage.Get(ctx, resultKey(taskID))
	if err != nil {
		return nil, fmt.Errorf("result not available: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read result: %w", err)
	}

	var record converters.FileResult
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &record, nil
}

func (s *ExtractionService) CancelTask(ctx context.Context, taskID string) error {
	return s.queue.CancelTask(ctx, taskID)
}

func (s *ExtractionService) BuildContext(ctx context.Context, taskIDs []string) (*converters.ContextDocument, error) {
	results := make([]converters.FileResult, 0, len(taskIDs))
	for _, id := range taskIDs {
		record, err := s.GetResult(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", id, err)
		}
		results = append(results, *record)
	}
	return s.converter.Convert(results)
}

func resultKey(taskID string) string {
	return fmt.Sprintf("results/%s.json", taskID)
}
