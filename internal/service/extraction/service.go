package extraction

import (
	"context"

	"github.com/filecraft/extractor/internal/extract"
	"github.com/filecraft/extractor/internal/models"
	"github.com/filecraft/extractor/pkg/converters"
	"github.com/filecraft/extractor/pkg/queue"
)

// BatchFile is one upload destined for asynchronous extraction.
type BatchFile struct {
	Data     []byte
	Filename string
	MimeType string
}

// Service fronts the extraction pipeline for the HTTP API and the worker.
type Service interface {
	// ExtractFile runs the pipeline synchronously. The returned error
	// covers upload validation only; extraction failures are data inside
	// the Result.
	ExtractFile(ctx context.Context, data []byte, filename, mimeType string) (extract.Result, error)

	// EnqueueBatch stores each file and queues one extraction task per
	// file.
	EnqueueBatch(ctx context.Context, files []BatchFile) ([]*models.ExtractionTask, error)

	// HandleTask is the worker-side entry: fetch bytes, extract, store
	// the result record.
	HandleTask(ctx context.Context, task *queue.Task) error

	GetTaskStatus(ctx context.Context, taskID string) (*queue.TaskStatus, error)
	GetResult(ctx context.Context, taskID string) (*converters.FileResult, error)
	CancelTask(ctx context.Context, taskID string) error

	// BuildContext assembles the combined conversational context from
	// previously completed tasks.
	BuildContext(ctx context.Context, taskIDs []string) (*converters.ContextDocument, error)
}
