package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filecraft/extractor/internal/service/extraction"
	"github.com/filecraft/extractor/pkg/logger"
)

type FileHandler struct {
	service extraction.Service
	logger  logger.Logger
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type TaskResponse struct {
	TaskID    string `json:"taskId"`
	Status    string `json:"status"`
	Filename  string `json:"filename"`
	CreatedAt string `json:"createdAt"`
}

type ContextRequest struct {
	TaskIDs []string `json:"taskIds" binding:"required"`
}

func NewFileHandler(service extraction.Service, log logger.Logger) *FileHandler {
	return &FileHandler{service: service, logger: log}
}

// Extract runs the pipeline synchronously and returns the extraction record.
func (h *FileHandler) Extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid file upload", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Failed to read upload", err)
		return
	}

	result, err := h.service.ExtractFile(
		c.Request.Context(), data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.handleError(c, http.StatusUnprocessableEntity, "Upload rejected", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExtractBatch stores each upload and queues one extraction task per file.
func (h *FileHandler) ExtractBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		h.handleError(c, http.StatusBadRequest, "No files provided", nil)
		return
	}

	files := make([]extraction.BatchFile, 0, len(headers))
	for _, header := range headers {
		data, err := readMultipartFile(header)
		if err != nil {
			h.handleError(c, http.StatusBadRequest, "Failed to read upload", err)
			return
		}
		files = append(files, extraction.BatchFile{
			Data:     data,
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
		})
	}

	tasks, err := h.service.EnqueueBatch(c.Request.Context(), files)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to enqueue files", err)
		return
	}

	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = TaskResponse{
			TaskID:    task.ID,
			Status:    string(task.Status),
			Filename:  task.Metadata["filename"],
			CreatedAt: task.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": responses})
}

// GetStatus reports the state of one queued task.
func (h *FileHandler) GetStatus(c *gin.Context) {
	taskID := c.Param("taskId")
	if taskID == "" {
		h.handleError(c, http.StatusBadRequest, "Task ID is required", nil)
		return
	}

	status, err := h.service.GetTaskStatus(c.Request.Context(), taskID)
	if err != nil {
		h.handleError(c, http.StatusNotFound, "Failed to get status", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetResult returns the stored extraction record of a completed task.
func (h *FileHandler) GetResult(c *gin.Context) {
	taskID := c.Param("taskId")
	if taskID == "" {
		h.handleError(c, http.StatusBadRequest, "Task ID is required", nil)
		return
	}

	record, err := h.service.GetResult(c.Request.Context(), taskID)
	if err != nil {
		h.handleError(c, http.StatusNotFound, "Failed to get result", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// CancelTask removes a pending task.
func (h *FileHandler) CancelTask(c *gin.Context) {
	taskID := c.Param("taskId")
	if taskID == "" {
		h.handleError(c, http.StatusBadRequest, "Task ID is required", nil)
		return
	}

	if err := h.service.CancelTask(c.Request.Context(), taskID); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to cancel task", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"taskId": taskID, "message": "Task cancelled"})
}

// BuildContext assembles the combined context string from completed tasks.
func (h *FileHandler) BuildContext(c *gin.Context) {
	var req ContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	doc, err := h.service.BuildContext(c.Request.Context(), req.TaskIDs)
	if err != nil {
		h.handleError(c, http.StatusNotFound, "Failed to build context", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *FileHandler) handleError(c *gin.Context, status int, message string, err error) {
	h.logger.Error(message,
		logger.String("path", c.Request.URL.Path),
		logger.Error(err),
	)

	response := ErrorResponse{Message: message}
	if err != nil {
		response.Error = err.Error()
	}
	c.JSON(status, response)
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
