package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/filecraft/extractor/api/handlers"
	"github.com/filecraft/extractor/api/middleware"
)

// SetupRoutes wires all API routes.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")

	files := v1.Group("/files")
	{
		files.POST("/extract", h.Files.Extract)
		files.POST("/batch", h.Files.ExtractBatch)
		files.GET("/status/:taskId", h.Files.GetStatus)
		files.GET("/result/:taskId", h.Files.GetResult)
		files.DELETE("/task/:taskId", h.Files.CancelTask)
		files.POST("/context", h.Files.BuildContext)
	}
}
