package handlers

import (
	"github.com/filecraft/extractor/internal/service/extraction"
	"github.com/filecraft/extractor/pkg/logger"
)

type Handlers struct {
	Files *FileHandler
}

func NewHandlers(service extraction.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Files: NewFileHandler(service, log),
	}
}
