package validator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/filecraft/extractor/pkg/logger"
)

// FileValidator checks uploads before they enter the pipeline. Extraction
// dispatch stays extension-based; the detected MIME type is advisory only
// and mismatches with the declared type are logged, never rejected.
type FileValidator struct {
	logger logger.Logger
	config *Config
}

type Config struct {
	MaxFileSize       int64
	AllowedExtensions []string
}

type FileInfo struct {
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
	Extension    string `json:"extension"`
	DeclaredMime string `json:"declaredMime"`
	DetectedMime string `json:"detectedMime"`
}

func NewFileValidator(log logger.Logger, config *Config) *FileValidator {
	if config == nil {
		config = &Config{
			MaxFileSize: 50 * 1024 * 1024, // 50MB
		}
	}
	return &FileValidator{logger: log, config: config}
}

// Validate checks size and extension and records the detected MIME type.
// An empty allow-list admits every extension; unknown formats still route to
// the generic extractor downstream.
func (v *FileValidator) Validate(data []byte, filename, declaredMime string) (*FileInfo, error) {
	info := &FileInfo{
		Filename:     filename,
		Size:         int64(len(data)),
		Extension:    strings.ToLower(filepath.Ext(filename)),
		DeclaredMime: declaredMime,
		DetectedMime: mimetype.Detect(data).String(),
	}

	if v.config.MaxFileSize > 0 && info.Size > v.config.MaxFileSize {
		return info, fmt.Errorf("file size %d exceeds maximum of %d bytes", info.Size, v.config.MaxFileSize)
	}

	if len(v.config.AllowedExtensions) > 0 && info.Extension != "" {
		allowed := false
		for _, ext := range v.config.AllowedExtensions {
			if ext == info.Extension {
				allowed = true
				break
			}
		}
		if !allowed {
			return info, fmt.Errorf("file type %s is not allowed", info.Extension)
		}
	}

	if declaredMime != "" && !strings.HasPrefix(info.DetectedMime, baseMime(declaredMime)) {
		v.logger.Warn("declared MIME type does not match content",
			logger.String("filename", filename),
			logger.String("declared", declaredMime),
			logger.String("detected", info.DetectedMime),
		)
	}

	return info, nil
}

func baseMime(m string) string {
	if idx := strings.Index(m, ";"); idx >= 0 {
		m = m[:idx]
	}
	return strings.TrimSpace(m)
}
