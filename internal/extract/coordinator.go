package extract

import (
	"fmt"

	"github.com/filecraft/extractor/internal/extract/ocr"
	"github.com/filecraft/extractor/pkg/logger"
)

// Coordinator owns the tag → extractor registry and is the single entry point
// of the pipeline. Unknown tags fall through to the generic extractor.
type Coordinator struct {
	registry map[string]Extractor
	fallback Extractor
	logger   logger.Logger
}

// Options configures the coordinator's extractors.
type Options struct {
	// PrimaryOCR runs first on a grayscale copy of decoded images.
	PrimaryOCR ocr.Engine
	// SecondaryOCR runs on the original image when the primary finds no
	// text. Nil when its initialization failed at startup; the chain then
	// degrades to primary-only.
	SecondaryOCR ocr.Engine
	// PreviewRows bounds the tabular content preview. Zero means the
	// default of 10.
	PreviewRows int
}

// NewCoordinator builds the registry of per-format extractors.
func NewCoordinator(log logger.Logger, opts Options) *Coordinator {
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = defaultPreviewRows
	}

	text := &TextExtractor{}
	tabular := &TabularExtractor{PreviewRows: opts.PreviewRows}
	word := &WordExtractor{}
	slides := &SlidesExtractor{}
	structured := &StructuredExtractor{}
	pdf := &PDFExtractor{}
	img := &ImageExtractor{
		Primary:   opts.PrimaryOCR,
		Secondary: opts.SecondaryOCR,
		Logger:    log,
	}

	registry := map[string]Extractor{
		"pdf":  pdf,
		"docx": word,
		"doc":  word,
		"txt":  text,
		"csv":  tabular,
		"xlsx": tabular,
		"xls":  tabular,
		"pptx": slides,
		"json": structured,
	}
	for _, tag := range []string{"png", "jpg", "jpeg", "gif", "bmp", "tiff", "webp"} {
		registry[tag] = img
	}

	return &Coordinator{
		registry: registry,
		fallback: &GenericExtractor{},
		logger:   log,
	}
}

// Register adds or replaces the extractor for a format tag. New formats plug
// in here without touching dispatch.
func (c *Coordinator) Register(tag string, e Extractor) {
	c.registry[tag] = e
}

// Extract classifies the file by name and dispatches to the matching
// extractor. The declared MIME type is advisory only; dispatch relies solely
// on the filename extension. No failure mode escapes as an error: anything
// raised outside the extractors' own handling is converted into an error
// result at this boundary.
func (c *Coordinator) Extract(data []byte, filename, mimeType string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("extraction panicked",
				logger.String("filename", filename),
				logger.Any("panic", r),
			)
			res = failMsg(fmt.Sprintf("extraction failed: %v", r))
		}
	}()

	tag := FormatTag(filename)
	extractor, known := c.registry[tag]
	if !known {
		extractor = c.fallback
	}

	c.logger.Debug("dispatching file",
		logger.String("filename", filename),
		logger.String("tag", tag),
		logger.String("declaredMime", mimeType),
		logger.Bool("known", known),
	)

	res = extractor.Extract(data)

	if res.Success {
		c.logger.Info("extraction completed",
			logger.String("filename", filename),
			logger.String("type", res.Type),
			logger.Int("contentLen", len(res.Content)),
		)
	} else {
		c.logger.Warn("extraction failed",
			logger.String("filename", filename),
			logger.String("tag", tag),
			logger.String("error", res.Error),
		)
	}
	return res
}
