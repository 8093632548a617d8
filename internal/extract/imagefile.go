package extract

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"

	"github.com/filecraft/extractor/internal/extract/ocr"
	"github.com/filecraft/extractor/pkg/logger"
)

// noTextSentinel is returned as content when every OCR stage comes back
// empty. A valid image without recognizable text is not a failure.
const noTextSentinel = "No text detected in image"

// ImageExtractor decodes raster images and recovers text through a two-stage
// OCR chain: the primary engine runs on a grayscale copy; the secondary, when
// available, runs on the original color image only if the primary found
// nothing. Engine errors are swallowed per stage so the chain can proceed.
type ImageExtractor struct {
	Primary   ocr.Engine
	Secondary ocr.Engine
	Logger    logger.Logger
}

func (e *ImageExtractor) Extract(data []byte) Result {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// Decode failure is fatal for this extractor; no OCR attempt.
		return fail(err)
	}

	bounds := img.Bounds()
	metadata := map[string]interface{}{
		"size":   []interface{}{bounds.Dx(), bounds.Dy()},
		"mode":   colorMode(img),
		"format": format,
	}

	text := e.runChain(context.Background(), img)
	if strings.TrimSpace(text) == "" {
		text = noTextSentinel
	}

	return ok("Image OCR Results:\n"+text, "Image File", metadata)
}

func (e *ImageExtractor) runChain(ctx context.Context, img image.Image) string {
	if e.Primary != nil {
		gray := imaging.Grayscale(img)
		text, err := e.Primary.Recognize(ctx, gray)
		if err != nil {
			e.Logger.Warn("primary OCR failed",
				logger.String("engine", e.Primary.Name()),
				logger.Error(err),
			)
		} else if strings.TrimSpace(text) != "" {
			return text
		}
	}

	if e.Secondary == nil {
		return ""
	}
	text, err := e.Secondary.Recognize(ctx, img)
	if err != nil {
		e.Logger.Warn("secondary OCR failed",
			logger.String("engine", e.Secondary.Name()),
			logger.Error(err),
		)
		return ""
	}
	return text
}

// colorMode reports the image's color mode in the conventional raster naming.
func colorMode(img image.Image) string {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return "L"
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model:
		return "RGBA"
	case color.YCbCrModel:
		return "RGB"
	case color.CMYKModel:
		return "CMYK"
	}
	if _, paletted := img.(*image.Paletted); paletted {
		return "P"
	}
	return "RGB"
}
