// Package ocr provides the text-recognition engines used by the image
// extractor's fallback chain.
package ocr

import (
	"context"
	"image"
)

// Engine recognizes text in a decoded image. Implementations are tried in
// chain order until one yields non-empty output; an engine error counts as
// "no text from this stage" and never aborts the chain.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) (string, error)
}
