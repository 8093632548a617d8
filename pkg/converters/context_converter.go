package converters

import (
	"fmt"
	"strings"
	"time"

	"github.com/filecraft/extractor/internal/extract"
)

// FileResult pairs one extraction record with the name it was uploaded under.
type FileResult struct {
	Name   string         `json:"name"`
	Result extract.Result `json:"result"`
}

// ContextDocument is the downstream-facing bundle assembled from a set of
// extraction results: the combined context string handed to a conversation,
// plus the per-file records for display collaborators.
type ContextDocument struct {
	Context     string       `json:"context"`
	Files       []FileResult `json:"files"`
	AssembledAt time.Time    `json:"assembledAt"`
}

// ContextConverter turns extraction results into conversational context.
// Content is truncated per file so a handful of large documents cannot
// consume the entire prompt budget.
type ContextConverter struct {
	// ContextCharLimit bounds each file's contribution to the combined
	// context. Zero means the default of 1000.
	ContextCharLimit int
	// PreviewCharLimit bounds display previews. Zero means 300.
	PreviewCharLimit int
}

func NewContextConverter() *ContextConverter {
	return &ContextConverter{
		ContextCharLimit: 1000,
		PreviewCharLimit: 300,
	}
}

// Convert assembles the combined context from successful extractions. Failed
// results are carried in Files for display but contribute nothing to the
// context string.
func (c *ContextConverter) Convert(results []FileResult) (*ContextDocument, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to convert")
	}

	limit := c.ContextCharLimit
	if limit <= 0 {
		limit = 1000
	}

	parts := make([]string, 0, len(results))
	for _, fr := range results {
		if !fr.Result.Success {
			continue
		}
		parts = append(parts, fmt.Sprintf("File: %s\nContent: %s",
			fr.Name, truncate(fr.Result.Content, limit)))
	}

	return &ContextDocument{
		Context:     strings.Join(parts, "\n\n"),
		Files:       results,
		AssembledAt: time.Now(),
	}, nil
}

// Preview returns a bounded prefix of content for display, with an ellipsis
// when anything was cut.
func (c *ContextConverter) Preview(content string) string {
	limit := c.PreviewCharLimit
	if limit <= 0 {
		limit = 300
	}
	if len([]rune(content)) <= limit {
		return content
	}
	return truncate(content, limit) + "..."
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
