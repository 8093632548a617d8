package converters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecraft/extractor/internal/extract"
)

func okResult(content string) extract.Result {
	return extract.Result{
		Success:  true,
		Content:  content,
		Metadata: map[string]interface{}{},
		Type:     "Text File",
	}
}

func TestContextConverterConvert(t *testing.T) {
	c := NewContextConverter()

	doc, err := c.Convert([]FileResult{
		{Name: "a.txt", Result: okResult("first file body")},
		{Name: "b.txt", Result: okResult("second file body")},
	})
	require.NoError(t, err)

	want := "File: a.txt\nContent: first file body\n\nFile: b.txt\nContent: second file body"
	assert.Equal(t, want, doc.Context)
	assert.Len(t, doc.Files, 2)
	assert.False(t, doc.AssembledAt.IsZero())
}

func TestContextConverterSkipsFailures(t *testing.T) {
	c := NewContextConverter()

	doc, err := c.Convert([]FileResult{
		{Name: "ok.txt", Result: okResult("good content")},
		{Name: "bad.bin", Result: extract.Result{Success: false, Error: "Cannot process this file type"}},
	})
	require.NoError(t, err)

	assert.NotContains(t, doc.Context, "bad.bin")
	assert.Contains(t, doc.Context, "File: ok.txt")
	// Failed files still ride along for display.
	assert.Len(t, doc.Files, 2)
}

func TestContextConverterTruncation(t *testing.T) {
	c := NewContextConverter()

	long := strings.Repeat("x", 1500)
	doc, err := c.Convert([]FileResult{{Name: "big.txt", Result: okResult(long)}})
	require.NoError(t, err)

	assert.Equal(t, "File: big.txt\nContent: "+strings.Repeat("x", 1000), doc.Context)
}

func TestContextConverterTruncationCountsRunes(t *testing.T) {
	c := &ContextConverter{ContextCharLimit: 3}

	doc, err := c.Convert([]FileResult{{Name: "u.txt", Result: okResult("héllo")}})
	require.NoError(t, err)
	assert.Equal(t, "File: u.txt\nContent: hél", doc.Context)
}

func TestContextConverterEmptyInput(t *testing.T) {
	c := NewContextConverter()

	doc, err := c.Convert(nil)
	require.Error(t, err)
	assert.Nil(t, doc)
}

func TestContextConverterPreview(t *testing.T) {
	c := NewContextConverter()

	short := "fits entirely"
	assert.Equal(t, short, c.Preview(short))

	long := strings.Repeat("a", 400)
	got := c.Preview(long)
	assert.Equal(t, strings.Repeat("a", 300)+"...", got)
}
