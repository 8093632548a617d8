package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextExtractorUTF8(t *testing.T) {
	e := &TextExtractor{}

	res := e.Extract([]byte("hello\nworld"))
	require.True(t, res.Success)
	assert.Equal(t, "hello\nworld", res.Content)
	assert.Equal(t, "Text File", res.Type)
	assert.Equal(t, 2, res.Metadata["lines"])
	assert.Equal(t, 11, res.Metadata["characters"])
	assert.Empty(t, res.Error)
}

func TestTextExtractorCountsRunes(t *testing.T) {
	e := &TextExtractor{}

	res := e.Extract([]byte("héllo"))
	require.True(t, res.Success)
	assert.Equal(t, 5, res.Metadata["characters"])
}

func TestTextExtractorIdempotent(t *testing.T) {
	e := &TextExtractor{}
	data := []byte("same bytes, same text\nacross calls")

	first := e.Extract(data)
	second := e.Extract(data)
	require.True(t, first.Success)
	assert.Equal(t, first.Content, second.Content)
}

func TestTextExtractorLatin1Fallback(t *testing.T) {
	e := &TextExtractor{}

	// 0xE9 is é in Latin-1 but invalid as a standalone UTF-8 byte.
	res := e.Extract([]byte{'c', 'a', 'f', 0xE9})
	require.True(t, res.Success)
	assert.Equal(t, "café", res.Content)
	assert.Equal(t, "latin-1", res.Metadata["encoding"])
}

func TestTextExtractorLatin1NeverFails(t *testing.T) {
	e := &TextExtractor{}

	// Every possible byte value in one buffer.
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(255 - i)
	}
	res := e.Extract(data)
	assert.True(t, res.Success)
	assert.NotEmpty(t, res.Content)
}
