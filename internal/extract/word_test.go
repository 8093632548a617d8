package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const docWithTable = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Intro paragraph</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>A</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>B</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>C</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>D</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p><w:r><w:t>Closing</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestWordExtractor(t *testing.T) {
	e := &WordExtractor{}

	res := e.Extract(buildDOCX(t, docWithTable))
	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, "Word Document", res.Type)
	assert.Equal(t, "Intro paragraph\nClosing\n\nTables:\nA | B\nC | D", res.Content)
	assert.Equal(t, 2, res.Metadata["paragraphs"])
	assert.Equal(t, 1, res.Metadata["tables"])
}

func TestWordExtractorSplitRuns(t *testing.T) {
	e := &WordExtractor{}

	// Word frequently splits one visual paragraph across several runs.
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t>World</w:t></w:r></w:p></w:body>
</w:document>`

	res := e.Extract(buildDOCX(t, doc))
	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, "Hello World", res.Content)
	assert.Equal(t, 1, res.Metadata["paragraphs"])
	assert.Equal(t, 0, res.Metadata["tables"])
}

func TestWordExtractorEmptyParagraphsSkipped(t *testing.T) {
	e := &WordExtractor{}

	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p/><w:p><w:r><w:t>Only line</w:t></w:r></w:p><w:p><w:r><w:t>   </w:t></w:r></w:p></w:body>
</w:document>`

	res := e.Extract(buildDOCX(t, doc))
	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, "Only line", res.Content)
	assert.Equal(t, 1, res.Metadata["paragraphs"])
}

func TestWordExtractorNotAnArchive(t *testing.T) {
	e := &WordExtractor{}

	res := e.Extract([]byte("plain text, not a docx"))
	require.False(t, res.Success)
	assert.Contains(t, res.Error, "not a valid word document")
}

func TestWordExtractorMissingDocumentPart(t *testing.T) {
	e := &WordExtractor{}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<w:styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	res := e.Extract(buf.Bytes())
	require.False(t, res.Success)
	assert.Contains(t, res.Error, "word/document.xml")
}
