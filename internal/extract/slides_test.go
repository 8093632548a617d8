package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPPTX(t *testing.T, slides map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range slides {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func slideXML(shapes ...string) string {
	var sb bytes.Buffer
	sb.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree>`)
	for _, text := range shapes {
		sb.WriteString(`<p:sp><p:txBody><a:p><a:r><a:t>`)
		sb.WriteString(text)
		sb.WriteString(`</a:t></a:r></a:p></p:txBody></p:sp>`)
	}
	sb.WriteString(`</p:spTree></p:cSld></p:sld>`)
	return sb.String()
}

func TestSlidesExtractor(t *testing.T) {
	e := &SlidesExtractor{}

	data := buildPPTX(t, map[string]string{
		"ppt/slides/slide1.xml": slideXML("Quarterly Review", "Agenda"),
		"ppt/slides/slide2.xml": slideXML("Revenue up 12%"),
	})

	res := e.Extract(data)
	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, "PowerPoint Presentation", res.Type)
	assert.Equal(t, 2, res.Metadata["slides"])

	want := "Slide 1:\n- Quarterly Review\n- Agenda\n\nSlide 2:\n- Revenue up 12%\n"
	assert.Equal(t, want, res.Content)
}

func TestSlidesExtractorDeckOrder(t *testing.T) {
	e := &SlidesExtractor{}

	// slide10 must sort after slide2, not lexically before it.
	data := buildPPTX(t, map[string]string{
		"ppt/slides/slide10.xml": slideXML("last"),
		"ppt/slides/slide2.xml":  slideXML("middle"),
		"ppt/slides/slide1.xml":  slideXML("first"),
	})

	res := e.Extract(data)
	require.True(t, res.Success, "error: %s", res.Error)
	want := "Slide 1:\n- first\n\nSlide 2:\n- middle\n\nSlide 3:\n- last\n"
	assert.Equal(t, want, res.Content)
}

func TestSlidesExtractorEmptyShapesSkipped(t *testing.T) {
	e := &SlidesExtractor{}

	data := buildPPTX(t, map[string]string{
		"ppt/slides/slide1.xml": slideXML("Title", "", "   "),
	})

	res := e.Extract(data)
	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, "Slide 1:\n- Title\n", res.Content)
}

func TestSlidesExtractorNoSlides(t *testing.T) {
	e := &SlidesExtractor{}

	data := buildPPTX(t, map[string]string{
		"ppt/presentation.xml": "<p:presentation/>",
	})

	res := e.Extract(data)
	require.False(t, res.Success)
	assert.Equal(t, "no slides found in presentation", res.Error)
}

func TestSlidesExtractorNotAnArchive(t *testing.T) {
	e := &SlidesExtractor{}

	res := e.Extract([]byte{0x00, 0x01, 0x02})
	require.False(t, res.Success)
	assert.Contains(t, res.Error, "not a valid presentation")
}
