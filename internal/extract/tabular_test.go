package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabularExtractorCSV(t *testing.T) {
	e := &TabularExtractor{}

	csvData := "name,age\nalice,30\nbob,25\n"
	res := e.Extract([]byte(csvData))
	require.True(t, res.Success)
	assert.Equal(t, "CSV File", res.Type)
	assert.Equal(t, 2, res.Metadata["rows"])
	assert.Equal(t, 2, res.Metadata["columns"])
	assert.Equal(t, []interface{}{"name", "age"}, res.Metadata["column_names"])
	assert.Contains(t, res.Content, "CSV Data Analysis:")
	assert.Contains(t, res.Content, "Rows: 2, Columns: 2")
	assert.Contains(t, res.Content, "Columns: name, age")
	assert.Contains(t, res.Content, "alice")
}

func TestTabularExtractorPreviewBound(t *testing.T) {
	e := &TabularExtractor{}

	var sb strings.Builder
	sb.WriteString("id,value\n")
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&sb, "%d,item%d\n", i, i)
	}

	res := e.Extract([]byte(sb.String()))
	require.True(t, res.Success)
	// True total in metadata, preview capped at 10 rows.
	assert.Equal(t, 25, res.Metadata["rows"])
	assert.Contains(t, res.Content, "item10")
	assert.NotContains(t, res.Content, "item11")
	assert.NotContains(t, res.Content, "item25")
}

func TestTabularExtractorMalformedCSV(t *testing.T) {
	e := &TabularExtractor{}

	res := e.Extract([]byte("a,b\n\"unterminated"))
	require.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Empty(t, res.Content)
	assert.Empty(t, res.Metadata)
}

func TestTabularExtractorEmptyInput(t *testing.T) {
	e := &TabularExtractor{}

	res := e.Extract(nil)
	require.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestTabularExtractorXLSX(t *testing.T) {
	e := &TabularExtractor{}

	data := buildXLSX(t,
		[]string{"city", "country", "Paris", "France"},
		`<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>`+
			`<row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2" t="s"><v>3</v></c></row>`+
			`<row r="3"><c r="A3" t="inlineStr"><is><t>Lyon</t></is></c><c r="B3"><v>42</v></c></row>`,
	)

	res := e.Extract(data)
	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, "Excel File", res.Type)
	assert.Equal(t, 2, res.Metadata["rows"])
	assert.Equal(t, 2, res.Metadata["columns"])
	assert.Equal(t, []interface{}{"city", "country"}, res.Metadata["column_names"])
	assert.Contains(t, res.Content, "Excel Data Analysis:")
	assert.Contains(t, res.Content, "Paris")
	assert.Contains(t, res.Content, "Lyon")
	assert.Contains(t, res.Content, "42")
}

func TestTabularExtractorXLSXSkippedCells(t *testing.T) {
	e := &TabularExtractor{}

	// Row 2 has only column C populated; A and B must pad out empty.
	data := buildXLSX(t,
		[]string{"a", "b", "c"},
		`<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="s"><v>2</v></c></row>`+
			`<row r="2"><c r="C2"><v>9</v></c></row>`,
	)

	res := e.Extract(data)
	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, 1, res.Metadata["rows"])
	assert.Contains(t, res.Content, "9")
}

func TestTabularExtractorCorruptedXLSX(t *testing.T) {
	e := &TabularExtractor{}

	// Starts like a ZIP but is not one.
	res := e.Extract([]byte("PK\x03\x04 this is not really an archive"))
	require.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Empty(t, res.Content)
}

// buildXLSX assembles a minimal spreadsheet archive in memory.
func buildXLSX(t *testing.T, sharedStrings []string, sheetRows string) []byte {
	t.Helper()

	var sst strings.Builder
	sst.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sst.WriteString(`<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
	for _, s := range sharedStrings {
		fmt.Fprintf(&sst, "<si><t>%s</t></si>", s)
	}
	sst.WriteString(`</sst>`)

	sheet := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">` +
		`<sheetData>` + sheetRows + `</sheetData></worksheet>`

	entries := []struct {
		name, content string
	}{
		{"[Content_Types].xml", `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`},
		{"xl/sharedStrings.xml", sst.String()},
		{"xl/worksheets/sheet1.xml", sheet},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
