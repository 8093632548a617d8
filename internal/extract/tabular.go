package extract

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

const defaultPreviewRows = 10

// TabularExtractor handles delimited (CSV) and spreadsheet (XLSX) inputs. The
// content is a bounded summary — counts, column names and a preview of at most
// PreviewRows rows — never the full table, so large spreadsheets cannot blow
// up the downstream context.
type TabularExtractor struct {
	PreviewRows int
}

func (e *TabularExtractor) Extract(data []byte) Result {
	// XLSX files are ZIP containers; everything else goes through the CSV
	// reader. The tag told us which family we are in, but the ZIP header
	// is unambiguous and lets .xls payloads report a clean decode error.
	if bytes.HasPrefix(data, []byte("PK")) {
		return e.extractXLSX(data)
	}
	return e.extractCSV(data)
}

func (e *TabularExtractor) extractCSV(data []byte) Result {
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return fail(err)
	}
	if len(rows) == 0 {
		return failMsg("no columns to parse from file")
	}
	return e.summarize("CSV Data Analysis", "CSV File", rows[0], rows[1:])
}

func (e *TabularExtractor) extractXLSX(data []byte) Result {
	rows, err := readWorksheet(data)
	if err != nil {
		return fail(err)
	}
	if len(rows) == 0 {
		return failMsg("no columns to parse from file")
	}
	return e.summarize("Excel Data Analysis", "Excel File", rows[0], rows[1:])
}

func (e *TabularExtractor) summarize(heading, fileType string, header []string, records [][]string) Result {
	previewRows := e.PreviewRows
	if previewRows <= 0 {
		previewRows = defaultPreviewRows
	}
	preview := records
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n", heading)
	fmt.Fprintf(&sb, "Rows: %d, Columns: %d\n", len(records), len(header))
	fmt.Fprintf(&sb, "Columns: %s\n\n", strings.Join(header, ", "))
	fmt.Fprintf(&sb, "First %d rows:\n", previewRows)

	table := tablewriter.NewWriter(&sb)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(preview)
	table.Render()

	columnNames := make([]interface{}, len(header))
	for i, name := range header {
		columnNames[i] = name
	}
	return ok(sb.String(), fileType, map[string]interface{}{
		"rows":         len(records),
		"columns":      len(header),
		"column_names": columnNames,
	})
}

// --- minimal XLSX reader (archive/zip + encoding/xml) ---

type xlsxSST struct {
	Items []struct {
		Texts []string `xml:"t"`
		Runs  []struct {
			Text string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

type xlsxSheet struct {
	Rows []struct {
		Cells []struct {
			Ref    string `xml:"r,attr"`
			Type   string `xml:"t,attr"`
			Value  string `xml:"v"`
			Inline struct {
				Text string `xml:"t"`
			} `xml:"is"`
		} `xml:"c"`
	} `xml:"sheetData>row"`
}

// readWorksheet extracts the first worksheet of an XLSX archive into string
// rows, resolving shared strings.
func readWorksheet(data []byte) ([][]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not a valid spreadsheet archive: %w", err)
	}

	var shared []string
	var sheetNames []string
	for _, f := range zr.File {
		if f.Name == "xl/sharedStrings.xml" {
			raw, err := readZipFile(f)
			if err != nil {
				return nil, err
			}
			var sst xlsxSST
			if err := xml.Unmarshal(raw, &sst); err != nil {
				return nil, fmt.Errorf("bad shared strings: %w", err)
			}
			for _, si := range sst.Items {
				var txt strings.Builder
				for _, t := range si.Texts {
					txt.WriteString(t)
				}
				for _, r := range si.Runs {
					txt.WriteString(r.Text)
				}
				shared = append(shared, txt.String())
			}
		}
		if strings.HasPrefix(f.Name, "xl/worksheets/sheet") && strings.HasSuffix(f.Name, ".xml") {
			sheetNames = append(sheetNames, f.Name)
		}
	}
	if len(sheetNames) == 0 {
		return nil, fmt.Errorf("no worksheets found")
	}
	sort.Strings(sheetNames)

	raw, err := readZipEntry(zr, sheetNames[0])
	if err != nil {
		return nil, err
	}
	var sheet xlsxSheet
	if err := xml.Unmarshal(raw, &sheet); err != nil {
		return nil, fmt.Errorf("bad worksheet: %w", err)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		var out []string
		for _, cell := range row.Cells {
			val := cell.Value
			switch cell.Type {
			case "s":
				idx, err := strconv.Atoi(cell.Value)
				if err != nil || idx < 0 || idx >= len(shared) {
					val = ""
				} else {
					val = shared[idx]
				}
			case "inlineStr":
				val = cell.Inline.Text
			}
			col := columnIndex(cell.Ref)
			for len(out) < col {
				out = append(out, "")
			}
			out = append(out, val)
		}
		rows = append(rows, out)
	}
	return rows, nil
}

// columnIndex converts the column letters of a cell reference ("B3" → 1).
// References without letters map to the next free slot via index 0.
func columnIndex(ref string) int {
	col := 0
	seen := false
	for _, r := range ref {
		if r >= 'A' && r <= 'Z' {
			col = col*26 + int(r-'A') + 1
			seen = true
		} else {
			break
		}
	}
	if !seen {
		return 0
	}
	return col - 1
}

func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return readZipFile(f)
		}
	}
	return nil, fmt.Errorf("missing archive entry %s", name)
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return raw, nil
}
