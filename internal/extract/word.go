package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// WordExtractor handles DOCX documents (Office Open XML, archive/zip →
// word/document.xml). Body paragraphs are concatenated in document order;
// embedded tables are extracted separately and appended under a "Tables:"
// section, each row rendered as cell values joined by " | ".
type WordExtractor struct{}

func (e *WordExtractor) Extract(data []byte) Result {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return failMsg(fmt.Sprintf("not a valid word document: %v", err))
	}

	raw, err := readZipEntry(zr, "word/document.xml")
	if err != nil {
		return fail(err)
	}

	paragraphs, tables, err := parseDocumentXML(raw)
	if err != nil {
		return fail(err)
	}

	content := strings.Join(paragraphs, "\n")
	if len(tables) > 0 {
		content += "\n\nTables:\n" + strings.Join(tables, "\n\n")
	}

	return ok(content, "Word Document", map[string]interface{}{
		"paragraphs": len(paragraphs),
		"tables":     len(tables),
	})
}

// parseDocumentXML walks the WordprocessingML body. Paragraph text lives in
// w:t runs; tables are w:tbl → w:tr → w:tc. Paragraphs inside table cells
// belong to the table output, not the paragraph list.
func parseDocumentXML(raw []byte) (paragraphs []string, tables []string, err error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	var (
		tblDepth  int
		inText    bool
		inCell    bool
		para      strings.Builder
		cell      strings.Builder
		row       []string
		tableRows []string
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("bad document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					tableRows = nil
				}
			case "tr":
				if tblDepth > 0 {
					row = nil
				}
			case "tc":
				if tblDepth > 0 {
					inCell = true
					cell.Reset()
				}
			case "p":
				if tblDepth == 0 {
					para.Reset()
				}
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tblDepth > 0 {
					tblDepth--
					if tblDepth == 0 {
						tables = append(tables, strings.Join(tableRows, "\n"))
					}
				}
			case "tr":
				if tblDepth > 0 {
					tableRows = append(tableRows, strings.Join(row, " | "))
				}
			case "tc":
				if tblDepth > 0 {
					inCell = false
					row = append(row, strings.TrimSpace(cell.String()))
				}
			case "p":
				if tblDepth == 0 {
					if text := strings.TrimSpace(para.String()); text != "" {
						paragraphs = append(paragraphs, text)
					}
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if !inText {
				continue
			}
			if inCell {
				cell.Write(t)
			} else {
				para.Write(t)
			}
		}
	}

	return paragraphs, tables, nil
}
