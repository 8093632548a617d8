package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"
)

// PDFExtractor handles portable documents via ledongthuc/pdf. Pages are
// extracted concurrently but assembled strictly in page order.
type PDFExtractor struct{}

const pdfPageWorkers = 4

func (e *PDFExtractor) Extract(data []byte) (res Result) {
	// The underlying parser panics on some malformed files; keep that
	// inside the extractor boundary.
	defer func() {
		if r := recover(); r != nil {
			res = failMsg(fmt.Sprintf("failed to parse pdf: %v", r))
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return fail(err)
	}

	numPages := pdfReader.NumPage()
	pages := make([]string, numPages)

	var g errgroup.Group
	g.SetLimit(pdfPageWorkers)
	for i := 1; i <= numPages; i++ {
		pageNum := i
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("page %d: %v", pageNum, r)
				}
			}()
			page := pdfReader.Page(pageNum)
			if page.V.IsNull() {
				return nil
			}
			text, err := page.GetPlainText(nil)
			if err != nil {
				return fmt.Errorf("failed to get text from page %d: %w", pageNum, err)
			}
			pages[pageNum-1] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fail(err)
	}

	title := "Unknown"
	trailer := pdfReader.Trailer()
	if !trailer.IsNull() {
		info := trailer.Key("Info")
		if !info.IsNull() {
			if t := info.Key("Title"); !t.IsNull() && t.Text() != "" {
				title = t.Text()
			}
		}
	}

	content := strings.TrimSpace(strings.Join(pages, "\n"))
	return ok(content, "PDF Document", map[string]interface{}{
		"pages": numPages,
		"title": title,
	})
}
