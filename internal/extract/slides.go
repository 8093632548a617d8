package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// SlidesExtractor handles PPTX decks (archive/zip → ppt/slides/slideN.xml).
// Output is one "Slide N:" block per slide, in deck order, with a bulleted
// line per non-empty text-bearing shape in shape order.
type SlidesExtractor struct{}

func (e *SlidesExtractor) Extract(data []byte) Result {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return failMsg(fmt.Sprintf("not a valid presentation: %v", err))
	}

	type slideFile struct {
		num  int
		name string
	}
	var slides []slideFile
	for _, f := range zr.File {
		var n int
		if _, err := fmt.Sscanf(f.Name, "ppt/slides/slide%d.xml", &n); err == nil {
			slides = append(slides, slideFile{num: n, name: f.Name})
		}
	}
	if len(slides) == 0 {
		return failMsg("no slides found in presentation")
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	blocks := make([]string, 0, len(slides))
	for i, s := range slides {
		raw, err := readZipEntry(zr, s.name)
		if err != nil {
			return fail(err)
		}
		shapes, err := parseSlideXML(raw)
		if err != nil {
			return fail(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Slide %d:\n", i+1)
		for _, text := range shapes {
			if text != "" {
				fmt.Fprintf(&sb, "- %s\n", text)
			}
		}
		blocks = append(blocks, sb.String())
	}

	return ok(strings.Join(blocks, "\n"), "PowerPoint Presentation", map[string]interface{}{
		"slides": len(slides),
	})
}

// parseSlideXML returns the trimmed text of each p:sp shape on a slide, in
// shape order. Text runs (a:t) within one shape are joined per paragraph.
func parseSlideXML(raw []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	var (
		shapes  []string
		spDepth int
		inText  bool
		shape   strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bad slide xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sp":
				spDepth++
				if spDepth == 1 {
					shape.Reset()
				}
			case "t":
				inText = spDepth > 0
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "sp":
				if spDepth > 0 {
					spDepth--
					if spDepth == 0 {
						shapes = append(shapes, strings.TrimSpace(shape.String()))
					}
				}
			case "p":
				if spDepth > 0 && shape.Len() > 0 {
					shape.WriteString("\n")
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				shape.Write(t)
			}
		}
	}

	return shapes, nil
}
