package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// TextExtractor handles plain text files. UTF-8 is tried first; bytes that do
// not form valid UTF-8 are re-decoded as Latin-1, which accepts every byte
// value and therefore cannot fail.
type TextExtractor struct{}

func (e *TextExtractor) Extract(data []byte) Result {
	if utf8.Valid(data) {
		content := string(data)
		return ok(content, "Text File", map[string]interface{}{
			"lines":      len(strings.Split(content, "\n")),
			"characters": utf8.RuneCountInString(content),
		})
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Unreachable for ISO 8859-1, kept for parity with the
		// extractor contract.
		return fail(err)
	}
	return ok(string(decoded), "Text File", map[string]interface{}{
		"encoding": "latin-1",
	})
}
