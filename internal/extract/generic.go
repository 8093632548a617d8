package extract

import "unicode/utf8"

// GenericExtractor is the fallback for unknown formats: valid UTF-8 is
// treated as plain text, anything else is reported as unprocessable with a
// fixed message rather than a decode error.
type GenericExtractor struct{}

func (e *GenericExtractor) Extract(data []byte) Result {
	if !utf8.Valid(data) {
		return failMsg("Cannot process this file type")
	}
	content := string(data)
	return ok(content, "Generic Text", map[string]interface{}{
		"size": utf8.RuneCountInString(content),
	})
}
