package extract

import "strings"

// TagGeneric routes files without a usable extension to the generic extractor.
const TagGeneric = "generic"

// FormatTag maps a filename to its canonical format tag: the substring after
// the final dot, lowercased. Classification is extension-based only; no magic
// byte sniffing is performed, so a mislabeled file is routed by its name and
// fails (or degrades) inside the selected extractor rather than here.
func FormatTag(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return TagGeneric
	}
	return strings.ToLower(filename[idx+1:])
}
