package extract

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// StructuredExtractor handles JSON inputs. The value is parsed and
// re-serialized with stable 2-space indentation; HTML escaping is disabled so
// non-ASCII characters pass through verbatim.
type StructuredExtractor struct{}

func (e *StructuredExtractor) Extract(data []byte) Result {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return fail(err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fail(err)
	}

	content := "JSON File Analysis:\n" + strings.TrimRight(buf.String(), "\n")

	metadata := map[string]interface{}{
		"type": jsonKind(value),
	}
	if obj, isObject := value.(map[string]interface{}); isObject {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		metadata["keys"] = keys
	}

	return ok(content, "JSON File", metadata)
}

func jsonKind(value interface{}) string {
	switch value.(type) {
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return "null"
	}
}
