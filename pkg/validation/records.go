package validation

import (
	"sort"
	"strconv"
	"strings"
)

// Record is one finding of the engine, located in both the schema and the payload.
type Record struct {
	// SchemaPointer is the JSON pointer of the failed keyword, e.g. "/properties/age/type".
	SchemaPointer string

	// DataPointer is the JSON pointer of the offending value. The payload root is "".
	DataPointer string

	// Type is the failed keyword.
	Type string

	// Schema is the schema object holding the keyword.
	Schema map[string]any

	// Data is the offending value.
	Data any

	// Message is the engine's own description.
	Message string
}

func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].DataPointer != records[j].DataPointer {
			return records[i].DataPointer < records[j].DataPointer
		}
		return records[i].SchemaPointer < records[j].SchemaPointer
	})
}

// extraKeys returns keys of data not declared in the schema's properties, sorted.
func extraKeys(schema map[string]any, data any) []string {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	declared, _ := schema["properties"].(map[string]any)

	var res []string
	for key := range obj {
		if _, ok := declared[key]; !ok {
			res = append(res, key)
		}
	}
	sort.Strings(res)
	return res
}

// splitPointer returns the unescaped segments of a JSON pointer.
func splitPointer(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "#")
	if pointer == "" || pointer == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, part := range parts {
		parts[i] = unescapePointer(part)
	}
	return parts
}

func parentPointer(pointer string) string {
	idx := strings.LastIndex(pointer, "/")
	if idx < 0 {
		return ""
	}
	return pointer[:idx]
}

func lastSegment(pointer string) string {
	parts := splitPointer(pointer)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

func unescapePointer(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// lookup walks a decoded JSON document by pointer and returns nil when the path does not exist.
func lookup(doc any, pointer string) any {
	current := doc
	for _, segment := range splitPointer(pointer) {
		switch v := current.(type) {
		case map[string]any:
			next, ok := v[segment]
			if !ok {
				return nil
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil
			}
			current = v[idx]
		default:
			return nil
		}
	}
	return current
}
