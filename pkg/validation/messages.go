package validation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	keywordAdditionalProperties = "additionalProperties"
	keywordRequired             = "required"
	keywordFormat               = "format"
	keywordType                 = "type"
)

// Messages renders records as human-readable strings, one per record.
func Messages(records []Record) []string {
	res := make([]string, 0, len(records))
	for _, r := range records {
		res = append(res, Message(r))
	}
	return res
}

// Message renders a single record.
func Message(r Record) string {
	if r.Type == keywordAdditionalProperties {
		return "object contains the extra key: " + r.DataPointer
	}

	var reason string
	switch r.Type {
	case keywordRequired:
		reason = "missing some required attributes"
	case keywordFormat:
		reason = fmt.Sprintf("format should be %v", r.Schema[keywordFormat])
	case keywordType:
		reason = typeReason(r.Schema[keywordType], r.Message)
	default:
		reason = r.Message
	}

	return fmt.Sprintf("value at %s (%s) failed validation: %s", r.DataPointer, renderData(r.Data), reason)
}

func typeReason(expected any, fallback string) string {
	switch v := expected.(type) {
	case string:
		return "type should be " + v
	case []any:
		quoted := make([]string, 0, len(v))
		for _, t := range v {
			quoted = append(quoted, strconv.Quote(fmt.Sprint(t)))
		}
		return "type should be one of [" + strings.Join(quoted, ", ") + "]"
	}
	return fallback
}

func renderData(data any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(b)
}
