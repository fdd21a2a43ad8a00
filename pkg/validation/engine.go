package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const defaultResourceURL = "schema.json"

// Engine checks a payload against a JSON Schema document.
// The payload is a decoded JSON value with numbers as json.Number.
type Engine interface {
	Check(schema []byte, data any) ([]Record, error)
}

// Draft07Engine delegates to santhosh-tekuri/jsonschema with draft-07 rules and format assertion.
type Draft07Engine struct{}

// NewEngine returns the default engine.
func NewEngine() *Draft07Engine {
	return &Draft07Engine{}
}

func (e *Draft07Engine) Check(schema []byte, data any) ([]Record, error) {
	var doc any
	if err := json.Unmarshal(schema, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	url := defaultResourceURL
	if obj, ok := doc.(map[string]any); ok {
		if id, ok := obj["$id"].(string); ok && id != "" {
			url = id
		}
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	compiler.AssertFormat = true
	if err := compiler.AddResource(url, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	err = compiled.Validate(data)
	if err == nil {
		return nil, nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}

	var records []Record
	for _, leaf := range leaves(verr, nil) {
		records = append(records, toRecords(leaf, doc, data)...)
	}
	sortRecords(records)
	return records, nil
}

func leaves(e *jsonschema.ValidationError, res []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(e.Causes) == 0 {
		return append(res, e)
	}
	for _, cause := range e.Causes {
		res = leaves(cause, res)
	}
	return res
}

// toRecords converts an engine error. An additionalProperties failure becomes one record per extra key.
func toRecords(e *jsonschema.ValidationError, schema, data any) []Record {
	keyword := lastSegment(e.KeywordLocation)
	parent, _ := lookup(schema, parentPointer(e.KeywordLocation)).(map[string]any)
	value := lookup(data, e.InstanceLocation)

	record := Record{
		SchemaPointer: e.KeywordLocation,
		DataPointer:   e.InstanceLocation,
		Type:          keyword,
		Schema:        parent,
		Data:          value,
		Message:       e.Message,
	}

	if keyword != keywordAdditionalProperties {
		return []Record{record}
	}
	extras := extraKeys(parent, value)
	if len(extras) == 0 {
		return []Record{record}
	}

	res := make([]Record, 0, len(extras))
	for _, key := range extras {
		res = append(res, Record{
			SchemaPointer: e.KeywordLocation,
			DataPointer:   e.InstanceLocation + "/" + escapePointer(key),
			Type:          keyword,
			Schema:        parent,
			Data:          value.(map[string]any)[key],
			Message:       e.Message,
		})
	}
	return res
}
