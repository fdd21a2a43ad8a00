package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/cubahno/schematest/pkg/schema"
)

// DefaultDomain is used to build `$id`s of auto-compiled roots.
const DefaultDomain = "example.com"

// Validator checks JSON payloads against compiled schemas or registered roots.
type Validator struct {
	domain string
	engine Engine
	logger *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

func WithDomain(domain string) Option {
	return func(v *Validator) {
		v.domain = domain
	}
}

func WithEngine(engine Engine) Option {
	return func(v *Validator) {
		v.engine = engine
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// New creates a validator with the draft-07 engine.
func New(opts ...Option) *Validator {
	v := &Validator{
		domain: DefaultDomain,
		engine: NewEngine(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns a message per validation failure. An empty result means the payload is valid.
// The error is reserved for payloads that are not JSON and targets that can not be compiled.
//
// Payload is JSON text ([]byte, string, json.RawMessage, io.Reader) or any Go value.
// Target is a schema.Root, a *schema.Document, a map or raw JSON Schema text.
func (v *Validator) Validate(payload, target any) ([]string, error) {
	records, err := v.Records(payload, target)
	if err != nil {
		return nil, err
	}
	return Messages(records), nil
}

// Records is Validate without the message rendering.
func (v *Validator) Records(payload, target any) ([]Record, error) {
	doc, err := v.Schema(target)
	if err != nil {
		return nil, err
	}

	data, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}

	records, err := v.engine.Check(doc, data)
	if err != nil {
		return nil, err
	}

	if len(records) > 0 {
		v.logger.Debug("Payload failed validation", "schema", schemaName(target), "errors", len(records))
	}
	return records, nil
}

// Schema returns the JSON Schema text of the target.
func (v *Validator) Schema(target any) ([]byte, error) {
	switch t := target.(type) {
	case schema.Root:
		doc, err := t.Compile(v.domain)
		if err != nil {
			return nil, err
		}
		return json.Marshal(doc)
	case *schema.Document:
		return json.Marshal(t)
	case map[string]any:
		return json.Marshal(t)
	case json.RawMessage:
		return t, nil
	case []byte:
		return t, nil
	case string:
		return []byte(t), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownTarget, target)
}

func decodePayload(payload any) (any, error) {
	var r io.Reader
	switch p := payload.(type) {
	case json.RawMessage:
		r = bytes.NewReader(p)
	case []byte:
		r = bytes.NewReader(p)
	case string:
		r = bytes.NewReader([]byte(p))
	case io.Reader:
		r = p
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		r = bytes.NewReader(b)
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrInvalidPayload)
	}
	return data, nil
}

func schemaName(target any) string {
	if root, ok := target.(schema.Root); ok {
		return root.Name() + "@" + root.Version().String()
	}
	return ""
}

var defaultValidator = New()

// Validate checks the payload with a default validator.
func Validate(payload, target any) ([]string, error) {
	return defaultValidator.Validate(payload, target)
}
