package schema

import (
	"github.com/cubahno/schematest/internal/types"
)

// Item is an array element type: a raw Kind or a Property.
type Item interface {
	build(t *trail) (*Document, error)
}

// Property is a node of a schema tree.
type Property interface {
	Item

	Name() string
	Description() string
	IsOptional() bool
	IsNullable() bool
	Kind() Kind

	// Fragment returns the JSON Schema of the node.
	// With includeRoot the schema is wrapped into a single-entry {name: schema} document.
	Fragment(includeRoot bool) (*Document, error)

	common() *base
}

type base struct {
	name        string
	description string
	optional    bool
	nullable    bool
}

func newBase(name string, o *options) base {
	return base{
		name:        name,
		description: o.description,
		optional:    o.optional,
		nullable:    o.nullable,
	}
}

func (b *base) Name() string        { return b.name }
func (b *base) Description() string { return b.description }
func (b *base) IsOptional() bool    { return b.optional }
func (b *base) IsNullable() bool    { return b.nullable }

func (b *base) common() *base { return b }

// jsonType widens t with null for nullable nodes.
func (b *base) jsonType(t string) any {
	if b.nullable {
		return []string{t, types.TypeNull}
	}
	return t
}

func (b *base) same(other *base) bool {
	return b.name == other.name &&
		b.description == other.description &&
		b.optional == other.optional &&
		b.nullable == other.nullable
}

func fragment(p Property, includeRoot bool) (*Document, error) {
	frag, err := p.build(newTrail())
	if err != nil {
		return nil, err
	}
	if !includeRoot {
		return frag, nil
	}
	return wrap(p.Name(), frag), nil
}

// Scalar is a leaf property.
type Scalar struct {
	base
	kind Kind
}

// NewScalar creates a scalar property outside of any registry.
func NewScalar(kind Kind, name string, opts ...Option) *Scalar {
	return &Scalar{
		base: newBase(name, newOptions(opts)),
		kind: kind,
	}
}

func (s *Scalar) Kind() Kind { return s.kind }

func (s *Scalar) Fragment(includeRoot bool) (*Document, error) {
	return fragment(s, includeRoot)
}

func (s *Scalar) build(_ *trail) (*Document, error) {
	doc := NewDocument()
	doc.Set("type", s.jsonType(s.kind.JSONType()))
	if s.description != "" {
		doc.Set("description", s.description)
	}
	if format := s.kind.Format(); format != "" {
		doc.Set("format", format)
	}
	return doc, nil
}
