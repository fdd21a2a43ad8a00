package schema

import (
	"github.com/cubahno/schematest/internal/types"
)

// Root is a schema registered by name and version.
type Root interface {
	Property

	Version() Version
	Location() string

	// Compile produces a standalone JSON Schema draft-07 document.
	Compile(domain string) (*Document, error)
}

// Definition is a named, versioned root object.
type Definition struct {
	Object
	location string
}

// NewDefinition creates an unregistered definition.
func NewDefinition(name string, version Version, location string, properties ...Property) *Definition {
	d := &Definition{
		Object:   *newObject(name, version, &options{}),
		location: location,
	}
	for _, p := range properties {
		d.declare(p)
	}
	return d
}

// Location is an opaque source reference, e.g. "film.yml:12".
func (d *Definition) Location() string { return d.location }

// ID returns the `$id` of the compiled document.
func (d *Definition) ID(domain string) string {
	return ID(domain, d.name, d.version)
}

func (d *Definition) Fragment(includeRoot bool) (*Document, error) {
	return fragment(d, includeRoot)
}

func (d *Definition) Compile(domain string) (*Document, error) {
	body, err := d.build(newTrail())
	if err != nil {
		return nil, err
	}

	doc := header(d.name, d.version, domain)
	for pair := body.Oldest(); pair != nil; pair = pair.Next() {
		doc.Set(pair.Key, pair.Value)
	}
	return doc, nil
}

// Collection is a named root array of a referenced definition.
// Collections are never validly empty.
type Collection struct {
	base
	version  Version
	location string
	of       *Reference
}

// NewCollection creates an unregistered collection.
func (r *Registry) NewCollection(name, of string, version Version, location string) *Collection {
	return &Collection{
		base:     base{name: name},
		version:  version,
		location: location,
		of:       r.NewReference(of, version),
	}
}

func (c *Collection) Kind() Kind { return KindArray }

func (c *Collection) Version() Version { return c.version }

func (c *Collection) Location() string { return c.location }

// Item returns the reference to the item definition.
func (c *Collection) Item() *Reference { return c.of }

func (c *Collection) ID(domain string) string {
	return ID(domain, c.name, c.version)
}

func (c *Collection) Fragment(includeRoot bool) (*Document, error) {
	return fragment(c, includeRoot)
}

func (c *Collection) Compile(domain string) (*Document, error) {
	body, err := c.build(newTrail())
	if err != nil {
		return nil, err
	}

	doc := header(c.name, c.version, domain)
	for pair := body.Oldest(); pair != nil; pair = pair.Next() {
		doc.Set(pair.Key, pair.Value)
	}
	return doc, nil
}

func (c *Collection) build(t *trail) (*Document, error) {
	items, err := c.of.build(t)
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	doc.Set("type", c.jsonType(types.TypeArray))
	doc.Set("items", items)
	doc.Set("minItems", 1)
	return doc, nil
}
