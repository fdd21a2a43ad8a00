package schema

import (
	"github.com/cubahno/schematest/internal/types"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type propertyMap = orderedmap.OrderedMap[string, Property]

func newPropertyMap() *propertyMap {
	return orderedmap.New[string, Property]()
}

// Object is a closed set of named properties.
// It may inherit properties of a definition and drop some of them by name.
// An object without a name is anonymous and used as an inline array item shape.
type Object struct {
	base
	version  Version
	declared *propertyMap
	excluded []string
	inherits *Reference
	resolved *propertyMap
}

// NewObject creates an object outside of any registry.
func NewObject(name string, properties []Property, opts ...Option) *Object {
	o := newOptions(opts)
	obj := newObject(name, o.version, o)
	for _, p := range properties {
		obj.declare(p)
	}
	return obj
}

// NewAnonymousObject creates an unnamed object.
func NewAnonymousObject(properties ...Property) *Object {
	return NewObject("", properties)
}

func newObject(name string, version Version, o *options) *Object {
	return &Object{
		base:     newBase(name, o),
		version:  version,
		declared: newPropertyMap(),
		excluded: o.except,
	}
}

// declare adds a property. A redeclared name keeps its position.
func (o *Object) declare(p Property) {
	o.declared.Set(p.Name(), p)
	o.resolved = nil
}

func (o *Object) Kind() Kind { return KindObject }

func (o *Object) Version() Version { return o.version }

// IsAnonymous is true for inline item shapes.
func (o *Object) IsAnonymous() bool { return o.name == "" }

// Excluded returns names dropped after inheritance.
func (o *Object) Excluded() []string { return o.excluded }

// Inherits returns the reference the object inherits from, or nil.
func (o *Object) Inherits() *Reference { return o.inherits }

// Properties returns the resolved properties in declaration order.
func (o *Object) Properties() ([]Property, error) {
	props, err := o.resolve(newTrail())
	if err != nil {
		return nil, err
	}
	res := make([]Property, 0, props.Len())
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		res = append(res, pair.Value)
	}
	return res, nil
}

// Property returns a resolved property by name.
func (o *Object) Property(name string) (Property, bool, error) {
	props, err := o.resolve(newTrail())
	if err != nil {
		return nil, false, err
	}
	p, ok := props.Get(name)
	return p, ok, nil
}

func (o *Object) Fragment(includeRoot bool) (*Document, error) {
	return fragment(o, includeRoot)
}

// build emits a closed object: every level forbids additional properties
// and requires every non-optional property.
func (o *Object) build(t *trail) (*Document, error) {
	props, err := o.resolve(t)
	if err != nil {
		return nil, err
	}

	if err := t.push(o); err != nil {
		return nil, err
	}
	defer t.pop()

	properties := NewDocument()
	required := make([]string, 0, props.Len())
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		frag, err := pair.Value.build(t)
		if err != nil {
			return nil, err
		}
		properties.Set(pair.Key, frag)
		if !pair.Value.IsOptional() {
			required = append(required, pair.Key)
		}
	}

	doc := NewDocument()
	doc.Set("type", o.jsonType(types.TypeObject))
	doc.Set("properties", properties)
	doc.Set("required", required)
	doc.Set("additionalProperties", false)
	return doc, nil
}

func (o *Object) label() string {
	if o.name == "" {
		return anonymous
	}
	if o.version.IsSet() {
		return o.name + "@" + o.version.String()
	}
	return o.name
}
