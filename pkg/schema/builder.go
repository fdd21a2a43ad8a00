package schema

import (
	"fmt"
	"runtime"
)

// Builder declares the properties of an object.
type Builder struct {
	registry *Registry
	obj      *Object
}

// Define builds a definition, registers it and returns it.
// With WithCollection a collection of the definition is registered as well.
func (r *Registry) Define(name string, fn func(b *Builder), opts ...DefineOption) *Definition {
	def, collection := r.declare(name, fn, newDefineOptions(opts))
	r.Register(def)
	if collection != nil {
		r.Register(collection)
	}
	return def
}

// Declare builds a definition bound to the registry without registering it.
// The returned roots are the definition and, with WithCollection, its collection.
func (r *Registry) Declare(name string, fn func(b *Builder), opts ...DefineOption) []Root {
	def, collection := r.declare(name, fn, newDefineOptions(opts))
	if collection == nil {
		return []Root{def}
	}
	return []Root{def, collection}
}

func (r *Registry) declare(name string, fn func(b *Builder), o *defineOptions) (*Definition, *Collection) {
	def := &Definition{
		Object:   *newObject(name, o.version, &options{description: o.description}),
		location: o.location,
	}
	if fn != nil {
		fn(&Builder{registry: r, obj: &def.Object})
	}

	if o.collection == "" {
		return def, nil
	}
	return def, r.NewCollection(o.collection, name, o.version, o.location)
}

// Collection registers a collection of the named definition.
func (r *Registry) Collection(name, of string, opts ...DefineOption) *Collection {
	c := r.declareCollection(name, of, newDefineOptions(opts))
	r.Register(c)
	return c
}

// DeclareCollection builds a collection bound to the registry without registering it.
func (r *Registry) DeclareCollection(name, of string, opts ...DefineOption) *Collection {
	return r.declareCollection(name, of, newDefineOptions(opts))
}

func (r *Registry) declareCollection(name, of string, o *defineOptions) *Collection {
	c := r.NewCollection(name, of, o.version, o.location)
	c.description = o.description
	return c
}

func newDefineOptions(opts []DefineOption) *defineOptions {
	o := &defineOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.location == "" {
		o.location = callerLocation(3)
	}
	return o
}

func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", file, line)
}

func (r *Registry) reference(target string, candidates []Version) *Reference {
	return &Reference{
		base:       base{name: target},
		registry:   r,
		target:     target,
		candidates: candidates,
	}
}

// Version is the version of the object being built.
func (b *Builder) Version() Version {
	return b.obj.version
}

// Add declares a prebuilt property.
func (b *Builder) Add(p Property) {
	b.obj.declare(p)
}

// Scalar declares a property of a scalar kind.
func (b *Builder) Scalar(kind Kind, name string, opts ...Option) *Scalar {
	s := NewScalar(kind, name, opts...)
	b.obj.declare(s)
	return s
}

func (b *Builder) Boolean(name string, opts ...Option) *Scalar {
	return b.Scalar(KindBoolean, name, opts...)
}

func (b *Builder) Integer(name string, opts ...Option) *Scalar {
	return b.Scalar(KindInteger, name, opts...)
}

func (b *Builder) Float(name string, opts ...Option) *Scalar {
	return b.Scalar(KindFloat, name, opts...)
}

func (b *Builder) String(name string, opts ...Option) *Scalar {
	return b.Scalar(KindString, name, opts...)
}

func (b *Builder) Date(name string, opts ...Option) *Scalar {
	return b.Scalar(KindDate, name, opts...)
}

func (b *Builder) DateTime(name string, opts ...Option) *Scalar {
	return b.Scalar(KindDateTime, name, opts...)
}

func (b *Builder) URL(name string, opts ...Option) *Scalar {
	return b.Scalar(KindURL, name, opts...)
}

func (b *Builder) HTML(name string, opts ...Option) *Scalar {
	return b.Scalar(KindHTML, name, opts...)
}

func (b *Builder) Null(name string, opts ...Option) *Scalar {
	return b.Scalar(KindNull, name, opts...)
}

// ID declares an integer "id".
func (b *Builder) ID() *Scalar {
	return b.Integer("id")
}

// Slug declares a string "slug".
func (b *Builder) Slug() *Scalar {
	return b.String("slug")
}

// CreatedAt declares a datetime "created_at".
func (b *Builder) CreatedAt() *Scalar {
	return b.DateTime("created_at")
}

// UpdatedAt declares a datetime "updated_at".
func (b *Builder) UpdatedAt() *Scalar {
	return b.DateTime("updated_at")
}

// Object declares an inline object.
// It takes the version of the enclosing object unless AtVersion is given.
func (b *Builder) Object(name string, fn func(b *Builder), opts ...Option) *Object {
	o := newOptions(opts)
	version := b.obj.version
	if o.pinned {
		version = o.version
	}

	obj := newObject(name, version, o)
	if fn != nil {
		fn(&Builder{registry: b.registry, obj: obj})
	}
	b.obj.declare(obj)
	return obj
}

// Ref declares an object property with the properties of a definition.
// The property is named after the target unless As is given.
func (b *Builder) Ref(target string, opts ...Option) *Object {
	o := newOptions(opts)
	name := target
	if o.alias != "" {
		name = o.alias
	}
	version := b.obj.version
	if o.pinned {
		version = o.version
	}

	obj := newObject(name, version, o)
	obj.inherits = b.registry.reference(target, o.candidates(b.obj.version))
	b.obj.declare(obj)
	return obj
}

// Array declares an array of a Kind, a Shape or a Type.
func (b *Builder) Array(name string, item Item, opts ...Option) *Array {
	a := NewArray(name, item, opts...)
	b.obj.declare(a)
	return a
}

// Shape builds an anonymous object to be used as an array item.
func (b *Builder) Shape(fn func(b *Builder)) *Object {
	obj := newObject("", b.obj.version, &options{})
	if fn != nil {
		fn(&Builder{registry: b.registry, obj: obj})
	}
	return obj
}

// Type returns a reference to a root schema to be used as an array item.
func (b *Builder) Type(target string, opts ...Option) *Reference {
	return b.registry.NewReference(target, b.obj.version, opts...)
}

// BasedOn makes the object inherit the properties of a definition.
// Names given with Except are dropped from the merged result, including redeclared ones.
func (b *Builder) BasedOn(target string, opts ...Option) {
	o := newOptions(opts)
	b.obj.inherits = b.registry.reference(target, o.candidates(b.obj.version))
	b.obj.excluded = o.except
	b.obj.resolved = nil
}
