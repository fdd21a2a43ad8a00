package schema

// Option configures a property node.
type Option func(*options)

type options struct {
	description string
	optional    bool
	nullable    bool
	alias       string
	version     Version
	pinned      bool
	except      []string
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Desc sets the property description.
func Desc(text string) Option {
	return func(o *options) {
		o.description = text
	}
}

// Optional leaves the property out of the required list.
func Optional() Option {
	return func(o *options) {
		o.optional = true
	}
}

// Nullable widens the property type with null.
func Nullable() Option {
	return func(o *options) {
		o.nullable = true
	}
}

// As names a referenced object property differently from its target.
func As(alias string) Option {
	return func(o *options) {
		o.alias = alias
	}
}

// AtVersion pins the version of a reference or sets the version of an object.
func AtVersion(n int) Option {
	return func(o *options) {
		o.version = V(n)
		o.pinned = true
	}
}

// Versionless pins a reference to the unversioned bucket.
func Versionless() Option {
	return func(o *options) {
		o.version = Unversioned
		o.pinned = true
	}
}

// Except drops inherited properties by name.
func Except(names ...string) Option {
	return func(o *options) {
		o.except = append(o.except, names...)
	}
}

// candidates returns the version lookup order of a reference declared in a node of the enclosing version.
func (o *options) candidates(enclosing Version) []Version {
	if o.pinned {
		return []Version{o.version}
	}
	if !enclosing.IsSet() {
		return []Version{Unversioned}
	}
	return []Version{enclosing, Unversioned}
}

// DefineOption configures a root schema.
type DefineOption func(*defineOptions)

type defineOptions struct {
	version     Version
	collection  string
	location    string
	description string
}

// WithVersion sets the root version.
func WithVersion(n int) DefineOption {
	return func(o *defineOptions) {
		o.version = V(n)
	}
}

// WithCollection registers a collection of the definition under the given name.
func WithCollection(name string) DefineOption {
	return func(o *defineOptions) {
		o.collection = name
	}
}

// WithLocation overrides the captured source location.
func WithLocation(location string) DefineOption {
	return func(o *defineOptions) {
		o.location = location
	}
}

func WithDescription(text string) DefineOption {
	return func(o *defineOptions) {
		o.description = text
	}
}
