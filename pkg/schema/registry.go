package schema

import (
	"log/slog"
	"sort"
)

// Registry stores root schemas by name and version.
// It has no internal locking: registration is expected to happen once, before concurrent reads.
type Registry struct {
	roots  map[string]map[Version]Root
	logger *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used to report redefinitions.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		roots:  make(map[string]map[Version]Root),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores the root. An existing root with the same name and version is replaced.
func (r *Registry) Register(root Root) {
	versions, ok := r.roots[root.Name()]
	if !ok {
		versions = make(map[Version]Root)
		r.roots[root.Name()] = versions
	}

	if prev, exists := versions[root.Version()]; exists {
		r.logger.Debug("Schema redefined",
			"name", root.Name(),
			"version", root.Version().String(),
			"previous", prev.Location(),
			"location", root.Location())
	}
	versions[root.Version()] = root
}

// Find returns the root or nil.
func (r *Registry) Find(name string, version Version) Root {
	return r.roots[name][version]
}

// Get is Find that fails with NotFoundError.
func (r *Registry) Get(name string, version Version) (Root, error) {
	found := r.Find(name, version)
	if found == nil {
		return nil, &NotFoundError{Name: name, Version: version}
	}
	return found, nil
}

// Definition returns a registered object definition.
func (r *Registry) Definition(name string, version Version) (*Definition, error) {
	found, err := r.Get(name, version)
	if err != nil {
		return nil, err
	}
	def, ok := found.(*Definition)
	if !ok {
		return nil, &NotFoundError{Name: name, Version: version}
	}
	return def, nil
}

// Reset drops every registered root.
func (r *Registry) Reset() {
	r.roots = make(map[string]map[Version]Root)
}

// Len returns the number of registered roots.
func (r *Registry) Len() int {
	n := 0
	for _, versions := range r.roots {
		n += len(versions)
	}
	return n
}

// Roots returns all roots ordered by name, then version.
func (r *Registry) Roots() []Root {
	res := make([]Root, 0, r.Len())
	for _, versions := range r.roots {
		for _, root := range versions {
			res = append(res, root)
		}
	}

	sort.Slice(res, func(i, j int) bool {
		if res[i].Name() != res[j].Name() {
			return res[i].Name() < res[j].Name()
		}
		return res[i].Version().Less(res[j].Version())
	})
	return res
}
