package schema

import (
	"github.com/cubahno/schematest/internal/types"
)

// Reference points at a root schema by name.
// Version candidates are tried in order when the reference is resolved.
type Reference struct {
	base
	registry   *Registry
	target     string
	candidates []Version
}

// NewReference creates a reference looked up in the registry.
// Without a pinned version the reference tries the enclosing version and then the unversioned bucket.
func (r *Registry) NewReference(target string, enclosing Version, opts ...Option) *Reference {
	o := newOptions(opts)
	return &Reference{
		base:       newBase(target, o),
		registry:   r,
		target:     target,
		candidates: o.candidates(enclosing),
	}
}

func (r *Reference) Target() string { return r.target }

// Candidates returns the versions tried, in priority order.
func (r *Reference) Candidates() []Version {
	res := make([]Version, len(r.candidates))
	copy(res, r.candidates)
	return res
}

// Kind is the kind of the target, or object when it can not be resolved yet.
func (r *Reference) Kind() Kind {
	root, err := r.Resolve()
	if err != nil {
		return KindObject
	}
	return root.Kind()
}

func (r *Reference) Fragment(includeRoot bool) (*Document, error) {
	return fragment(r, includeRoot)
}

// build emits the target's bare schema.
func (r *Reference) build(t *trail) (*Document, error) {
	root, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	doc, err := root.build(t)
	if err != nil {
		return nil, err
	}
	if r.nullable {
		if typ, ok := doc.Get("type"); ok {
			if s, ok := typ.(string); ok {
				doc.Set("type", []string{s, types.TypeNull})
			}
		}
	}
	return doc, nil
}
