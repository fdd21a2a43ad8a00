package schema

import (
	"fmt"
)

const anonymous = "(anonymous)"

// trail is the stack of objects being visited by resolution, compilation or comparison.
// Entering an object that is already on the stack means the graph has a cycle.
type trail struct {
	stack []*Object
}

func newTrail() *trail {
	return &trail{}
}

func (t *trail) push(o *Object) error {
	for i, seen := range t.stack {
		if seen != o {
			continue
		}
		chain := make([]string, 0, len(t.stack)-i+1)
		for _, obj := range t.stack[i:] {
			chain = append(chain, obj.label())
		}
		chain = append(chain, o.label())
		return &CircularReferenceError{Chain: chain}
	}
	t.stack = append(t.stack, o)
	return nil
}

func (t *trail) pop() {
	t.stack = t.stack[:len(t.stack)-1]
}

// Resolve merges inherited and declared properties of the object and applies exclusions.
// The result is memoized on success.
func (o *Object) Resolve() error {
	_, err := o.resolve(newTrail())
	return err
}

func (o *Object) resolve(t *trail) (*propertyMap, error) {
	if o.resolved != nil {
		return o.resolved, nil
	}

	if err := t.push(o); err != nil {
		return nil, err
	}
	defer t.pop()

	merged := newPropertyMap()

	if o.inherits != nil {
		parent, err := o.inherits.object()
		if err != nil {
			return nil, err
		}
		inherited, err := parent.resolve(t)
		if err != nil {
			return nil, err
		}
		for pair := inherited.Oldest(); pair != nil; pair = pair.Next() {
			merged.Set(pair.Key, pair.Value)
		}
	}

	for pair := o.declared.Oldest(); pair != nil; pair = pair.Next() {
		merged.Set(pair.Key, pair.Value)
	}

	for _, name := range o.excluded {
		merged.Delete(name)
	}

	o.resolved = merged
	return merged, nil
}

// Resolve looks the target up in the registry trying every version candidate in order.
// The lookup is repeated on every call.
func (r *Reference) Resolve() (Root, error) {
	for _, v := range r.candidates {
		if found := r.registry.Find(r.target, v); found != nil {
			return found, nil
		}
	}
	return nil, &UnresolvedReferenceError{Name: r.target, Versions: r.candidates}
}

func (r *Reference) object() (*Object, error) {
	root, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	def, ok := root.(*Definition)
	if !ok {
		return nil, fmt.Errorf("%w: %q has kind %s", ErrInvalidInheritance, r.target, root.Kind())
	}
	return &def.Object, nil
}
