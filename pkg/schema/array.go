package schema

import (
	"github.com/cubahno/schematest/internal/types"
)

// Array is a list of items of one type.
type Array struct {
	base
	item Item
}

// NewArray creates an array outside of any registry.
func NewArray(name string, item Item, opts ...Option) *Array {
	return &Array{
		base: newBase(name, newOptions(opts)),
		item: item,
	}
}

func (a *Array) Kind() Kind { return KindArray }

// Item returns the element type.
func (a *Array) Item() Item { return a.item }

func (a *Array) Fragment(includeRoot bool) (*Document, error) {
	return fragment(a, includeRoot)
}

func (a *Array) build(t *trail) (*Document, error) {
	doc := NewDocument()
	doc.Set("type", a.jsonType(types.TypeArray))
	if a.description != "" {
		doc.Set("description", a.description)
	}
	if a.item == nil {
		return doc, nil
	}
	items, err := a.item.build(t)
	if err != nil {
		return nil, err
	}
	doc.Set("items", items)
	return doc, nil
}
