// Package openapi exports registered schemas as OpenAPI 3 components.
package openapi

import (
	"fmt"

	"github.com/cubahno/schematest/pkg/schema"
	"github.com/getkin/kin-openapi/openapi3"
)

// ComponentsPrefix prefixes references between exported components.
const ComponentsPrefix = "#/components/schemas/"

// ComponentName is the component key of a root: the name, suffixed with the version if any.
func ComponentName(root schema.Root) string {
	if n, ok := root.Version().Number(); ok {
		return fmt.Sprintf("%s_v%d", root.Name(), n)
	}
	return root.Name()
}

// Export converts every root of the registry.
// References between roots become component refs with their value populated.
func Export(reg *schema.Registry) (openapi3.Schemas, error) {
	e := &exporter{schemas: make(map[string]*openapi3.Schema)}

	res := make(openapi3.Schemas)
	for _, root := range reg.Roots() {
		s, err := e.component(root)
		if err != nil {
			return nil, fmt.Errorf("exporting %s: %w", ComponentName(root), err)
		}
		res[ComponentName(root)] = openapi3.NewSchemaRef("", s)
	}
	return res, nil
}

// Components wraps exported schemas the way they appear in an OpenAPI document.
func Components(reg *schema.Registry) (map[string]any, error) {
	schemas, err := Export(reg)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"components": map[string]any{
			"schemas": schemas,
		},
	}, nil
}

type exporter struct {
	schemas map[string]*openapi3.Schema
}

// component converts a root once.
// The entry is registered before conversion so that roots containing themselves terminate.
func (e *exporter) component(root schema.Root) (*openapi3.Schema, error) {
	name := ComponentName(root)
	if s, ok := e.schemas[name]; ok {
		return s, nil
	}

	s := &openapi3.Schema{}
	e.schemas[name] = s

	v, err := e.convert(root)
	if err != nil {
		delete(e.schemas, name)
		return nil, err
	}
	*s = *v
	return s, nil
}

func (e *exporter) ref(root schema.Root) (*openapi3.SchemaRef, error) {
	s, err := e.component(root)
	if err != nil {
		return nil, err
	}
	return openapi3.NewSchemaRef(ComponentsPrefix+ComponentName(root), s), nil
}

func (e *exporter) item(item schema.Item) (*openapi3.SchemaRef, error) {
	if r, ok := item.(*schema.Reference); ok {
		root, err := r.Resolve()
		if err != nil {
			return nil, err
		}
		ref, err := e.ref(root)
		if err != nil {
			return nil, err
		}
		if !r.IsNullable() {
			return ref, nil
		}
		return openapi3.NewSchemaRef("", &openapi3.Schema{
			Nullable: true,
			AllOf:    openapi3.SchemaRefs{ref},
		}), nil
	}

	s, err := e.convert(item)
	if err != nil {
		return nil, err
	}
	return openapi3.NewSchemaRef("", s), nil
}

func (e *exporter) convert(item schema.Item) (*openapi3.Schema, error) {
	switch n := item.(type) {
	case schema.Kind:
		return kindSchema(n), nil

	case *schema.Scalar:
		s := kindSchema(n.Kind())
		s.Format = n.Kind().Format()
		s.Description = n.Description()
		if n.IsNullable() {
			s.Nullable = true
		}
		return s, nil

	case *schema.Definition:
		return e.object(&n.Object)

	case *schema.Object:
		return e.object(n)

	case *schema.Array:
		items, err := e.item(n.Item())
		if err != nil {
			return nil, err
		}
		s := openapi3.NewArraySchema()
		s.Items = items
		s.Description = n.Description()
		s.Nullable = n.IsNullable()
		return s, nil

	case *schema.Collection:
		items, err := e.item(n.Item())
		if err != nil {
			return nil, err
		}
		s := openapi3.NewArraySchema()
		s.Items = items
		s.MinItems = 1
		s.Description = n.Description()
		return s, nil

	case *schema.Reference:
		ref, err := e.item(n)
		if err != nil {
			return nil, err
		}
		return &openapi3.Schema{AllOf: openapi3.SchemaRefs{ref}}, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedNode, item)
}

func (e *exporter) object(obj *schema.Object) (*openapi3.Schema, error) {
	props, err := obj.Properties()
	if err != nil {
		return nil, err
	}

	s := openapi3.NewObjectSchema()
	s.Description = obj.Description()
	s.Nullable = obj.IsNullable()
	s.Required = []string{}
	s.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}

	for _, p := range props {
		ref, err := e.item(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
		s.Properties[p.Name()] = ref
		if !p.IsOptional() {
			s.Required = append(s.Required, p.Name())
		}
	}
	return s, nil
}

// kindSchema maps a kind to its base schema. OpenAPI 3.0 has no null type.
func kindSchema(k schema.Kind) *openapi3.Schema {
	if k == schema.KindNull {
		return &openapi3.Schema{Nullable: true}
	}
	return &openapi3.Schema{Type: k.JSONType()}
}
