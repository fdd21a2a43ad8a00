package loader

import (
	"github.com/cubahno/schematest/internal/types"
	"github.com/cubahno/schematest/pkg/schema"
	"gopkg.in/yaml.v3"
)

type fileDecl struct {
	Definitions []yaml.Node `yaml:"definitions"`
	Collections []yaml.Node `yaml:"collections"`

	file string
}

type definitionDecl struct {
	Name        string      `yaml:"name"`
	Version     yaml.Node   `yaml:"version"`
	Collection  string      `yaml:"collection"`
	Description string      `yaml:"description"`
	BasedOn     yaml.Node   `yaml:"based_on"`
	Properties  []yaml.Node `yaml:"properties"`
}

type collectionDecl struct {
	Name        string    `yaml:"name"`
	Of          string    `yaml:"of"`
	Version     yaml.Node `yaml:"version"`
	Description string    `yaml:"description"`
}

// targetDecl points at a root schema: `based_on` and the mapping form of `of`.
type targetDecl struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Version     yaml.Node `yaml:"version"`
	Unversioned bool      `yaml:"unversioned"`
	Nullable    bool      `yaml:"nullable"`
	Except      []string  `yaml:"except"`
}

type propertyDecl struct {
	Desc        string      `yaml:"desc"`
	Optional    bool        `yaml:"optional"`
	Nullable    bool        `yaml:"nullable"`
	As          string      `yaml:"as"`
	Version     yaml.Node   `yaml:"version"`
	Unversioned bool        `yaml:"unversioned"`
	Except      []string    `yaml:"except"`
	Of          yaml.Node   `yaml:"of"`
	Properties  []yaml.Node `yaml:"properties"`
}

var propertyKeys = []string{"desc", "optional", "nullable", "as", "version", "unversioned", "except", "of", "properties"}

var shorthands = map[string]func(b *schema.Builder) *schema.Scalar{
	"id":         (*schema.Builder).ID,
	"slug":       (*schema.Builder).Slug,
	"created_at": (*schema.Builder).CreatedAt,
	"updated_at": (*schema.Builder).UpdatedAt,
}

func (l *Loader) define(file string, n *yaml.Node) ([]schema.Root, error) {
	var d definitionDecl
	if err := n.Decode(&d); err != nil {
		return nil, invalid(file, n, "%v", err)
	}
	if d.Name == "" {
		return nil, invalid(file, n, "definition without a name")
	}

	version, err := parseVersion(file, &d.Version)
	if err != nil {
		return nil, err
	}

	opts := []schema.DefineOption{
		schema.WithLocation(location(file, n)),
		schema.WithDescription(d.Description),
	}
	if num, ok := version.Number(); ok {
		opts = append(opts, schema.WithVersion(num))
	}
	if d.Collection != "" {
		opts = append(opts, schema.WithCollection(d.Collection))
	}

	var buildErr error
	roots := l.registry.Declare(d.Name, func(b *schema.Builder) {
		if d.BasedOn.Kind != 0 {
			target, targetOpts, err := parseTarget(file, &d.BasedOn)
			if err != nil {
				buildErr = err
				return
			}
			b.BasedOn(target, targetOpts...)
		}
		buildErr = declare(b, file, d.Properties)
	}, opts...)

	if buildErr != nil {
		return nil, buildErr
	}
	return roots, nil
}

func (l *Loader) collection(file string, n *yaml.Node) (*schema.Collection, error) {
	var c collectionDecl
	if err := n.Decode(&c); err != nil {
		return nil, invalid(file, n, "%v", err)
	}
	if c.Name == "" || c.Of == "" {
		return nil, invalid(file, n, "collection needs a name and an item type")
	}

	version, err := parseVersion(file, &c.Version)
	if err != nil {
		return nil, err
	}

	opts := []schema.DefineOption{
		schema.WithLocation(location(file, n)),
		schema.WithDescription(c.Description),
	}
	if num, ok := version.Number(); ok {
		opts = append(opts, schema.WithVersion(num))
	}

	return l.registry.DeclareCollection(c.Name, c.Of, opts...), nil
}

func declare(b *schema.Builder, file string, nodes []yaml.Node) error {
	for i := range nodes {
		if err := declareProperty(b, file, &nodes[i]); err != nil {
			return err
		}
	}
	return nil
}

func declareProperty(b *schema.Builder, file string, n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		fn, ok := shorthands[n.Value]
		if !ok {
			return invalid(file, n, "unknown shorthand %q", n.Value)
		}
		fn(b)
		return nil
	case yaml.MappingNode:
	default:
		return invalid(file, n, "property must be a shorthand or a mapping")
	}

	kind, name, err := kindKey(file, n)
	if err != nil {
		return err
	}

	var p propertyDecl
	if err := n.Decode(&p); err != nil {
		return invalid(file, n, "%v", err)
	}

	opts, err := p.options(file)
	if err != nil {
		return err
	}

	switch kind {
	case schema.KindObject:
		if p.Of.Kind != 0 {
			return invalid(file, n, "object %q does not take `of`", name)
		}
		if len(p.Properties) > 0 {
			var err error
			b.Object(name, func(ob *schema.Builder) {
				err = declare(ob, file, p.Properties)
			}, opts...)
			return err
		}
		b.Ref(name, opts...)

	case schema.KindArray:
		item, err := arrayItem(b, file, n, &p)
		if err != nil {
			return err
		}
		b.Array(name, item, opts...)

	default:
		if p.Of.Kind != 0 || len(p.Properties) > 0 {
			return invalid(file, n, "%s %q takes neither `of` nor `properties`", kind, name)
		}
		b.Scalar(kind, name, opts...)
	}

	return nil
}

// kindKey finds the single kind key of a property mapping.
func kindKey(file string, n *yaml.Node) (schema.Kind, string, error) {
	var (
		kind  schema.Kind
		name  string
		found int
	)

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if k, ok := schema.ParseKind(key.Value); ok {
			kind, name = k, value.Value
			found++
			continue
		}
		if !types.SliceContains(propertyKeys, key.Value) {
			return "", "", invalid(file, key, "unknown property key %q", key.Value)
		}
	}

	if found != 1 {
		return "", "", invalid(file, n, "expected exactly one kind key, found %d", found)
	}
	if name == "" {
		return "", "", invalid(file, n, "%s property without a name", kind)
	}
	return kind, name, nil
}

func arrayItem(b *schema.Builder, file string, n *yaml.Node, p *propertyDecl) (schema.Item, error) {
	switch {
	case p.Of.Kind != 0 && len(p.Properties) > 0:
		return nil, invalid(file, n, "array takes either `of` or `properties`")

	case len(p.Properties) > 0:
		var err error
		shape := b.Shape(func(sb *schema.Builder) {
			err = declare(sb, file, p.Properties)
		})
		return shape, err

	case p.Of.Kind == yaml.ScalarNode:
		if k, ok := schema.ParseKind(p.Of.Value); ok {
			if !k.IsScalar() {
				return nil, invalid(file, &p.Of, "array of %s needs `properties`", k)
			}
			return k, nil
		}
		return b.Type(p.Of.Value), nil

	case p.Of.Kind == yaml.MappingNode:
		target, opts, err := parseTarget(file, &p.Of)
		if err != nil {
			return nil, err
		}
		return b.Type(target, opts...), nil
	}

	return nil, invalid(file, n, "array needs `of` or `properties`")
}

// parseTarget reads either a bare name or a mapping with name (or type) and version pins.
func parseTarget(file string, n *yaml.Node) (string, []schema.Option, error) {
	if n.Kind == yaml.ScalarNode {
		if n.Value == "" {
			return "", nil, invalid(file, n, "empty target")
		}
		return n.Value, nil, nil
	}

	var t targetDecl
	if err := n.Decode(&t); err != nil {
		return "", nil, invalid(file, n, "%v", err)
	}

	target := t.Name
	if target == "" {
		target = t.Type
	}
	if target == "" {
		return "", nil, invalid(file, n, "target without a name")
	}

	opts, err := pins(file, &t.Version, t.Unversioned)
	if err != nil {
		return "", nil, err
	}
	if t.Nullable {
		opts = append(opts, schema.Nullable())
	}
	if len(t.Except) > 0 {
		opts = append(opts, schema.Except(t.Except...))
	}
	return target, opts, nil
}

func (p *propertyDecl) options(file string) ([]schema.Option, error) {
	opts, err := pins(file, &p.Version, p.Unversioned)
	if err != nil {
		return nil, err
	}

	if p.Desc != "" {
		opts = append(opts, schema.Desc(p.Desc))
	}
	if p.Optional {
		opts = append(opts, schema.Optional())
	}
	if p.Nullable {
		opts = append(opts, schema.Nullable())
	}
	if p.As != "" {
		opts = append(opts, schema.As(p.As))
	}
	if len(p.Except) > 0 {
		opts = append(opts, schema.Except(p.Except...))
	}
	return opts, nil
}

func pins(file string, version *yaml.Node, unversioned bool) ([]schema.Option, error) {
	if unversioned {
		return []schema.Option{schema.Versionless()}, nil
	}

	v, err := parseVersion(file, version)
	if err != nil {
		return nil, err
	}
	if num, ok := v.Number(); ok {
		return []schema.Option{schema.AtVersion(num)}, nil
	}
	return nil, nil
}

func parseVersion(file string, n *yaml.Node) (schema.Version, error) {
	if n.Kind == 0 {
		return schema.Unversioned, nil
	}
	v, err := schema.ParseVersion(n.Value)
	if err != nil {
		return v, invalid(file, n, "%v", err)
	}
	return v, nil
}
