// Package sample generates payloads matching compiled schemas.
package sample

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/cubahno/schematest/pkg/schema"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MaxDepth bounds nesting of generated values.
	MaxDepth = 32

	minItems = 1
	maxItems = 3
)

var (
	ErrDepthExceeded = errors.New("sample nesting too deep")
	ErrUnknownNode   = errors.New("unknown schema node")
)

// ValueMaker produces a value for a named scalar property.
type ValueMaker func(faker *gofakeit.Faker) any

// Generator builds sample payloads with a seeded faker.
// Every property is present, optional ones included, and arrays hold 1 to 3 items.
type Generator struct {
	faker *gofakeit.Faker
	names map[string]ValueMaker
}

// New creates a generator. The same seed produces the same samples.
func New(seed int64) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
		names: defaultNames(),
	}
}

// Generate produces a payload for a root schema.
func (g *Generator) Generate(root schema.Root) (any, error) {
	return g.value(root, 0)
}

func (g *Generator) value(item schema.Item, depth int) (any, error) {
	if depth > MaxDepth {
		return nil, ErrDepthExceeded
	}

	switch n := item.(type) {
	case *schema.Scalar:
		return g.scalar(n.Kind(), n.Name()), nil
	case schema.Kind:
		return g.scalar(n, ""), nil
	case *schema.Definition:
		return g.object(&n.Object, depth)
	case *schema.Object:
		return g.object(n, depth)
	case *schema.Array:
		return g.items(n.Item(), depth)
	case *schema.Collection:
		return g.items(n.Item(), depth)
	case *schema.Reference:
		root, err := n.Resolve()
		if err != nil {
			return nil, err
		}
		return g.value(root, depth+1)
	}

	return nil, fmt.Errorf("%w: %T", ErrUnknownNode, item)
}

func (g *Generator) object(obj *schema.Object, depth int) (map[string]any, error) {
	props, err := obj.Properties()
	if err != nil {
		return nil, err
	}

	res := make(map[string]any, len(props))
	for _, p := range props {
		v, err := g.value(p, depth+1)
		if err != nil {
			return nil, err
		}
		res[p.Name()] = v
	}
	return res, nil
}

func (g *Generator) items(item schema.Item, depth int) ([]any, error) {
	n := g.faker.IntRange(minItems, maxItems)
	res := make([]any, 0, n)
	for i := 0; i < n; i++ {
		v, err := g.value(item, depth+1)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func (g *Generator) scalar(kind schema.Kind, name string) any {
	if maker, ok := g.names[strings.ToLower(name)]; ok {
		if v := maker(g.faker); matchesKind(v, kind) {
			return v
		}
	}

	faker := g.faker
	switch kind {
	case schema.KindBoolean:
		return faker.Bool()
	case schema.KindInteger:
		if strings.HasSuffix(name, "_id") {
			return faker.IntRange(1, 100000)
		}
		return faker.IntRange(1, 1000)
	case schema.KindFloat:
		return faker.Float64Range(0, 1000)
	case schema.KindDate:
		return faker.Date().Format("2006-01-02")
	case schema.KindDateTime:
		return faker.Date().UTC().Format(time.RFC3339)
	case schema.KindURL:
		return faker.URL()
	case schema.KindHTML:
		return "<p>" + faker.Sentence(6) + "</p>"
	case schema.KindNull:
		return nil
	}
	return faker.Word()
}

func defaultNames() map[string]ValueMaker {
	return map[string]ValueMaker{
		"id": func(f *gofakeit.Faker) any {
			return f.IntRange(1, 100000)
		},
		"slug": func(f *gofakeit.Faker) any {
			return strings.ToLower(f.Word() + "-" + f.Word())
		},
		"name": func(f *gofakeit.Faker) any {
			return f.Name()
		},
		"first_name": func(f *gofakeit.Faker) any {
			return f.FirstName()
		},
		"last_name": func(f *gofakeit.Faker) any {
			return f.LastName()
		},
		"email": func(f *gofakeit.Faker) any {
			return f.Email()
		},
		"title": func(f *gofakeit.Faker) any {
			return cases.Title(language.English).String(strings.TrimSuffix(f.Sentence(3), "."))
		},
		"uuid": func(f *gofakeit.Faker) any {
			return f.UUID()
		},
		"language": func(f *gofakeit.Faker) any {
			return f.LanguageAbbreviation()
		},
	}
}

// matchesKind checks a name-based value fits the declared kind.
func matchesKind(v any, kind schema.Kind) bool {
	switch v.(type) {
	case string:
		return kind == schema.KindString || kind == schema.KindHTML
	case int:
		return kind == schema.KindInteger || kind == schema.KindFloat
	}
	return false
}
