package schema

import (
	"github.com/cubahno/schematest/internal/types"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SchemaURI is the `$schema` of every compiled document.
const SchemaURI = types.SchemaDraft07

// Document is a JSON object that keeps its keys in insertion order.
// It marshals to JSON deterministically.
type Document = orderedmap.OrderedMap[string, any]

// NewDocument creates an empty document.
func NewDocument() *Document {
	return orderedmap.New[string, any]()
}

func wrap(name string, frag *Document) *Document {
	doc := NewDocument()
	doc.Set(name, frag)
	return doc
}

func header(name string, version Version, domain string) *Document {
	doc := NewDocument()
	doc.Set("$schema", SchemaURI)
	doc.Set("$id", ID(domain, name, version))
	doc.Set("title", name)
	return doc
}

// ID builds the `$id` of a root schema.
func ID(domain, name string, version Version) string {
	return "http://" + domain + "/" + version.Segment() + name + ".json"
}

// Path is the `$id` without scheme and domain, e.g. "v1/film.json".
func Path(name string, version Version) string {
	return version.Segment() + name + ".json"
}
