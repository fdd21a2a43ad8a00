package schema

import (
	"github.com/cubahno/schematest/internal/types"
)

// Kind is the type tag of a schema node.
type Kind string

const (
	KindBoolean  Kind = "boolean"
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindString   Kind = "string"
	KindDate     Kind = "date"
	KindDateTime Kind = "datetime"
	KindURL      Kind = "url"
	KindHTML     Kind = "html"
	KindNull     Kind = "null"
	KindObject   Kind = "object"
	KindArray    Kind = "array"
)

type kindInfo struct {
	jsonType string
	format   string
	scalar   bool
}

var kinds = map[Kind]kindInfo{
	KindBoolean:  {jsonType: types.TypeBoolean, scalar: true},
	KindInteger:  {jsonType: types.TypeInteger, scalar: true},
	KindFloat:    {jsonType: types.TypeNumber, scalar: true},
	KindString:   {jsonType: types.TypeString, scalar: true},
	KindDate:     {jsonType: types.TypeString, format: types.FormatDate, scalar: true},
	KindDateTime: {jsonType: types.TypeString, format: types.FormatDateTime, scalar: true},
	KindURL:      {jsonType: types.TypeString, format: types.FormatURI, scalar: true},
	KindHTML:     {jsonType: types.TypeString, scalar: true},
	KindNull:     {jsonType: types.TypeNull, scalar: true},
	KindObject:   {jsonType: types.TypeObject},
	KindArray:    {jsonType: types.TypeArray},
}

// ScalarKinds lists the scalar tags in declaration order.
var ScalarKinds = []Kind{
	KindBoolean, KindInteger, KindFloat, KindString, KindDate, KindDateTime, KindURL, KindHTML, KindNull,
}

// ParseKind looks up a kind by its tag.
func ParseKind(tag string) (Kind, bool) {
	k := Kind(tag)
	_, ok := kinds[k]
	return k, ok
}

// JSONType returns the JSON Schema primitive type the kind serializes to.
func (k Kind) JSONType() string {
	return kinds[k].jsonType
}

// Format returns the JSON Schema format of the kind or empty string.
func (k Kind) Format() string {
	return kinds[k].format
}

func (k Kind) IsScalar() bool {
	return kinds[k].scalar
}

func (k Kind) String() string {
	return string(k)
}

// build makes a raw kind usable as an array item.
// Only the base type is emitted, without format.
func (k Kind) build(_ *trail) (*Document, error) {
	doc := NewDocument()
	doc.Set("type", k.JSONType())
	return doc, nil
}
