package types

// JSON Schema primitive types.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
	TypeNull    = "null"
)

// Formats asserted by draft-07 validators.
const (
	FormatDate     = "date"
	FormatDateTime = "date-time"
	FormatURI      = "uri"
)

// SchemaDraft07 is the meta-schema URI put into every compiled document.
const SchemaDraft07 = "http://json-schema.org/draft-07/schema#"
