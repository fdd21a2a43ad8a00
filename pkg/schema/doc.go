// Package schema models named, versioned data shapes and compiles them into JSON Schema draft-07 documents.
//
// Definitions are declared on a Registry with a Builder:
//
//	reg := schema.NewRegistry()
//	reg.Define("director", func(b *schema.Builder) {
//		b.String("name")
//	})
//	reg.Define("film", func(b *schema.Builder) {
//		b.String("title")
//		b.Integer("year", schema.Nullable())
//		b.Ref("director")
//		b.Array("tags", schema.KindString, schema.Optional())
//	}, schema.WithVersion(1), schema.WithCollection("films"))
//
// References are looked up lazily, on compilation or comparison,
// so definitions may refer to names that are registered later.
// A reference without an explicit version tries the version of the enclosing definition first,
// then the unversioned one.
package schema
