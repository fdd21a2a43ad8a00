package schema

import (
	"testing"

	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func propertyNames(t *testing.T, obj *Object) []string {
	t.Helper()
	props, err := obj.Properties()
	require.NoError(t, err)
	res := make([]string, 0, len(props))
	for _, p := range props {
		res = append(res, p.Name())
	}
	return res
}

func TestObject_Resolve(t *testing.T) {
	assert := assert2.New(t)

	t.Run("inheritance with exclusion", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("base", func(b *Builder) {
			b.String("x")
			b.String("y")
		})
		derived := reg.Define("derived", func(b *Builder) {
			b.BasedOn("base", Except("x"))
			b.String("z")
		})

		assert.Equal([]string{"y", "z"}, propertyNames(t, &derived.Object))
	})

	t.Run("local property overrides inherited one in place", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("person", func(b *Builder) {
			b.String("name")
			b.Object("address", func(b *Builder) {
				b.String("street")
			})
			b.Integer("age")
		})
		employee := reg.Define("employee", func(b *Builder) {
			b.BasedOn("person")
			b.Object("address", func(b *Builder) {
				b.String("office")
			})
		})

		assert.Equal([]string{"name", "address", "age"}, propertyNames(t, &employee.Object))

		address, ok, err := employee.Property("address")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal([]string{"office"}, propertyNames(t, address.(*Object)))
	})

	t.Run("exclusion wins over redeclaration", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("base", func(b *Builder) {
			b.String("x")
			b.String("y")
		})
		derived := reg.Define("derived", func(b *Builder) {
			b.BasedOn("base", Except("x"))
			b.Integer("x")
		})

		assert.Equal([]string{"y"}, propertyNames(t, &derived.Object))
	})

	t.Run("repeated resolution does not duplicate properties", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("base", func(b *Builder) {
			b.String("x")
		})
		derived := reg.Define("derived", func(b *Builder) {
			b.BasedOn("base")
			b.String("z")
		})

		require.NoError(t, derived.Resolve())
		require.NoError(t, derived.Resolve())
		assert.Equal([]string{"x", "z"}, propertyNames(t, &derived.Object))
	})

	t.Run("forward references resolve once the target is registered", func(t *testing.T) {
		reg := NewRegistry()
		film := reg.Define("film", func(b *Builder) {
			b.String("title")
			b.Ref("director")
		})

		_, err := film.Compile(testDomain)
		require.ErrorIs(t, err, ErrUnresolvedReference)

		reg.Define("director", func(b *Builder) {
			b.String("name")
		})

		_, err = film.Compile(testDomain)
		assert.NoError(err)
	})

	t.Run("inheriting from an unknown definition", func(t *testing.T) {
		reg := NewRegistry()
		derived := reg.Define("derived", func(b *Builder) {
			b.BasedOn("missing", AtVersion(7))
		})

		err := derived.Resolve()
		var unresolved *UnresolvedReferenceError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal([]Version{V(7)}, unresolved.Versions)
	})

	t.Run("inheriting from a collection", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("thing", func(b *Builder) {
			b.String("name")
		}, WithCollection("things"))
		derived := reg.Define("derived", func(b *Builder) {
			b.BasedOn("things")
		})

		assert.ErrorIs(derived.Resolve(), ErrInvalidInheritance)
	})
}

func TestReference_Resolve(t *testing.T) {
	assert := assert2.New(t)

	t.Run("falls back to the unversioned definition", func(t *testing.T) {
		reg := NewRegistry()
		thing := reg.Define("thing", func(b *Builder) {
			b.String("name")
		})
		container := reg.Define("container", func(b *Builder) {
			b.Ref("thing")
			b.Array("things", b.Type("thing"))
		}, WithVersion(1))

		doc, err := container.Compile(testDomain)
		require.NoError(t, err)
		assert.NotNil(doc)

		ref := reg.NewReference("thing", V(1))
		found, err := ref.Resolve()
		require.NoError(t, err)
		assert.Same(thing, found)
	})

	t.Run("prefers the enclosing version", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("thing", func(b *Builder) {
			b.String("old")
		})
		v2 := reg.Define("thing", func(b *Builder) {
			b.String("new")
		}, WithVersion(2))

		found, err := reg.NewReference("thing", V(2)).Resolve()
		require.NoError(t, err)
		assert.Same(v2, found)
	})

	t.Run("pinned version is the only candidate", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("thing", nil)

		ref := reg.NewReference("thing", V(2), AtVersion(3))
		assert.Equal([]Version{V(3)}, ref.Candidates())
		_, err := ref.Resolve()
		assert.ErrorIs(err, ErrUnresolvedReference)
	})

	t.Run("pinned to unversioned", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("thing", nil, WithVersion(2))

		ref := reg.NewReference("thing", V(2), Versionless())
		assert.Equal([]Version{Unversioned}, ref.Candidates())
		_, err := ref.Resolve()
		assert.ErrorIs(err, ErrUnresolvedReference)
	})

	t.Run("unversioned enclosing has a single candidate", func(t *testing.T) {
		reg := NewRegistry()
		assert.Equal([]Version{Unversioned}, reg.NewReference("thing", Unversioned).Candidates())
	})

	t.Run("lookups are not memoized", func(t *testing.T) {
		reg := NewRegistry()
		first := reg.Define("thing", nil)
		ref := reg.NewReference("thing", Unversioned)

		found, err := ref.Resolve()
		require.NoError(t, err)
		assert.Same(first, found)

		second := reg.Define("thing", nil)
		found, err = ref.Resolve()
		require.NoError(t, err)
		assert.Same(second, found)
	})

	t.Run("kind follows the target", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("thing", nil, WithCollection("things"))
		assert.Equal(KindObject, reg.NewReference("thing", Unversioned).Kind())
		assert.Equal(KindArray, reg.NewReference("things", Unversioned).Kind())
		assert.Equal(KindObject, reg.NewReference("missing", Unversioned).Kind())
	})

	t.Run("nullable reference widens the target type", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("tag", func(b *Builder) {
			b.String("label")
		})
		post := reg.Define("post", func(b *Builder) {
			b.Array("tags", b.Type("tag", Nullable()))
		})

		doc, err := post.Fragment(false)
		require.NoError(t, err)
		assert.Contains(toJSON(t, doc), `"items":{"type":["object","null"]`)
	})
}

func TestCircularReferences(t *testing.T) {
	assert := assert2.New(t)

	t.Run("circular inheritance", func(t *testing.T) {
		reg := NewRegistry()
		a := reg.Define("a", func(b *Builder) {
			b.BasedOn("b")
		})
		reg.Define("b", func(b *Builder) {
			b.BasedOn("a")
		})

		err := a.Resolve()
		var circular *CircularReferenceError
		require.ErrorAs(t, err, &circular)
		assert.Equal([]string{"a", "b", "a"}, circular.Chain)
		assert.Equal("circular reference: a -> b -> a", err.Error())
	})

	t.Run("self inheritance", func(t *testing.T) {
		reg := NewRegistry()
		a := reg.Define("a", func(b *Builder) {
			b.BasedOn("a")
		}, WithVersion(1))

		err := a.Resolve()
		assert.ErrorIs(err, ErrCircularReference)
		assert.Equal("circular reference: a@v1 -> a@v1", err.Error())
	})

	t.Run("recursive containment fails compilation", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("director", func(b *Builder) {
			b.String("name")
			b.Array("films", b.Type("film"))
		})
		film := reg.Define("film", func(b *Builder) {
			b.String("title")
			b.Ref("director")
		})

		_, err := film.Compile(testDomain)
		assert.ErrorIs(err, ErrCircularReference)
	})

	t.Run("shared definitions are not cycles", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("person", func(b *Builder) {
			b.String("name")
		})
		film := reg.Define("film", func(b *Builder) {
			b.Ref("person", As("director"))
			b.Ref("person", As("producer"))
			b.Array("cast", b.Type("person"))
		})

		_, err := film.Compile(testDomain)
		assert.NoError(err)
	})
}
