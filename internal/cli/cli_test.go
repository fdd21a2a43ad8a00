package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const definitionsYAML = `definitions:
  - name: director
    properties:
      - string: name
  - name: film
    version: 2
    collection: films
    properties:
      - id
      - string: title
      - object: director
`

func setupDefinitions(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defs.yml"), []byte(definitionsYAML), 0644))
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestListCmd(t *testing.T) {
	assert := assert2.New(t)
	dir := setupDefinitions(t)

	out, err := run(t, "", "--path", dir, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(lines[0], "director")
	assert.Contains(lines[0], "unversioned object")
	assert.Contains(lines[1], "film")
	assert.Contains(lines[1], "v2 object")
	assert.Contains(lines[1], "defs.yml:5")
	assert.Contains(lines[2], "films")
	assert.Contains(lines[2], "v2 array")

	t.Run("empty", func(t *testing.T) {
		out, err := run(t, "", "--path", t.TempDir(), "list")
		assert.NoError(err)
		assert.Contains(out, "No schemas found")
	})
}

func TestCompileCmd(t *testing.T) {
	assert := assert2.New(t)
	dir := setupDefinitions(t)

	out, err := run(t, "", "--path", dir, "--domain", "schemas.test", "compile", "film", "--version", "2")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal("http://schemas.test/v2/film.json", doc["$id"])
	assert.Equal([]any{"id", "title", "director"}, doc["required"])

	t.Run("unknown schema", func(t *testing.T) {
		_, err := run(t, "", "--path", dir, "compile", "film")
		assert.Error(err)
		assert.Equal(ExitGeneralError, ExitCodeForError(err))
	})

	t.Run("bad version", func(t *testing.T) {
		_, err := run(t, "", "--path", dir, "compile", "film", "--version", "two")
		assert.Error(err)
		assert.Contains(err.Error(), `"two"`)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := run(t, "", "--path", dir, "compile")
		assert.Error(err)
		assert.Equal(ExitUsageError, ExitCodeForError(err))
	})
}

func TestValidateCmd(t *testing.T) {
	assert := assert2.New(t)
	dir := setupDefinitions(t)

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "film.json")
		require.NoError(t, os.WriteFile(path,
			[]byte(`{"id": 1, "title": "Heat", "director": {"name": "Michael Mann"}}`), 0644))

		out, err := run(t, "", "--path", dir, "validate", "film", path, "--version", "v2")
		assert.NoError(err)
		assert.Contains(out, "payload matches film v2")
	})

	t.Run("invalid stdin", func(t *testing.T) {
		out, err := run(t, `{"id": 1, "title": "Heat"}`, "--path", dir, "validate", "film", "-", "--version", "2")
		assert.True(errors.Is(err, ErrPayloadInvalid))
		assert.Equal(ExitGeneralError, ExitCodeForError(err))
		assert.Contains(out, `value at  ({"id":1,"title":"Heat"}) failed validation: missing some required attributes`)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := run(t, `{"id":`, "--path", dir, "validate", "film", "-", "--version", "2")
		assert.Error(err)
		assert.False(errors.Is(err, ErrPayloadInvalid))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "", "--path", dir, "validate", "film", filepath.Join(t.TempDir(), "missing.json"), "--version", "2")
		assert.Error(err)
	})
}

func TestSampleCmd(t *testing.T) {
	assert := assert2.New(t)
	dir := setupDefinitions(t)

	out, err := run(t, "", "--path", dir, "sample", "films", "--version", "2", "--seed", "3")
	require.NoError(t, err)

	again, err := run(t, "", "--path", dir, "sample", "films", "--version", "2", "--seed", "3")
	require.NoError(t, err)
	assert.Equal(out, again)

	res, err := run(t, out, "--path", dir, "validate", "films", "-", "--version", "2")
	assert.NoError(err)
	assert.Contains(res, "payload matches films v2")
}

func TestOpenAPICmd(t *testing.T) {
	dir := setupDefinitions(t)

	out, err := run(t, "", "--path", dir, "openapi")
	require.NoError(t, err)
	assert2.Contains(t, out, `"film_v2": {`)
	assert2.Contains(t, out, `"$ref": "#/components/schemas/film_v2"`)
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert2.True(t, strings.HasPrefix(out, "schematest dev ("))
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"unknown flag", errors.New("unknown flag: --foo"), ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), ExitUsageError},
		{"invalid payload", ErrPayloadInvalid, ExitGeneralError},
		{"general error", errors.New("something went wrong"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert2.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}
