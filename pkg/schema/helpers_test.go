package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const testDomain = "example.com"

func toJSON(t *testing.T, doc *Document) string {
	t.Helper()
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(b)
}

func compile(t *testing.T, root Root) string {
	t.Helper()
	doc, err := root.Compile(testDomain)
	require.NoError(t, err)
	return toJSON(t, doc)
}
