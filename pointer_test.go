package jsonstructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseValue(t *testing.T, src string) Value {
	t.Helper()
	v, err := ParseValue([]byte(src))
	require.NoError(t, err)
	return v
}

func TestResolvePointerRoot(t *testing.T) {
	doc := mustParseValue(t, `{"a": 1}`)
	v, err := ResolvePointer(doc, "#")
	require.NoError(t, err)
	assert.Equal(t, doc, v)
}

func TestResolvePointerNestedObjectAndArray(t *testing.T) {
	doc := mustParseValue(t, `{"definitions": {"items": [10, 20, {"name": "third"}]}}`)
	v, err := ResolvePointer(doc, "#/definitions/items/2/name")
	require.NoError(t, err)
	assert.Equal(t, "third", v.Str())
}

func TestResolvePointerUnescapesTildeAndSlash(t *testing.T) {
	doc := mustParseValue(t, `{"a/b": {"c~d": "found"}}`)
	v, err := ResolvePointer(doc, "#/a~1b/c~0d")
	require.NoError(t, err)
	assert.Equal(t, "found", v.Str())
}

func TestResolvePointerNotFound(t *testing.T) {
	doc := mustParseValue(t, `{"a": 1}`)
	_, err := ResolvePointer(doc, "#/missing")
	assert.ErrorIs(t, err, ErrPointerNotFound)
}

func TestResolvePointerRequiresHashPrefix(t *testing.T) {
	doc := mustParseValue(t, `{"a": 1}`)
	_, err := ResolvePointer(doc, "/a")
	assert.ErrorIs(t, err, ErrPointerSyntax)
}

func TestIsPointer(t *testing.T) {
	cases := map[string]bool{
		"#":           true,
		"#/a/b":       true,
		"#/a//b":      false,
		"":            false,
		"not-a-ptr":   false,
		"https://x/y": false,
	}
	for input, want := range cases {
		assert.Equal(t, want, IsPointer(input), "IsPointer(%q)", input)
	}
}
