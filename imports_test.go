package jsonstructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandImportsDisabledByDefault(t *testing.T) {
	doc := mustParseValue(t, `{"$import": "https://example.com/schemas/common"}`)
	expanded, diags := ExpandImports(doc, Options{})
	assert.True(t, diags.Empty())
	_, stillHasImport := expanded.Object().Get("$import")
	assert.True(t, stillHasImport, "without AllowImport the document should pass through untouched")
}

func TestExpandImportsMergesNamedType(t *testing.T) {
	common := mustParseValue(t, `{
		"name": "Common",
		"type": "object",
		"properties": {"id": {"type": "string"}}
	}`)
	resolver := MapResolver{Documents: map[string]Value{
		"https://example.com/schemas/common": common,
	}}
	doc := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/core/v0/#",
		"$id": "https://example.com/schemas/x",
		"$import": "https://example.com/schemas/common"
	}`)
	expanded, diags := ExpandImports(doc, Options{AllowImport: true, Resolver: resolver})
	assert.True(t, diags.Empty(), "unexpected diagnostics: %v", diags.Strings())

	_, hasImportKeyword := expanded.Object().Get("$import")
	assert.False(t, hasImportKeyword, "$import keyword should be consumed")

	commonV, ok := expanded.Object().Get("Common")
	require.True(t, ok, "imported named type should be merged in under its own name")
	propsV, ok := commonV.Object().Get("properties")
	require.True(t, ok)
	_, hasID := propsV.Object().Get("id")
	assert.True(t, hasID)
}

func TestExpandImportsMergesDefinitionsNonClobbering(t *testing.T) {
	common := mustParseValue(t, `{
		"definitions": {
			"Shared": {"type": "string"},
			"Local": {"type": "int32"}
		}
	}`)
	resolver := MapResolver{Documents: map[string]Value{
		"https://example.com/schemas/common": common,
	}}
	doc := mustParseValue(t, `{
		"$importdefs": "https://example.com/schemas/common",
		"definitions": {
			"Local": {"type": "boolean"}
		}
	}`)
	expanded, diags := ExpandImports(doc, Options{AllowImport: true, Resolver: resolver})
	assert.True(t, diags.Empty(), "unexpected diagnostics: %v", diags.Strings())

	defsV, ok := expanded.Object().Get("definitions")
	require.True(t, ok)
	sharedV, hasShared := defsV.Object().Get("Shared")
	assert.True(t, hasShared)
	sharedType, _ := sharedV.Object().Get("type")
	assert.Equal(t, "string", sharedType.Str())

	localV, _ := defsV.Object().Get("Local")
	localType, _ := localV.Object().Get("type")
	assert.Equal(t, "boolean", localType.Str(), "locally declared definitions must win over imported ones")
}

func TestExpandImportsNonAbsoluteURIDiagnosed(t *testing.T) {
	doc := mustParseValue(t, `{"$import": "not-absolute"}`)
	_, diags := ExpandImports(doc, Options{AllowImport: true, Resolver: MapResolver{}})
	assert.True(t, hasCode(diags, "import-not-absolute-uri"))
}

func TestExpandImportsNoResolverDiagnosed(t *testing.T) {
	doc := mustParseValue(t, `{"$import": "https://example.com/schemas/common"}`)
	_, diags := ExpandImports(doc, Options{AllowImport: true})
	assert.True(t, hasCode(diags, "import-no-resolver"))
}

func TestExpandImportsFetchFailureDiagnosed(t *testing.T) {
	doc := mustParseValue(t, `{"$import": "https://example.com/schemas/missing"}`)
	_, diags := ExpandImports(doc, Options{AllowImport: true, Resolver: MapResolver{}})
	assert.True(t, hasCode(diags, "import-fetch-failed"))
}

func TestMapResolverFetch(t *testing.T) {
	doc := mustParseValue(t, `{"type": "string"}`)
	r := MapResolver{Documents: map[string]Value{"u": doc}}
	got, err := r.Fetch("u")
	require.NoError(t, err)
	assert.Equal(t, KindObject, got.Kind())

	_, err = r.Fetch("missing")
	assert.Error(t, err)
}
