package jsonstructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRefFollowsTransitiveChain(t *testing.T) {
	root := mustParseValue(t, `{
		"definitions": {
			"A": {"$ref": "#/definitions/B"},
			"B": {"$ref": "#/definitions/C"},
			"C": {"type": "string"}
		}
	}`)
	target, err := resolveRef(root, "#/definitions/A")
	require.NoError(t, err)
	tv, ok := target.Object().Get("type")
	require.True(t, ok)
	assert.Equal(t, "string", tv.Str())
}

func TestResolveRefDetectsCycle(t *testing.T) {
	root := mustParseValue(t, `{
		"definitions": {
			"A": {"$ref": "#/definitions/B"},
			"B": {"$ref": "#/definitions/A"}
		}
	}`)
	_, err := resolveRef(root, "#/definitions/A")
	assert.ErrorIs(t, err, ErrRefCycle)
}

func TestApplyExtendsUnionsProperties(t *testing.T) {
	root := mustParseValue(t, `{
		"definitions": {
			"Base": {
				"type": "object",
				"properties": {"id": {"type": "string"}}
			}
		}
	}`)
	derived := mustParseValue(t, `{
		"type": "object",
		"$extends": "#/definitions/Base",
		"properties": {"name": {"type": "string"}}
	}`)
	diags := &DiagnosticList{}
	merged := applyExtends(root, derived, "#", diags)
	assert.True(t, diags.Empty(), "unexpected diagnostics: %v", diags.Strings())

	props, ok := merged.Object().Get("properties")
	require.True(t, ok)
	_, hasID := props.Object().Get("id")
	_, hasName := props.Object().Get("name")
	assert.True(t, hasID, "merged schema should carry the base's 'id' property")
	assert.True(t, hasName, "merged schema should carry the derived's 'name' property")
}

func TestApplyExtendsFlagsRedeclaredProperty(t *testing.T) {
	root := mustParseValue(t, `{
		"definitions": {
			"Base": {
				"type": "object",
				"properties": {"id": {"type": "string"}}
			}
		}
	}`)
	derived := mustParseValue(t, `{
		"type": "object",
		"$extends": "#/definitions/Base",
		"properties": {"id": {"type": "int32"}}
	}`)
	diags := &DiagnosticList{}
	applyExtends(root, derived, "#", diags)
	found := false
	for _, d := range diags.All() {
		if d.Code == "extends-property-conflict" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestApplyExtendsDetectsCycle(t *testing.T) {
	root := mustParseValue(t, `{
		"definitions": {
			"A": {"type": "object", "$extends": "#/definitions/B", "properties": {}},
			"B": {"type": "object", "$extends": "#/definitions/A", "properties": {}}
		}
	}`)
	schema, _ := root.Object().Get("definitions")
	a, _ := schema.Object().Get("A")
	diags := &DiagnosticList{}
	applyExtends(root, a, "#/definitions/A", diags)
	found := false
	for _, d := range diags.All() {
		if d.Code == "extends-cycle" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestApplyUsesMergesOfferedProperties(t *testing.T) {
	root := mustParseValue(t, `{
		"$offers": {
			"Timestamped": "#/definitions/TimestampAddin"
		},
		"definitions": {
			"TimestampAddin": {
				"type": "object",
				"properties": {"createdAt": {"type": "string"}}
			}
		}
	}`)
	schema := mustParseValue(t, `{
		"type": "object",
		"properties": {"name": {"type": "string"}}
	}`)
	instance := mustParseValue(t, `{"name": "Ada", "$uses": ["Timestamped"]}`)
	diags := &DiagnosticList{}
	merged := applyUses(root, schema, instance.Object(), "#", diags)
	assert.True(t, diags.Empty(), "unexpected diagnostics: %v", diags.Strings())

	props, ok := merged.Object().Get("properties")
	require.True(t, ok)
	_, hasCreatedAt := props.Object().Get("createdAt")
	assert.True(t, hasCreatedAt)
}

func TestApplyUsesExistingPropertyWins(t *testing.T) {
	root := mustParseValue(t, `{
		"$offers": {
			"Renamer": "#/definitions/RenameAddin"
		},
		"definitions": {
			"RenameAddin": {
				"type": "object",
				"properties": {"name": {"type": "int32"}}
			}
		}
	}`)
	schema := mustParseValue(t, `{
		"type": "object",
		"properties": {"name": {"type": "string"}}
	}`)
	instance := mustParseValue(t, `{"name": "Ada", "$uses": ["Renamer"]}`)
	diags := &DiagnosticList{}
	merged := applyUses(root, schema, instance.Object(), "#", diags)

	found := false
	for _, d := range diags.All() {
		if d.Code == "uses-property-conflict" {
			found = true
		}
	}
	assert.True(t, found)

	props, _ := merged.Object().Get("properties")
	nameSchema, _ := props.Object().Get("name")
	nameType, _ := nameSchema.Object().Get("type")
	assert.Equal(t, "string", nameType.Str(), "the schema's existing property should win over the add-in's")
}

func TestApplyUsesUnknownAddinDiagnosed(t *testing.T) {
	root := mustParseValue(t, `{"$offers": {}}`)
	schema := mustParseValue(t, `{"type": "object", "properties": {}}`)
	instance := mustParseValue(t, `{"$uses": ["Nope"]}`)
	diags := &DiagnosticList{}
	applyUses(root, schema, instance.Object(), "#", diags)
	found := false
	for _, d := range diags.All() {
		if d.Code == "uses-not-offered" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestApplyUsesSkipsReservedExtensionNames(t *testing.T) {
	root := mustParseValue(t, `{"$offers": {}}`)
	schema := mustParseValue(t, `{"type": "object", "properties": {}}`)
	instance := mustParseValue(t, `{"$uses": ["JSONStructureValidation"]}`)
	diags := &DiagnosticList{}
	applyUses(root, schema, instance.Object(), "#", diags)
	assert.True(t, diags.Empty(), "reserved extension names should never be looked up in $offers")
}
