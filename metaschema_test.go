package jsonstructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hasCode(diags *DiagnosticList, code string) bool {
	for _, d := range diags.All() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestValidateSchemaRequiresSchemaAndID(t *testing.T) {
	doc := mustParseValue(t, `{"type": "string"}`)
	diags := ValidateSchema(doc, Options{})
	assert.True(t, hasCode(diags, "missing-schema"))
	assert.True(t, hasCode(diags, "missing-id"))
}

func TestValidateSchemaValidMinimalObject(t *testing.T) {
	doc := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/core/v0/#",
		"$id": "https://example.com/schemas/person",
		"name": "Person",
		"type": "object",
		"properties": {
			"name": {"type": "string"}
		}
	}`)
	diags := ValidateSchema(doc, Options{})
	assert.True(t, diags.Empty(), "expected no diagnostics, got: %v", diags.Strings())
}

func TestValidateSchemaRejectsTypeAndRootTogether(t *testing.T) {
	doc := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/core/v0/#",
		"$id": "https://example.com/schemas/x",
		"name": "X",
		"type": "string",
		"$root": "#/definitions/X"
	}`)
	diags := ValidateSchema(doc, Options{})
	assert.True(t, hasCode(diags, "type-and-root"))
}

func TestValidateSchemaObjectMissingProperties(t *testing.T) {
	doc := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/core/v0/#",
		"$id": "https://example.com/schemas/x",
		"name": "X",
		"type": "object"
	}`)
	diags := ValidateSchema(doc, Options{})
	assert.True(t, hasCode(diags, "object-missing-properties"))
}

func TestValidateSchemaUnrecognizedType(t *testing.T) {
	doc := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/core/v0/#",
		"$id": "https://example.com/schemas/x",
		"name": "X",
		"type": "not-a-real-type"
	}`)
	diags := ValidateSchema(doc, Options{})
	assert.True(t, hasCode(diags, "unrecognized-type"))
}

func TestValidateSchemaGatesCompositionKeywordsWhenExtensionNotEnabled(t *testing.T) {
	doc := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/core/v0/#",
		"$id": "https://example.com/schemas/x",
		"name": "X",
		"type": "string",
		"allOf": [{"type": "string"}]
	}`)
	diags := ValidateSchema(doc, Options{Extended: true})
	assert.True(t, hasCode(diags, "composition-not-enabled"))
}

func TestValidateSchemaAllowsCompositionWhenExtensionEnabled(t *testing.T) {
	doc := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/validation/v0#",
		"$id": "https://example.com/schemas/x",
		"name": "X",
		"allOf": [{"type": "string"}]
	}`)
	diags := ValidateSchema(doc, Options{Extended: true})
	assert.False(t, hasCode(diags, "composition-not-enabled"))
}

func TestValidateSchemaTupleElementMustMatchProperties(t *testing.T) {
	doc := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/core/v0/#",
		"$id": "https://example.com/schemas/x",
		"name": "Point",
		"type": "tuple",
		"properties": {"x": {"type": "int32"}, "y": {"type": "int32"}},
		"tuple": ["x", "z"]
	}`)
	diags := ValidateSchema(doc, Options{})
	assert.True(t, hasCode(diags, "tuple-element-unknown"))
}

func TestValidateSchemaChoiceRequiresSchemaValues(t *testing.T) {
	doc := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/core/v0/#",
		"$id": "https://example.com/schemas/x",
		"name": "Shape",
		"type": "choice",
		"selector": "kind",
		"choices": {"circle": {"type": "object", "properties": {"r": {"type": "number"}}}, "bad": "not-a-schema"}
	}`)
	diags := ValidateSchema(doc, Options{})
	assert.True(t, hasCode(diags, "choice-value-not-schema"))
}

func TestValidateSchemaValidationKeywordsGatedByExtension(t *testing.T) {
	doc := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/core/v0/#",
		"$id": "https://example.com/schemas/x",
		"name": "X",
		"type": "string",
		"minLength": 3
	}`)
	diags := ValidateSchema(doc, Options{Extended: true})
	assert.True(t, hasCode(diags, "validation-not-enabled"))
}

func TestValidateSchemaMultipleOfMustBePositive(t *testing.T) {
	doc := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/extended/v0#",
		"$id": "https://example.com/schemas/x",
		"name": "X",
		"type": "int32",
		"multipleOf": -2
	}`)
	diags := ValidateSchema(doc, Options{Extended: true})
	assert.True(t, hasCode(diags, "multiple-of-not-positive"))
}

func TestValidateSchemaPatternPropertiesWrongKeywordForMap(t *testing.T) {
	doc := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/extended/v0#",
		"$id": "https://example.com/schemas/x",
		"name": "X",
		"type": "map",
		"values": {"type": "string"},
		"patternProperties": {"^a": {"type": "string"}}
	}`)
	diags := ValidateSchema(doc, Options{Extended: true})
	assert.True(t, hasCode(diags, "wrong-pattern-keyword"))
}
