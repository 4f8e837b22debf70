package jsonstructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateConditionalsAllOf(t *testing.T) {
	schema := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/validation/v0#",
		"allOf": [
			{"type": "string"},
			{"type": "string", "minLength": 3}
		]
	}`)
	ok := ValidateInstance(mustParseValue(t, `"hello"`), schema, Options{Extended: true})
	assert.True(t, ok.Empty(), "unexpected diagnostics: %v", ok.Strings())

	bad := ValidateInstance(mustParseValue(t, `"hi"`), schema, Options{Extended: true})
	assert.False(t, bad.Empty())
}

func TestEvaluateConditionalsAnyOf(t *testing.T) {
	schema := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/validation/v0#",
		"anyOf": [
			{"type": "int32"},
			{"type": "string"}
		]
	}`)
	okInt := ValidateInstance(mustParseValue(t, `5`), schema, Options{Extended: true})
	assert.True(t, okInt.Empty())

	bad := ValidateInstance(mustParseValue(t, `true`), schema, Options{Extended: true})
	assert.True(t, hasCode(bad, "any-of-no-match"))
}

func TestEvaluateConditionalsOneOfRejectsMultipleMatches(t *testing.T) {
	schema := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/validation/v0#",
		"oneOf": [
			{"type": "number"},
			{"type": "int32"}
		]
	}`)
	diags := ValidateInstance(mustParseValue(t, `5`), schema, Options{Extended: true})
	assert.True(t, hasCode(diags, "one-of-count"))
}

func TestEvaluateConditionalsNot(t *testing.T) {
	schema := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/validation/v0#",
		"not": {"type": "string"}
	}`)
	ok := ValidateInstance(mustParseValue(t, `5`), schema, Options{Extended: true})
	assert.True(t, ok.Empty())

	bad := ValidateInstance(mustParseValue(t, `"str"`), schema, Options{Extended: true})
	assert.True(t, hasCode(bad, "not-matched"))
}

func TestEvaluateConditionalsIfThenElse(t *testing.T) {
	schema := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/validation/v0#",
		"if": {"type": "string", "minLength": 1},
		"then": {"type": "string", "const": "yes"},
		"else": {"type": "string", "const": "no"}
	}`)
	ok := ValidateInstance(mustParseValue(t, `"yes"`), schema, Options{Extended: true})
	assert.True(t, ok.Empty(), "unexpected diagnostics: %v", ok.Strings())

	bad := ValidateInstance(mustParseValue(t, `"nope"`), schema, Options{Extended: true})
	assert.True(t, hasCode(bad, "const-mismatch"))
}

func TestEvaluateConditionalsIfFailsFallsToElse(t *testing.T) {
	schema := mustParseValue(t, `{
		"$schema": "https://json-structure.org/meta/validation/v0#",
		"if": {"type": "int32"},
		"then": {"type": "int32", "const": 1},
		"else": {"type": "string", "const": "no"}
	}`)
	ok := ValidateInstance(mustParseValue(t, `"no"`), schema, Options{Extended: true})
	assert.True(t, ok.Empty(), "unexpected diagnostics: %v", ok.Strings())
}
