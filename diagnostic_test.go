package jsonstructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticErrorSubstitutesParams(t *testing.T) {
	d := NewDiagnostic(CategoryConstraint, "min-length", "#/name",
		"String is shorter than {min}.", map[string]any{"min": 3})
	assert.Equal(t, "#/name: String is shorter than 3.", d.Error())
}

func TestDiagnosticErrorWithoutPath(t *testing.T) {
	d := NewDiagnostic(CategoryStructural, "missing-type", "", "'type' is required.")
	assert.Equal(t, "'type' is required.", d.Error())
}

func TestDiagnosticListMarkRestore(t *testing.T) {
	l := &DiagnosticList{}
	l.Addf(CategoryStructural, "a", "#/a", "first")

	mark := l.Mark()
	l.Addf(CategoryStructural, "b", "#/b", "second")
	l.Addf(CategoryStructural, "c", "#/c", "third")
	assert.Len(t, l.Since(mark), 2)

	l.Restore(mark)
	assert.Len(t, l.All(), 1)
	assert.Equal(t, "a", l.All()[0].Code)
}

func TestDiagnosticListEmptyAndStrings(t *testing.T) {
	l := &DiagnosticList{}
	assert.True(t, l.Empty())

	l.Addf(CategoryConstraint, "x", "#/x", "bad value")
	assert.False(t, l.Empty())
	assert.Equal(t, []string{"#/x: bad value"}, l.Strings())
}

func TestDiagnosticLocalizeFallsBackWithNilLocalizer(t *testing.T) {
	d := NewDiagnostic(CategoryConstraint, "x", "#/x", "bad value")
	assert.Equal(t, d.Error(), d.Localize(nil))
}
