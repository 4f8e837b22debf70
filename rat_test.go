package jsonstructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRatFromValueNumber(t *testing.T) {
	r, ok := NewRatFromValue(NumberLiteral("3.25"))
	require.True(t, ok)
	assert.Equal(t, "3.25", FormatRat(r))
}

func TestNewRatFromValueStringBackedNumeric(t *testing.T) {
	r, ok := NewRatFromValue(String("123456789012345678901234567890"))
	require.True(t, ok)
	assert.Equal(t, "123456789012345678901234567890", FormatRat(r))
}

func TestNewRatFromValueRejectsNonNumeric(t *testing.T) {
	_, ok := NewRatFromValue(Bool(true))
	assert.False(t, ok)

	_, ok = NewRatFromValue(String("not-a-number"))
	assert.False(t, ok)
}

func TestFormatRatTrimsTrailingZeros(t *testing.T) {
	r, ok := NewRatFromValue(NumberLiteral("2.50"))
	require.True(t, ok)
	assert.Equal(t, "2.5", FormatRat(r))
}

func TestFormatRatNil(t *testing.T) {
	assert.Equal(t, "null", FormatRat(nil))
}
