package jsonstructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiledPatternCachesInstance(t *testing.T) {
	re1, err := compiledPattern(`^[a-z]+$`)
	require.NoError(t, err)
	re2, err := compiledPattern(`^[a-z]+$`)
	require.NoError(t, err)
	assert.Same(t, re1, re2, "the same pattern string should return the cached *Regexp")
}

func TestCompiledPatternInvalid(t *testing.T) {
	_, err := compiledPattern(`[unclosed`)
	assert.Error(t, err)
}

func TestCompiledPatternMatches(t *testing.T) {
	re, err := compiledPattern(`^\d{3}$`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("123"))
	assert.False(t, re.MatchString("12"))
}
