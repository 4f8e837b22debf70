package jsonstructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierPatternDefaultRejectsDollar(t *testing.T) {
	opts := Options{}
	re := opts.identifierPattern()
	assert.True(t, re.MatchString("valid_name"))
	assert.False(t, re.MatchString("$invalid"))
}

func TestIdentifierPatternAllowDollar(t *testing.T) {
	opts := Options{AllowDollar: true}
	re := opts.identifierPattern()
	assert.True(t, re.MatchString("$schema"))
	assert.True(t, re.MatchString("valid_name"))
}
