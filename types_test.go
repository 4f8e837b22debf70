package jsonstructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRecognizedType(t *testing.T) {
	assert.True(t, isRecognizedType("string"))
	assert.True(t, isRecognizedType("int128"))
	assert.True(t, isRecognizedType("object"))
	assert.True(t, isRecognizedType("choice"))
	assert.False(t, isRecognizedType("not-a-type"))
}

func TestAcceptInt32(t *testing.T) {
	assert.True(t, acceptInt32(NumberLiteral("0")))
	assert.True(t, acceptInt32(NumberLiteral("2147483647")))
	assert.True(t, acceptInt32(NumberLiteral("-2147483648")))
	assert.False(t, acceptInt32(NumberLiteral("2147483648")))
	assert.False(t, acceptInt32(NumberLiteral("1.5")))
	assert.False(t, acceptInt32(String("1")))
}

func TestAcceptUint32(t *testing.T) {
	assert.True(t, acceptUint32(NumberLiteral("4294967295")))
	assert.False(t, acceptUint32(NumberLiteral("-1")))
	assert.False(t, acceptUint32(NumberLiteral("4294967296")))
}

func TestAcceptInt64String(t *testing.T) {
	assert.True(t, acceptInt64String(String("9223372036854775807")))
	assert.False(t, acceptInt64String(String("9223372036854775808")))
	assert.False(t, acceptInt64String(String("not-a-number")))
	assert.False(t, acceptInt64String(NumberLiteral("1")))
}

func TestAcceptUint64String(t *testing.T) {
	assert.True(t, acceptUint64String(String("18446744073709551615")))
	assert.False(t, acceptUint64String(String("-1")))
}

func TestAcceptInt128String(t *testing.T) {
	assert.True(t, acceptInt128String(String("170141183460469231731687303715884105727")))
	assert.False(t, acceptInt128String(String("170141183460469231731687303715884105728")))
	assert.False(t, acceptInt128String(String("-170141183460469231731687303715884105729")))
}

func TestAcceptUint128String(t *testing.T) {
	assert.True(t, acceptUint128String(String("340282366920938463463374607431768211455")))
	assert.False(t, acceptUint128String(String("-1")))
	assert.False(t, acceptUint128String(String("340282366920938463463374607431768211456")))
}

func TestAcceptDecimalString(t *testing.T) {
	assert.True(t, acceptDecimalString(String("3.14")))
	assert.False(t, acceptDecimalString(String("not-decimal")))
}

func TestAcceptUUID(t *testing.T) {
	assert.True(t, acceptUUID(String("123e4567-e89b-12d3-a456-426614174000")))
	assert.False(t, acceptUUID(String("not-a-uuid")))
}

func TestAcceptURI(t *testing.T) {
	assert.True(t, acceptURI(String("https://example.com/schema")))
	assert.False(t, acceptURI(String("not a uri at all")))
}

func TestAcceptJSONPointer(t *testing.T) {
	assert.True(t, acceptJSONPointer(String("#/a/b")))
	assert.False(t, acceptJSONPointer(String("a/b")))
	assert.False(t, acceptJSONPointer(NumberLiteral("1")))
}

func TestAcceptScalarPredicates(t *testing.T) {
	assert.True(t, acceptNumber(NumberLiteral("1")))
	assert.False(t, acceptNumber(String("1")))

	assert.True(t, acceptString(String("x")))
	assert.False(t, acceptString(Bool(true)))

	assert.True(t, acceptBoolean(Bool(false)))
	assert.False(t, acceptBoolean(Null()))

	assert.True(t, acceptNull(Null()))
	assert.False(t, acceptNull(Bool(false)))
}

func TestValidateFormat(t *testing.T) {
	assert.True(t, validateFormat("ipv4", "192.168.1.1"))
	assert.False(t, validateFormat("ipv4", "not-an-ip"))

	assert.True(t, validateFormat("ipv6", "::1"))
	assert.False(t, validateFormat("ipv6", "192.168.1.1"))

	assert.True(t, validateFormat("email", "a@b.com"))
	assert.False(t, validateFormat("email", "not-an-email"))

	assert.True(t, validateFormat("hostname", "example.com"))
	assert.False(t, validateFormat("hostname", "has a space"))

	assert.True(t, validateFormat("regex", `^[a-z]+$`))
	assert.False(t, validateFormat("regex", "[unclosed"))

	assert.True(t, validateFormat("iri", "https://example.com/é"))

	assert.True(t, validateFormat("some-unknown-format", "anything"))
}
