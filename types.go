package jsonstructure

import (
	"math/big"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Type Tag sets, as Go maps for O(1) membership tests in place of a
// single-type switch (JSON Structure's primitive set is much larger
// than JSON Schema's six).
var primitiveTypes = map[string]bool{
	"any": true, "string": true, "number": true, "boolean": true, "null": true,
	"int8": true, "uint8": true, "int16": true, "uint16": true,
	"int32": true, "uint32": true, "int64": true, "uint64": true,
	"int128": true, "uint128": true,
	"float8": true, "float": true, "double": true, "decimal": true,
	"date": true, "datetime": true, "time": true, "duration": true,
	"uuid": true, "uri": true, "binary": true, "jsonpointer": true,
}

var compoundTypes = map[string]bool{
	"object": true, "array": true, "set": true, "map": true, "tuple": true, "choice": true,
}

var validFormats = map[string]bool{
	"ipv4": true, "ipv6": true, "email": true, "idn-email": true,
	"hostname": true, "idn-hostname": true, "iri": true, "iri-reference": true,
	"uri-template": true, "relative-json-pointer": true, "regex": true,
}

// stringBackedNumericTypes take bound values (minimum/maximum/
// exclusiveMinimum/exclusiveMaximum/multipleOf) as JSON strings because
// the instance itself carries the value as a string.
var stringBackedNumericTypes = map[string]bool{
	"int64": true, "uint64": true, "int128": true, "uint128": true, "decimal": true,
}

// numericTypes are the type tags the numeric validation-addin keywords
// apply to.
var numericTypes = map[string]bool{
	"number": true, "float": true, "double": true, "decimal": true,
	"int8": true, "uint8": true, "int16": true, "uint16": true,
	"int32": true, "uint32": true, "int64": true, "uint64": true,
	"int128": true, "uint128": true, "float8": true,
}

func isRecognizedType(name string) bool {
	return primitiveTypes[name] || compoundTypes[name]
}

// Accept-predicate table, one predicate per primitive type tag.

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
var datetimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+\-]\d{2}:\d{2})$`)
var timeRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(?:\.\d+)?$`)

func acceptInt32(v Value) bool {
	if v.Kind() != KindNumber || !v.Num().IsInteger() {
		return false
	}
	r, ok := v.Num().Rat()
	if !ok {
		return false
	}
	lo, hi := big.NewRat(-2147483648, 1), big.NewRat(2147483647, 1)
	return r.Cmp(lo) >= 0 && r.Cmp(hi) <= 0
}

func acceptUint32(v Value) bool {
	if v.Kind() != KindNumber || !v.Num().IsInteger() {
		return false
	}
	r, ok := v.Num().Rat()
	if !ok {
		return false
	}
	lo, hi := big.NewRat(0, 1), big.NewRat(4294967295, 1)
	return r.Cmp(lo) >= 0 && r.Cmp(hi) <= 0
}

func acceptInt64String(v Value) bool {
	if v.Kind() != KindString {
		return false
	}
	_, err := strconv.ParseInt(v.Str(), 10, 64)
	return err == nil
}

func acceptUint64String(v Value) bool {
	if v.Kind() != KindString {
		return false
	}
	_, err := strconv.ParseUint(v.Str(), 10, 64)
	return err == nil
}

var minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
var maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

func acceptInt128String(v Value) bool {
	if v.Kind() != KindString {
		return false
	}
	n, ok := new(big.Int).SetString(v.Str(), 10)
	if !ok {
		return false
	}
	return n.Cmp(minInt128) >= 0 && n.Cmp(maxInt128) <= 0
}

func acceptUint128String(v Value) bool {
	if v.Kind() != KindString {
		return false
	}
	n, ok := new(big.Int).SetString(v.Str(), 10)
	if !ok || n.Sign() < 0 {
		return false
	}
	return n.Cmp(maxUint128) <= 0
}

func acceptDecimalString(v Value) bool {
	if v.Kind() != KindString {
		return false
	}
	_, err := strconv.ParseFloat(v.Str(), 64)
	return err == nil
}

func acceptUUID(v Value) bool {
	if v.Kind() != KindString {
		return false
	}
	_, err := uuid.Parse(v.Str())
	return err == nil
}

func acceptURI(v Value) bool {
	if v.Kind() != KindString {
		return false
	}
	u, err := url.Parse(v.Str())
	if err != nil {
		return false
	}
	return u.Scheme != ""
}

func acceptJSONPointer(v Value) bool {
	return v.Kind() == KindString && IsPointer(v.Str())
}

func acceptNumber(v Value) bool {
	return v.Kind() == KindNumber
}

func acceptString(v Value) bool {
	return v.Kind() == KindString
}

func acceptBoolean(v Value) bool {
	return v.Kind() == KindBool
}

func acceptNull(v Value) bool {
	return v.Kind() == KindNull
}

// validateFormat applies the "format" validation-addin keyword.
// Unrecognized format names are accepted (format is advisory for names
// outside validFormats); ipv4/ipv6/email get a real check since those
// are cheap and unambiguous with net.ParseIP and a '@' presence test.
func validateFormat(format, s string) bool {
	switch format {
	case "ipv4":
		ip := net.ParseIP(s)
		return ip != nil && ip.To4() != nil
	case "ipv6":
		ip := net.ParseIP(s)
		return ip != nil && ip.To4() == nil
	case "email", "idn-email":
		at := strings.IndexByte(s, '@')
		return at > 0 && at < len(s)-1
	case "hostname", "idn-hostname":
		return s != "" && !strings.Contains(s, " ")
	case "regex":
		_, err := regexp.Compile(s)
		return err == nil
	case "iri", "iri-reference", "uri-template", "relative-json-pointer":
		return s != ""
	default:
		return true
	}
}
