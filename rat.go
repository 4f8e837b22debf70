package jsonstructure

import (
	"math/big"
	"strings"
)

// Rat wraps big.Rat for exact comparison of numeric and string-backed
// numeric instance/schema values (multipleOf, minimum, maximum, and
// their exclusive variants).
type Rat struct {
	*big.Rat
}

// NewRatFromValue builds a Rat from a Value that is either a JSON
// number or a string carrying a numeric literal (string-backed numeric
// types: int64, uint64, int128, uint128, decimal).
func NewRatFromValue(v Value) (*Rat, bool) {
	var text string
	switch v.Kind() {
	case KindNumber:
		text = string(v.Num())
	case KindString:
		text = v.Str()
	default:
		return nil, false
	}
	r := new(big.Rat)
	if _, ok := r.SetString(text); !ok {
		return nil, false
	}
	return &Rat{r}, true
}

// FormatRat renders r as a decimal string: integers exactly, other
// values rounded to 20 fractional digits with trailing zeros trimmed;
// a nil receiver renders as "null".
func FormatRat(r *Rat) string {
	if r == nil {
		return "null"
	}
	if r.IsInt() {
		return r.Num().String()
	}
	dec := r.FloatString(20)
	trimmed := strings.TrimRight(dec, "0")
	trimmed = strings.TrimRight(trimmed, ".")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
