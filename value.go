package jsonstructure

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Kind identifies which of the six JSON value variants a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Number is the raw decimal text of a JSON number, preserved exactly as
// it appeared on the wire so that arbitrary-precision comparisons
// (multipleOf, minimum/maximum, int128/decimal bounds) never lose
// precision to a float64 round trip.
type Number string

// Rat returns the number as an exact big.Rat.
func (n Number) Rat() (*big.Rat, bool) {
	r := new(big.Rat)
	if _, ok := r.SetString(string(n)); !ok {
		return nil, false
	}
	return r, true
}

// Float64 returns a float64 approximation of the number.
func (n Number) Float64() (float64, bool) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsInteger reports whether the number's literal text carries no
// fractional or exponent part that yields a non-integral value.
func (n Number) IsInteger() bool {
	r, ok := n.Rat()
	if !ok {
		return false
	}
	return r.IsInt()
}

// Object is an insertion-order-preserving JSON object: lookups are
// O(1) via the index map, iteration follows keys in declaration order,
// unlike a plain map[string]*Schema which loses declaration order.
type Object struct {
	keys   []string
	index  map[string]int
	values []Value
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order. Callers must not mutate it.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.values[i], true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.index[key]
	return ok
}

// Set inserts or replaces key's value, preserving original position on
// replacement and appending on first insertion.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.values[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
}

// Delete removes key if present, shifting subsequent entries left so
// the remaining keys keep their relative order.
func (o *Object) Delete(key string) {
	i, ok := o.index[key]
	if !ok {
		return
	}
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.values = append(o.values[:i], o.values[i+1:]...)
	delete(o.index, key)
	for k, idx := range o.index {
		if idx > i {
			o.index[k] = idx - 1
		}
	}
}

// Without returns a shallow copy of o with key removed, leaving o
// itself untouched. Used to strip $uses from a visited instance object
// without mutating the caller's input (see DESIGN.md Open Question 2).
func (o *Object) Without(key string) *Object {
	if o == nil || !o.Has(key) {
		return o
	}
	clone := NewObject()
	for _, k := range o.keys {
		if k == key {
			continue
		}
		v, _ := o.Get(k)
		clone.Set(k, v)
	}
	return clone
}

// Value is a tagged JSON value: exactly one of the typed fields below
// is meaningful, selected by Kind.
type Value struct {
	kind Kind
	b    bool
	num  Number
	str  string
	arr  []Value
	obj  *Object
}

func Null() Value                { return Value{kind: KindNull} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func String(s string) Value      { return Value{kind: KindString, str: s} }
func NumberFromInt(i int) Value  { return Value{kind: KindNumber, num: Number(strconv.Itoa(i))} }
func NumberLiteral(n string) Value { return Value{kind: KindNumber, num: Number(n)} }
func Array(items []Value) Value  { return Value{kind: KindArray, arr: items} }
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind       { return v.kind }
func (v Value) IsNull() bool     { return v.kind == KindNull }
func (v Value) Bool() bool       { return v.b }
func (v Value) Num() Number      { return v.num }
func (v Value) Str() string      { return v.str }
func (v Value) Array() []Value   { return v.arr }
func (v Value) Object() *Object  { return v.obj }

// Clone returns a deep copy of v; object key order is preserved.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		out := make([]Value, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Clone()
		}
		return Array(out)
	case KindObject:
		o := NewObject()
		for _, k := range v.obj.Keys() {
			cv, _ := v.obj.Get(k)
			o.Set(k, cv.Clone())
		}
		return ObjectValue(o)
	default:
		return v
	}
}

// DeepEqual implements the deep-equality relation used for const/enum
// matching: same kind, same scalar value, arrays equal element-wise in
// order, objects equal regardless of key order but with equal key sets
// and equal values. Numbers compare by exact rational value, not
// literal text, so "1.0" equals "1".
func (v Value) DeepEqual(other Value) bool {
	if v.kind != other.kind {
		// number/number comparisons are the only cross-representation
		// case; everything else with differing kinds is unequal.
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.str == other.str
	case KindNumber:
		ar, aok := v.num.Rat()
		br, bok := other.num.Rat()
		if !aok || !bok {
			return string(v.num) == string(other.num)
		}
		return ar.Cmp(br) == 0
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].DeepEqual(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		for _, k := range v.obj.Keys() {
			av, _ := v.obj.Get(k)
			bv, ok := other.obj.Get(k)
			if !ok || !av.DeepEqual(bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// CanonicalJSON serializes v with object keys sorted lexicographically
// and each number written in exact rational form (big.Rat.RatString, so
// 1 and 1.0 both become "1" and 2.5 becomes "5/2"), producing a stable
// comparison key for set/array uniqueness checks.
func (v Value) CanonicalJSON() string {
	var buf bytes.Buffer
	v.writeCanonical(&buf)
	return buf.String()
}

func (v Value) writeCanonical(buf *bytes.Buffer) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if r, ok := v.num.Rat(); ok {
			buf.WriteString(r.RatString())
		} else {
			buf.WriteString(string(v.num))
		}
	case KindString:
		b, _ := json.Marshal(v.str)
		buf.Write(b)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			e.writeCanonical(buf)
		}
		buf.WriteByte(']')
	case KindObject:
		keys := append([]string(nil), v.obj.Keys()...)
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, _ := json.Marshal(k)
			buf.Write(kb)
			buf.WriteByte(':')
			ev, _ := v.obj.Get(k)
			ev.writeCanonical(buf)
		}
		buf.WriteByte('}')
	}
}

// ParseValue decodes JSON bytes into an order-preserving Value tree.
// It streams tokens via goccy/go-json's Decoder, which mirrors
// encoding/json's documented Decoder.Token() contract; see DESIGN.md
// for why this was chosen over go-json-experiment/json's jsontext
// package.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case json.Delim('{'):
			return decodeObject(dec)
		case json.Delim('['):
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("jsonstructure: unexpected delimiter %q", t)
		}
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	case json.Number:
		return NumberLiteral(string(t)), nil
	case string:
		return String(t), nil
	default:
		return Value{}, fmt.Errorf("jsonstructure: unsupported token %T", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	o := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("jsonstructure: object key is not a string")
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		o.Set(key, val)
	}
	// consume closing '}'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return ObjectValue(o), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Array(items), nil
}

// AsGoString returns a best-effort human-readable rendering of v for
// error messages and debugging, not a canonical serialization.
func (v Value) AsGoString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return string(v.num)
	case KindString:
		return strconv.Quote(v.str)
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.AsGoString()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case KindObject:
		parts := make([]string, 0, v.obj.Len())
		for _, k := range v.obj.Keys() {
			ev, _ := v.obj.Get(k)
			parts = append(parts, strconv.Quote(k)+":"+ev.AsGoString())
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return "?"
	}
}
