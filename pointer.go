package jsonstructure

import (
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// ResolvePointer resolves a "#/a/b"-style JSON pointer against root:
// split the suffix on "/", unescape "~1"->"/" then "~0"->"~" in each
// segment (in that order, as jsonpointer.Parse does), traverse objects
// and arrays by segment; unresolvable segments are not-found. The
// empty pointer "#" returns root itself.
func ResolvePointer(root Value, pointer string) (Value, error) {
	if !strings.HasPrefix(pointer, "#") {
		return Value{}, ErrPointerSyntax
	}
	suffix := strings.TrimPrefix(pointer, "#")
	if suffix == "" {
		return root, nil
	}
	segments, err := jsonpointer.Parse(suffix)
	if err != nil {
		return Value{}, ErrPointerNotFound
	}
	current := root
	for _, seg := range segments {
		next, ok := stepInto(current, seg)
		if !ok {
			return Value{}, ErrPointerNotFound
		}
		current = next
	}
	return current, nil
}

func stepInto(v Value, segment string) (Value, bool) {
	switch v.Kind() {
	case KindObject:
		return v.Object().Get(segment)
	case KindArray:
		idx, ok := arrayIndex(segment)
		if !ok || idx < 0 || idx >= len(v.Array()) {
			return Value{}, false
		}
		return v.Array()[idx], true
	default:
		return Value{}, false
	}
}

func arrayIndex(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	n := 0
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// IsPointer reports whether s looks like a JSON pointer reference:
// "^#(/[^/]+)*$". The jsonpointer type tag relies on this predicate;
// pointer-valued schema fields are checked with ResolvePointer instead.
func IsPointer(s string) bool {
	if s == "#" {
		return true
	}
	if !strings.HasPrefix(s, "#/") {
		return false
	}
	for _, seg := range strings.Split(strings.TrimPrefix(s, "#/"), "/") {
		if seg == "" {
			return false
		}
	}
	return true
}
