package jsonstructure

import "regexp"

// Options carries the external flags governing a validation run. The
// zero value matches the strictest mode: '$' disallowed in
// identifiers, imports disabled, composition/validation keyword
// processing off.
type Options struct {
	// AllowDollar admits '$' in the identifier regex, for validating
	// meta-schemas themselves.
	AllowDollar bool
	// AllowImport enables $import/$importdefs expansion.
	AllowImport bool
	// Extended enables composition + validation keyword processing in
	// the schema validator. When false, the schema
	// validator neither checks nor gates allOf/anyOf/.../minimum/...
	// keywords at all — they are simply not looked at.
	Extended bool
	// ImportMap is consulted by the default Resolver: URI -> local file
	// path.
	ImportMap map[string]string
	// Resolver fetches external schema documents for $import/$importdefs.
	// Required when AllowImport is true; see imports.go.
	Resolver Resolver
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
var dollarIdentifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// identifierPattern returns the precompiled identifier regex for these
// options, compiled once rather than per node.
func (o Options) identifierPattern() *regexp.Regexp {
	if o.AllowDollar {
		return dollarIdentifierRe
	}
	return identifierRe
}
