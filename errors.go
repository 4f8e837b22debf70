package jsonstructure

import "errors"

// These are internal/programmer errors — misuse of the API, resolver
// wiring failures, malformed input bytes — distinct from Diagnostics,
// which report findings *about* a schema or instance and never halt
// validation.

// === Decoding Errors ===

// ErrInvalidJSON is returned when input bytes are not well-formed JSON.
var ErrInvalidJSON = errors.New("jsonstructure: input is not well-formed JSON")

// === Pointer Resolution Errors ===

// ErrPointerNotFound is returned when a JSON pointer does not resolve
// within the root document.
var ErrPointerNotFound = errors.New("jsonstructure: pointer does not resolve")

// ErrPointerSyntax is returned when a pointer string does not begin
// with "#".
var ErrPointerSyntax = errors.New("jsonstructure: pointer must begin with \"#\"")

// === Import Processor Errors ===

// ErrImportNotAbsoluteURI names the case where $import/$importdefs
// holds a non-absolute-URI value. ExpandImports reports that case as an
// "import-not-absolute-uri" diagnostic and does not return this error.
var ErrImportNotAbsoluteURI = errors.New("jsonstructure: $import/$importdefs value must be an absolute URI")

// ErrNoResolver names the case where import expansion is enabled but
// no Resolver is configured. ExpandImports reports that case as an
// "import-no-resolver" diagnostic and does not return this error.
var ErrNoResolver = errors.New("jsonstructure: allow_import is set but no Resolver is configured")

// ErrImportFetchFailed names the case where a Resolver could not
// produce a document for a requested URI. ExpandImports reports that
// case as an "import-fetch-failed" diagnostic carrying the Resolver's
// own error text and does not return this error.
var ErrImportFetchFailed = errors.New("jsonstructure: failed to fetch $import/$importdefs target")

// === Reference / Extension Errors ===

// ErrRefCycle is returned when $ref resolution revisits a target
// already on the current resolution chain.
var ErrRefCycle = errors.New("jsonstructure: cyclic $ref detected")

// ErrExtendsTargetNotSchema names the case where $extends resolves to a
// JSON value that is not itself a schema object. $extends flattening
// reports that case as an "extends-target-not-schema" diagnostic and
// does not return this error.
var ErrExtendsTargetNotSchema = errors.New("jsonstructure: $extends target is not a schema node")

// === Compiler / Validator Misuse Errors ===

// ErrNilSchema names the case where a nil Value is passed where a
// schema document is required. No function in this package returns it.
var ErrNilSchema = errors.New("jsonstructure: schema value is nil")

// ErrUnknownLoaderScheme is returned when no Loader is registered for
// a URI's scheme.
var ErrUnknownLoaderScheme = errors.New("jsonstructure: no loader registered for scheme")

// === Numeric Conversion Errors ===

// ErrUnsupportedTypeForRat names the case where a value cannot be
// interpreted as a rational number. NewRatFromValue reports that case
// with ok == false and does not return this error.
var ErrUnsupportedTypeForRat = errors.New("jsonstructure: value cannot be converted to a rational number")

// ErrFailedToConvertToRat names the case where a numeric string fails
// to parse as a rational number. NewRatFromValue reports that case with
// ok == false and does not return this error.
var ErrFailedToConvertToRat = errors.New("jsonstructure: failed to parse value as a rational number")
