// Package jsonstructure implements a two-stage validator for the
// JSON Structure Core schema language (February 2025 draft), together
// with its Import, Conditional Composition, and Validation extensions.
//
// A Validator compiles schema documents into an order-preserving value
// tree, checks them against the meta-schema, and validates data
// instances against well-formed schemas.
package jsonstructure
