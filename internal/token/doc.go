// Package token owns the compact declaration encodings.
//
// Ownership boundary:
// - immutable token sets
// - "&&" field and "||" protocol encodings
//
// Parsing is total: malformed input degrades to a smaller set and never
// returns an error.
package token
