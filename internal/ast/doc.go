// Package ast holds the section/statement tree the lexer builds and the tidy
// passes rewrite.
//
// Tokens live in a per-file TokenStore and are addressed by TokenID; statements keep
// physical lines as id slices. Passes change token kinds and texts through the
// store, and may rebuild a statement's Lines (dropping or inserting ids), but
// never reorder blocks.
//
// Block is a closed union: *Statement, *TestCase, *Keyword and *ForLoop. Code
// that walks bodies switches on the concrete type.
package ast
