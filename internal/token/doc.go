// Package token defines the closed set of token kinds used by the tidy tool.
// Invariants:
//   - Every token produced by the lexer ends up with exactly one Kind; Data is
//     the only "not yet classified" kind and never survives lexer.Lex.
//   - Token.Text is mutable: formatting passes rewrite it in place, and
//     concatenating Text of every token in document order yields the output.
//   - Error is set only on tokens of Kind Error.
package token
