package token

import (
	"tabtidy/internal/source"
)

// Token represents a single cell, separator or terminator with its location.
type Token struct {
	Kind  Kind
	Text  string
	Span  source.Span
	Error string // diagnostic message for Kind == Error
}

// New creates a token without source position, used for synthesized tokens.
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// IsSeparator reports whether the token is a separator.
func (t Token) IsSeparator() bool { return t.Kind == Separator }

// IsEOL reports whether the token terminates a line.
func (t Token) IsEOL() bool { return t.Kind == EOL }
