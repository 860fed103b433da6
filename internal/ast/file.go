package ast

import (
	"bytes"

	"tabtidy/internal/source"
	"tabtidy/internal/token"
)

// File is the root of the tree.
type File struct {
	Source   source.FileID
	Path     string
	Kind     FileKind
	Store    *TokenStore
	Sections []*Section
}

// NewFile creates an empty tree with a token store sized for capHint tokens.
func NewFile(src source.FileID, path string, kind FileKind, capHint uint) *File {
	return &File{
		Source: src,
		Path:   path,
		Kind:   kind,
		Store:  NewTokenStore(capHint),
	}
}

// Add stores tok and returns its id.
func (f *File) Add(tok token.Token) TokenID {
	return f.Store.Add(tok)
}

// NewToken stores a synthesized token without source position.
func (f *File) NewToken(kind token.Kind, text string) TokenID {
	return f.Add(token.New(kind, text))
}

// Tok returns the token behind id; nil for invalid ids.
func (f *File) Tok(id TokenID) *token.Token {
	return f.Store.Get(id)
}

// Tokens flattens the statement's lines.
func (f *File) Tokens(st *Statement) []TokenID {
	if st == nil {
		return nil
	}
	n := 0
	for _, line := range st.Lines {
		n += len(line)
	}
	out := make([]TokenID, 0, n)
	for _, line := range st.Lines {
		out = append(out, line...)
	}
	return out
}

// DataTokens returns the statement's tokens excluding separators, comments,
// continuation markers and terminators.
func (f *File) DataTokens(st *Statement) []TokenID {
	if st == nil {
		return nil
	}
	var out []TokenID
	for _, line := range st.Lines {
		for _, id := range line {
			if f.Tok(id).Kind.IsData() {
				out = append(out, id)
			}
		}
	}
	return out
}

// EndsLine reports whether the statement's last token is a terminator.
// A name statement that does not end its line shares the line with the
// first body statement.
func (f *File) EndsLine(st *Statement) bool {
	if st == nil || len(st.Lines) == 0 {
		return false
	}
	last := st.Lines[len(st.Lines)-1]
	if len(last) == 0 {
		return false
	}
	return f.Tok(last[len(last)-1]).Kind == token.EOL
}

// SetTokens replaces the statement's tokens, re-splitting them into lines
// after every terminator.
func (st *Statement) SetTokens(ids []TokenID, f *File) {
	lines := make([][]TokenID, 0, len(st.Lines))
	var line []TokenID
	for _, id := range ids {
		line = append(line, id)
		if f.Tok(id).Kind == token.EOL {
			lines = append(lines, line)
			line = nil
		}
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	st.Lines = lines
}

// Bytes serialises the tree: the text of every token in document order.
func (f *File) Bytes() []byte {
	var buf bytes.Buffer
	f.Walk(func(st *Statement) {
		for _, line := range st.Lines {
			for _, id := range line {
				buf.WriteString(f.Tok(id).Text)
			}
		}
	})
	return buf.Bytes()
}

// String is Bytes as a string.
func (f *File) String() string {
	return string(f.Bytes())
}
