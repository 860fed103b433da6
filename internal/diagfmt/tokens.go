package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"tabtidy/internal/ast"
	"tabtidy/internal/source"
	"tabtidy/internal/token"
)

// TokenOutput is one token of the JSON dump.
type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text"`
	Span  source.Span `json:"span"`
	Error string      `json:"error,omitempty"`
}

// StatementOutput groups tokens by statement, one slice per physical line.
type StatementOutput struct {
	Kind  string          `json:"kind"`
	Lines [][]TokenOutput `json:"lines"`
}

// FormatTokensPretty выводит токены построчно: номер, вид, текст и позицию.
// Разделители и переводы строк пропускаются, если withLayout == false.
func FormatTokensPretty(w io.Writer, f *ast.File, fs *source.FileSet, withLayout bool) error {
	i := 0
	var err error
	f.Walk(func(st *ast.Statement) {
		if err != nil {
			return
		}
		for _, line := range st.Lines {
			for _, id := range line {
				tok := f.Tok(id)
				if !withLayout && (tok.Kind == token.Separator || tok.Kind == token.EOL) {
					continue
				}
				i++
				if err = writeToken(w, i, tok, fs); err != nil {
					return
				}
			}
		}
	})
	return err
}

func writeToken(w io.Writer, i int, tok *token.Token, fs *source.FileSet) error {
	if _, err := fmt.Fprintf(w, "%3d: %-15s %q", i, tok.Kind.String(), tok.Text); err != nil {
		return err
	}
	// синтезированные токены без позиции
	if fs != nil && !tok.Span.Empty() {
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col); err != nil {
			return err
		}
	}
	if tok.Error != "" {
		if _, err := fmt.Fprintf(w, " error: %s", tok.Error); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// BuildTokensOutput groups the file's tokens by statement.
func BuildTokensOutput(f *ast.File) []StatementOutput {
	out := make([]StatementOutput, 0, 16)
	f.Walk(func(st *ast.Statement) {
		so := StatementOutput{Kind: st.Kind.String(), Lines: make([][]TokenOutput, 0, len(st.Lines))}
		for _, line := range st.Lines {
			toks := make([]TokenOutput, 0, len(line))
			for _, id := range line {
				tok := f.Tok(id)
				toks = append(toks, TokenOutput{
					Kind:  tok.Kind.String(),
					Text:  tok.Text,
					Span:  tok.Span,
					Error: tok.Error,
				})
			}
			so.Lines = append(so.Lines, toks)
		}
		out = append(out, so)
	})
	return out
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, f *ast.File) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(f))
}
