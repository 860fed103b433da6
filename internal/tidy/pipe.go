package tidy

import (
	"strings"

	"tabtidy/internal/ast"
	"tabtidy/internal/token"
)

// PipeAdder renders every content line as "| a | b |".
//
// The leading separator is "|    " per indent level followed by "| ";
// interior separators are " | " and the line closes with " |". A row that
// continues a name line starts with " | ". Lone terminators stay untouched.
type PipeAdder struct{}

func NewPipeAdder() *PipeAdder { return &PipeAdder{} }

func (p *PipeAdder) Name() string { return "pipe-adder" }

func (p *PipeAdder) Apply(f *ast.File) {
	walkLayout(f, func(st *ast.Statement, indent int, joined bool) {
		p.statement(f, st, indent, joined)
	})
}

func (p *PipeAdder) statement(f *ast.File, st *ast.Statement, indent int, joined bool) {
	var out []ast.TokenID
	for li, line := range st.Lines {
		if isLoneEOL(f, line) {
			out = append(out, line...)
			continue
		}
		if kindOf(f, line[0]) != token.Separator {
			line = append([]ast.TokenID{f.NewToken(token.Separator, "")}, line...)
		}
		n := len(line)
		if n > 1 && kindOf(f, line[n-1]) == token.EOL && kindOf(f, line[n-2]) != token.Separator {
			eol := line[n-1]
			line = append(line[:n-1:n-1], f.NewToken(token.Separator, ""), eol)
		}
		for i, id := range line {
			tok := f.Tok(id)
			if tok.Kind != token.Separator {
				continue
			}
			switch {
			case i == 0 && joined && li == 0:
				tok.Text = " | "
			case i == 0:
				tok.Text = strings.Repeat("|    ", indent) + "| "
			case trailingSeparator(f, line, i):
				tok.Text = " |"
			default:
				tok.Text = " | "
			}
		}
		out = append(out, line...)
	}
	st.SetTokens(out, f)
}
