package tidy

import (
	"strings"

	"tabtidy/internal/ast"
	"tabtidy/internal/token"
)

// EmptyCell stands in for an empty cell in space-separated output.
const EmptyCell = "${EMPTY}"

// SeparatorCleaner rewrites separators as runs of spaces: width × depth for
// the leading one, width for interior ones. A separator before the line
// terminator is emptied so no line ends in whitespace. Empty cells, which
// only the pipe format can express, are written as EmptyCell.
type SeparatorCleaner struct {
	sep string
}

func NewSeparatorCleaner(width int) *SeparatorCleaner {
	if width <= 0 {
		width = DefaultOptions().SeparatorWidth
	}
	return &SeparatorCleaner{sep: strings.Repeat(" ", width)}
}

func (s *SeparatorCleaner) Name() string { return "separator-cleaner" }

func (s *SeparatorCleaner) Apply(f *ast.File) {
	walkLayout(f, func(st *ast.Statement, indent int, joined bool) {
		s.statement(f, st, indent, joined)
	})
}

func (s *SeparatorCleaner) statement(f *ast.File, st *ast.Statement, indent int, joined bool) {
	for li, line := range st.Lines {
		for i, id := range line {
			tok := f.Tok(id)
			if tok.Kind != token.Separator {
				if tok.Text == "" && tok.Kind != token.EOL {
					tok.Text = EmptyCell
				}
				continue
			}
			switch {
			case i == 0 && joined && li == 0:
				tok.Text = s.sep
			case i == 0:
				tok.Text = strings.Repeat(s.sep, indent)
			case trailingSeparator(f, line, i):
				tok.Text = ""
			default:
				tok.Text = s.sep
			}
		}
	}
}
