package tidy

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"tabtidy/internal/ast"
	"tabtidy/internal/token"
)

// ambiguous-width runes count as narrow regardless of the locale
var widthCond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Width returns the display width of s in columns.
func Width(s string) int {
	return widthCond.StringWidth(s)
}

func ljust(s string, width int) string {
	if n := width - Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func kindOf(f *ast.File, id ast.TokenID) token.Kind {
	return f.Tok(id).Kind
}

func isLoneEOL(f *ast.File, line []ast.TokenID) bool {
	return len(line) == 1 && kindOf(f, line[0]) == token.EOL
}

// cells drops separators and terminators from line.
func cells(f *ast.File, line []ast.TokenID) []ast.TokenID {
	out := make([]ast.TokenID, 0, len(line))
	for _, id := range line {
		if k := kindOf(f, id); k != token.Separator && k != token.EOL {
			out = append(out, id)
		}
	}
	return out
}

// trailingSeparator reports a separator right before the line terminator.
func trailingSeparator(f *ast.File, line []ast.TokenID, i int) bool {
	n := len(line)
	return i > 0 && i == n-2 && kindOf(f, line[n-1]) == token.EOL
}

func newBlankLine(f *ast.File) *ast.Statement {
	return &ast.Statement{Kind: token.EOL, Lines: [][]ast.TokenID{{f.NewToken(token.EOL, "\n")}}}
}
