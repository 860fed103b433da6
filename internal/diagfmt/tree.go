package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"tabtidy/internal/ast"
)

// FormatTree prints the block structure of f: sections, tests, keywords and
// loops, with each statement shown by kind and data cells.
func FormatTree(w io.Writer, f *ast.File) error {
	tw := treeWriter{f: f}
	fmt.Fprintf(&tw.sb, "File %s (%s)\n", f.Path, f.Kind)
	for _, sec := range f.Sections {
		name := sec.Kind.String()
		if sec.Implicit() {
			name += " (implicit)"
		}
		tw.line(1, "Section "+name)
		if sec.Header != nil {
			tw.statement(2, sec.Header)
		}
		tw.blocks(2, sec.Body)
	}
	_, err := io.WriteString(w, tw.sb.String())
	return err
}

type treeWriter struct {
	f  *ast.File
	sb strings.Builder
}

func (tw *treeWriter) line(depth int, s string) {
	tw.sb.WriteString(strings.Repeat("  ", depth))
	tw.sb.WriteString(s)
	tw.sb.WriteByte('\n')
}

func (tw *treeWriter) blocks(depth int, blocks []ast.Block) {
	for _, b := range blocks {
		switch n := b.(type) {
		case *ast.Statement:
			tw.statement(depth, n)
		case *ast.TestCase:
			tw.line(depth, "TestCase "+tw.cells(n.Name))
			tw.blocks(depth+1, n.Body)
		case *ast.Keyword:
			tw.line(depth, "Keyword "+tw.cells(n.Name))
			tw.blocks(depth+1, n.Body)
		case *ast.ForLoop:
			tw.line(depth, "For "+tw.cells(n.Header))
			tw.blocks(depth+1, n.Body)
			if n.End != nil {
				tw.line(depth, "End")
			} else {
				tw.line(depth, "End (missing)")
			}
		}
	}
}

func (tw *treeWriter) statement(depth int, st *ast.Statement) {
	s := st.Kind.String()
	if c := tw.cells(st); c != "" {
		s += " " + c
	}
	tw.line(depth, s)
}

func (tw *treeWriter) cells(st *ast.Statement) string {
	ids := tw.f.DataTokens(st)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%q", tw.f.Tok(id).Text))
	}
	return strings.Join(parts, " ")
}
