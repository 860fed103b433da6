package tidy

import (
	"tabtidy/internal/ast"
)

// layoutFunc receives a statement with its nesting depth. joined is set for
// the statement that continues the physical line of a test or keyword name.
type layoutFunc func(st *ast.Statement, indent int, joined bool)

func walkLayout(f *ast.File, fn layoutFunc) {
	for _, sec := range f.Sections {
		if sec.Header != nil {
			fn(sec.Header, 0, false)
		}
		walkLayoutBlocks(f, sec.Body, 0, false, fn)
	}
}

func walkLayoutBlocks(f *ast.File, blocks []ast.Block, indent int, joined bool, fn layoutFunc) {
	for i, b := range blocks {
		first := joined && i == 0
		switch n := b.(type) {
		case *ast.Statement:
			fn(n, indent, first)
		case *ast.TestCase:
			fn(n.Name, indent, false)
			walkLayoutBlocks(f, n.Body, indent+1, !f.EndsLine(n.Name), fn)
		case *ast.Keyword:
			fn(n.Name, indent, false)
			walkLayoutBlocks(f, n.Body, indent+1, !f.EndsLine(n.Name), fn)
		case *ast.ForLoop:
			fn(n.Header, indent, first)
			walkLayoutBlocks(f, n.Body, indent+1, false, fn)
			if n.End != nil {
				fn(n.End, indent, false)
			}
		}
	}
}
