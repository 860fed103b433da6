package tidy

import (
	"tabtidy/internal/ast"
)

// NewlineAdder puts one blank line after every test case and keyword except
// the last of its section, and one after every section except the last.
// Comment sections keep their own spacing.
type NewlineAdder struct{}

func NewNewlineAdder() *NewlineAdder { return &NewlineAdder{} }

func (n *NewlineAdder) Name() string { return "newline-adder" }

func (n *NewlineAdder) Apply(f *ast.File) {
	for i, sec := range f.Sections {
		if sec.Kind == ast.SectionTestCases || sec.Kind == ast.SectionKeywords {
			n.entities(f, sec.Body)
		}
		last := i == len(f.Sections)-1
		if !last && sec.Kind != ast.SectionComments {
			sec.Body = append(sec.Body, newBlankLine(f))
		}
	}
}

func (n *NewlineAdder) entities(f *ast.File, blocks []ast.Block) {
	lastIdx := -1
	for i, b := range blocks {
		switch b.(type) {
		case *ast.TestCase, *ast.Keyword:
			lastIdx = i
		}
	}
	for i, b := range blocks {
		if i == lastIdx {
			break
		}
		switch e := b.(type) {
		case *ast.TestCase:
			e.Body = append(e.Body, newBlankLine(f))
		case *ast.Keyword:
			e.Body = append(e.Body, newBlankLine(f))
		}
	}
}
