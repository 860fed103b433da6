package lexer

import (
	"regexp"
	"strings"

	"tabtidy/internal/ast"
	"tabtidy/internal/diag"
	"tabtidy/internal/settings"
	"tabtidy/internal/token"
)

// classify validates settings and tags the remaining unclassified cells.
// File settings go first: test cases inherit the file's template.
func (lx *Lexer) classify() {
	r := lx.reporter()
	fileSettings := settings.ForFile(lx.tree.Kind, r)
	for _, sec := range lx.tree.Sections {
		if sec.Kind != ast.SectionSettings {
			continue
		}
		ast.WalkBlocks(sec.Body, func(st *ast.Statement) {
			if st.Kind == token.Data {
				lx.lexSetting(fileSettings, st)
			}
		})
	}

	for _, sec := range lx.tree.Sections {
		for _, b := range sec.Body {
			switch n := b.(type) {
			case *ast.TestCase:
				own := settings.New(settings.TestCaseScope, r)
				lx.lexBodySettings(own, n.Body)
				lx.lexCalls(n.Body, settings.TemplateSet(own, fileSettings))
			case *ast.Keyword:
				own := settings.New(settings.KeywordScope, r)
				lx.lexBodySettings(own, n.Body)
				lx.lexCalls(n.Body, false)
			}
		}
	}
}

func (lx *Lexer) lexSetting(s *settings.Settings, st *ast.Statement) {
	if len(lx.tree.DataTokens(st)) == 0 {
		// одинокий "..." без предыдущей строки
		st.Kind = token.Comment
		return
	}
	s.Lex(lx.tree, st)
}

// lexBodySettings handles "[Name]" lines directly in a test case or keyword body.
func (lx *Lexer) lexBodySettings(s *settings.Settings, body []ast.Block) {
	for _, b := range body {
		st, ok := b.(*ast.Statement)
		if !ok || st.Kind != token.Data {
			continue
		}
		data := lx.tree.DataTokens(st)
		if len(data) == 0 {
			continue
		}
		if tok := lx.tree.Tok(data[0]); tok.Kind == token.Data && isBracketed(tok.Text) {
			lx.lexSetting(s, st)
		}
	}
}

func isBracketed(text string) bool {
	return len(text) >= 2 && strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]")
}

func (lx *Lexer) lexCalls(body []ast.Block, templated bool) {
	ast.WalkBlocks(body, func(st *ast.Statement) {
		if st.Kind == token.Data {
			lx.lexCall(st, templated)
		}
	})
}

var assignPattern = regexp.MustCompile(`^[$@&]\{.+\}\s*=?$`)

// lexCall tags a body row: template arguments, or assignments followed by
// the keyword and its arguments.
func (lx *Lexer) lexCall(st *ast.Statement, templated bool) {
	if templated {
		st.Kind = token.Argument
	} else {
		st.Kind = token.Keyword
	}
	seenKeyword := false
	for _, line := range st.Lines {
		for _, id := range line {
			tok := lx.tree.Tok(id)
			if tok.Kind != token.Data {
				continue
			}
			switch {
			case templated || seenKeyword:
				tok.Kind = token.Argument
			case assignPattern.MatchString(tok.Text):
				tok.Kind = token.Assign
			default:
				tok.Kind = token.Keyword
				seenKeyword = true
			}
		}
	}
	if !templated && !seenKeyword && len(lx.tree.DataTokens(st)) == 0 {
		st.Kind = token.Comment
	}
}

// Diagnostics collects lexer and settings diagnostics into bag.
func Diagnostics(bag *diag.Bag) diag.Reporter {
	return diag.BagReporter{Bag: bag}
}
