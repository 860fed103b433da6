package tidy

import (
	"strings"

	"tabtidy/internal/ast"
	"tabtidy/internal/normalize"
	"tabtidy/internal/token"
)

// Cleaner canonicalises raw text before any layout pass runs.
//
// Rules:
//   - legacy loop indent markers are removed, loop markers become FOR and END;
//   - section headers become "*** Title Case ***";
//   - setting names are title-cased, brackets kept;
//   - settings without a value are dropped;
//   - from the first non-comment section on, blank lines are dropped and
//     adjacent separators collapse into one;
//   - terminators lose trailing whitespace.
type Cleaner struct {
	inData bool
}

func NewCleaner() *Cleaner { return &Cleaner{} }

func (c *Cleaner) Name() string { return "cleaner" }

func (c *Cleaner) Apply(f *ast.File) {
	c.inData = false
	for _, sec := range f.Sections {
		if sec.Kind != ast.SectionComments {
			c.inData = true
		}
		if sec.Header != nil {
			c.header(f, sec.Header)
			c.statement(f, sec.Header)
		}
		sec.Body = c.blocks(f, sec.Body)
	}
}

func (c *Cleaner) header(f *ast.File, st *ast.Statement) {
	if !st.Kind.IsHeader() {
		return
	}
	data := f.DataTokens(st)
	if len(data) == 0 {
		return
	}
	tok := f.Tok(data[0])
	tok.Text = "*** " + normalize.Title(strings.ReplaceAll(tok.Text, "*", "")) + " ***"
}

func (c *Cleaner) blocks(f *ast.File, blocks []ast.Block) []ast.Block {
	return ast.FilterBlocks(blocks, func(b ast.Block) bool {
		switch n := b.(type) {
		case *ast.Statement:
			return c.statement(f, n)
		case *ast.TestCase:
			c.statement(f, n.Name)
			n.Body = c.entityBody(f, n.Name, n.Body)
		case *ast.Keyword:
			c.statement(f, n.Name)
			n.Body = c.entityBody(f, n.Name, n.Body)
		case *ast.ForLoop:
			c.loop(f, n)
		}
		return true
	})
}

// entityBody cleans a test or keyword body. When the statement sharing the
// name line is dropped, its terminator moves to the name so the line stays closed.
func (c *Cleaner) entityBody(f *ast.File, name *ast.Statement, body []ast.Block) []ast.Block {
	var joined *ast.Statement
	eol := ast.NoTokenID
	if len(body) > 0 && !f.EndsLine(name) {
		if st, ok := body[0].(*ast.Statement); ok && len(st.Lines) > 0 {
			line := st.Lines[0]
			if last := line[len(line)-1]; kindOf(f, last) == token.EOL {
				joined, eol = st, last
			}
		}
	}
	body = c.blocks(f, body)
	if eol.IsValid() && (len(body) == 0 || body[0] != ast.Block(joined)) {
		f.Tok(eol).Text = canonicalEOL(f.Tok(eol).Text)
		name.Lines[len(name.Lines)-1] = append(name.Lines[len(name.Lines)-1], eol)
	}
	return body
}

func (c *Cleaner) loop(f *ast.File, loop *ast.ForLoop) {
	if data := f.DataTokens(loop.Header); len(data) > 0 {
		f.Tok(data[0]).Text = "FOR"
	}
	if loop.End != nil {
		if data := f.DataTokens(loop.End); len(data) > 0 {
			f.Tok(data[0]).Text = "END"
		}
		// маркер старого цикла синтезирован без разделителя и перевода строки
		if ids := f.Tokens(loop.End); len(ids) == 1 {
			sep := f.NewToken(token.Separator, "")
			eol := f.NewToken(token.EOL, "\n")
			loop.End.SetTokens([]ast.TokenID{sep, ids[0], eol}, f)
		}
	}
	c.statement(f, loop.Header)
	loop.Body = c.blocks(f, loop.Body)
	if loop.End != nil {
		c.statement(f, loop.End)
	}
}

// statement cleans st and reports whether it stays in the tree.
func (c *Cleaner) statement(f *ast.File, st *ast.Statement) bool {
	if st.Kind.IsSetting() {
		c.settingName(f, st)
		if len(f.DataTokens(st)) == 1 {
			return false
		}
	}
	if c.inData && st.Kind == token.EOL {
		return false
	}

	var out []ast.TokenID
	for _, line := range st.Lines {
		if c.inData && isLoneEOL(f, line) {
			continue
		}
		prevSep := false
		for _, id := range line {
			tok := f.Tok(id)
			switch tok.Kind {
			case token.OldForIndent:
				continue
			case token.EOL:
				tok.Text = canonicalEOL(tok.Text)
			case token.Separator:
				if c.inData && prevSep {
					continue
				}
			}
			prevSep = tok.Kind == token.Separator
			out = append(out, id)
		}
	}
	st.SetTokens(out, f)
	return true
}

func (c *Cleaner) settingName(f *ast.File, st *ast.Statement) {
	data := f.DataTokens(st)
	if len(data) == 0 {
		return
	}
	tok := f.Tok(data[0])
	if strings.HasPrefix(tok.Text, "[") && strings.HasSuffix(tok.Text, "]") && len(tok.Text) >= 2 {
		tok.Text = "[" + normalize.Title(tok.Text[1:len(tok.Text)-1]) + "]"
		return
	}
	tok.Text = normalize.Title(tok.Text)
}

func canonicalEOL(s string) string {
	if strings.Contains(s, "\n") {
		return "\n"
	}
	return ""
}
