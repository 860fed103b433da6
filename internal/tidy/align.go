package tidy

import (
	"strings"

	"tabtidy/internal/ast"
	"tabtidy/internal/token"
)

// ColumnWidthCounter computes the widest cell per column of a section.
// Header cells start at column 0, every other row at column 1; test and
// keyword names are not counted.
type ColumnWidthCounter struct {
	Widths []int
}

// Count adds the widths of sec to c.Widths and returns them.
func (c *ColumnWidthCounter) Count(f *ast.File, sec *ast.Section) []int {
	if sec.Header != nil {
		c.count(f, sec.Header, 0)
	}
	ast.WalkBlocks(sec.Body, func(st *ast.Statement) {
		if st.Kind != token.TestCaseName && st.Kind != token.KeywordName {
			c.count(f, st, 1)
		}
	})
	return c.Widths
}

func (c *ColumnWidthCounter) count(f *ast.File, st *ast.Statement, offset int) {
	for _, line := range st.Lines {
		for i, id := range cells(f, line) {
			col := i + offset
			w := Width(f.Tok(id).Text)
			if col >= len(c.Widths) {
				c.Widths = append(c.Widths, w)
			} else if w > c.Widths[col] {
				c.Widths[col] = w
			}
		}
	}
}

// ColumnAligner left-pads cells so that every column starts at the
// cumulative width boundary computed by ColumnWidthCounter.
type ColumnAligner struct {
	shortName int
	widths    []int

	nameLen int
	// slack is pending while the first row shares the line of a short name
	slack  bool
	indent int
}

func NewColumnAligner(shortTestNameLength int, widths []int) *ColumnAligner {
	return &ColumnAligner{shortName: shortTestNameLength, widths: widths}
}

// Align pads the header and every row of sec.
func (a *ColumnAligner) Align(f *ast.File, sec *ast.Section) {
	if sec.Header != nil {
		a.header(f, sec.Header)
	}
	a.blocks(f, sec.Body)
}

func (a *ColumnAligner) header(f *ast.File, st *ast.Statement) {
	data := f.DataTokens(st)
	if len(data) == 0 {
		return
	}
	for i, id := range data[:len(data)-1] {
		if i >= len(a.widths) {
			break
		}
		tok := f.Tok(id)
		tok.Text = ljust(tok.Text, a.widths[i])
	}
}

func (a *ColumnAligner) blocks(f *ast.File, blocks []ast.Block) {
	for _, b := range blocks {
		switch n := b.(type) {
		case *ast.Statement:
			a.statement(f, n)
		case *ast.TestCase:
			a.nameLen = 0
			if data := f.DataTokens(n.Name); len(data) > 0 {
				a.nameLen = Width(f.Tok(data[0]).Text)
			}
			a.slack = !f.EndsLine(n.Name) && a.nameLen < a.shortName
			a.blocks(f, n.Body)
			a.slack = false
		case *ast.Keyword:
			a.blocks(f, n.Body)
		case *ast.ForLoop:
			a.indent++
			a.statement(f, n.Header)
			a.blocks(f, n.Body)
			if n.End != nil {
				a.statement(f, n.End)
			}
			a.indent--
		}
	}
}

func (a *ColumnAligner) statement(f *ast.File, st *ast.Statement) {
	for _, line := range st.Lines {
		row := cells(f, line)
		if len(row) == 0 {
			continue
		}
		widths := a.widthsFor(f, row)
		linePos, expPos := 0, 0
		for i, id := range row {
			if i >= len(widths) {
				break
			}
			expPos += widths[i]
			if a.slack {
				// первая строка продолжает короткое имя и занимает его место
				expPos -= a.nameLen
				a.slack = false
			}
			tok := f.Tok(id)
			if pad := expPos - linePos; pad > 0 {
				tok.Text = strings.Repeat(" ", pad) + tok.Text
			}
			linePos += Width(tok.Text)
		}
	}
	a.slack = false
}

// widthsFor folds column 0 into column 1 for calls nested in a loop.
func (a *ColumnAligner) widthsFor(f *ast.File, row []ast.TokenID) []int {
	if a.indent == 0 || len(a.widths) < 2 {
		return a.widths
	}
	switch kindOf(f, row[0]) {
	case token.Keyword, token.Assign, token.Continuation:
		widths := append([]int{a.widths[0] + a.widths[1]}, a.widths[2:]...)
		return widths
	default:
		return a.widths
	}
}

// Aligner aligns test case sections whose header names columns and pads
// setting and variable names to a fixed width. Keyword sections are left
// as they are.
type Aligner struct {
	shortName    int
	settingWidth int
}

func NewAligner(shortTestNameLength, settingNameWidth int) *Aligner {
	return &Aligner{shortName: shortTestNameLength, settingWidth: settingNameWidth}
}

func (a *Aligner) Name() string { return "aligner" }

func (a *Aligner) Apply(f *ast.File) {
	for _, sec := range f.Sections {
		switch sec.Kind {
		case ast.SectionTestCases:
			if sec.Header == nil || len(f.DataTokens(sec.Header)) <= 1 {
				continue
			}
			counter := &ColumnWidthCounter{}
			NewColumnAligner(a.shortName, counter.Count(f, sec)).Align(f, sec)
		case ast.SectionSettings, ast.SectionVariables:
			ast.WalkBlocks(sec.Body, func(st *ast.Statement) {
				a.nameColumn(f, st)
			})
		}
	}
}

// nameColumn pads the first cell of every line holding a name and a value.
func (a *Aligner) nameColumn(f *ast.File, st *ast.Statement) {
	for _, line := range st.Lines {
		if len(line) < 3 {
			continue
		}
		for _, id := range line {
			tok := f.Tok(id)
			if tok.Kind == token.Separator {
				continue
			}
			if tok.Kind != token.EOL {
				tok.Text = ljust(tok.Text, a.settingWidth)
			}
			break
		}
	}
}
