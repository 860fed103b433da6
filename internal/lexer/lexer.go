package lexer

import (
	"bytes"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"tabtidy/internal/ast"
	"tabtidy/internal/diag"
	"tabtidy/internal/normalize"
	"tabtidy/internal/source"
	"tabtidy/internal/token"
)

// Lexer turns one source file into a classified tree.
type Lexer struct {
	file *source.File
	opts Options
	tree *ast.File

	section *ast.Section
	test    *ast.TestCase
	keyword *ast.Keyword
	loops   []loopFrame
	// last receives continuation lines
	last *ast.Statement
}

type loopFrame struct {
	loop   *ast.ForLoop
	legacy bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, opts: opts}
}

// Lex builds the tree, validates settings and classifies every token.
func Lex(file *source.File, opts Options) *ast.File {
	return New(file, opts).Lex()
}

// Lex runs the lexer once; calling it again rebuilds the tree from scratch.
func (lx *Lexer) Lex() *ast.File {
	capHint, err := safecast.Conv[uint](len(lx.file.Content) / 4)
	if err != nil {
		capHint = 0
	}
	lx.tree = ast.NewFile(lx.file.ID, lx.file.Path, lx.opts.Kind, capHint)
	lx.section = &ast.Section{Kind: ast.SectionComments}
	lx.tree.Sections = append(lx.tree.Sections, lx.section)
	lx.test, lx.keyword, lx.loops, lx.last = nil, nil, nil, nil

	content := lx.file.Content
	var start int
	for start < len(content) {
		end := len(content)
		nl := false
		if i := bytes.IndexByte(content[start:], '\n'); i >= 0 {
			end = start + i
			nl = true
		}
		lx.line(lx.scanLine(offset(start), offset(end), nl))
		start = end + 1
	}
	lx.closeEntity()

	if first := lx.tree.Sections[0]; first.Implicit() && len(first.Body) == 0 && len(lx.tree.Sections) > 1 {
		lx.tree.Sections = lx.tree.Sections[1:]
	}
	lx.classify()
	return lx.tree
}

func offset(n int) uint32 {
	off, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return off
}

func (lx *Lexer) add(toks []token.Token) []ast.TokenID {
	ids := make([]ast.TokenID, len(toks))
	for i, tok := range toks {
		ids[i] = lx.tree.Add(tok)
	}
	return ids
}

func statement(kind token.Kind, ids []ast.TokenID) *ast.Statement {
	return &ast.Statement{Kind: kind, Lines: [][]ast.TokenID{ids}}
}

func (lx *Lexer) line(raw rawLine) {
	if raw.blank() {
		lx.closeLegacy()
		lx.append(statement(token.EOL, lx.add(raw.toks)))
		lx.last = nil
		return
	}

	i, _ := raw.firstCell()
	first := raw.toks[i]
	if first.Kind == token.Data && strings.HasPrefix(first.Text, "*") && !raw.indented() {
		lx.header(raw, i)
		return
	}
	ids := lx.add(raw.toks)
	if first.Kind == token.Continuation && lx.last != nil {
		lx.last.Lines = append(lx.last.Lines, ids)
		lx.continueKind(lx.last, ids)
		return
	}
	if first.Kind == token.Comment {
		st := statement(token.Comment, ids)
		lx.append(st)
		lx.last = st
		return
	}

	switch lx.section.Kind {
	case ast.SectionSettings:
		lx.appendLast(statement(token.Data, ids))
	case ast.SectionVariables:
		st := statement(token.Variable, ids)
		lx.retag(ids, token.Variable, token.Argument)
		lx.appendLast(st)
	case ast.SectionTestCases, ast.SectionKeywords:
		if !raw.indented() && first.Kind == token.Data {
			lx.startEntity(ids, i)
			return
		}
		lx.body(ids)
	default:
		lx.retag(ids, token.Comment, token.Comment)
		lx.appendLast(statement(token.Comment, ids))
	}
}

// retag assigns firstKind to the first unclassified token and restKind to the others.
func (lx *Lexer) retag(ids []ast.TokenID, firstKind, restKind token.Kind) {
	seen := false
	for _, id := range ids {
		tok := lx.tree.Tok(id)
		if tok.Kind != token.Data {
			continue
		}
		if seen {
			tok.Kind = restKind
		} else {
			tok.Kind = firstKind
			seen = true
		}
	}
}

func (lx *Lexer) appendLast(st *ast.Statement) {
	lx.append(st)
	lx.last = st
}

// append adds b to the innermost open container.
func (lx *Lexer) append(b ast.Block) {
	switch {
	case len(lx.loops) > 0:
		top := lx.loops[len(lx.loops)-1].loop
		top.Body = append(top.Body, b)
	case lx.test != nil:
		lx.test.Body = append(lx.test.Body, b)
	case lx.keyword != nil:
		lx.keyword.Body = append(lx.keyword.Body, b)
	default:
		lx.section.Body = append(lx.section.Body, b)
	}
}

var sectionKinds = map[string]ast.SectionKind{
	"SETTING":   ast.SectionSettings,
	"VARIABLE":  ast.SectionVariables,
	"TEST CASE": ast.SectionTestCases,
	"TASK":      ast.SectionTestCases,
	"KEYWORD":   ast.SectionKeywords,
	"COMMENT":   ast.SectionComments,
}

var headerKinds = [...]token.Kind{
	ast.SectionComments:  token.CommentHeader,
	ast.SectionSettings:  token.SettingHeader,
	ast.SectionVariables: token.VariableHeader,
	ast.SectionTestCases: token.TestCaseHeader,
	ast.SectionKeywords:  token.KeywordHeader,
}

// SectionName normalizes header text: "*** test  cases ***" -> "TEST CASE".
func SectionName(text string) string {
	name := normalize.Upper(normalize.Whitespace(strings.Trim(text, "* ")))
	return strings.TrimSuffix(name, "S")
}

func (lx *Lexer) header(raw rawLine, i int) {
	lx.closeEntity()
	ids := lx.add(raw.toks)
	st := statement(token.Data, ids)
	first := lx.tree.Tok(ids[i])

	kind, ok := sectionKinds[SectionName(first.Text)]
	if ok {
		st.Kind = headerKinds[kind]
		lx.retag(ids, st.Kind, st.Kind)
	} else {
		msg := fmt.Sprintf("Unrecognized section header '%s'. Valid sections: "+
			"'Settings', 'Variables', 'Test Cases', 'Tasks', 'Keywords' and 'Comments'.", first.Text)
		first.Kind = token.Error
		first.Error = msg
		lx.retag(ids, token.Comment, token.Comment)
		st.Kind = token.Error
		diag.Report(lx.reporter(), diag.LexUnknownSection, first.Span, msg).Emit()
	}

	lx.section = &ast.Section{Kind: kind, Header: st}
	lx.tree.Sections = append(lx.tree.Sections, lx.section)
	lx.last = nil
}

// startEntity opens a test case or keyword; cells after the name on the
// same line form the first body statement.
func (lx *Lexer) startEntity(ids []ast.TokenID, i int) {
	lx.closeEntity()
	nameKind := token.TestCaseName
	if lx.section.Kind == ast.SectionKeywords {
		nameKind = token.KeywordName
	}
	lx.tree.Tok(ids[i]).Kind = nameKind

	nameIDs, rest := ids[:i+1], ids[i+1:]
	if lx.layoutOnly(rest) {
		nameIDs, rest = ids, nil
	}
	name := statement(nameKind, nameIDs)
	if nameKind == token.TestCaseName {
		lx.test = &ast.TestCase{Name: name}
		lx.section.Body = append(lx.section.Body, lx.test)
	} else {
		lx.keyword = &ast.Keyword{Name: name}
		lx.section.Body = append(lx.section.Body, lx.keyword)
	}
	lx.last = nil
	if rest != nil {
		lx.body(rest)
	}
}

func (lx *Lexer) body(ids []ast.TokenID) {
	if lx.test == nil && lx.keyword == nil {
		// строки тела до первого имени
		lx.retag(ids, token.Comment, token.Comment)
		lx.appendLast(statement(token.Comment, ids))
		return
	}

	firstID := ids[len(ids)-1]
	for _, id := range ids {
		if lx.tree.Tok(id).Kind != token.Separator {
			firstID = id
			break
		}
	}
	first := *lx.tree.Tok(firstID)
	if first.Kind == token.Comment {
		lx.appendLast(statement(token.Comment, ids))
		return
	}

	if lx.inLegacy() {
		if first.Kind == token.Data && first.Text == `\` {
			lx.tree.Tok(firstID).Kind = token.OldForIndent
			lx.appendLast(statement(token.Data, ids))
			return
		}
		lx.closeLegacy()
	}

	if first.Kind == token.Data {
		switch {
		case first.Text == "FOR" || isLegacyFor(first.Text):
			lx.openLoop(ids, isLegacyFor(first.Text))
			return
		case first.Text == "END" && len(lx.loops) > 0:
			lx.closeLoop(ids)
			return
		}
	}
	lx.appendLast(statement(token.Data, ids))
}

// layoutOnly reports ids holding nothing but separators and the terminator.
func (lx *Lexer) layoutOnly(ids []ast.TokenID) bool {
	for _, id := range ids {
		if k := lx.tree.Tok(id).Kind; k != token.Separator && k != token.EOL {
			return false
		}
	}
	return true
}

func isLegacyFor(text string) bool {
	return normalize.Upper(strings.ReplaceAll(text, " ", "")) == ":FOR"
}

var forSeparators = map[string]bool{
	"IN":           true,
	"IN RANGE":     true,
	"IN ENUMERATE": true,
	"IN ZIP":       true,
}

// tagLoopHeader classifies header cells starting in state kind
// (For, then Variable until a loop separator, then Argument).
func (lx *Lexer) tagLoopHeader(ids []ast.TokenID, kind token.Kind) {
	for _, id := range ids {
		tok := lx.tree.Tok(id)
		if tok.Kind != token.Data {
			continue
		}
		switch {
		case kind == token.For:
			tok.Kind = token.For
			kind = token.Variable
		case kind == token.Variable && forSeparators[tok.Text]:
			tok.Kind = token.ForSeparator
			kind = token.Argument
		default:
			tok.Kind = kind
		}
	}
}

// continueKind classifies a "..." line appended to st. Statements whose
// cells are tagged while reading need it here; settings and calls are
// classified later as a whole.
func (lx *Lexer) continueKind(st *ast.Statement, ids []ast.TokenID) {
	switch st.Kind {
	case token.Variable, token.End:
		lx.retag(ids, token.Argument, token.Argument)
	case token.Comment:
		lx.retag(ids, token.Comment, token.Comment)
	case token.For:
		state := token.Variable
		for _, id := range lx.tree.Tokens(st) {
			if lx.tree.Tok(id).Kind == token.ForSeparator {
				state = token.Argument
				break
			}
		}
		lx.tagLoopHeader(ids, state)
	}
}

func (lx *Lexer) openLoop(ids []ast.TokenID, legacy bool) {
	st := statement(token.For, ids)
	lx.tagLoopHeader(ids, token.For)
	loop := &ast.ForLoop{Header: st}
	lx.append(loop)
	lx.loops = append(lx.loops, loopFrame{loop: loop, legacy: legacy})
	lx.last = st
}

func (lx *Lexer) closeLoop(ids []ast.TokenID) {
	st := statement(token.End, ids)
	lx.retag(ids, token.End, token.Argument)
	top := lx.loops[len(lx.loops)-1]
	top.loop.End = st
	lx.loops = lx.loops[:len(lx.loops)-1]
	lx.last = st
}

func (lx *Lexer) inLegacy() bool {
	return len(lx.loops) > 0 && lx.loops[len(lx.loops)-1].legacy
}

// closeLegacy ends an old-style loop with an empty END marker.
func (lx *Lexer) closeLegacy() {
	if !lx.inLegacy() {
		return
	}
	id := lx.tree.NewToken(token.End, "")
	lx.closeLoop([]ast.TokenID{id})
}

// closeEntity closes open loops and the current test case or keyword.
func (lx *Lexer) closeEntity() {
	for len(lx.loops) > 0 {
		if lx.inLegacy() {
			lx.closeLegacy()
			continue
		}
		top := lx.loops[len(lx.loops)-1]
		head := lx.tree.Tok(lx.tree.DataTokens(top.loop.Header)[0])
		diag.Report(lx.reporter(), diag.LexUnclosedFor, head.Span, "FOR loop has no closing 'END'.").Emit()
		lx.loops = lx.loops[:len(lx.loops)-1]
	}
	lx.test, lx.keyword, lx.last = nil, nil, nil
}
