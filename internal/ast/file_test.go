package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tabtidy/internal/ast"
	"tabtidy/internal/token"
)

func line(f *ast.File, toks ...token.Token) []ast.TokenID {
	out := make([]ast.TokenID, 0, len(toks))
	for _, tok := range toks {
		out = append(out, f.Add(tok))
	}
	return out
}

func sampleFile() (*ast.File, *ast.ForLoop) {
	f := ast.NewFile(0, "t.robot", ast.SuiteFile, 0)
	header := &ast.Statement{Kind: token.TestCaseHeader, Lines: [][]ast.TokenID{line(f,
		token.New(token.TestCaseHeader, "*** Test Cases ***"), token.New(token.EOL, "\n"))}}
	name := &ast.Statement{Kind: token.TestCaseName, Lines: [][]ast.TokenID{line(f,
		token.New(token.TestCaseName, "Example"), token.New(token.EOL, "\n"))}}
	loop := &ast.ForLoop{
		Header: &ast.Statement{Kind: token.For, Lines: [][]ast.TokenID{line(f,
			token.New(token.Separator, "    "), token.New(token.For, "FOR"),
			token.New(token.Separator, "    "), token.New(token.Variable, "${i}"),
			token.New(token.EOL, "\n"))}},
		Body: []ast.Block{&ast.Statement{Kind: token.Keyword, Lines: [][]ast.TokenID{line(f,
			token.New(token.Separator, "        "), token.New(token.Keyword, "Log"),
			token.New(token.Separator, "    "), token.New(token.Argument, "${i}"),
			token.New(token.EOL, "\n"))}}},
		End: &ast.Statement{Kind: token.End, Lines: [][]ast.TokenID{line(f,
			token.New(token.Separator, "    "), token.New(token.End, "END"), token.New(token.EOL, ""))}},
	}
	f.Sections = []*ast.Section{{
		Kind:   ast.SectionTestCases,
		Header: header,
		Body:   []ast.Block{&ast.TestCase{Name: name, Body: []ast.Block{loop}}},
	}}
	return f, loop
}

func TestBytesFollowsDocumentOrder(t *testing.T) {
	f, _ := sampleFile()
	want := "*** Test Cases ***\nExample\n    FOR    ${i}\n        Log    ${i}\n    END"
	if diff := cmp.Diff(want, f.String()); diff != "" {
		t.Fatalf("serialisation mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkVisitsEveryStatement(t *testing.T) {
	f, _ := sampleFile()
	var got []token.Kind
	f.Walk(func(st *ast.Statement) { got = append(got, st.Kind) })
	want := []token.Kind{token.TestCaseHeader, token.TestCaseName, token.For, token.Keyword, token.End}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestDataTokensSkipsLayout(t *testing.T) {
	f, loop := sampleFile()
	var got []string
	for _, id := range f.DataTokens(loop.Header) {
		got = append(got, f.Tok(id).Text)
	}
	if diff := cmp.Diff([]string{"FOR", "${i}"}, got); diff != "" {
		t.Fatalf("data tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestEndsLine(t *testing.T) {
	f := ast.NewFile(0, "t.robot", ast.SuiteFile, 0)
	shared := &ast.Statement{Lines: [][]ast.TokenID{line(f, token.New(token.TestCaseName, "T"))}}
	if f.EndsLine(shared) {
		t.Fatalf("name sharing its line must not end it")
	}
	alone := &ast.Statement{Lines: [][]ast.TokenID{line(f, token.New(token.TestCaseName, "T"), token.New(token.EOL, "\n"))}}
	if !f.EndsLine(alone) {
		t.Fatalf("name followed by EOL ends its line")
	}
	if f.EndsLine(nil) {
		t.Fatalf("nil statement")
	}
}

func TestSetTokensResplitsLines(t *testing.T) {
	f := ast.NewFile(0, "t.robot", ast.SuiteFile, 0)
	ids := line(f,
		token.New(token.Keyword, "Log"), token.New(token.EOL, "\n"),
		token.New(token.Continuation, "..."), token.New(token.Argument, "x"), token.New(token.EOL, "\n"),
	)
	st := &ast.Statement{Kind: token.Keyword}
	st.SetTokens(ids, f)
	if len(st.Lines) != 2 || len(st.Lines[0]) != 2 || len(st.Lines[1]) != 3 {
		t.Fatalf("unexpected line split %v", st.Lines)
	}

	st.SetTokens(ids[:4], f)
	if len(st.Lines) != 2 || len(st.Lines[1]) != 2 {
		t.Fatalf("trailing tokens without EOL must form a last line, got %v", st.Lines)
	}
}

func TestFilterBlocks(t *testing.T) {
	blocks := []ast.Block{
		&ast.Statement{Kind: token.EOL},
		&ast.Statement{Kind: token.Keyword},
		&ast.Statement{Kind: token.EOL},
	}
	kept := ast.FilterBlocks(blocks, func(b ast.Block) bool {
		st, ok := b.(*ast.Statement)
		return !ok || st.Kind != token.EOL
	})
	if len(kept) != 1 || kept[0].(*ast.Statement).Kind != token.Keyword {
		t.Fatalf("unexpected filter result %v", kept)
	}
}

func TestTokenIDsStartAtOne(t *testing.T) {
	f := ast.NewFile(0, "ids.robot", ast.SuiteFile, 2)
	id := f.NewToken(token.Keyword, "Log")
	if id != 1 || f.Tok(id).Text != "Log" {
		t.Fatalf("first id = %d, want 1 holding the token", id)
	}
	if f.Tok(ast.NoTokenID) != nil || f.Tok(id+1) != nil {
		t.Fatalf("unknown ids must yield nil")
	}
	if ast.NoTokenID.IsValid() || !id.IsValid() {
		t.Fatalf("IsValid mismatch")
	}
}
