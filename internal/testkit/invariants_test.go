package testkit

import (
	"strings"
	"testing"

	"tabtidy/internal/ast"
	"tabtidy/internal/lexer"
	"tabtidy/internal/source"
	"tabtidy/internal/token"
)

const sample = "*** Test Cases ***\nT\n    Log    x\n    ...    y\n"

func lexSample(t *testing.T) (*ast.File, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("sample.robot", []byte(sample)))
	return lexer.Lex(file, lexer.Options{Kind: ast.SuiteFile}), file
}

func firstData(f *ast.File) *token.Token {
	var found *token.Token
	f.Walk(func(st *ast.Statement) {
		for _, id := range f.DataTokens(st) {
			if found == nil {
				found = f.Tok(id)
			}
		}
	})
	return found
}

func TestCleanTreePasses(t *testing.T) {
	tree, file := lexSample(t)
	if err := CheckSourceCoverage(tree, file); err != nil {
		t.Fatalf("CheckSourceCoverage: %v", err)
	}
	if err := CheckLines(tree); err != nil {
		t.Fatalf("CheckLines: %v", err)
	}
}

func TestEditedTextIsReported(t *testing.T) {
	tree, file := lexSample(t)
	firstData(tree).Text = "*** Tasks ***"
	err := CheckSourceCoverage(tree, file)
	if err == nil || !strings.Contains(err.Error(), "does not match source") {
		t.Fatalf("got %v, want text mismatch", err)
	}
}

func TestDroppedStatementIsReported(t *testing.T) {
	tree, file := lexSample(t)
	sec := tree.Sections[len(tree.Sections)-1]
	sec.Body = nil
	if err := CheckSourceCoverage(tree, file); err == nil {
		t.Fatal("expected coverage error")
	}
}

func TestTerminatorInsideLine(t *testing.T) {
	tree, _ := lexSample(t)
	var st *ast.Statement
	tree.Walk(func(s *ast.Statement) {
		if st == nil {
			st = s
		}
	})
	line := st.Lines[0]
	st.Lines[0] = append([]ast.TokenID{line[len(line)-1]}, line...)
	if err := CheckLines(tree); err == nil {
		t.Fatal("expected terminator error")
	}
}
