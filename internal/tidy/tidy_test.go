package tidy_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tabtidy/internal/ast"
	"tabtidy/internal/diag"
	"tabtidy/internal/lexer"
	"tabtidy/internal/source"
	"tabtidy/internal/tidy"
	"tabtidy/internal/token"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.robot", []byte(src)))
	return lexer.Lex(file, lexer.Options{Kind: ast.SuiteFile})
}

func format(t *testing.T, src string, opts tidy.Options) string {
	t.Helper()
	p, err := tidy.New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return string(p.Format(parse(t, src)))
}

func apply(t *testing.T, src string, passes ...tidy.Pass) string {
	t.Helper()
	f := parse(t, src)
	for _, p := range passes {
		p.Apply(f)
	}
	return f.String()
}

func pipeOptions() tidy.Options {
	opts := tidy.DefaultOptions()
	opts.Style = tidy.StylePipe
	return opts
}

const messy = `*** settings ***
library    Collections
documentation
Suite Setup    Log    hi

*** Test Cases ***
First
    [documentation]    doc
    Log    one


Second    Log    two
*** keywords ***
My Kw
    :FOR    ${i}    IN    a    b
    \    Log    ${i}
    No Operation
`

func TestSpacePipeline(t *testing.T) {
	want := `*** Settings ***
Library           Collections
Suite Setup       Log    hi

*** Test Cases ***
First
    [Documentation]    doc
    Log    one

Second    Log    two

*** Keywords ***
My Kw
    FOR    ${i}    IN    a    b
        Log    ${i}
    END
    No Operation
`
	got := format(t, messy, tidy.DefaultOptions())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestPipePipeline(t *testing.T) {
	src := "*** Test Cases ***\nTest    Log    x\n    FOR    ${i}    IN    a\n        Log    ${i}\n    END\n"
	want := `| *** Test Cases *** |
| Test | Log | x |
|    | FOR | ${i} | IN | a |
|    |    | Log | ${i} |
|    | END |
`
	got := format(t, src, pipeOptions())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestIdempotence(t *testing.T) {
	inputs := []string{
		messy,
		"Free text\n\n*** Settings ***\nLibrary  X\n*** Variables ***\n${A}    1\n",
		"*** Test Cases ***    Action    Argument\nShort    Log    x\nA Much Longer Test Name Here\n    Log    y\n",
		"| *** Test Cases *** |\n| T | Log | y |\n|    | Log | z |\n",
		"*** Keywords ***\nK\n    [Arguments]    ${a}\n    ...    ${b}\n    Log    ${a}\n",
		"*** Test Cases ***\nTest A    [Tags]\nTest B\n    No Operation\n",
		"| *** Test Cases *** |\n| T | Log | | x |\n",
	}
	for _, opts := range []tidy.Options{tidy.DefaultOptions(), pipeOptions()} {
		for _, in := range inputs {
			once := format(t, in, opts)
			twice := format(t, once, opts)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("%s style not idempotent for %q (-once +twice):\n%s", opts.Style, in, diff)
			}
		}
	}
}

func TestCleaner(t *testing.T) {
	src := "Intro\n\n***test cases***\nT\n    :FOR    ${x}    IN    a\n    \\    Log    ${x}\n\n    Log    done   \n"
	want := "Intro\n\n*** Test Cases ***\nT\n    FOR    ${x}    IN    a\n    Log    ${x}\nEND\n    Log    done\n"
	got := apply(t, src, tidy.NewCleaner())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cleaner mismatch (-want +got):\n%s", diff)
	}
}

func TestSeparatorCleanerDepth(t *testing.T) {
	src := "*** Keywords ***\nK\n  Log  x\n  FOR  ${i}  IN  a\n   Log  ${i}\n  END\n"
	want := "*** Keywords ***\nK\n    Log    x\n    FOR    ${i}    IN    a\n        Log    ${i}\n    END\n"
	got := apply(t, src, tidy.NewCleaner(), tidy.NewSeparatorCleaner(4))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("separator mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnWidthCounter(t *testing.T) {
	f := parse(t, "*** Test Cases ***    Action    Arg\nT    LongKeywordName    x\n    Log    y\n")
	counter := &tidy.ColumnWidthCounter{}
	widths := counter.Count(f, f.Sections[0])
	if diff := cmp.Diff([]int{18, 15, 3}, widths); diff != "" {
		t.Fatalf("widths mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnAlignment(t *testing.T) {
	src := "*** Test Cases ***    Action    Argument\nShort    Log    x\nA Much Longer Test Name Here\n    Log    y\n"
	want := "*** Test Cases ***    Action    Argument\n" +
		"Short" + strings.Repeat(" ", 17) + "Log" + strings.Repeat(" ", 7) + "x\n" +
		"\n" +
		"A Much Longer Test Name Here\n" +
		strings.Repeat(" ", 22) + "Log" + strings.Repeat(" ", 7) + "y\n"
	got := format(t, src, tidy.DefaultOptions())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("alignment mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnAlignmentInsideLoop(t *testing.T) {
	src := "*** Test Cases ***    A    B\nLong Test Name Is Long\n    FOR    ${i}    IN    x\n        Log    ${i}\n    END\n"
	want := "*** Test Cases ***    A      B\n" +
		"Long Test Name Is Long\n" +
		strings.Repeat(" ", 22) + "FOR    ${i}    IN    x\n" +
		strings.Repeat(" ", 29) + "Log     ${i}\n" +
		strings.Repeat(" ", 22) + "END\n"
	got := format(t, src, tidy.DefaultOptions())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("alignment mismatch (-want +got):\n%s", diff)
	}
}

func TestKeywordSectionsAreNotAligned(t *testing.T) {
	src := "*** Keywords ***    Action    Argument\nK    Log    x\n"
	want := "*** Keywords ***    Action    Argument\nK    Log    x\n"
	if diff := cmp.Diff(want, format(t, src, tidy.DefaultOptions())); diff != "" {
		t.Fatalf("keyword section changed (-want +got):\n%s", diff)
	}
}

func TestNewlineAdder(t *testing.T) {
	src := "# leading comment\n*** Test Cases ***\nA\n    Log    1\nB\n    Log    2\n*** Keywords ***\nK1\n    No Operation\nK2\n    No Operation\n"
	want := "# leading comment\n*** Test Cases ***\nA\n    Log    1\n\nB\n    Log    2\n\n*** Keywords ***\nK1\n    No Operation\n\nK2\n    No Operation\n"
	if diff := cmp.Diff(want, format(t, src, tidy.DefaultOptions())); diff != "" {
		t.Fatalf("newline mismatch (-want +got):\n%s", diff)
	}
}

func TestNewlineAdderSectionEdges(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "empty last test",
			src:  "*** Test Cases ***\nA\n    Log    1\nB\n",
			want: "*** Test Cases ***\nA\n    Log    1\n\nB\n",
		},
		{
			name: "empty last test before section",
			src:  "*** Test Cases ***\nA\n    Log    1\nB\n*** Keywords ***\nK\n    No Operation\n",
			want: "*** Test Cases ***\nA\n    Log    1\n\nB\n\n*** Keywords ***\nK\n    No Operation\n",
		},
		{
			name: "comment section between data",
			src:  "*** Settings ***\nLibrary    X\n*** Comments ***\nnote\n*** Test Cases ***\nT\n    Log    x\n",
			want: "*** Settings ***\nLibrary           X\n\n*** Comments ***\nnote\n*** Test Cases ***\nT\n    Log    x\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, format(t, tt.src, tidy.DefaultOptions())); diff != "" {
				t.Fatalf("newline mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValuelessSettingOnNameLine(t *testing.T) {
	src := "*** Test Cases ***\nTest A    [Tags]\nTest B\n    No Operation\n"
	want := "*** Test Cases ***\nTest A\n\nTest B\n    No Operation\n"
	if diff := cmp.Diff(want, format(t, src, tidy.DefaultOptions())); diff != "" {
		t.Fatalf("space output mismatch (-want +got):\n%s", diff)
	}
	got := apply(t, src, tidy.NewCleaner())
	if !strings.HasPrefix(got, "*** Test Cases ***\nTest A\nTest B\n") {
		t.Fatalf("name line lost its terminator: %q", got)
	}
}

func TestEmptyPipeCellInSpaceStyle(t *testing.T) {
	src := "| *** Test Cases *** |\n| T | Log | | x |\n"
	want := "*** Test Cases ***\nT    Log    " + tidy.EmptyCell + "    x\n"
	got := format(t, src, tidy.DefaultOptions())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("empty cell mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(got, format(t, got, tidy.DefaultOptions())); diff != "" {
		t.Fatalf("second run changed output (-once +twice):\n%s", diff)
	}
}

type settingRecord struct {
	Kind  token.Kind
	Cells []string
}

func lexSettings(t *testing.T, src string) ([]settingRecord, []diag.Code) {
	t.Helper()
	bag := diag.NewBag(32)
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.robot", []byte(src)))
	f := lexer.Lex(file, lexer.Options{Kind: ast.SuiteFile, Reporter: diag.BagReporter{Bag: bag}})

	var recs []settingRecord
	f.Walk(func(st *ast.Statement) {
		if !st.Kind.IsSetting() && st.Kind != token.Error {
			return
		}
		rec := settingRecord{Kind: st.Kind}
		for _, id := range f.DataTokens(st) {
			rec.Cells = append(rec.Cells, f.Tok(id).Text)
		}
		recs = append(recs, rec)
	})
	var codes []diag.Code
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	return recs, codes
}

func TestSettingsSurvivePipeFormat(t *testing.T) {
	suite, err := os.ReadFile(filepath.Join("..", "..", "testdata", "suite.robot"))
	if err != nil {
		t.Fatalf("read suite: %v", err)
	}
	inputs := map[string]string{
		"suite":     string(suite),
		"duplicate": "*** Settings ***\nSuite Setup    A\nSuite Setup    B\n",
		"unknown":   "*** Settings ***\nBogus    x\n*** Test Cases ***\nT\n    [Nope]    y\n    Log    z\n",
		"too many":  "*** Settings ***\nTest Timeout    1 min    2 min\n",
	}
	for name, src := range inputs {
		t.Run(name, func(t *testing.T) {
			wantRecs, wantCodes := lexSettings(t, src)
			f := parse(t, src)
			for _, p := range []tidy.Pass{tidy.NewCleaner(), tidy.NewPipeAdder(), tidy.NewNewlineAdder()} {
				p.Apply(f)
			}
			gotRecs, gotCodes := lexSettings(t, f.String())
			if diff := cmp.Diff(wantRecs, gotRecs); diff != "" {
				t.Errorf("settings changed (-before +after):\n%s", diff)
			}
			if diff := cmp.Diff(wantCodes, gotCodes); diff != "" {
				t.Errorf("diagnostics changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestUnknownStyleIsRejected(t *testing.T) {
	_, err := tidy.New(tidy.Options{Style: tidy.Style(7)})
	if !errors.Is(err, tidy.ErrUnknownStyle) {
		t.Fatalf("expected ErrUnknownStyle, got %v", err)
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    tidy.Style
		wantErr bool
	}{
		{"space", tidy.StyleSpace, false},
		{"PIPE", tidy.StylePipe, false},
		{"", tidy.StyleSpace, false},
		{"tabs", 0, true},
	}
	for _, tt := range tests {
		got, err := tidy.ParseStyle(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStyle(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestPassOrder(t *testing.T) {
	p, err := tidy.New(pipeOptions())
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, pass := range p.Passes() {
		names = append(names, pass.Name())
	}
	want := []string{"cleaner", "pipe-adder", "aligner", "newline-adder"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("pass order mismatch (-want +got):\n%s", diff)
	}
}

func TestWidthCountsWideRunes(t *testing.T) {
	if got := tidy.Width("日本"); got != 4 {
		t.Fatalf("Width = %d, want 4", got)
	}
	if got := tidy.Width("straße"); got != 6 {
		t.Fatalf("Width = %d, want 6", got)
	}
}
