package driver

import (
	"context"
	"fmt"

	"tabtidy/internal/ast"
	"tabtidy/internal/diag"
	"tabtidy/internal/lexer"
	"tabtidy/internal/source"
	"tabtidy/internal/trace"
)

// LexResult holds the classified tree of one file.
type LexResult struct {
	FileSet *source.FileSet
	File    *ast.File
	Bag     *diag.Bag
}

// LexFile loads path and classifies its tokens without formatting.
// The kind is derived from the file name.
func LexFile(ctx context.Context, path string, maxDiag int) (*LexResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, trace.CurrentSpan(ctx))
	defer span.End("")

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return lexLoaded(fileSet, id, KindFor(path), maxDiag), nil
}

// LexSource classifies in-memory content.
func LexSource(name string, content []byte, kind ast.FileKind, maxDiag int) *LexResult {
	fileSet := source.NewFileSet()
	return lexLoaded(fileSet, fileSet.AddVirtual(name, content), kind, maxDiag)
}

func lexLoaded(fileSet *source.FileSet, id source.FileID, kind ast.FileKind, maxDiag int) *LexResult {
	if maxDiag <= 0 {
		maxDiag = 256
	}
	bag := diag.NewBag(maxDiag)
	tree := lexer.Lex(fileSet.Get(id), lexer.Options{Kind: kind, Reporter: lexer.Diagnostics(bag)})
	bag.Sort()
	return &LexResult{FileSet: fileSet, File: tree, Bag: bag}
}
