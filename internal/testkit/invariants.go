// Package testkit holds structural checks shared by lexer, tidy and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tabtidy/internal/ast"
	"tabtidy/internal/source"
	"tabtidy/internal/token"
)

// CheckSourceCoverage verifies that a freshly lexed tree accounts for every
// byte of sf exactly once:
// 1) every positioned token lies inside sf and its text equals the covered bytes
// 2) positioned tokens follow each other without gaps or overlap, in walk order
// 3) the last positioned token ends at the end of the content
//
// Synthesized tokens (empty text, no span) are skipped.
func CheckSourceCoverage(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var pos uint32
	var firstErr error
	f.Walk(func(st *ast.Statement) {
		if firstErr != nil {
			return
		}
		for _, id := range f.Tokens(st) {
			tok := f.Tok(id)
			if tok == nil {
				firstErr = fmt.Errorf("dangling token id %d", id)
				return
			}
			if tok.Text == "" && tok.Span.Empty() {
				continue
			}
			sp := tok.Span
			if sp.File != sf.ID {
				firstErr = fmt.Errorf("token %q points to file %d, want %d", tok.Text, sp.File, sf.ID)
				return
			}
			if sp.End < sp.Start || sp.End > size {
				firstErr = fmt.Errorf("token %q span %v outside content of %d bytes", tok.Text, sp, size)
				return
			}
			if sp.Start != pos {
				firstErr = fmt.Errorf("token %q starts at %d, previous token ended at %d", tok.Text, sp.Start, pos)
				return
			}
			if got := string(sf.Content[sp.Start:sp.End]); got != tok.Text {
				firstErr = fmt.Errorf("token text %q does not match source %q at %v", tok.Text, got, sp)
				return
			}
			pos = sp.End
		}
	})
	if firstErr != nil {
		return firstErr
	}
	if pos != size {
		return fmt.Errorf("tokens cover %d of %d bytes", pos, size)
	}
	return nil
}

// CheckLines verifies statement shape, before and after any pass:
// no statement or line is empty, and a terminator only ever closes a line.
func CheckLines(f *ast.File) error {
	var firstErr error
	f.Walk(func(st *ast.Statement) {
		if firstErr != nil {
			return
		}
		if len(st.Lines) == 0 {
			firstErr = fmt.Errorf("%v statement has no lines", st.Kind)
			return
		}
		for i, line := range st.Lines {
			if len(line) == 0 {
				firstErr = fmt.Errorf("%v statement line %d is empty", st.Kind, i)
				return
			}
			for j, id := range line {
				if f.Tok(id).Kind == token.EOL && j != len(line)-1 {
					firstErr = fmt.Errorf("%v statement line %d has a terminator at %d of %d", st.Kind, i, j, len(line))
					return
				}
			}
		}
	})
	return firstErr
}
