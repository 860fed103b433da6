package lexer

import (
	"strings"

	"tabtidy/internal/token"
)

// rawLine is one physical line split into cells.
type rawLine struct {
	toks []token.Token
	pipe bool
}

// firstCell returns the index of the first token that is not a separator,
// and the number of separators before it.
func (l *rawLine) firstCell() (idx, seps int) {
	for i, tok := range l.toks {
		if tok.Kind != token.Separator {
			return i, seps
		}
		seps++
	}
	return len(l.toks), seps
}

// blank reports a line without cells.
func (l *rawLine) blank() bool {
	i, _ := l.firstCell()
	return l.toks[i].Kind == token.EOL
}

// indented reports whether the first cell is not in column zero.
func (l *rawLine) indented() bool {
	_, seps := l.firstCell()
	if l.pipe {
		return seps > 1
	}
	return seps > 0
}

func (lx *Lexer) emit(line *rawLine, kind token.Kind, c *Cursor, m Mark) {
	sp := c.SpanFrom(m)
	line.toks = append(line.toks, token.Token{
		Kind: kind,
		Text: string(c.File.Content[sp.Start:sp.End]),
		Span: sp,
	})
}

// scanLine splits content[start:end) into cells. end excludes the newline;
// nl reports whether one follows.
func (lx *Lexer) scanLine(start, end uint32, nl bool) rawLine {
	c := Cursor{File: lx.file, Off: start, Limit: end}
	// хвостовые пробелы уходят в терминатор
	for c.Limit > start && isSpace(lx.file.Content[c.Limit-1]) {
		c.Limit--
	}

	var line rawLine
	if c.pipeAt(0) {
		line.pipe = true
		lx.scanPipeCells(&c, &line)
	} else {
		lx.scanSpaceCells(&c, &line)
	}

	m := c.Mark()
	c.Limit = end
	if nl {
		c.Limit++
	}
	c.Off = c.Limit
	lx.emit(&line, token.EOL, &c, m)

	markCells(&line)
	return line
}

// scanSpaceCells splits on runs of two or more spaces or any run holding a tab.
func (lx *Lexer) scanSpaceCells(c *Cursor, line *rawLine) {
	if isSpace(c.Peek()) {
		m := c.Mark()
		c.SkipSpace()
		lx.emit(line, token.Separator, c, m)
	}
	for !c.EOF() {
		m := c.Mark()
		for !c.EOF() {
			if n, tab := c.spaceRun(); n >= 2 || tab {
				break
			}
			c.Bump()
		}
		lx.emit(line, token.Data, c, m)
		if c.EOF() {
			break
		}
		m = c.Mark()
		c.SkipSpace()
		lx.emit(line, token.Separator, c, m)
	}
}

// scanPipeCells splits "| a | b |" rows. Leading empty cells become
// adjacent separators, interior empty cells become empty data cells.
func (lx *Lexer) scanPipeCells(c *Cursor, line *rawLine) {
	for c.pipeAt(0) {
		m := c.Mark()
		c.Bump()
		c.SkipSpace()
		lx.emit(line, token.Separator, c, m)
	}
	for !c.EOF() {
		m := c.Mark()
		for !c.EOF() && !atPipeSeparator(c) {
			c.Bump()
		}
		lx.emit(line, token.Data, c, m)
		if c.EOF() {
			break
		}
		m = c.Mark()
		c.SkipSpace()
		c.Bump()
		c.SkipSpace()
		lx.emit(line, token.Separator, c, m)
		for c.pipeAt(0) {
			m = c.Mark()
			lx.emit(line, token.Data, c, m)
			c.Bump()
			c.SkipSpace()
			lx.emit(line, token.Separator, c, m)
		}
	}
}

func atPipeSeparator(c *Cursor) bool {
	n, _ := c.spaceRun()
	return n > 0 && c.pipeAt(n)
}

// markCells tags the continuation marker and everything from the first
// '#' cell to the end of the line.
func markCells(line *rawLine) {
	first := true
	commented := false
	for i := range line.toks {
		tok := &line.toks[i]
		if tok.Kind != token.Data {
			continue
		}
		if !commented && strings.HasPrefix(tok.Text, "#") {
			commented = true
		}
		switch {
		case commented:
			tok.Kind = token.Comment
		case first && tok.Text == "...":
			tok.Kind = token.Continuation
		}
		first = false
	}
}
