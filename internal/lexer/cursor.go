package lexer

import (
	"tabtidy/internal/source"
)

// Cursor представляет собой позицию внутри одной физической строки файла.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off.
	Limit uint32
}

// EOF проверяет, достигнут ли конец области
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekAt reads the byte n positions ahead, 0 past the limit.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// SkipSpace consumes a whitespace run and reports whether it contained a tab.
func (c *Cursor) SkipSpace() (n uint32, tab bool) {
	for !c.EOF() && isSpace(c.Peek()) {
		if c.Bump() == '\t' {
			tab = true
		}
		n++
	}
	return n, tab
}

// spaceRun measures the whitespace run at the cursor without consuming it.
func (c *Cursor) spaceRun() (n uint32, tab bool) {
	for c.Off+n < c.Limit && isSpace(c.File.Content[c.Off+n]) {
		if c.File.Content[c.Off+n] == '\t' {
			tab = true
		}
		n++
	}
	return n, tab
}

// pipeAt reports a cell pipe at the cursor: '|' followed by whitespace or the end.
func (c *Cursor) pipeAt(n uint32) bool {
	if c.PeekAt(n) != '|' {
		return false
	}
	return c.Off+n+1 >= c.Limit || isSpace(c.File.Content[c.Off+n+1])
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
