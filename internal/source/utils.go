package source

import (
	"path/filepath"
	"slices"
	"sort"

	"fortio.org/safecast"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			changed = true
			continue
		}
		out = append(out, content[i])
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				break
			}
			out = append(out, off)
		}
	}
	return out
}

// LineCol is a 1-based position for messages.
type LineCol struct {
	Line uint32
	Col  uint32
}

// toLineCol resolves a byte offset against the newline index.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// количество переводов строки строго до off
	n := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var start uint32
	if n > 0 {
		start = lineIdx[n-1] + 1
	}
	line, err := safecast.Conv[uint32](n + 1)
	if err != nil {
		line = 0
	}
	return LineCol{Line: line, Col: off - start + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
