package driver

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around a change.
const diffContext = 3

type diffLine struct {
	op   diffpatch.Operation
	text string // без '\n'
	eol  bool
}

// UnifiedDiff renders a line diff between before and after in unified format.
// Identical inputs give an empty string.
func UnifiedDiff(path string, before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var all []diffLine
	for _, d := range diffs {
		all = append(all, splitDiffLines(d.Type, d.Text)...)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", path, path)
	oldNo, newNo := 1, 1
	for start := 0; start < len(all); {
		first := nextChange(all, start)
		if first < 0 {
			break
		}
		lo := max(start, first-diffContext)
		// пропущенные строки контекста
		for i := start; i < lo; i++ {
			oldNo++
			newNo++
		}
		hi := hunkEnd(all, first)
		writeHunk(&sb, all[lo:hi], oldNo, newNo)
		for _, l := range all[lo:hi] {
			if l.op != diffpatch.DiffInsert {
				oldNo++
			}
			if l.op != diffpatch.DiffDelete {
				newNo++
			}
		}
		start = hi
	}
	return sb.String()
}

func splitDiffLines(op diffpatch.Operation, text string) []diffLine {
	var out []diffLine
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			out = append(out, diffLine{op: op, text: text})
			break
		}
		out = append(out, diffLine{op: op, text: text[:i], eol: true})
		text = text[i+1:]
	}
	return out
}

func nextChange(lines []diffLine, from int) int {
	for i := from; i < len(lines); i++ {
		if lines[i].op != diffpatch.DiffEqual {
			return i
		}
	}
	return -1
}

// hunkEnd extends a hunk until diffContext*2 equal lines separate it from
// the next change, then keeps diffContext trailing lines.
func hunkEnd(lines []diffLine, first int) int {
	i := first
	for i < len(lines) {
		if lines[i].op != diffpatch.DiffEqual {
			i++
			continue
		}
		j := i
		for j < len(lines) && lines[j].op == diffpatch.DiffEqual {
			j++
		}
		if j == len(lines) || j-i > 2*diffContext {
			return min(i+diffContext, len(lines))
		}
		i = j
	}
	return len(lines)
}

func writeHunk(sb *strings.Builder, hunk []diffLine, oldStart, newStart int) {
	oldCount, newCount := 0, 0
	for _, l := range hunk {
		if l.op != diffpatch.DiffInsert {
			oldCount++
		}
		if l.op != diffpatch.DiffDelete {
			newCount++
		}
	}
	if oldCount == 0 {
		oldStart--
	}
	if newCount == 0 {
		newStart--
	}
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, l := range hunk {
		switch l.op {
		case diffpatch.DiffInsert:
			sb.WriteByte('+')
		case diffpatch.DiffDelete:
			sb.WriteByte('-')
		default:
			sb.WriteByte(' ')
		}
		sb.WriteString(l.text)
		sb.WriteByte('\n')
		if !l.eol {
			sb.WriteString("\\ No newline at end of file\n")
		}
	}
}

// ColorizeDiff paints removed lines red, added green and hunk headers cyan.
func ColorizeDiff(diff string, enabled bool) string {
	if diff == "" {
		return diff
	}
	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)
	head := color.New(color.Bold)
	for _, c := range []*color.Color{add, del, hunk, head} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var sb strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			sb.WriteString(head.Sprint(body))
		case strings.HasPrefix(body, "@@"):
			sb.WriteString(hunk.Sprint(body))
		case strings.HasPrefix(body, "+"):
			sb.WriteString(add.Sprint(body))
		case strings.HasPrefix(body, "-"):
			sb.WriteString(del.Sprint(body))
		default:
			sb.WriteString(body)
		}
		if strings.HasSuffix(line, "\n") {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
