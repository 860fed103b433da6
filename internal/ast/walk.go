package ast

// Walk calls fn for every statement of the file in document order.
func (f *File) Walk(fn func(*Statement)) {
	for _, sec := range f.Sections {
		if sec.Header != nil {
			fn(sec.Header)
		}
		WalkBlocks(sec.Body, fn)
	}
}

// WalkBlocks calls fn for every statement nested in blocks, in order.
func WalkBlocks(blocks []Block, fn func(*Statement)) {
	for _, b := range blocks {
		switch n := b.(type) {
		case *Statement:
			fn(n)
		case *TestCase:
			fn(n.Name)
			WalkBlocks(n.Body, fn)
		case *Keyword:
			fn(n.Name)
			WalkBlocks(n.Body, fn)
		case *ForLoop:
			fn(n.Header)
			WalkBlocks(n.Body, fn)
			if n.End != nil {
				fn(n.End)
			}
		}
	}
}

// FilterBlocks keeps the blocks for which keep returns true, preserving order.
func FilterBlocks(blocks []Block, keep func(Block) bool) []Block {
	out := blocks[:0]
	for _, b := range blocks {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}
