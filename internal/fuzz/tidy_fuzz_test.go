package fuzztests

import (
	"bytes"
	"context"
	"testing"
	"time"

	"tabtidy/internal/ast"
	"tabtidy/internal/tidy"
	"tabtidy/internal/testkit"
)

// tidyTimeout bounds a single pipeline run; exceeding it points to a loop
// that never terminates.
const tidyTimeout = 5 * time.Second

func FuzzTidyPipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		for _, style := range []tidy.Style{tidy.StyleSpace, tidy.StylePipe} {
			opts := tidy.DefaultOptions()
			opts.Style = style
			p, err := tidy.New(opts)
			if err != nil {
				t.Fatalf("tidy.New(%v): %v", style, err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), tidyTimeout)
			var out []byte
			done := make(chan struct{})
			go func() {
				defer close(done)
				tree, _ := lexBytes(input, ast.SuiteFile)
				out = p.Format(tree)
			}()
			select {
			case <-done:
			case <-ctx.Done():
				cancel()
				t.Fatalf("%v: tidy timed out after %v", style, tidyTimeout)
			}
			cancel()

			// результат должен снова лексироваться без потерь
			again, file := lexBytes(out, ast.SuiteFile)
			if err := testkit.CheckSourceCoverage(again, file); err != nil {
				t.Fatalf("%v: tidy output does not re-lex: %v", style, err)
			}
			if twice := p.Format(again); !bytes.Equal(out, twice) {
				t.Fatalf("%v: second run changed output:\n once %q\ntwice %q", style, out, twice)
			}
		}
	})
}
