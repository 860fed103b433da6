package tidy

import (
	"fmt"

	"tabtidy/internal/ast"
)

// Pass rewrites a tree in place.
type Pass interface {
	Name() string
	Apply(f *ast.File)
}

// Pipeline runs the passes in their fixed order:
// Cleaner, then PipeAdder or SeparatorCleaner, then Aligner, then NewlineAdder.
type Pipeline struct {
	opts   Options
	passes []Pass
}

// New builds the pipeline for opts. Exactly one separator pass is chosen by
// opts.Style; an unknown style is an error.
func New(opts Options) (*Pipeline, error) {
	opts = opts.withDefaults()
	passes := []Pass{NewCleaner()}
	switch opts.Style {
	case StyleSpace:
		passes = append(passes, NewSeparatorCleaner(opts.SeparatorWidth))
	case StylePipe:
		passes = append(passes, NewPipeAdder())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStyle, opts.Style)
	}
	passes = append(passes,
		NewAligner(opts.ShortTestNameLength, opts.SettingNameWidth),
		NewNewlineAdder(),
	)
	return &Pipeline{opts: opts, passes: passes}, nil
}

// Options returns the effective options, defaults applied.
func (p *Pipeline) Options() Options { return p.opts }

// Passes returns the passes in execution order.
func (p *Pipeline) Passes() []Pass { return p.passes }

// Run applies every pass to f.
func (p *Pipeline) Run(f *ast.File) {
	for _, pass := range p.passes {
		pass.Apply(f)
	}
}

// Format runs the pipeline and serialises the result.
func (p *Pipeline) Format(f *ast.File) []byte {
	p.Run(f)
	return f.Bytes()
}
