package lexer

import (
	"tabtidy/internal/ast"
	"tabtidy/internal/diag"
)

type Options struct {
	Kind     ast.FileKind
	Reporter diag.Reporter // может быть nil, тогда ошибки только на токенах
}

func (lx *Lexer) reporter() diag.Reporter {
	if lx.opts.Reporter == nil {
		return diag.NopReporter{}
	}
	return lx.opts.Reporter
}
