package lexer

import (
	"cfmtlint/internal/diag"
	"cfmtlint/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.Errorf(lx.opts.Reporter, code, sp, "%s", msg)
}
