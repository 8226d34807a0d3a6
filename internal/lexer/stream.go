package lexer

import (
	"cfmtlint/internal/source"
	"cfmtlint/internal/token"
)

// Stream - полностью отлексированный файл с произвольным доступом по индексу.
// Последний элемент всегда EOF.
type Stream struct {
	File   *source.File
	Tokens []token.Token
}

// Tokenize прогоняет лексер до EOF.
func Tokenize(file *source.File, opts Options) *Stream {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &Stream{File: file, Tokens: toks}
}

// Len возвращает количество токенов, включая EOF.
func (s *Stream) Len() int { return len(s.Tokens) }

// At возвращает токен по индексу; за пределами - EOF.
func (s *Stream) At(i int) token.Token {
	if i < 0 || i >= len(s.Tokens) {
		return s.Tokens[len(s.Tokens)-1]
	}
	return s.Tokens[i]
}

// NextSignificant возвращает индекс первого не-trivia токена начиная с i
// (директивы тоже пропускаются). Если таких нет - индекс EOF.
func (s *Stream) NextSignificant(i int) int {
	if i < 0 {
		i = 0
	}
	for ; i < len(s.Tokens); i++ {
		k := s.Tokens[i].Kind
		if !k.IsTrivia() && k != token.Directive {
			return i
		}
	}
	return len(s.Tokens) - 1
}

// PrevSignificant возвращает индекс ближайшего не-trivia токена перед i, или -1.
func (s *Stream) PrevSignificant(i int) int {
	if i > len(s.Tokens) {
		i = len(s.Tokens)
	}
	for i--; i >= 0; i-- {
		k := s.Tokens[i].Kind
		if !k.IsTrivia() && k != token.Directive {
			return i
		}
	}
	return -1
}

// IndexAt возвращает индекс токена, покрывающего смещение off (повторный скан с произвольной позиции).
func (s *Stream) IndexAt(off uint32) int {
	lo, hi := 0, len(s.Tokens)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if s.Tokens[mid].Span.End <= off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
