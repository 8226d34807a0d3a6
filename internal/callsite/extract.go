package callsite

import (
	"strings"

	"cfmtlint/internal/lexer"
	"cfmtlint/internal/source"
	"cfmtlint/internal/token"
)

// State of the call-site machine.
type State uint8

const (
	StateStart State = iota
	StateBeforeFormat
	StateFormat
	StateVarArgs
	StateVarArgsInBrackets
	StateDone
	StateAbort
)

var stateNames = [...]string{
	StateStart:             "START",
	StateBeforeFormat:      "BEFORE_FORMAT",
	StateFormat:            "FORMAT",
	StateVarArgs:           "VAR_ARGS",
	StateVarArgsInBrackets: "VAR_ARGS_IN_BRACKETS",
	StateDone:              "DONE",
	StateAbort:             "ABORT",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(?)"
}

// Effect tells the accumulator what to do with the current token.
type Effect uint8

const (
	EffNone Effect = iota
	EffAppendFormat
	EffAppendParam
	EffCommitParam
	EffEmit
)

// machine is the value threaded through step.
type machine struct {
	State       State
	Pos         int // позиция текущего аргумента вызова
	Depth       int // вложенность скобок внутри аргумента
	FormatIndex int
}

// step is the pure transition function of the extractor.
func step(m machine, tok token.Token) (machine, Effect) {
	switch tok.Category() {
	case token.CatWhitespace, token.CatComment:
		return m, EffNone
	}
	switch m.State {
	case StateStart:
		if tok.Kind == token.LParen {
			m.State = StateBeforeFormat
			return m, EffNone
		}
		m.State = StateAbort

	case StateBeforeFormat:
		if m.Pos == m.FormatIndex && m.Depth == 0 {
			if tok.Kind == token.StringLit {
				m.State = StateFormat
				return m, EffAppendFormat
			}
			m.State = StateAbort
			return m, EffNone
		}
		switch {
		case tok.Kind.IsOpenBracket():
			m.Depth++
		case tok.Kind.IsCloseBracket():
			if m.Depth == 0 {
				// вызов закончился раньше формата
				m.State = StateAbort
				return m, EffNone
			}
			m.Depth--
		case tok.Kind == token.Comma && m.Depth == 0:
			m.Pos++
		}

	case StateFormat:
		switch tok.Kind {
		case token.StringLit:
			return m, EffAppendFormat
		case token.Comma:
			m.Pos++
			m.State = StateVarArgs
		case token.RParen:
			m.State = StateDone
			return m, EffEmit
		default:
			m.State = StateAbort
		}

	case StateVarArgs:
		switch {
		case tok.Kind == token.Comma:
			m.Pos++
			return m, EffCommitParam
		case tok.Kind == token.RParen:
			m.State = StateDone
			return m, EffEmit
		case tok.Kind.IsOpenBracket():
			m.Depth++
			m.State = StateVarArgsInBrackets
			return m, EffAppendParam
		case tok.Kind.IsCloseBracket():
			m.State = StateAbort
			return m, EffNone
		}
		return m, EffAppendParam

	case StateVarArgsInBrackets:
		switch {
		case tok.Kind.IsOpenBracket():
			m.Depth++
		case tok.Kind.IsCloseBracket():
			m.Depth--
			if m.Depth == 0 {
				m.State = StateVarArgs
			}
		}
		return m, EffAppendParam
	}
	return m, EffNone
}

// MacroLookup answers whether an identifier at an offset names a macro.
type MacroLookup interface {
	IsMacro(name string, at uint32) bool
}

// accumulator collects the pieces the effects describe.
type accumulator struct {
	content []byte
	file    source.FileID
	format  strings.Builder
	chunks  []Chunk
	first   uint32
	param   []token.Token
	params  []Parameter
	macros  MacroLookup
}

func (a *accumulator) appendFormat(tok token.Token) bool {
	if len(tok.Text) < 2 || tok.Text[len(tok.Text)-1] != '"' {
		return false // незакрытый литерал
	}
	body := tok.LiteralBody()
	if len(a.chunks) == 0 {
		a.first = tok.Span.Start
	}
	a.chunks = append(a.chunks, Chunk{
		TextStart:   a.format.Len(),
		SourceStart: tok.Span.Start + off32(len(tok.LiteralPrefix())) + 1,
		Len:         len(body),
	})
	a.format.WriteString(body)
	return true
}

func (a *accumulator) commitParam() {
	toks := a.param
	a.param = nil
	if len(toks) == 0 {
		return
	}
	sp := source.Span{File: a.file, Start: toks[0].Span.Start, End: toks[len(toks)-1].Span.End}
	p := Parameter{
		Text:       string(a.content[sp.Start:sp.End]),
		Span:       sp,
		Tokens:     toks,
		Resolvable: true,
	}
	if a.macros != nil {
		for _, t := range toks {
			if t.Kind == token.Ident && a.macros.IsMacro(t.Text, t.Span.Start) {
				p.Resolvable = false
				break
			}
		}
	}
	a.params = append(a.params, p)
}

// Extract runs the call-site machine from the candidate's '(' and returns the
// call, or false when the call cannot be analyzed.
func Extract(st *lexer.Stream, c Candidate, macros MacroLookup) (*CallSite, bool) {
	a := &accumulator{content: st.File.Content, file: st.File.ID, macros: macros}
	m := machine{State: StateStart, FormatIndex: c.Func.FormatIndex}
	for i := c.Open; i < len(st.Tokens); i++ {
		tok := st.Tokens[i]
		if tok.Kind == token.EOF {
			return nil, false
		}
		if tok.Kind == token.Directive {
			continue
		}
		var eff Effect
		m, eff = step(m, tok)
		switch eff {
		case EffAppendFormat:
			if !a.appendFormat(tok) {
				return nil, false
			}
		case EffAppendParam:
			a.param = append(a.param, tok)
		case EffCommitParam:
			a.commitParam()
		case EffEmit:
			a.commitParam()
			name := st.At(c.Ident).Span
			return &CallSite{
				Func:        c.Func,
				Name:        name,
				Span:        name.Cover(tok.Span),
				FormatStart: a.first,
				Format:      a.format.String(),
				Chunks:      a.chunks,
				Params:      a.params,
			}, true
		}
		if m.State == StateAbort {
			return nil, false
		}
	}
	return nil, false
}
