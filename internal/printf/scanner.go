package printf

import "strings"

// formatState is the parser state for one directive.
type formatState struct {
	text string
	pos  int
	d    Directive
}

// Scan parses raw format text. It never fails: an unknown or missing
// conversion character still yields a directive so later ones are parsed.
func Scan(text string) Format {
	f := Format{Text: text}
	litStart := 0
	for i := 0; i < len(text); {
		if text[i] != '%' {
			i++
			continue
		}
		if i+1 < len(text) && text[i+1] == '%' {
			i += 2
			continue
		}
		if i > litStart {
			f.Literals = append(f.Literals, Run{Start: litStart, End: i})
		}
		s := &formatState{text: text, pos: i + 1, d: Directive{Start: i}}
		s.parseFlags()
		s.parseWidth()
		s.parsePrecision()
		s.parseLength()
		s.parseConv()
		s.d.End = s.pos
		s.d.Text = text[s.d.Start:s.d.End]
		f.Directives = append(f.Directives, s.d)
		i = s.pos
		litStart = i
	}
	if litStart < len(text) {
		f.Literals = append(f.Literals, Run{Start: litStart, End: len(text)})
	}
	return f
}

func (s *formatState) parseFlags() {
	start := s.pos
	for s.pos < len(s.text) && strings.IndexByte(flagChars, s.text[s.pos]) >= 0 {
		s.pos++
	}
	s.d.Flags = s.text[start:s.pos]
}

// scanNum съедает десятичные цифры и возвращает значение и признак наличия.
func (s *formatState) scanNum() (int, bool) {
	start := s.pos
	n := 0
	for s.pos < len(s.text) && s.text[s.pos] >= '0' && s.text[s.pos] <= '9' {
		if n < 1<<20 {
			n = n*10 + int(s.text[s.pos]-'0')
		}
		s.pos++
	}
	return n, s.pos > start
}

func (s *formatState) parseWidth() {
	start := s.pos
	if s.pos < len(s.text) && s.text[s.pos] == '*' {
		s.pos++
		s.d.Width = Amount{Kind: AmountWildcard, Text: "*"}
		return
	}
	if n, ok := s.scanNum(); ok {
		s.d.Width = Amount{Kind: AmountLiteral, Value: n, Text: s.text[start:s.pos]}
	}
}

func (s *formatState) parsePrecision() {
	if s.pos >= len(s.text) || s.text[s.pos] != '.' {
		return
	}
	start := s.pos
	s.pos++
	if s.pos < len(s.text) && s.text[s.pos] == '*' {
		s.pos++
		s.d.Precision = Amount{Kind: AmountWildcard, Text: s.text[start:s.pos]}
		return
	}
	n, _ := s.scanNum()
	// "." без цифр означает точность 0
	s.d.Precision = Amount{Kind: AmountLiteral, Value: n, Text: s.text[start:s.pos]}
}

func (s *formatState) parseLength() {
	rest := s.text[s.pos:]
	for _, l := range lengthOrder {
		if strings.HasPrefix(rest, l.String()) {
			s.d.Length = l
			s.pos += len(l.String())
			return
		}
	}
}

func (s *formatState) parseConv() {
	if s.pos >= len(s.text) {
		return
	}
	s.d.Conv = s.text[s.pos]
	s.pos++
}
