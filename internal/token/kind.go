package token

// Kind represents the category of a C source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unterminated literal, stray byte).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier or keyword.
	Ident
	// Number represents a preprocessing number (123, 0x1fUL, 1.5e-3f).
	Number
	// StringLit represents a string literal, including its encoding prefix.
	StringLit
	// CharLit represents a character constant, including its encoding prefix.
	CharLit

	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }
	Comma    // ,
	// Punct is any other operator or punctuator; Text holds the lexeme.
	Punct

	// Space is a run of spaces, tabs, vertical tabs and form feeds.
	Space
	// Newline is a run of '\n'.
	Newline
	LineComment  // // ...
	BlockComment // /* ... */
	// Directive is a whole preprocessor line.
	Directive
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	Number:       "Number",
	StringLit:    "StringLit",
	CharLit:      "CharLit",
	LParen:       "LParen",
	RParen:       "RParen",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	Comma:        "Comma",
	Punct:        "Punct",
	Space:        "Space",
	Newline:      "Newline",
	LineComment:  "LineComment",
	BlockComment: "BlockComment",
	Directive:    "Directive",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsTrivia reports whether the kind carries no syntax (whitespace or comment).
func (k Kind) IsTrivia() bool {
	return k.IsWhitespace() || k.IsComment()
}

// IsWhitespace reports whether the kind is a whitespace run.
func (k Kind) IsWhitespace() bool {
	return k == Space || k == Newline
}

// IsComment reports whether the kind is a comment.
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment
}

// IsEOF reports whether the kind marks end of input.
func (k Kind) IsEOF() bool { return k == EOF }

// IsOpenBracket reports whether the kind opens a (, [ or { group.
func (k Kind) IsOpenBracket() bool {
	return k == LParen || k == LBracket || k == LBrace
}

// IsCloseBracket reports whether the kind closes a ), ] or } group.
func (k Kind) IsCloseBracket() bool {
	return k == RParen || k == RBracket || k == RBrace
}
