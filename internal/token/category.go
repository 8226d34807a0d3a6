package token

// Category is the coarse classification consumers of the stream rely on.
type Category uint8

const (
	CatOther Category = iota
	CatLeftParen
	CatRightParen
	CatComma
	CatStringLiteral
	CatWhitespace
	CatComment
)

func (c Category) String() string {
	switch c {
	case CatLeftParen:
		return "left-paren"
	case CatRightParen:
		return "right-paren"
	case CatComma:
		return "comma"
	case CatStringLiteral:
		return "string-literal"
	case CatWhitespace:
		return "whitespace"
	case CatComment:
		return "comment"
	default:
		return "other"
	}
}

// Category maps the kind onto the stream categories.
// Directives count as comments: they never take part in call syntax.
func (k Kind) Category() Category {
	switch k {
	case LParen:
		return CatLeftParen
	case RParen:
		return CatRightParen
	case Comma:
		return CatComma
	case StringLit:
		return CatStringLiteral
	case Space, Newline:
		return CatWhitespace
	case LineComment, BlockComment, Directive:
		return CatComment
	default:
		return CatOther
	}
}
