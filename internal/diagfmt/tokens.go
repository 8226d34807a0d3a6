package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cfmtlint/internal/source"
	"cfmtlint/internal/token"
)

// TokenOutput is one token of `cfmtlint tokenize --format json`.
type TokenOutput struct {
	Kind     string      `json:"kind"`
	Category string      `json:"category"`
	Text     string      `json:"text,omitempty"`
	Span     source.Span `json:"span"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате.
// Trivia печатаются только при withTrivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, withTrivia bool) error {
	n := 0
	for _, tok := range tokens {
		if tok.IsTrivia() && !withTrivia {
			continue
		}
		n++
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-13s %-15s", n, tok.Kind.String(), tok.Category().String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, withTrivia bool) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsTrivia() && !withTrivia {
			continue
		}
		output = append(output, TokenOutput{
			Kind:     tok.Kind.String(),
			Category: tok.Category().String(),
			Text:     tok.Text,
			Span:     tok.Span,
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
