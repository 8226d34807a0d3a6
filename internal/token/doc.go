// Package token defines C lexical token kinds for the format checker.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Trivia (spaces, newlines, comments) are ordinary tokens of the stream;
//     consumers skip them via Kind.IsTrivia.
//   - A preprocessor line (# ... with backslash continuations) is one Directive token.
//   - Keywords are plain identifiers; the type resolver recognises them.
package token
