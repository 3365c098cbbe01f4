// Package token defines lexical token kinds for the Java subset relog parses.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Comments and whitespace never appear in the token stream; the parser
//     recovers them from the gaps between token spans.
//   - Annotations are lexed as '@' (Kind: At) + Ident; no per-annotation kinds.
//   - Only keywords the parser dispatches on get their own kind; the rest of
//     Java's keyword set (instanceof, assert, ...) lexes as Ident.
package token
