package lexer

import (
	"relog/internal/diag"
	"relog/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(mark)
	text := lx.file.Text(sp)
	return token.Token{Kind: token.LookupIdent(text), Span: sp, Text: text}
}

// scanNumber accepts decimal, hex, binary, octal, and floating literals,
// including underscores and type suffixes. The parser never interprets the
// value, so the scan only needs to find the literal's extent.
func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X' ||
		lx.cursor.PeekAt(1) == 'b' || lx.cursor.PeekAt(1) == 'B') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		for isHexDigit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	} else {
		for isDigit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		if lx.cursor.Peek() == '.' && isDigit(lx.cursor.PeekAt(1)) {
			kind = token.FloatLit
			lx.cursor.Bump()
			for isDigit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
		}
		if ch := lx.cursor.Peek(); ch == 'e' || ch == 'E' {
			next := lx.cursor.PeekAt(1)
			if isDigit(next) || next == '+' || next == '-' {
				kind = token.FloatLit
				lx.cursor.Bump()
				lx.cursor.Bump()
				for isDigit(lx.cursor.Peek()) {
					lx.cursor.Bump()
				}
			}
		}
	}

	switch lx.cursor.Peek() {
	case 'l', 'L':
		lx.cursor.Bump()
	case 'f', 'F', 'd', 'D':
		kind = token.FloatLit
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(mark)
	return token.Token{Kind: kind, Span: sp, Text: lx.file.Text(sp)}
}

func (lx *Lexer) scanString() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		ch := lx.cursor.Bump()
		if ch == '\\' {
			lx.cursor.Bump()
			continue
		}
		if ch == '"' {
			sp := lx.cursor.SpanFrom(mark)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.file.Text(sp)}
		}
		if ch == '\n' {
			break
		}
	}
	sp := lx.cursor.SpanFrom(mark)
	lx.reporter.Report(diag.LexUnterminatedString, diag.SevError, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
}

func (lx *Lexer) scanChar() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		ch := lx.cursor.Bump()
		if ch == '\\' {
			lx.cursor.Bump()
			continue
		}
		if ch == '\'' {
			sp := lx.cursor.SpanFrom(mark)
			return token.Token{Kind: token.CharLit, Span: sp, Text: lx.file.Text(sp)}
		}
		if ch == '\n' {
			break
		}
	}
	sp := lx.cursor.SpanFrom(mark)
	lx.reporter.Report(diag.LexUnterminatedChar, diag.SevError, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	mark := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	kind := token.Operator
	switch ch {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ';':
		kind = token.Semi
	case ',':
		kind = token.Comma
	case '@':
		kind = token.At
	case '?':
		kind = token.Question
	case '.':
		kind = token.Dot
		if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) == '.' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			kind = token.Ellipsis
		}
	case ':':
		kind = token.Colon
		if lx.cursor.Peek() == ':' {
			lx.cursor.Bump()
			kind = token.ColonColon
		}
	case '-':
		if lx.cursor.Peek() == '>' {
			lx.cursor.Bump()
			kind = token.Arrow
		} else {
			lx.eatOperatorTail(ch)
		}
	case '*':
		kind = token.Star
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			kind = token.Operator
		}
	case '=':
		kind = token.Assign
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			kind = token.Operator
		}
	case '<':
		// Shifts and <= are operators; a lone '<' stays Lt so the parser can
		// open generic argument lists.
		kind = token.Lt
		if lx.cursor.Peek() == '=' || lx.cursor.Peek() == '<' {
			lx.eatOperatorTail(ch)
			kind = token.Operator
		}
	case '>':
		// '>>' closes nested generics in Java, so '>' is never merged into a
		// shift here; the expression parser treats consecutive '>' loosely.
		kind = token.Gt
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			kind = token.Operator
		}
	case '+', '/', '%', '&', '|', '^', '!', '~':
		lx.eatOperatorTail(ch)
	}

	sp := lx.cursor.SpanFrom(mark)
	return token.Token{Kind: kind, Span: sp, Text: lx.file.Text(sp)}
}

// eatOperatorTail consumes compound-operator continuations (+=, ++, &&, ...).
func (lx *Lexer) eatOperatorTail(first byte) {
	next := lx.cursor.Peek()
	if next == '=' {
		lx.cursor.Bump()
		return
	}
	if (first == '+' || first == '-' || first == '&' || first == '|') && next == first {
		lx.cursor.Bump()
	}
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
