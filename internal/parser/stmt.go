package parser

import (
	"relog/internal/ast"
	"relog/internal/diag"
	"relog/internal/token"
)

func (p *Parser) parseBlock() *ast.Block {
	open, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{'")
	if !ok {
		return &ast.Block{Meta: ast.Meta{Span: p.peek().Span}}
	}
	b := &ast.Block{}
	for !p.eof() && !p.at(token.RBrace) {
		before := p.pos
		b.Stmts = append(b.Stmts, p.parseStmt())
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'")
	b.Span = p.spanFrom(open.Span)
	return b
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwTry, token.KwDo, token.KwSynchronized:
		return p.parseRawStmt()
	case token.Semi:
		start := p.advance().Span
		return &ast.RawStmt{Meta: ast.Meta{Span: start}}
	case token.KwFinal:
		return p.parseLocalVar()
	case token.At:
		// Annotated local; out of subset.
		return p.parseRawStmt()
	case token.Ident:
		switch p.peek().Text {
		case "throw", "break", "continue", "assert", "yield", "switch":
			return p.parseRawStmt()
		}
		if p.localVarAhead() {
			return p.parseLocalVar()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance().Span // 'return'
	r := &ast.Return{}
	if !p.at(token.Semi) {
		r.X = p.parseExpr()
	}
	p.expect(token.Semi, diag.SynExpectSemicolon, "expected ';' after return")
	r.Span = p.spanFrom(start)
	return r
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.advance().Span // 'if'
	s := &ast.If{}
	p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after if")
	s.Cond = p.parseExpr()
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after if condition")
	s.Then = p.parseStmt()
	if p.at(token.KwElse) {
		p.advance()
		s.Else = p.parseStmt()
	}
	s.Span = p.spanFrom(start)
	return s
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.advance().Span // 'while'
	s := &ast.While{}
	p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after while")
	s.Cond = p.parseExpr()
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after while condition")
	s.Body = p.parseStmt()
	s.Span = p.spanFrom(start)
	return s
}

// parseFor keeps the whole header as raw bytes; basic fors, for-eaches, and
// empty headers all look the same to the rewriter.
func (p *Parser) parseFor() ast.Stmt {
	start := p.advance().Span // 'for'
	s := &ast.For{}
	if p.at(token.LParen) {
		s.HeaderSpan = p.skipBalanced()
	} else {
		p.report(diag.SynUnclosedParen, "expected '(' after for")
	}
	s.Body = p.parseStmt()
	s.Span = p.spanFrom(start)
	return s
}

// parseRawStmt consumes one out-of-subset statement as bytes. Multi-clause
// statements (try/catch/finally, do/while) are consumed whole so the byte
// range is a complete statement.
func (p *Parser) parseRawStmt() ast.Stmt {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.KwTry:
		p.advance()
		if p.at(token.LParen) {
			p.skipBalanced() // try-with-resources
		}
		if p.at(token.LBrace) {
			p.skipBalanced()
		}
		for p.at(token.Ident) {
			switch p.peek().Text {
			case "catch":
				p.advance()
				if p.at(token.LParen) {
					p.skipBalanced()
				}
				if p.at(token.LBrace) {
					p.skipBalanced()
				}
				continue
			case "finally":
				p.advance()
				if p.at(token.LBrace) {
					p.skipBalanced()
				}
			}
			break
		}
	case token.KwDo:
		p.advance()
		if p.at(token.LBrace) {
			p.skipBalanced()
		} else {
			p.consumeToSemi()
		}
		if p.at(token.KwWhile) {
			p.advance()
			if p.at(token.LParen) {
				p.skipBalanced()
			}
			if p.at(token.Semi) {
				p.advance()
			}
		}
	case token.KwSynchronized:
		p.advance()
		if p.at(token.LParen) {
			p.skipBalanced()
		}
		if p.at(token.LBrace) {
			p.skipBalanced()
		}
	case token.Ident:
		if p.peek().Text == "switch" {
			p.advance()
			if p.at(token.LParen) {
				p.skipBalanced()
			}
			if p.at(token.LBrace) {
				p.skipBalanced()
			}
			break
		}
		p.consumeToSemi()
	default:
		p.consumeToSemi()
	}
	return &ast.RawStmt{Meta: ast.Meta{Span: p.spanFrom(start)}}
}

// consumeToSemi advances past the next ';' at bracket depth zero, consuming
// balanced groups whole. Stops before a closing '}' so a missing semicolon
// cannot eat the enclosing block.
func (p *Parser) consumeToSemi() {
	for !p.eof() {
		switch p.peek().Kind {
		case token.Semi:
			p.advance()
			return
		case token.LBrace, token.LParen, token.LBracket:
			p.skipBalanced()
		case token.RBrace:
			return
		default:
			p.advance()
		}
	}
}

// localVarAhead reports whether the tokens at the cursor shape like a local
// variable declaration: Name(.Name)* generics? ('[' ']')* Ident.
func (p *Parser) localVarAhead() bool {
	i := p.pos
	if p.toks[i].Kind != token.Ident {
		return false
	}
	i++
	for p.kindAt(i) == token.Dot && p.kindAt(i+1) == token.Ident {
		i += 2
	}
	if p.kindAt(i) == token.Lt {
		depth := 0
	generics:
		for i < len(p.toks) {
			switch p.kindAt(i) {
			case token.Lt:
				depth++
			case token.Gt:
				depth--
				if depth == 0 {
					i++
					break generics
				}
			case token.Semi, token.LBrace, token.RBrace, token.EOF:
				return false
			case token.IntLit, token.FloatLit, token.StringLit, token.CharLit,
				token.LParen, token.Operator:
				// `a < b` comparison, not generics.
				return false
			}
			i++
		}
	}
	for p.kindAt(i) == token.LBracket && p.kindAt(i+1) == token.RBracket {
		i += 2
	}
	return p.kindAt(i) == token.Ident
}

func (p *Parser) kindAt(i int) token.Kind {
	if i >= len(p.toks) {
		return token.EOF
	}
	return p.toks[i].Kind
}

func (p *Parser) parseLocalVar() ast.Stmt {
	start := p.peek().Span
	for p.peek().IsModifier() {
		p.advance()
	}
	s := &ast.LocalVar{Type: p.parseTypeRef()}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdent, "expected variable name")
	if !ok {
		p.consumeToSemi()
		return &ast.RawStmt{Meta: ast.Meta{Span: p.spanFrom(start)}}
	}
	s.Vars = append(s.Vars, p.parseVarDeclRest(nameTok))
	for p.at(token.Comma) {
		p.advance()
		next, ok := p.expect(token.Ident, diag.SynExpectIdent, "expected variable name")
		if !ok {
			break
		}
		s.Vars = append(s.Vars, p.parseVarDeclRest(next))
	}
	p.expect(token.Semi, diag.SynExpectSemicolon, "expected ';' after variable declaration")
	s.Span = p.spanFrom(start)
	return s
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.peek().Span
	s := &ast.ExprStmt{X: p.parseExpr()}
	p.expect(token.Semi, diag.SynExpectSemicolon, "expected ';' after expression")
	s.Span = p.spanFrom(start)
	return s
}
