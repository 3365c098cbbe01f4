package parser

import (
	"relog/internal/ast"
	"relog/internal/diag"
	"relog/internal/source"
	"relog/internal/token"
)

// The expression grammar is precedence-free: binary operators left-fold into
// a flat Binary spine. The rewriter only ever retargets type references and
// renames calls, so operand grouping never matters; operator bytes live in
// the gaps between operands and reprint exactly as written.

func (p *Parser) parseExpr() ast.Expr {
	start := p.peek().Span
	x := p.parseTernary()
	if p.at(token.Assign) || p.atCompoundAssign() {
		p.advance()
		y := p.parseExpr()
		return &ast.Assign{Meta: ast.Meta{Span: p.spanFrom(start)}, X: x, Y: y}
	}
	return x
}

func (p *Parser) atCompoundAssign() bool {
	tok := p.peek()
	if tok.Kind != token.Operator {
		return false
	}
	t := tok.Text
	if len(t) < 2 || t[len(t)-1] != '=' {
		return false
	}
	switch t {
	case "==", "!=", "<=", ">=":
		return false
	}
	return true
}

func (p *Parser) parseTernary() ast.Expr {
	start := p.peek().Span
	cond := p.parseBinary()
	if !p.at(token.Question) {
		return cond
	}
	p.advance()
	then := p.parseExpr()
	p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional")
	els := p.parseTernary()
	return &ast.Ternary{
		Meta: ast.Meta{Span: p.spanFrom(start)},
		Cond: cond,
		Then: then,
		Else: els,
	}
}

func (p *Parser) parseBinary() ast.Expr {
	start := p.peek().Span
	x := p.parseUnary()
	for {
		switch {
		case p.at(token.Ident) && p.peek().Text == "instanceof":
			p.advance()
			ref := p.parseTypeRef()
			// Pattern variable after the type, Java 16 style.
			if p.at(token.Ident) {
				p.advance()
			}
			y := &ast.TypeExpr{Meta: ast.Meta{Span: ref.Span}, Type: ref}
			x = &ast.Binary{Meta: ast.Meta{Span: p.spanFrom(start)}, X: x, Y: y}
		case p.atBinaryOp():
			p.advance()
			y := p.parseUnary()
			x = &ast.Binary{Meta: ast.Meta{Span: p.spanFrom(start)}, X: x, Y: y}
		default:
			return x
		}
	}
}

// atBinaryOp reports whether the cursor is at an infix operator. Lone '<',
// '>', and '*' have their own kinds because declarations dispatch on them;
// in expression position they are ordinary operators.
func (p *Parser) atBinaryOp() bool {
	switch p.peek().Kind {
	case token.Lt, token.Gt, token.Star:
		return true
	case token.Operator:
		return !p.atCompoundAssign()
	default:
		return false
	}
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.Operator:
		// Prefix: !, ~, +, -, ++, --.
		p.advance()
		x := p.parseUnary()
		return &ast.Unary{Meta: ast.Meta{Span: p.spanFrom(start)}, X: x}
	case token.KwNew:
		return p.parseNew()
	case token.LParen:
		return p.parseParenOrCastOrLambda()
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parseParenOrCastOrLambda() ast.Expr {
	start := p.peek().Span

	if end, ok := p.lambdaParamsAhead(); ok {
		return p.consumeLambda(start, end)
	}

	if p.castAhead() {
		p.advance() // '('
		typ := p.parseTypeRef()
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close cast")
		x := p.parseUnary()
		return &ast.Cast{Meta: ast.Meta{Span: p.spanFrom(start)}, Type: typ, X: x}
	}

	p.advance() // '('
	x := p.parseExpr()
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	paren := &ast.Paren{Meta: ast.Meta{Span: p.spanFrom(start)}, X: x}
	return p.parsePostfixChain(start, paren)
}

// lambdaParamsAhead checks for `( ... ) ->` from the cursor. Returns the
// buffer index just past the ')' when it is a lambda parameter list.
func (p *Parser) lambdaParamsAhead() (int, bool) {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				if p.kindAt(i+1) == token.Arrow {
					return i + 1, true
				}
				return 0, false
			}
		case token.Semi, token.LBrace, token.EOF:
			return 0, false
		}
	}
	return 0, false
}

// consumeLambda consumes a whole lambda expression as raw bytes: the
// parameter list up to arrowPos, the arrow, and a block or expression body.
func (p *Parser) consumeLambda(start source.Span, arrowPos int) ast.Expr {
	for p.pos <= arrowPos && !p.eof() {
		p.advance()
	}
	if p.at(token.LBrace) {
		p.skipBalanced()
	} else {
		p.consumeRawExprTail()
	}
	return &ast.RawExpr{Meta: ast.Meta{Span: p.spanFrom(start)}}
}

// consumeRawExprTail drains an expression's remaining tokens up to a
// depth-zero expression boundary, leaving the boundary token in place.
func (p *Parser) consumeRawExprTail() {
	for !p.eof() {
		switch p.peek().Kind {
		case token.LParen, token.LBrace, token.LBracket:
			p.skipBalanced()
		case token.Comma, token.RParen, token.RBracket, token.RBrace,
			token.Semi, token.Colon:
			return
		default:
			p.advance()
		}
	}
}

// castAhead distinguishes `(Type) expr` from a parenthesized expression by
// shape: the parens must hold exactly a type, and the token after ')' must be
// able to start a cast operand. `(a + b)` fails the shape test; `(a) - b`
// fails the follow test.
func (p *Parser) castAhead() bool {
	i := p.pos + 1 // past '('
	if p.kindAt(i) != token.Ident {
		return false
	}
	i++
	for p.kindAt(i) == token.Dot && p.kindAt(i+1) == token.Ident {
		i += 2
	}
	if p.kindAt(i) == token.Lt {
		depth := 0
		for ; i < len(p.toks); i++ {
			switch p.kindAt(i) {
			case token.Lt:
				depth++
			case token.Gt:
				depth--
			case token.Semi, token.LBrace, token.EOF:
				return false
			}
			if depth == 0 {
				i++
				break
			}
		}
	}
	for p.kindAt(i) == token.LBracket && p.kindAt(i+1) == token.RBracket {
		i += 2
	}
	if p.kindAt(i) != token.RParen {
		return false
	}
	switch p.kindAt(i + 1) {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit,
		token.CharLit, token.LParen, token.KwNew:
		return true
	default:
		return false
	}
}

func (p *Parser) parseNew() ast.Expr {
	start := p.advance().Span // 'new'
	typ := p.parseTypeRef()
	n := &ast.New{Type: typ}

	switch p.peek().Kind {
	case token.LParen:
		n.Args = p.parseArgs()
		if p.at(token.LBrace) {
			// Anonymous class body stays in the raw tail of the span.
			p.skipBalanced()
		}
	case token.LBracket:
		// Array creation: dimensions, then an optional initializer.
		for p.at(token.LBracket) {
			p.skipBalanced()
		}
		if p.at(token.LBrace) {
			p.skipBalanced()
		}
	case token.LBrace:
		// `new int[] {...}` with the suffix folded into the type.
		p.skipBalanced()
	}
	n.Span = p.spanFrom(start)
	return p.parsePostfixChain(start, n)
}

func (p *Parser) parseArgs() []ast.Expr {
	p.expect(token.LParen, diag.SynUnclosedParen, "expected '('")
	var args []ast.Expr
	for !p.eof() && !p.at(token.RParen) {
		args = append(args, p.parseExpr())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close arguments")
	return args
}

func (p *Parser) parsePostfix() ast.Expr {
	start := p.peek().Span
	var x ast.Expr
	switch {
	case p.at(token.Ident):
		tok := p.advance()
		if p.at(token.Arrow) {
			// Single-parameter lambda without parens.
			p.advance()
			if p.at(token.LBrace) {
				p.skipBalanced()
			} else {
				p.consumeRawExprTail()
			}
			return &ast.RawExpr{Meta: ast.Meta{Span: p.spanFrom(start)}}
		}
		if p.at(token.LParen) {
			call := &ast.Call{Name: tok.Text, NameSpan: tok.Span}
			call.Args = p.parseArgs()
			call.Span = p.spanFrom(start)
			x = call
		} else {
			x = &ast.Ident{Meta: ast.Meta{Span: tok.Span}, Name: tok.Text}
		}
	case p.peek().IsLiteral():
		tok := p.advance()
		x = &ast.Lit{Meta: ast.Meta{Span: tok.Span}}
	default:
		p.report(diag.SynUnexpectedToken, "expected expression")
		tok := p.advance()
		return &ast.RawExpr{Meta: ast.Meta{Span: tok.Span}}
	}
	return p.parsePostfixChain(start, x)
}

// parsePostfixChain folds selectors, calls, indexing, method references, and
// postfix ++/-- onto x.
func (p *Parser) parsePostfixChain(start source.Span, x ast.Expr) ast.Expr {
	for {
		switch p.peek().Kind {
		case token.Dot:
			if p.peekAt(1).Kind == token.KwNew {
				// Qualified inner-class creation; out of subset.
				p.advance()
				p.advance()
				p.parseTypeRef()
				if p.at(token.LParen) {
					p.skipBalanced()
				}
				if p.at(token.LBrace) {
					p.skipBalanced()
				}
				x = &ast.RawExpr{Meta: ast.Meta{Span: p.spanFrom(start)}}
				continue
			}
			if p.peekAt(1).Kind == token.Lt {
				// Explicit type arguments on a call; keep the chain raw.
				p.advance()
				p.skipGenerics()
				if p.at(token.Ident) {
					p.advance()
				}
				if p.at(token.LParen) {
					p.skipBalanced()
				}
				x = &ast.RawExpr{Meta: ast.Meta{Span: p.spanFrom(start)}}
				continue
			}
			p.advance()
			name, ok := p.expect(token.Ident, diag.SynExpectIdent, "expected member name after '.'")
			if !ok {
				return x
			}
			if p.at(token.LParen) {
				call := &ast.Call{Recv: x, Name: name.Text, NameSpan: name.Span}
				call.Args = p.parseArgs()
				call.Span = p.spanFrom(start)
				x = call
			} else {
				x = &ast.Select{
					Meta:     ast.Meta{Span: p.spanFrom(start)},
					X:        x,
					Name:     name.Text,
					NameSpan: name.Span,
				}
			}
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']'")
			x = &ast.Index{Meta: ast.Meta{Span: p.spanFrom(start)}, X: x, I: idx}
		case token.ColonColon:
			// Method reference; the whole chain becomes raw bytes.
			p.advance()
			if p.at(token.Ident) || p.at(token.KwNew) {
				p.advance()
			}
			x = &ast.RawExpr{Meta: ast.Meta{Span: p.spanFrom(start)}}
		case token.Operator:
			if t := p.peek().Text; t == "++" || t == "--" {
				p.advance()
				x = &ast.Unary{Meta: ast.Meta{Span: p.spanFrom(start)}, X: x}
				continue
			}
			return x
		default:
			return x
		}
	}
}
