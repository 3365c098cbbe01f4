package parser

import (
	"relog/internal/ast"
	"relog/internal/diag"
	"relog/internal/source"
	"relog/internal/token"
)

// parseTypeRef parses a type reference: a simple or dotted name with optional
// generic arguments and array suffix. `void` and primitive names parse the
// same way; the resolver decides what they mean.
func (p *Parser) parseTypeRef() *ast.TypeRef {
	start := p.peek().Span

	if p.at(token.Question) {
		return p.parseWildcard()
	}

	var nameSpan source.Span
	switch p.peek().Kind {
	case token.KwVoid:
		nameSpan = p.advance().Span
	case token.Ident:
		nameSpan = p.advance().Span
		for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
			p.advance()
			nameSpan = nameSpan.Cover(p.advance().Span)
		}
	default:
		p.report(diag.SynExpectType, "expected type")
		return &ast.TypeRef{
			Meta: ast.Meta{Span: p.peek().Span},
			Name: "",
		}
	}

	ref := &ast.TypeRef{
		Name:     p.file.Text(nameSpan),
		NameSpan: nameSpan,
	}

	if p.at(token.Lt) {
		ref.Args = p.parseTypeArgs()
	}
	p.skipArraySuffix()

	ref.Span = p.spanFrom(start)
	return ref
}

// parseWildcard parses `?`, `? extends T`, or `? super T`. The bound, when
// present, becomes the wildcard's single argument so type substitutions can
// still reach it.
func (p *Parser) parseWildcard() *ast.TypeRef {
	q := p.advance()
	ref := &ast.TypeRef{
		Name:     "?",
		NameSpan: q.Span,
	}
	if p.at(token.KwExtends) || (p.at(token.Ident) && p.peek().Text == "super") {
		p.advance()
		ref.Args = append(ref.Args, p.parseTypeRef())
	}
	ref.Span = p.spanFrom(q.Span)
	return ref
}

// parseTypeArgs parses `<T, ? extends U, V<W>>`. The lexer never merges '>'
// into shift operators, so nested closers arrive one token at a time.
func (p *Parser) parseTypeArgs() []*ast.TypeRef {
	p.advance() // '<'
	var args []*ast.TypeRef
	if p.at(token.Gt) {
		// Diamond: `new ArrayList<>()`.
		p.advance()
		return args
	}
	for !p.eof() {
		args = append(args, p.parseTypeRef())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedGenerics, "expected '>' to close type arguments"); !ok {
		p.skipGenericsTail()
	}
	return args
}

// skipGenericsTail drains a broken generic argument list up to its '>' or a
// statement boundary.
func (p *Parser) skipGenericsTail() {
	for !p.eof() {
		switch p.peek().Kind {
		case token.Gt:
			p.advance()
			return
		case token.Semi, token.LBrace, token.RBrace:
			return
		default:
			p.advance()
		}
	}
}
