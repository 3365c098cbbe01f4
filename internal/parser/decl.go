package parser

import (
	"fmt"

	"fortio.org/safecast"

	"relog/internal/ast"
	"relog/internal/diag"
	"relog/internal/source"
	"relog/internal/token"
)

func (p *Parser) parseUnit() *ast.CompilationUnit {
	contentLen, err := safecast.Conv[uint32](len(p.file.Content))
	if err != nil {
		panic(fmt.Errorf("file content length overflow: %w", err))
	}
	unit := &ast.CompilationUnit{
		Meta: ast.Meta{Span: source.Span{File: p.file.ID, Start: 0, End: contentLen}},
		File: p.file.ID,
	}

	if p.at(token.KwPackage) {
		unit.Package = p.parsePackage()
	}

	for p.at(token.KwImport) {
		lead := p.leadFrom(p.prevEnd())
		imp := p.parseImport()
		imp.Lead = lead
		if len(unit.Imports) == 0 {
			unit.ImportsLead = lead
		}
		unit.ImportsEnd = imp.Span.End
		unit.Imports = append(unit.Imports, imp)
	}

	for !p.eof() {
		lead := p.leadFrom(p.prevEnd())
		cls, ok := p.parseClass()
		if !ok {
			// Unknown top-level construct; drop the token and keep going.
			p.advance()
			continue
		}
		cls.Lead = lead
		unit.Types = append(unit.Types, cls)
	}
	return unit
}

func (p *Parser) parsePackage() *ast.PackageDecl {
	start := p.advance().Span // 'package'
	name, _ := p.parseDottedName()
	p.expect(token.Semi, diag.SynExpectSemicolon, "expected ';' after package declaration")
	return &ast.PackageDecl{
		Meta: ast.Meta{Span: p.spanFrom(start)},
		Name: name,
	}
}

func (p *Parser) parseImport() *ast.ImportDecl {
	start := p.advance().Span // 'import'
	imp := &ast.ImportDecl{}

	if p.at(token.KwStatic) {
		p.advance()
		imp.Static = true
	}

	path, pathSpan := p.parseDottedName()
	if p.at(token.Dot) && p.peekAt(1).Kind == token.Star {
		p.advance()
		p.advance()
		imp.Wildcard = true
	}
	imp.Path = path
	imp.PathSpan = pathSpan

	p.expect(token.Semi, diag.SynExpectSemicolon, "expected ';' after import")
	imp.Span = p.spanFrom(start)
	return imp
}

// parseDottedName consumes Ident (. Ident)* and returns the joined text with
// its span. Stops before `.*`.
func (p *Parser) parseDottedName() (string, source.Span) {
	first, ok := p.expect(token.Ident, diag.SynExpectIdent, "expected identifier")
	if !ok {
		return "", first.Span
	}
	span := first.Span
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance()
		span = span.Cover(p.advance().Span)
	}
	return p.file.Text(span), span
}

// parseClass parses an annotated, modified class, interface, or enum
// declaration. Returns false when the cursor is not at one.
func (p *Parser) parseClass() (*ast.ClassDecl, bool) {
	mark := p.pos
	start := p.peek().Span

	p.skipAnnotationsAndModifiers()

	var kind ast.ClassKind
	switch p.peek().Kind {
	case token.KwClass:
		kind = ast.KindClass
	case token.KwInterface:
		kind = ast.KindInterface
	case token.KwEnum:
		kind = ast.KindEnum
	default:
		p.pos = mark
		return nil, false
	}
	p.advance()

	nameTok, _ := p.expect(token.Ident, diag.SynExpectIdent, "expected type name")
	cls := &ast.ClassDecl{
		Kind:     kind,
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
	}

	if p.at(token.Lt) {
		p.skipGenerics()
	}

	if p.at(token.KwExtends) {
		p.advance()
		ref := p.parseTypeRef()
		if kind == ast.KindClass {
			cls.Extends = ref
			cls.ExtendsSpan = ref.Span
		} else {
			// Interfaces extend a list; none of it is a superclass edit target.
			cls.Implements = append(cls.Implements, ref)
		}
		for p.at(token.Comma) {
			p.advance()
			cls.Implements = append(cls.Implements, p.parseTypeRef())
		}
	}

	if p.at(token.KwImplements) {
		p.advance()
		cls.Implements = append(cls.Implements, p.parseTypeRef())
		for p.at(token.Comma) {
			p.advance()
			cls.Implements = append(cls.Implements, p.parseTypeRef())
		}
	}

	open, ok := p.expect(token.LBrace, diag.SynExpectClassBody, "expected '{' to open type body")
	if !ok {
		// Cannot make sense of the body; consume one token to guarantee progress.
		p.advance()
		cls.Span = p.spanFrom(start)
		return cls, true
	}
	cls.BodyOpen = open.Span.Start
	cls.TailStart = open.Span.End

	if kind == ast.KindEnum {
		// Enum bodies are out of subset; keep the interior as raw bytes.
		p.pos--
		p.skipBalanced()
		cls.Span = p.spanFrom(start)
		return cls, true
	}

	for !p.eof() && !p.at(token.RBrace) {
		lead := p.leadFrom(p.prevEnd())
		member := p.parseMember(cls.Name)
		if member == nil {
			continue
		}
		setLead(member, lead)
		cls.Members = append(cls.Members, member)
		cls.TailStart = member.NodeSpan().End
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close type body")

	cls.Span = p.spanFrom(start)
	return cls, true
}

func setLead(m ast.Member, lead source.Span) {
	switch m := m.(type) {
	case *ast.MethodDecl:
		m.Lead = lead
	case *ast.FieldDecl:
		m.Lead = lead
	case *ast.ClassDecl:
		m.Lead = lead
	case *ast.RawMember:
		m.Lead = lead
	}
}

// skipAnnotationsAndModifiers consumes any run of annotations and modifier
// keywords. Their bytes stay in the gaps, so nothing is recorded.
func (p *Parser) skipAnnotationsAndModifiers() {
	for {
		switch {
		case p.at(token.At):
			p.advance()
			p.parseDottedName()
			if p.at(token.LParen) {
				p.skipBalanced()
			}
		case p.peek().IsModifier():
			p.advance()
		default:
			return
		}
	}
}

// parseMember parses one class-body member. A nil result means the member
// produced nothing (already reported); the caller continues at the next token.
func (p *Parser) parseMember(className string) ast.Member {
	start := p.peek().Span
	p.skipAnnotationsAndModifiers()

	switch p.peek().Kind {
	case token.KwClass, token.KwInterface, token.KwEnum:
		p.pos = p.posAtSpan(start)
		nested, ok := p.parseClass()
		if !ok {
			p.advance()
			return nil
		}
		return nested
	case token.LBrace:
		// Instance or static initializer block.
		p.skipBalanced()
		return &ast.RawMember{Meta: ast.Meta{Span: p.spanFrom(start)}}
	case token.Semi:
		p.advance()
		return &ast.RawMember{Meta: ast.Meta{Span: p.spanFrom(start)}}
	case token.Lt:
		// Generic method: type parameters precede the return type.
		p.skipGenerics()
	}

	// Constructor: the class's own name followed directly by '('.
	if p.at(token.Ident) && p.peek().Text == className && p.peekAt(1).Kind == token.LParen {
		nameTok := p.advance()
		return p.parseMethodRest(start, nil, nameTok, true)
	}

	if !p.peek().IsTypeStart() {
		p.report(diag.SynExpectMember, "expected member declaration")
		p.recoverMember()
		return &ast.RawMember{Meta: ast.Meta{Span: p.spanFrom(start)}}
	}

	ret := p.parseTypeRef()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdent, "expected member name")
	if !ok {
		p.recoverMember()
		return &ast.RawMember{Meta: ast.Meta{Span: p.spanFrom(start)}}
	}

	if p.at(token.LParen) {
		return p.parseMethodRest(start, ret, nameTok, false)
	}
	return p.parseFieldRest(start, ret, nameTok)
}

// posAtSpan rewinds to the token starting at span's start offset.
func (p *Parser) posAtSpan(span source.Span) int {
	for i := p.pos; i >= 0; i-- {
		if p.toks[i].Span.Start == span.Start {
			return i
		}
	}
	return p.pos
}

func (p *Parser) parseMethodRest(start source.Span, ret *ast.TypeRef, nameTok token.Token, ctor bool) *ast.MethodDecl {
	m := &ast.MethodDecl{
		Ret:      ret,
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Ctor:     ctor,
	}
	m.Params = p.parseParams()

	if p.at(token.KwThrows) {
		p.advance()
		p.parseDottedName()
		for p.at(token.Comma) {
			p.advance()
			p.parseDottedName()
		}
	}

	switch p.peek().Kind {
	case token.LBrace:
		m.Body = p.parseBlock()
	case token.Semi:
		p.advance() // abstract or interface method; Body stays nil
	default:
		p.report(diag.SynUnexpectedToken, "expected method body or ';'")
		p.recoverMember()
	}
	m.Span = p.spanFrom(start)
	return m
}

func (p *Parser) parseParams() []*ast.Param {
	p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' to open parameters")
	var params []*ast.Param
	for !p.eof() && !p.at(token.RParen) {
		start := p.peek().Span
		p.skipAnnotationsAndModifiers()
		typ := p.parseTypeRef()
		if p.at(token.Ellipsis) {
			p.advance()
		}
		nameTok, _ := p.expect(token.Ident, diag.SynExpectIdent, "expected parameter name")
		p.skipArraySuffix()
		params = append(params, &ast.Param{
			Meta: ast.Meta{Span: p.spanFrom(start)},
			Type: typ,
			Name: nameTok.Text,
		})
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameters")
	return params
}

func (p *Parser) parseFieldRest(start source.Span, typ *ast.TypeRef, nameTok token.Token) *ast.FieldDecl {
	f := &ast.FieldDecl{Type: typ}
	f.Vars = append(f.Vars, p.parseVarDeclRest(nameTok))
	for p.at(token.Comma) {
		p.advance()
		next, ok := p.expect(token.Ident, diag.SynExpectIdent, "expected field name")
		if !ok {
			break
		}
		f.Vars = append(f.Vars, p.parseVarDeclRest(next))
	}
	p.expect(token.Semi, diag.SynExpectSemicolon, "expected ';' after field declaration")
	f.Span = p.spanFrom(start)
	return f
}

// parseVarDeclRest parses one declarator after its name token.
func (p *Parser) parseVarDeclRest(nameTok token.Token) *ast.VarDecl {
	vd := &ast.VarDecl{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
	}
	p.skipArraySuffix()
	if p.at(token.Assign) {
		p.advance()
		if p.at(token.LBrace) {
			// Array initializer; raw.
			span := p.skipBalanced()
			vd.Init = &ast.RawExpr{Meta: ast.Meta{Span: span}}
		} else {
			vd.Init = p.parseExpr()
		}
	}
	vd.Span = p.spanFrom(nameTok.Span)
	return vd
}

func (p *Parser) skipArraySuffix() {
	for p.at(token.LBracket) && p.peekAt(1).Kind == token.RBracket {
		p.advance()
		p.advance()
	}
}

// recoverMember skips to the end of the broken member: past the next ';', a
// balanced '{...}', or up to a token that can only start the next member.
func (p *Parser) recoverMember() {
	for !p.eof() {
		switch p.peek().Kind {
		case token.Semi:
			p.advance()
			return
		case token.LBrace:
			p.skipBalanced()
			return
		case token.LParen, token.LBracket:
			p.skipBalanced()
		case token.RBrace:
			return
		case token.KwVoid, token.KwClass, token.KwInterface, token.KwEnum, token.At:
			return
		default:
			if p.peek().IsModifier() {
				return
			}
			p.advance()
		}
	}
}
