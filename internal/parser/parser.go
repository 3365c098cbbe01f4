// Package parser builds the AST for the Java subset relog rewrites.
//
// The parser is deliberately lossy upward, never downward: constructs it does
// not model become Raw nodes that keep their exact byte range, so the printer
// can always reproduce them. It buffers the whole token stream up front;
// Java's cast and local-variable ambiguities need more lookahead than a
// streaming lexer comfortably offers.
package parser

import (
	"relog/internal/ast"
	"relog/internal/diag"
	"relog/internal/lexer"
	"relog/internal/source"
	"relog/internal/token"
)

type Options struct {
	MaxErrors int
	Reporter  diag.Reporter
}

type Result struct {
	Unit *ast.CompilationUnit
	Bag  *diag.Bag
}

// Parser holds the state for one file.
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	reporter diag.Reporter
	errors   int
	maxErr   int
}

// ParseFile parses one file end to end.
func ParseFile(f *source.File, opts Options) Result {
	reporter := opts.Reporter
	var bag *diag.Bag
	if reporter == nil {
		br := diag.NewBagReporter(opts.MaxErrors)
		reporter = br
		bag = br.Bag
	} else if br, ok := reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}

	lx := lexer.New(f, reporter)
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	p := &Parser{
		file:     f,
		toks:     toks,
		reporter: reporter,
		maxErr:   opts.MaxErrors,
	}
	unit := p.parseUnit()
	return Result{Unit: unit, Bag: bag}
}

func (p *Parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekAt looks n tokens ahead, clamped to EOF.
func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		i = len(p.toks) - 1
	}
	return p.toks[i]
}

func (p *Parser) eof() bool {
	return p.toks[p.pos].Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// prevEnd is the end offset of the last consumed token, 0 at file start.
// Node leads are the byte range from here to the node's first token.
func (p *Parser) prevEnd() uint32 {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].Span.End
}

func (p *Parser) leadFrom(start uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: p.peek().Span.Start}
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.report(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

func (p *Parser) report(code diag.Code, msg string) {
	if p.maxErr > 0 && p.errors >= p.maxErr {
		return
	}
	p.errors++
	p.reporter.Report(code, diag.SevError, p.peek().Span, msg)
}

// skipBalanced consumes from an opening delimiter through its matching close,
// tracking all three bracket kinds. Returns the consumed span.
func (p *Parser) skipBalanced() source.Span {
	start := p.peek().Span
	depth := 0
	for !p.eof() {
		tok := p.advance()
		switch tok.Kind {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			depth--
			if depth <= 0 {
				return start.Cover(tok.Span)
			}
		}
	}
	return start.Cover(p.peek().Span)
}

// skipGenerics consumes a balanced <...> group. Only '<' and '>' count; the
// token stream inside a declaration's generics never holds shift operators.
func (p *Parser) skipGenerics() source.Span {
	start := p.peek().Span
	depth := 0
	for !p.eof() {
		tok := p.advance()
		switch tok.Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
			if depth <= 0 {
				return start.Cover(tok.Span)
			}
		case token.Semi, token.LBrace:
			// Unterminated generics; bail out rather than eat the file.
			p.report(diag.SynUnclosedGenerics, "unclosed generic arguments")
			return start.Cover(tok.Span)
		}
	}
	return start.Cover(p.peek().Span)
}

// spanFrom covers from start to the end of the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(source.Span{File: p.file.ID, Start: p.prevEnd(), End: p.prevEnd()})
}
