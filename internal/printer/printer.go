// Package printer renders a compilation unit back to source bytes.
//
// Printing is a splice, not a pretty-print: clean nodes reproduce their
// original bytes verbatim, dirty nodes emit raw bytes up to each changed
// child and only the changed text itself is new. A unit with no changes
// prints byte-identical to its input, whitespace and comments included.
package printer

import (
	"bytes"

	"relog/internal/ast"
	"relog/internal/source"
)

// Print renders the unit against the file it was parsed from.
func Print(f *source.File, unit *ast.CompilationUnit) []byte {
	if !unit.Changed() {
		return f.Content
	}
	p := &printer{src: f.Content}
	p.unit(unit)
	return p.buf.Bytes()
}

type printer struct {
	src []byte
	buf bytes.Buffer
}

func (p *printer) raw(start, end uint32) {
	if start >= end || int(end) > len(p.src) {
		return
	}
	p.buf.Write(p.src[start:end])
}

func (p *printer) rawSpan(s source.Span) {
	p.raw(s.Start, s.End)
}

func (p *printer) unit(u *ast.CompilationUnit) {
	cursor := p.imports(u)
	for _, cls := range u.Types {
		if !cls.Changed() {
			continue
		}
		p.raw(cursor, cls.Span.Start)
		p.class(cls)
		cursor = cls.Span.End
	}
	p.raw(cursor, u.Span.End)
}

// imports renders everything up to the end of the import section and returns
// the cursor position the caller continues from. Survivors keep their own
// leading trivia, except that the first survivor takes over the gap that
// followed the package declaration; synthesized imports append after the
// last survivor, one per line.
func (p *printer) imports(u *ast.CompilationUnit) uint32 {
	var originals, synths []*ast.ImportDecl
	dirty := false
	for _, imp := range u.Imports {
		if imp.Synthetic() {
			synths = append(synths, imp)
			continue
		}
		if imp.Changed() {
			dirty = true
		}
		originals = append(originals, imp)
	}

	hadImports := u.ImportsEnd > 0
	removed := hadImports && (len(originals) == 0 ||
		u.ImportsLead != originals[0].Lead ||
		originals[len(originals)-1].Span.End != u.ImportsEnd ||
		importsSparse(originals))
	if !dirty && !removed && len(synths) == 0 {
		// Import section untouched.
		return 0
	}

	if !hadImports {
		// No import section existed; open one after the package declaration.
		var at uint32
		if u.Package != nil {
			at = u.Package.Span.End
		}
		p.raw(0, at)
		if len(synths) > 0 {
			p.buf.WriteByte('\n')
			for _, imp := range synths {
				p.importText(imp)
			}
		}
		return at
	}

	p.raw(0, u.ImportsLead.Start)
	for i, imp := range originals {
		if i == 0 {
			p.rawSpan(u.ImportsLead)
		} else {
			p.rawSpan(imp.Lead)
		}
		p.importDecl(imp)
	}
	if len(originals) == 0 && len(synths) > 0 {
		p.buf.WriteByte('\n')
	}
	for _, imp := range synths {
		p.importText(imp)
	}
	return u.ImportsEnd
}

// importsSparse reports whether the surviving imports no longer sit
// back-to-back, which means one in the middle was removed.
func importsSparse(originals []*ast.ImportDecl) bool {
	for i := 1; i < len(originals); i++ {
		if originals[i].Lead.Start != originals[i-1].Span.End {
			return true
		}
	}
	return false
}

func (p *printer) importDecl(imp *ast.ImportDecl) {
	if !imp.Changed() {
		p.rawSpan(imp.Span)
		return
	}
	p.raw(imp.Span.Start, imp.PathSpan.Start)
	p.buf.WriteString(imp.Path)
	p.raw(imp.PathSpan.End, imp.Span.End)
}

func (p *printer) importText(imp *ast.ImportDecl) {
	p.buf.WriteString("\nimport ")
	if imp.Static {
		p.buf.WriteString("static ")
	}
	p.buf.WriteString(imp.Path)
	if imp.Wildcard {
		p.buf.WriteString(".*")
	}
	p.buf.WriteByte(';')
}

func (p *printer) class(c *ast.ClassDecl) {
	cursor := c.Span.Start

	if c.Extends != nil && c.Extends.Changed() {
		p.raw(cursor, c.ExtendsSpan.Start)
		p.typeRef(c.Extends)
		cursor = c.ExtendsSpan.End
	}
	for _, impl := range c.Implements {
		if !impl.Changed() {
			continue
		}
		p.raw(cursor, impl.Span.Start)
		p.typeRef(impl)
		cursor = impl.Span.End
	}

	p.raw(cursor, c.BodyOpen+1)
	for _, m := range c.Members {
		p.member(m)
	}
	p.raw(c.TailStart, c.Span.End)
}

func (p *printer) member(m ast.Member) {
	switch m := m.(type) {
	case *ast.MethodDecl:
		p.rawSpan(m.Lead)
		if m.Changed() {
			p.method(m)
		} else {
			p.rawSpan(m.Span)
		}
	case *ast.FieldDecl:
		p.rawSpan(m.Lead)
		if m.Changed() {
			p.field(m)
		} else {
			p.rawSpan(m.Span)
		}
	case *ast.ClassDecl:
		p.rawSpan(m.Lead)
		if m.Changed() {
			p.class(m)
		} else {
			p.rawSpan(m.Span)
		}
	case *ast.RawMember:
		p.rawSpan(m.Lead)
		p.rawSpan(m.Span)
	default:
		p.rawSpan(m.NodeSpan())
	}
}

func (p *printer) method(m *ast.MethodDecl) {
	cursor := m.Span.Start
	if m.Ret != nil && m.Ret.Changed() {
		p.raw(cursor, m.Ret.Span.Start)
		p.typeRef(m.Ret)
		cursor = m.Ret.Span.End
	}
	p.raw(cursor, m.NameSpan.Start)
	p.buf.WriteString(m.Name)
	cursor = m.NameSpan.End
	for _, param := range m.Params {
		if !param.Changed() {
			continue
		}
		p.raw(cursor, param.Type.Span.Start)
		p.typeRef(param.Type)
		cursor = param.Type.Span.End
	}
	if m.Body != nil && m.Body.Changed() {
		p.raw(cursor, m.Body.Span.Start)
		p.block(m.Body)
		cursor = m.Body.Span.End
	}
	p.raw(cursor, m.Span.End)
}

func (p *printer) field(f *ast.FieldDecl) {
	cursor := f.Span.Start
	if f.Type.Changed() {
		p.raw(cursor, f.Type.Span.Start)
		p.typeRef(f.Type)
		cursor = f.Type.Span.End
	}
	for _, vd := range f.Vars {
		if !vd.Changed() || vd.Init == nil {
			continue
		}
		p.raw(cursor, vd.Init.NodeSpan().Start)
		p.expr(vd.Init)
		cursor = vd.Init.NodeSpan().End
	}
	p.raw(cursor, f.Span.End)
}

func (p *printer) block(b *ast.Block) {
	cursor := b.Span.Start
	for _, s := range b.Stmts {
		if !s.Changed() {
			continue
		}
		p.raw(cursor, s.NodeSpan().Start)
		p.stmt(s)
		cursor = s.NodeSpan().End
	}
	p.raw(cursor, b.Span.End)
}

func (p *printer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Block:
		p.block(s)
	case *ast.LocalVar:
		p.spliceAt(s.Span, func(c *cursorState) {
			c.typeRef(s.Type)
			for _, vd := range s.Vars {
				if vd.Init != nil {
					c.expr(vd.Init)
				}
			}
		})
	case *ast.ExprStmt:
		p.spliceAt(s.Span, func(c *cursorState) { c.expr(s.X) })
	case *ast.Return:
		p.spliceAt(s.Span, func(c *cursorState) { c.expr(s.X) })
	case *ast.If:
		p.spliceAt(s.Span, func(c *cursorState) {
			c.expr(s.Cond)
			c.stmt(s.Then)
			c.stmt(s.Else)
		})
	case *ast.While:
		p.spliceAt(s.Span, func(c *cursorState) {
			c.expr(s.Cond)
			c.stmt(s.Body)
		})
	case *ast.For:
		p.spliceAt(s.Span, func(c *cursorState) { c.stmt(s.Body) })
	default:
		p.rawSpan(s.NodeSpan())
	}
}

// cursorState threads the raw-bytes cursor through a dirty node's changed
// children; clean children stay inside the raw gaps.
type cursorState struct {
	p      *printer
	cursor uint32
}

// spliceAt prints one dirty node: raw bytes up to each changed child, the
// child's new rendering, raw bytes after the last one.
func (p *printer) spliceAt(span source.Span, children func(*cursorState)) {
	c := &cursorState{p: p, cursor: span.Start}
	children(c)
	p.raw(c.cursor, span.End)
}

func (c *cursorState) typeRef(t *ast.TypeRef) {
	if t == nil || !t.Changed() {
		return
	}
	c.p.raw(c.cursor, t.Span.Start)
	c.p.typeRef(t)
	c.cursor = t.Span.End
}

func (c *cursorState) stmt(s ast.Stmt) {
	if s == nil || !s.Changed() {
		return
	}
	c.p.raw(c.cursor, s.NodeSpan().Start)
	c.p.stmt(s)
	c.cursor = s.NodeSpan().End
}

func (c *cursorState) expr(e ast.Expr) {
	if e == nil || !e.Changed() {
		return
	}
	c.p.raw(c.cursor, e.NodeSpan().Start)
	c.p.expr(e)
	c.cursor = e.NodeSpan().End
}

func (p *printer) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Call:
		p.spliceAt(e.Span, func(c *cursorState) {
			c.expr(e.Recv)
			c.p.raw(c.cursor, e.NameSpan.Start)
			c.p.buf.WriteString(e.Name)
			c.cursor = e.NameSpan.End
			for _, a := range e.Args {
				c.expr(a)
			}
		})
	case *ast.Select:
		p.spliceAt(e.Span, func(c *cursorState) { c.expr(e.X) })
	case *ast.New:
		p.spliceAt(e.Span, func(c *cursorState) {
			c.typeRef(e.Type)
			for _, a := range e.Args {
				c.expr(a)
			}
		})
	case *ast.Cast:
		p.spliceAt(e.Span, func(c *cursorState) {
			c.typeRef(e.Type)
			c.expr(e.X)
		})
	case *ast.TypeExpr:
		p.spliceAt(e.Span, func(c *cursorState) { c.typeRef(e.Type) })
	case *ast.Unary:
		p.spliceAt(e.Span, func(c *cursorState) { c.expr(e.X) })
	case *ast.Binary:
		p.spliceAt(e.Span, func(c *cursorState) {
			c.expr(e.X)
			c.expr(e.Y)
		})
	case *ast.Assign:
		p.spliceAt(e.Span, func(c *cursorState) {
			c.expr(e.X)
			c.expr(e.Y)
		})
	case *ast.Ternary:
		p.spliceAt(e.Span, func(c *cursorState) {
			c.expr(e.Cond)
			c.expr(e.Then)
			c.expr(e.Else)
		})
	case *ast.Paren:
		p.spliceAt(e.Span, func(c *cursorState) { c.expr(e.X) })
	case *ast.Index:
		p.spliceAt(e.Span, func(c *cursorState) {
			c.expr(e.X)
			c.expr(e.I)
		})
	default:
		p.rawSpan(e.NodeSpan())
	}
}

// typeRef renders a dirty type reference. Synthesized references have no
// source bytes and print as canonical text.
func (p *printer) typeRef(t *ast.TypeRef) {
	if t.Synthetic() {
		p.buf.WriteString(t.Canonical())
		return
	}
	cursor := t.Span.Start
	p.raw(cursor, t.NameSpan.Start)
	p.buf.WriteString(t.Name)
	cursor = t.NameSpan.End
	for _, a := range t.Args {
		if !a.Changed() {
			continue
		}
		if a.Synthetic() {
			continue
		}
		p.raw(cursor, a.Span.Start)
		p.typeRef(a)
		cursor = a.Span.End
	}
	p.raw(cursor, t.Span.End)
}
