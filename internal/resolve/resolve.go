// Package resolve attaches type identities to a parsed compilation unit.
//
// Resolution is deliberately shallow and fail-closed: only what single-file
// evidence supports gets an identity. Explicit imports, fully written
// qualified names, the unit's own declarations, and the java.lang implicits
// resolve; everything else stays types.None and never matches a rewrite.
package resolve

import (
	"strings"

	"relog/internal/ast"
	"relog/internal/types"
)

// Options configures resolution beyond what the unit itself shows.
type Options struct {
	// Inherited lists fields that become visible by extending a known
	// supertype, keyed by the supertype's identity: field name to the
	// identity of the field's declared type. Receivers named after such a
	// field resolve to that type even though the unit never declares it.
	Inherited map[types.Identity]map[string]types.Identity
}

// Resolve annotates u in place: every TypeRef gets an Identity and every
// Call gets the declaring type of its receiver's static type, where either
// can be determined. Spans and dirty flags are untouched.
func Resolve(u *ast.CompilationUnit, opts Options) {
	r := &resolver{
		pkg:     u.PackageName(),
		imports: make(map[string]types.Identity),
		locals:  make(map[string]types.Identity),
		opts:    opts,
	}
	for _, imp := range u.Imports {
		if imp.Wildcard || imp.Static {
			continue
		}
		id := types.Identity(imp.Path)
		r.imports[id.Simple()] = id
	}
	for _, cls := range u.Types {
		r.declared(cls, r.pkg)
	}
	for _, cls := range u.Types {
		r.class(cls, r.pkg)
	}
}

type resolver struct {
	pkg     string
	imports map[string]types.Identity
	// locals maps the unit's own declared type names, including nested ones,
	// to their identities.
	locals map[string]types.Identity
	opts   Options
}

func (r *resolver) declared(c *ast.ClassDecl, outer string) {
	id := qualify(outer, c.Name)
	r.locals[c.Name] = id
	for _, m := range c.Members {
		if nested, ok := m.(*ast.ClassDecl); ok {
			r.declared(nested, string(id))
		}
	}
}

func qualify(outer, name string) types.Identity {
	if outer == "" {
		return types.Identity(name)
	}
	return types.Identity(outer + "." + name)
}

// typeByName resolves a type name as written to an identity, or None.
func (r *resolver) typeByName(name string) types.Identity {
	switch {
	case name == "" || name == "?" || isPrimitive(name):
		return types.None
	case strings.Contains(name, "."):
		return types.Identity(name)
	}
	if id, ok := r.imports[name]; ok {
		return id
	}
	if id, ok := r.locals[name]; ok {
		return id
	}
	if javaLang[name] {
		return types.Identity("java.lang." + name)
	}
	return types.None
}

func (r *resolver) typeRef(t *ast.TypeRef) {
	if t == nil {
		return
	}
	if !t.Identity.Valid() {
		t.Identity = r.typeByName(t.Name)
	}
	for _, a := range t.Args {
		r.typeRef(a)
	}
}

// scope maps value names in view to the identity of their declared type.
type scope map[string]types.Identity

func (s scope) child() scope {
	out := make(scope, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func (r *resolver) class(c *ast.ClassDecl, outer string) {
	self := qualify(outer, c.Name)
	r.typeRef(c.Extends)
	for _, impl := range c.Implements {
		r.typeRef(impl)
	}

	fields := make(scope)
	if c.Extends != nil {
		if tbl, ok := r.opts.Inherited[c.Extends.Identity]; ok {
			for name, id := range tbl {
				fields[name] = id
			}
		}
	}
	var extends types.Identity
	if c.Extends != nil {
		extends = c.Extends.Identity
	}
	for _, m := range c.Members {
		if f, ok := m.(*ast.FieldDecl); ok {
			r.typeRef(f.Type)
			for _, vd := range f.Vars {
				fields[vd.Name] = f.Type.Identity
			}
		}
	}

	ctx := &classCtx{r: r, self: self, extends: extends}
	for _, m := range c.Members {
		switch m := m.(type) {
		case *ast.FieldDecl:
			for _, vd := range m.Vars {
				ctx.expr(vd.Init, fields)
			}
		case *ast.MethodDecl:
			r.typeRef(m.Ret)
			sc := fields.child()
			for _, p := range m.Params {
				r.typeRef(p.Type)
				sc[p.Name] = p.Type.Identity
			}
			if m.Body != nil {
				ctx.block(m.Body, sc)
			}
		case *ast.ClassDecl:
			r.class(m, string(self))
		}
	}
}

type classCtx struct {
	r       *resolver
	self    types.Identity
	extends types.Identity
}

func (c *classCtx) block(b *ast.Block, sc scope) {
	inner := sc.child()
	for _, s := range b.Stmts {
		c.stmt(s, inner)
	}
}

func (c *classCtx) stmt(s ast.Stmt, sc scope) {
	switch s := s.(type) {
	case *ast.Block:
		c.block(s, sc)
	case *ast.LocalVar:
		c.r.typeRef(s.Type)
		for _, vd := range s.Vars {
			c.expr(vd.Init, sc)
			sc[vd.Name] = s.Type.Identity
		}
	case *ast.ExprStmt:
		c.expr(s.X, sc)
	case *ast.Return:
		c.expr(s.X, sc)
	case *ast.If:
		c.expr(s.Cond, sc)
		c.stmt(s.Then, sc.child())
		if s.Else != nil {
			c.stmt(s.Else, sc.child())
		}
	case *ast.While:
		c.expr(s.Cond, sc)
		c.stmt(s.Body, sc.child())
	case *ast.For:
		c.stmt(s.Body, sc.child())
	}
}

func (c *classCtx) expr(e ast.Expr, sc scope) {
	switch e := e.(type) {
	case *ast.Call:
		c.expr(e.Recv, sc)
		for _, a := range e.Args {
			c.expr(a, sc)
		}
		if e.Recv == nil {
			e.Decl = c.self
		} else {
			e.Decl = c.staticType(e.Recv, sc)
		}
	case *ast.Select:
		c.expr(e.X, sc)
	case *ast.New:
		c.r.typeRef(e.Type)
		for _, a := range e.Args {
			c.expr(a, sc)
		}
	case *ast.Cast:
		c.r.typeRef(e.Type)
		c.expr(e.X, sc)
	case *ast.TypeExpr:
		c.r.typeRef(e.Type)
	case *ast.Unary:
		c.expr(e.X, sc)
	case *ast.Binary:
		c.expr(e.X, sc)
		c.expr(e.Y, sc)
	case *ast.Assign:
		c.expr(e.X, sc)
		c.expr(e.Y, sc)
	case *ast.Ternary:
		c.expr(e.Cond, sc)
		c.expr(e.Then, sc)
		c.expr(e.Else, sc)
	case *ast.Paren:
		c.expr(e.X, sc)
	case *ast.Index:
		c.expr(e.X, sc)
		c.expr(e.I, sc)
	}
}

// staticType computes the static type of a receiver expression, or None.
func (c *classCtx) staticType(e ast.Expr, sc scope) types.Identity {
	switch e := e.(type) {
	case *ast.Ident:
		switch e.Name {
		case "this":
			return c.self
		case "super":
			return c.extends
		}
		if id, ok := sc[e.Name]; ok {
			return id
		}
		// Not a value in scope: a bare type name means a static call.
		return c.r.typeByName(e.Name)
	case *ast.Cast:
		return e.Type.Identity
	case *ast.Paren:
		return c.staticType(e.X, sc)
	case *ast.New:
		return e.Type.Identity
	case *ast.Select:
		// A selection chain that spells out an imported or fully qualified
		// type is a static receiver; anything else is a value chain whose
		// type one file cannot know.
		if dotted, ok := flatten(e); ok {
			if id, ok := c.r.imports[lastSegment(dotted)]; ok && string(id) == dotted {
				return id
			}
			if strings.Contains(dotted, ".") && c.r.imports[lastSegment(dotted)] == types.None {
				if looksQualified(dotted) {
					return types.Identity(dotted)
				}
			}
		}
		return types.None
	default:
		return types.None
	}
}

func flatten(e ast.Expr) (string, bool) {
	switch e := e.(type) {
	case *ast.Ident:
		return e.Name, true
	case *ast.Select:
		base, ok := flatten(e.X)
		if !ok {
			return "", false
		}
		return base + "." + e.Name, true
	default:
		return "", false
	}
}

func lastSegment(dotted string) string {
	if i := strings.LastIndexByte(dotted, '.'); i >= 0 {
		return dotted[i+1:]
	}
	return dotted
}

// looksQualified reports whether a dotted chain shapes like a fully
// qualified type name: lower-case package segments ending in one upper-case
// type segment. `org.apache.log4j.Layout` passes; `System.out` does not.
func looksQualified(dotted string) bool {
	segs := strings.Split(dotted, ".")
	if len(segs) < 3 {
		return false
	}
	for _, s := range segs[:len(segs)-1] {
		if s == "" || s[0] < 'a' || s[0] > 'z' {
			return false
		}
	}
	last := segs[len(segs)-1]
	return last != "" && last[0] >= 'A' && last[0] <= 'Z'
}

func isPrimitive(name string) bool {
	switch name {
	case "boolean", "byte", "short", "int", "long", "char", "float", "double",
		"void", "var":
		return true
	default:
		return false
	}
}

var javaLang = map[string]bool{
	"Boolean": true, "Byte": true, "Character": true, "CharSequence": true,
	"Class": true, "Comparable": true, "Deprecated": true, "Double": true,
	"Error": true, "Exception": true, "Float": true, "IllegalArgumentException": true,
	"IllegalStateException": true, "Integer": true, "Iterable": true,
	"Long": true, "Math": true, "Number": true, "Object": true, "Override": true,
	"Runnable": true, "RuntimeException": true, "Short": true, "String": true,
	"StringBuffer": true, "StringBuilder": true, "SuppressWarnings": true,
	"System": true, "Thread": true, "Throwable": true, "Void": true,
}
