package ast

// Visitor carries the per-kind rewrite hooks of one pass. A nil hook leaves
// that kind untouched. Hooks are pure: they return the input pointer for
// "no change" or a fresh node, and never mutate their argument.
//
// The class hook runs post-order, after the class's children, so nested and
// local classes get visited independently of their enclosing declaration.
type Visitor struct {
	TypeRef func(*TypeRef) *TypeRef
	Call    func(*Call) *Call
	Import  func(*ImportDecl) *ImportDecl
	Class   func(*ClassDecl) *ClassDecl
	Method  func(*MethodDecl) *MethodDecl
}

// RewriteUnit applies one full traversal of v over the unit and returns the
// resulting tree. Untouched subtrees are shared with the input; every rebuilt
// node on an edited spine is marked dirty.
func RewriteUnit(u *CompilationUnit, v *Visitor) *CompilationUnit {
	out, _ := rewriteUnit(u, v)
	return out
}

func rewriteUnit(u *CompilationUnit, v *Visitor) (*CompilationUnit, bool) {
	imports, impChanged := rewriteImports(u.Imports, v)
	classes, clsChanged := rewriteClasses(u.Types, v)
	if !impChanged && !clsChanged {
		return u, false
	}
	out := *u
	out.Imports = imports
	out.Types = classes
	out.MarkDirty()
	return &out, true
}

func rewriteImports(imports []*ImportDecl, v *Visitor) ([]*ImportDecl, bool) {
	if v.Import == nil {
		return imports, false
	}
	changed := false
	out := imports
	for i, imp := range imports {
		next := v.Import(imp)
		if next == imp {
			continue
		}
		if !changed {
			out = append([]*ImportDecl(nil), imports...)
			changed = true
		}
		out[i] = next
	}
	return out, changed
}

func rewriteClasses(classes []*ClassDecl, v *Visitor) ([]*ClassDecl, bool) {
	changed := false
	out := classes
	for i, cls := range classes {
		next, ok := rewriteClass(cls, v)
		if !ok {
			continue
		}
		if !changed {
			out = append([]*ClassDecl(nil), classes...)
			changed = true
		}
		out[i] = next
	}
	return out, changed
}

func rewriteClass(c *ClassDecl, v *Visitor) (*ClassDecl, bool) {
	extends, extChanged := rewriteTypeRef(c.Extends, v)
	impls, implChanged := rewriteTypeRefs(c.Implements, v)
	members, memChanged := rewriteMembers(c.Members, v)

	out := c
	if extChanged || implChanged || memChanged {
		cp := *c
		cp.Extends = extends
		cp.Implements = impls
		cp.Members = members
		cp.MarkDirty()
		out = &cp
	}
	if v.Class != nil {
		out = v.Class(out)
	}
	return out, out != c
}

func rewriteMembers(members []Member, v *Visitor) ([]Member, bool) {
	changed := false
	out := members
	for i, m := range members {
		next, ok := rewriteMember(m, v)
		if !ok {
			continue
		}
		if !changed {
			out = append([]Member(nil), members...)
			changed = true
		}
		out[i] = next
	}
	return out, changed
}

func rewriteMember(m Member, v *Visitor) (Member, bool) {
	switch m := m.(type) {
	case *MethodDecl:
		return rewriteMethod(m, v)
	case *FieldDecl:
		typ, typChanged := rewriteTypeRef(m.Type, v)
		vars, varsChanged := rewriteVars(m.Vars, v)
		if !typChanged && !varsChanged {
			return m, false
		}
		cp := *m
		cp.Type = typ
		cp.Vars = vars
		cp.MarkDirty()
		return &cp, true
	case *ClassDecl:
		return rewriteClass(m, v)
	default:
		return m, false
	}
}

func rewriteMethod(m *MethodDecl, v *Visitor) (*MethodDecl, bool) {
	ret, retChanged := rewriteTypeRef(m.Ret, v)
	params, parChanged := rewriteParams(m.Params, v)
	body, bodyChanged := rewriteBlock(m.Body, v)

	out := m
	if retChanged || parChanged || bodyChanged {
		cp := *m
		cp.Ret = ret
		cp.Params = params
		cp.Body = body
		cp.MarkDirty()
		out = &cp
	}
	if v.Method != nil {
		out = v.Method(out)
	}
	return out, out != m
}

func rewriteParams(params []*Param, v *Visitor) ([]*Param, bool) {
	changed := false
	out := params
	for i, p := range params {
		typ, ok := rewriteTypeRef(p.Type, v)
		if !ok {
			continue
		}
		if !changed {
			out = append([]*Param(nil), params...)
			changed = true
		}
		cp := *p
		cp.Type = typ
		cp.MarkDirty()
		out[i] = &cp
	}
	return out, changed
}

func rewriteVars(vars []*VarDecl, v *Visitor) ([]*VarDecl, bool) {
	changed := false
	out := vars
	for i, vd := range vars {
		init, ok := rewriteExpr(vd.Init, v)
		if !ok {
			continue
		}
		if !changed {
			out = append([]*VarDecl(nil), vars...)
			changed = true
		}
		cp := *vd
		cp.Init = init
		cp.MarkDirty()
		out[i] = &cp
	}
	return out, changed
}

func rewriteBlock(b *Block, v *Visitor) (*Block, bool) {
	if b == nil {
		return nil, false
	}
	stmts, changed := rewriteStmts(b.Stmts, v)
	if !changed {
		return b, false
	}
	cp := *b
	cp.Stmts = stmts
	cp.MarkDirty()
	return &cp, true
}

func rewriteStmts(stmts []Stmt, v *Visitor) ([]Stmt, bool) {
	changed := false
	out := stmts
	for i, s := range stmts {
		next, ok := rewriteStmt(s, v)
		if !ok {
			continue
		}
		if !changed {
			out = append([]Stmt(nil), stmts...)
			changed = true
		}
		out[i] = next
	}
	return out, changed
}

func rewriteStmt(s Stmt, v *Visitor) (Stmt, bool) {
	switch s := s.(type) {
	case *Block:
		return rewriteBlock(s, v)
	case *LocalVar:
		typ, typChanged := rewriteTypeRef(s.Type, v)
		vars, varsChanged := rewriteVars(s.Vars, v)
		if !typChanged && !varsChanged {
			return s, false
		}
		cp := *s
		cp.Type = typ
		cp.Vars = vars
		cp.MarkDirty()
		return &cp, true
	case *ExprStmt:
		x, ok := rewriteExpr(s.X, v)
		if !ok {
			return s, false
		}
		cp := *s
		cp.X = x
		cp.MarkDirty()
		return &cp, true
	case *Return:
		x, ok := rewriteExpr(s.X, v)
		if !ok {
			return s, false
		}
		cp := *s
		cp.X = x
		cp.MarkDirty()
		return &cp, true
	case *If:
		cond, condChanged := rewriteExpr(s.Cond, v)
		then, thenChanged := rewriteStmt(s.Then, v)
		var els Stmt
		elsChanged := false
		if s.Else != nil {
			els, elsChanged = rewriteStmt(s.Else, v)
		}
		if !condChanged && !thenChanged && !elsChanged {
			return s, false
		}
		cp := *s
		cp.Cond = cond
		cp.Then = then
		if s.Else != nil {
			cp.Else = els
		}
		cp.MarkDirty()
		return &cp, true
	case *While:
		cond, condChanged := rewriteExpr(s.Cond, v)
		body, bodyChanged := rewriteStmt(s.Body, v)
		if !condChanged && !bodyChanged {
			return s, false
		}
		cp := *s
		cp.Cond = cond
		cp.Body = body
		cp.MarkDirty()
		return &cp, true
	case *For:
		body, ok := rewriteStmt(s.Body, v)
		if !ok {
			return s, false
		}
		cp := *s
		cp.Body = body
		cp.MarkDirty()
		return &cp, true
	default:
		return s, false
	}
}

func rewriteExpr(e Expr, v *Visitor) (Expr, bool) {
	if e == nil {
		return nil, false
	}
	switch e := e.(type) {
	case *Select:
		x, ok := rewriteExpr(e.X, v)
		if !ok {
			return e, false
		}
		cp := *e
		cp.X = x
		cp.MarkDirty()
		return &cp, true
	case *Call:
		return rewriteCall(e, v)
	case *New:
		typ, typChanged := rewriteTypeRef(e.Type, v)
		args, argsChanged := rewriteExprs(e.Args, v)
		if !typChanged && !argsChanged {
			return e, false
		}
		cp := *e
		cp.Type = typ
		cp.Args = args
		cp.MarkDirty()
		return &cp, true
	case *TypeExpr:
		typ, ok := rewriteTypeRef(e.Type, v)
		if !ok {
			return e, false
		}
		cp := *e
		cp.Type = typ
		cp.MarkDirty()
		return &cp, true
	case *Cast:
		typ, typChanged := rewriteTypeRef(e.Type, v)
		x, xChanged := rewriteExpr(e.X, v)
		if !typChanged && !xChanged {
			return e, false
		}
		cp := *e
		cp.Type = typ
		cp.X = x
		cp.MarkDirty()
		return &cp, true
	case *Unary:
		x, ok := rewriteExpr(e.X, v)
		if !ok {
			return e, false
		}
		cp := *e
		cp.X = x
		cp.MarkDirty()
		return &cp, true
	case *Binary:
		x, xChanged := rewriteExpr(e.X, v)
		y, yChanged := rewriteExpr(e.Y, v)
		if !xChanged && !yChanged {
			return e, false
		}
		cp := *e
		cp.X = x
		cp.Y = y
		cp.MarkDirty()
		return &cp, true
	case *Assign:
		x, xChanged := rewriteExpr(e.X, v)
		y, yChanged := rewriteExpr(e.Y, v)
		if !xChanged && !yChanged {
			return e, false
		}
		cp := *e
		cp.X = x
		cp.Y = y
		cp.MarkDirty()
		return &cp, true
	case *Ternary:
		cond, condChanged := rewriteExpr(e.Cond, v)
		then, thenChanged := rewriteExpr(e.Then, v)
		els, elsChanged := rewriteExpr(e.Else, v)
		if !condChanged && !thenChanged && !elsChanged {
			return e, false
		}
		cp := *e
		cp.Cond = cond
		cp.Then = then
		cp.Else = els
		cp.MarkDirty()
		return &cp, true
	case *Paren:
		x, ok := rewriteExpr(e.X, v)
		if !ok {
			return e, false
		}
		cp := *e
		cp.X = x
		cp.MarkDirty()
		return &cp, true
	case *Index:
		x, xChanged := rewriteExpr(e.X, v)
		i, iChanged := rewriteExpr(e.I, v)
		if !xChanged && !iChanged {
			return e, false
		}
		cp := *e
		cp.X = x
		cp.I = i
		cp.MarkDirty()
		return &cp, true
	default:
		// Ident, Lit, RawExpr carry no rewritable structure.
		return e, false
	}
}

func rewriteCall(c *Call, v *Visitor) (*Call, bool) {
	recv, recvChanged := rewriteExpr(c.Recv, v)
	args, argsChanged := rewriteExprs(c.Args, v)

	out := c
	if recvChanged || argsChanged {
		cp := *c
		cp.Recv = recv
		cp.Args = args
		cp.MarkDirty()
		out = &cp
	}
	if v.Call != nil {
		out = v.Call(out)
	}
	return out, out != c
}

func rewriteExprs(exprs []Expr, v *Visitor) ([]Expr, bool) {
	changed := false
	out := exprs
	for i, e := range exprs {
		next, ok := rewriteExpr(e, v)
		if !ok {
			continue
		}
		if !changed {
			out = append([]Expr(nil), exprs...)
			changed = true
		}
		out[i] = next
	}
	return out, changed
}

func rewriteTypeRefs(refs []*TypeRef, v *Visitor) ([]*TypeRef, bool) {
	changed := false
	out := refs
	for i, r := range refs {
		next, ok := rewriteTypeRef(r, v)
		if !ok {
			continue
		}
		if !changed {
			out = append([]*TypeRef(nil), refs...)
			changed = true
		}
		out[i] = next
	}
	return out, changed
}

func rewriteTypeRef(t *TypeRef, v *Visitor) (*TypeRef, bool) {
	if t == nil {
		return nil, false
	}
	args, argsChanged := rewriteTypeRefs(t.Args, v)

	out := t
	if argsChanged {
		cp := *t
		cp.Args = args
		cp.MarkDirty()
		out = &cp
	}
	if v.TypeRef != nil {
		out = v.TypeRef(out)
	}
	return out, out != t
}
