package ast

// Inspect walks the unit in source order, calling f for every node.
// If f returns false the node's children are skipped. Inspect never mutates
// the tree.
func Inspect(u *CompilationUnit, f func(Node) bool) {
	if u == nil || !f(u) {
		return
	}
	if u.Package != nil {
		f(u.Package)
	}
	for _, imp := range u.Imports {
		f(imp)
	}
	for _, cls := range u.Types {
		inspectClass(cls, f)
	}
}

func inspectClass(c *ClassDecl, f func(Node) bool) {
	if !f(c) {
		return
	}
	inspectTypeRef(c.Extends, f)
	for _, impl := range c.Implements {
		inspectTypeRef(impl, f)
	}
	for _, m := range c.Members {
		inspectMember(m, f)
	}
}

func inspectMember(m Member, f func(Node) bool) {
	switch m := m.(type) {
	case *MethodDecl:
		if !f(m) {
			return
		}
		inspectTypeRef(m.Ret, f)
		for _, p := range m.Params {
			if f(p) {
				inspectTypeRef(p.Type, f)
			}
		}
		if m.Body != nil {
			inspectStmt(m.Body, f)
		}
	case *FieldDecl:
		if !f(m) {
			return
		}
		inspectTypeRef(m.Type, f)
		for _, vd := range m.Vars {
			if f(vd) {
				inspectExpr(vd.Init, f)
			}
		}
	case *ClassDecl:
		inspectClass(m, f)
	default:
		f(m)
	}
}

func inspectStmt(s Stmt, f func(Node) bool) {
	if s == nil {
		return
	}
	switch s := s.(type) {
	case *Block:
		if !f(s) {
			return
		}
		for _, st := range s.Stmts {
			inspectStmt(st, f)
		}
	case *LocalVar:
		if !f(s) {
			return
		}
		inspectTypeRef(s.Type, f)
		for _, vd := range s.Vars {
			if f(vd) {
				inspectExpr(vd.Init, f)
			}
		}
	case *ExprStmt:
		if f(s) {
			inspectExpr(s.X, f)
		}
	case *Return:
		if f(s) {
			inspectExpr(s.X, f)
		}
	case *If:
		if !f(s) {
			return
		}
		inspectExpr(s.Cond, f)
		inspectStmt(s.Then, f)
		inspectStmt(s.Else, f)
	case *While:
		if !f(s) {
			return
		}
		inspectExpr(s.Cond, f)
		inspectStmt(s.Body, f)
	case *For:
		if f(s) {
			inspectStmt(s.Body, f)
		}
	default:
		f(s)
	}
}

func inspectExpr(e Expr, f func(Node) bool) {
	if e == nil {
		return
	}
	switch e := e.(type) {
	case *Select:
		if f(e) {
			inspectExpr(e.X, f)
		}
	case *Call:
		if !f(e) {
			return
		}
		inspectExpr(e.Recv, f)
		for _, a := range e.Args {
			inspectExpr(a, f)
		}
	case *New:
		if !f(e) {
			return
		}
		inspectTypeRef(e.Type, f)
		for _, a := range e.Args {
			inspectExpr(a, f)
		}
	case *TypeExpr:
		if f(e) {
			inspectTypeRef(e.Type, f)
		}
	case *Cast:
		if !f(e) {
			return
		}
		inspectTypeRef(e.Type, f)
		inspectExpr(e.X, f)
	case *Unary:
		if f(e) {
			inspectExpr(e.X, f)
		}
	case *Binary:
		if !f(e) {
			return
		}
		inspectExpr(e.X, f)
		inspectExpr(e.Y, f)
	case *Assign:
		if !f(e) {
			return
		}
		inspectExpr(e.X, f)
		inspectExpr(e.Y, f)
	case *Ternary:
		if !f(e) {
			return
		}
		inspectExpr(e.Cond, f)
		inspectExpr(e.Then, f)
		inspectExpr(e.Else, f)
	case *Paren:
		if f(e) {
			inspectExpr(e.X, f)
		}
	case *Index:
		if !f(e) {
			return
		}
		inspectExpr(e.X, f)
		inspectExpr(e.I, f)
	default:
		f(e)
	}
}

func inspectTypeRef(t *TypeRef, f func(Node) bool) {
	if t == nil {
		return
	}
	if !f(t) {
		return
	}
	for _, a := range t.Args {
		inspectTypeRef(a, f)
	}
}
