package rewrite

import (
	"relog/internal/ast"
	"relog/internal/imports"
)

// Apply runs one deferred pass as a full traversal over the unit and returns
// the resulting tree. Import consequences are requested on imp and settled
// later by reconciliation.
func Apply(u *ast.CompilationUnit, p Pass, imp *imports.Manager) *ast.CompilationUnit {
	switch p.Kind {
	case PassChangeType:
		return applyChangeType(u, p, imp)
	case PassRenameMethod:
		return applyRenameMethod(u, p)
	default:
		return u
	}
}

func applyChangeType(u *ast.CompilationUnit, p Pass, imp *imports.Manager) *ast.CompilationUnit {
	touched := false
	out := ast.RewriteUnit(u, &ast.Visitor{
		TypeRef: func(t *ast.TypeRef) *ast.TypeRef {
			if !t.Identity.Is(p.From) {
				return t
			}
			touched = true
			return t.Retarget(p.To)
		},
		Import: func(i *ast.ImportDecl) *ast.ImportDecl {
			if i.Wildcard || i.Static || i.Path != string(p.From) {
				return i
			}
			cp := *i
			cp.Path = string(p.To)
			cp.MarkDirty()
			return &cp
		},
	})
	if touched {
		// The retargeted references print as To's simple name; when no
		// rewritten import covers it, reconciliation adds one.
		imp.MaybeAdd(p.To)
		imp.MaybeRemove(p.From)
	}
	return out
}

func applyRenameMethod(u *ast.CompilationUnit, p Pass) *ast.CompilationUnit {
	return ast.RewriteUnit(u, &ast.Visitor{
		Call: func(c *ast.Call) *ast.Call {
			if c.Name != p.FromName || !c.Decl.Is(p.Decl) {
				return c
			}
			return c.WithName(p.ToName)
		},
	})
}
