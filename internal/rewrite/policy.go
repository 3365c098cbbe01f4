package rewrite

import "relog/internal/ast"

// applyMemberPolicy rewrites the lifecycle members of one matched class:
//
//   - requiresLayout is removed; the new base has no layout contract.
//   - close with a present, empty body is removed; the inherited stop()
//     covers it.
//   - close with statements, or with no body at all, is renamed to stop
//     so the logic still runs when logback stops the appender.
//
// Methods match by simple name regardless of signature. Everything else
// keeps its position; the member order never changes.
func applyMemberPolicy(c *ast.ClassDecl, rule Rule) *ast.ClassDecl {
	changed := false
	kept := make([]ast.Member, 0, len(c.Members))
	for _, m := range c.Members {
		md, ok := m.(*ast.MethodDecl)
		if !ok || md.Ctor {
			kept = append(kept, m)
			continue
		}
		switch md.Name {
		case rule.RequiresLayoutName:
			changed = true
		case rule.CloseName:
			if md.Body != nil && md.Body.IsEmpty() {
				changed = true
				continue
			}
			kept = append(kept, md.WithName(rule.StopName))
			changed = true
		default:
			kept = append(kept, m)
		}
	}
	if !changed {
		return c
	}
	cp := *c
	cp.Members = kept
	cp.MarkDirty()
	return &cp
}
