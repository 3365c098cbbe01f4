package rewrite

import (
	"relog/internal/ast"
)

// Applies reports whether the unit shows any evidence of using the rule's
// legacy base: an explicit import of it, or a resolved reference to it. A
// unit that fails the gate is never visited further, so units outside the
// migration's blast radius cannot be touched even by accident.
func Applies(u *ast.CompilationUnit, rule Rule) bool {
	for _, imp := range u.Imports {
		if !imp.Wildcard && !imp.Static && imp.Path == string(rule.LegacyBase) {
			return true
		}
	}
	found := false
	ast.Inspect(u, func(n ast.Node) bool {
		if found {
			return false
		}
		if t, ok := n.(*ast.TypeRef); ok && t.Identity.Is(rule.LegacyBase) {
			found = true
			return false
		}
		return true
	})
	return found
}
