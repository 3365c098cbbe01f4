package rewrite

import "relog/internal/ast"

// Matches reports whether the class is a direct subclass of the rule's
// legacy base. The comparison is an exact identity match: a superclass the
// resolver could not pin down never matches, and neither does a deeper
// descendant whose direct parent is something else.
func Matches(c *ast.ClassDecl, rule Rule) bool {
	if c.Kind != ast.KindClass || c.Extends == nil {
		return false
	}
	return c.Extends.Identity.Is(rule.LegacyBase)
}
