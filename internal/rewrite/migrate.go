package rewrite

import (
	"relog/internal/ast"
	"relog/internal/imports"
	"relog/internal/source"
)

// Migrate runs the rule over one resolved unit. It returns the resulting
// tree and whether anything changed. On error the original unit is returned
// unmodified; the only error a unit can produce here is a synthesis failure,
// and that must not leave a half-rewritten tree behind.
func Migrate(f *source.File, u *ast.CompilationUnit, rule Rule, synth Synthesizer) (*ast.CompilationUnit, bool, error) {
	if !Applies(u, rule) {
		return u, false, nil
	}

	hasMatch := false
	for _, cls := range u.Types {
		if classTreeMatches(cls, rule) {
			hasMatch = true
			break
		}
	}
	if !hasMatch {
		return u, false, nil
	}

	synthRef, err := synth.Synthesize(rule.Template, rule.NewBase, rule.NewEvent)
	if err != nil {
		return u, false, &SynthesisError{Snippet: rule.Template, Err: err}
	}

	q := NewQueue()
	imp := imports.NewManager()

	out := rewriteExtends(u, rule, synthRef, q, imp)
	for _, pass := range q.Drain() {
		out = Apply(out, pass, imp)
	}
	out = imp.Reconcile(f, out)

	return out, out != u, nil
}

func classTreeMatches(c *ast.ClassDecl, rule Rule) bool {
	if Matches(c, rule) {
		return true
	}
	for _, m := range c.Members {
		if nested, ok := m.(*ast.ClassDecl); ok && classTreeMatches(nested, rule) {
			return true
		}
	}
	return false
}
