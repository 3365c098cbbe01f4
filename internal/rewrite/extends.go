package rewrite

import (
	"fmt"

	"relog/internal/ast"
	"relog/internal/imports"
	"relog/internal/template"
	"relog/internal/types"
)

// Synthesizer builds the replacement extends reference from the rule's
// template. The default goes through the template package; tests substitute
// failures.
type Synthesizer interface {
	Synthesize(snippet string, bound ...types.Identity) (*ast.TypeRef, error)
}

// TemplateSynthesizer is the production Synthesizer.
type TemplateSynthesizer struct{}

func (TemplateSynthesizer) Synthesize(snippet string, bound ...types.Identity) (*ast.TypeRef, error) {
	return template.TypeFromTemplate(snippet, bound...)
}

// SynthesisError marks a template synthesis failure. The unit it occurred in
// is left untouched; other units are unaffected.
type SynthesisError struct {
	Snippet string
	Err     error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize %q: %v", e.Snippet, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// rewriteExtends replaces the superclass of every matched class with a fresh
// copy of the synthesized reference and queues the follow-up passes the
// first time a class matches. The member policy runs on matched classes
// only; a class extending anything else keeps every byte.
func rewriteExtends(u *ast.CompilationUnit, rule Rule, synthRef *ast.TypeRef, q *Queue, imp *imports.Manager) *ast.CompilationUnit {
	matched := false
	out := ast.RewriteUnit(u, &ast.Visitor{
		Class: func(c *ast.ClassDecl) *ast.ClassDecl {
			if !Matches(c, rule) {
				return c
			}
			cp := *c
			cp.Extends = cloneRef(synthRef)
			cp.MarkDirty()
			matched = true
			return applyMemberPolicy(&cp, rule)
		},
	})
	if !matched {
		return out
	}

	q.Enqueue(Pass{Kind: PassChangeType, From: rule.LegacyEvent, To: rule.NewEvent})
	q.Enqueue(Pass{Kind: PassChangeType, From: rule.LegacyLayout, To: rule.NewLayout})
	q.Enqueue(Pass{
		Kind:     PassRenameMethod,
		Decl:     rule.LegacyLayout,
		FromName: rule.FormatName,
		ToName:   rule.DoLayoutName,
	})
	imp.MaybeRemove(rule.LegacyBase)
	imp.MaybeAdd(rule.NewBase)
	imp.MaybeAdd(rule.NewEvent)
	return out
}

// cloneRef deep-copies a synthesized reference so no two classes share
// nodes.
func cloneRef(t *ast.TypeRef) *ast.TypeRef {
	cp := *t
	if len(t.Args) > 0 {
		cp.Args = make([]*ast.TypeRef, len(t.Args))
		for i, a := range t.Args {
			cp.Args[i] = cloneRef(a)
		}
	}
	return &cp
}
