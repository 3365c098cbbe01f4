// Package template synthesizes type references from small source snippets.
//
// A snippet like "AppenderBase<ILoggingEvent>" names types by simple name
// only; the caller binds each simple name to a full identity. Binding is
// strict: a snippet name without a binding is an error, never a guess, so a
// bad template can only fail a unit, not corrupt it.
package template

import (
	"fmt"

	"relog/internal/ast"
	"relog/internal/diag"
	"relog/internal/parser"
	"relog/internal/source"
	"relog/internal/types"
)

// TypeFromTemplate parses snippet into a synthesized type reference and
// resolves every simple name against bound. The result carries no source
// spans; the printer renders it from its canonical text.
func TypeFromTemplate(snippet string, bound ...types.Identity) (*ast.TypeRef, error) {
	byName := make(map[string]types.Identity, len(bound))
	for _, id := range bound {
		if !id.Valid() {
			return nil, fmt.Errorf("template %q: invalid binding", snippet)
		}
		byName[id.Simple()] = id
	}

	ref, err := parseSnippet(snippet)
	if err != nil {
		return nil, err
	}
	if err := bind(ref, byName, snippet); err != nil {
		return nil, err
	}
	return ref, nil
}

func parseSnippet(snippet string) (*ast.TypeRef, error) {
	fset := source.NewFileSet()
	id := fset.AddVirtual("template", []byte("class T extends "+snippet+" {}"))
	res := parser.ParseFile(fset.Get(id), parser.Options{MaxErrors: 4})
	if res.Bag != nil && res.Bag.HasErrors() {
		return nil, fmt.Errorf("template %q: %s", snippet, firstError(res.Bag))
	}
	if len(res.Unit.Types) != 1 || res.Unit.Types[0].Extends == nil {
		return nil, fmt.Errorf("template %q: not a type reference", snippet)
	}
	return detach(res.Unit.Types[0].Extends), nil
}

func firstError(bag *diag.Bag) string {
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			return d.Message
		}
	}
	return "invalid snippet"
}

// detach strips the throwaway parse file's spans so the reference prints as
// synthesized text.
func detach(t *ast.TypeRef) *ast.TypeRef {
	out := &ast.TypeRef{
		Meta: ast.Meta{Dirty: true},
		Name: t.Name,
	}
	for _, a := range t.Args {
		out.Args = append(out.Args, detach(a))
	}
	return out
}

func bind(t *ast.TypeRef, byName map[string]types.Identity, snippet string) error {
	if t.Name != "?" {
		id, ok := byName[t.Name]
		if !ok {
			return fmt.Errorf("template %q: unbound type %q", snippet, t.Name)
		}
		t.Identity = id
	}
	for _, a := range t.Args {
		if err := bind(a, byName, snippet); err != nil {
			return err
		}
	}
	return nil
}
