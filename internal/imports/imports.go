// Package imports reconciles a unit's import list after a rewrite.
//
// Passes never edit imports directly; they request additions and removals
// through a Manager, and Reconcile applies only the requests the final tree
// actually supports: a removal happens only when nothing references the type
// anymore, an addition only when something does and no existing import or
// colliding simple name blocks it.
package imports

import (
	"strings"

	"relog/internal/ast"
	"relog/internal/source"
	"relog/internal/types"
)

// Manager accumulates import change requests for one unit.
type Manager struct {
	adds    []types.Identity
	removes map[types.Identity]bool
}

func NewManager() *Manager {
	return &Manager{removes: make(map[types.Identity]bool)}
}

// MaybeAdd requests an import for id. Duplicate requests collapse.
func (m *Manager) MaybeAdd(id types.Identity) {
	if !id.Valid() {
		return
	}
	for _, a := range m.adds {
		if a == id {
			return
		}
	}
	m.adds = append(m.adds, id)
}

// MaybeRemove requests removal of the import for id.
func (m *Manager) MaybeRemove(id types.Identity) {
	if id.Valid() {
		m.removes[id] = true
	}
}

// Reconcile applies the accumulated requests against u and returns the
// resulting unit. The input unit is never mutated. f is the file the unit
// was parsed from; Raw node bytes are scanned there, so a type mentioned
// only inside an out-of-subset construct still blocks its import's removal.
func (m *Manager) Reconcile(f *source.File, u *ast.CompilationUnit) *ast.CompilationUnit {
	if len(m.adds) == 0 && len(m.removes) == 0 {
		return u
	}

	used := referencedIdentities(f, u)

	imports := u.Imports
	changed := false
	if len(m.removes) > 0 {
		kept := make([]*ast.ImportDecl, 0, len(imports))
		for _, imp := range imports {
			id := types.Identity(imp.Path)
			if !imp.Wildcard && !imp.Static && m.removes[id] && !used[id] {
				changed = true
				continue
			}
			kept = append(kept, imp)
		}
		imports = kept
	}

	simple := make(map[string]bool)
	for _, imp := range imports {
		if !imp.Wildcard {
			simple[types.Identity(imp.Path).Simple()] = true
		}
	}

	pkg := u.PackageName()
	for _, id := range m.adds {
		switch {
		case !used[id]:
			continue
		case id.Package() == "java.lang" || id.Package() == pkg || id.Package() == "":
			continue
		case simple[id.Simple()]:
			continue
		}
		imports = append(imports, ast.NewImport(string(id)))
		simple[id.Simple()] = true
		changed = true
	}

	if !changed {
		return u
	}
	out := *u
	out.Imports = imports
	out.MarkDirty()
	return &out
}

// referencedIdentities collects every type identity the unit's code still
// references, by resolved identity where present and by simple name against
// the unit's own imports otherwise.
func referencedIdentities(f *source.File, u *ast.CompilationUnit) map[types.Identity]bool {
	byName := make(map[string]types.Identity)
	for _, imp := range u.Imports {
		if !imp.Wildcard && !imp.Static {
			id := types.Identity(imp.Path)
			byName[id.Simple()] = id
		}
	}

	used := make(map[types.Identity]bool)
	mark := func(t *ast.TypeRef) {
		if t == nil {
			return
		}
		if t.Identity.Valid() {
			used[t.Identity] = true
			return
		}
		if !strings.Contains(t.Name, ".") {
			if id, ok := byName[t.Name]; ok {
				used[id] = true
			}
		}
	}
	ast.Inspect(u, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.TypeRef:
			mark(n)
		case *ast.RawStmt, *ast.RawExpr, *ast.RawMember:
			markRaw(f.Text(n.NodeSpan()), byName, used)
		case *ast.For:
			markRaw(f.Text(n.HeaderSpan), byName, used)
		case *ast.New:
			// An anonymous class body lives in the span tail after the last
			// structured child; nothing rewrites those bytes.
			tail := n.Span
			tail.Start = n.Type.Span.End
			for _, a := range n.Args {
				if end := a.NodeSpan().End; end > tail.Start {
					tail.Start = end
				}
			}
			if tail.Start < tail.End {
				markRaw(f.Text(tail), byName, used)
			}
		}
		return true
	})
	return used
}

// markRaw marks every imported simple name that appears as a whole
// identifier inside raw bytes the typed walk cannot see into.
func markRaw(text string, byName map[string]types.Identity, used map[types.Identity]bool) {
	for name, id := range byName {
		if used[id] {
			continue
		}
		if identifierIn(text, name) {
			used[id] = true
		}
	}
}

func identifierIn(text, name string) bool {
	for from := 0; ; {
		i := strings.Index(text[from:], name)
		if i < 0 {
			return false
		}
		i += from
		before := i == 0 || !identChar(text[i-1])
		afterAt := i + len(name)
		after := afterAt >= len(text) || !identChar(text[afterAt])
		if before && after {
			return true
		}
		from = i + 1
	}
}

func identChar(b byte) bool {
	return b == '_' || b == '$' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}
