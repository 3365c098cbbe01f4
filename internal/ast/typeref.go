package ast

import (
	"strings"

	"relog/internal/source"
	"relog/internal/types"
)

// TypeRef is a reference to a type: a simple or dotted name, optional generic
// arguments, and an optional array suffix (the suffix stays in the raw bytes
// after the structured children).
type TypeRef struct {
	Meta
	// Name is the name as written: "Layout", "org.apache.log4j.Layout", "?".
	// After a type substitution it holds the replacement's simple name.
	Name     string
	NameSpan source.Span
	Args     []*TypeRef
	// Identity is attached by the resolver. None means the reference cannot
	// be matched against anything.
	Identity types.Identity
}

// NewTypeRef builds a synthesized, resolved type reference.
func NewTypeRef(id types.Identity, args ...*TypeRef) *TypeRef {
	return &TypeRef{
		Meta:     Meta{Dirty: true},
		Name:     id.Simple(),
		Identity: id,
		Args:     args,
	}
}

// Retarget returns a copy of the reference pointing at id, printed as id's
// simple name in place of the original name. Generic arguments carry over.
func (t *TypeRef) Retarget(id types.Identity) *TypeRef {
	out := *t
	out.Name = id.Simple()
	out.Identity = id
	out.MarkDirty()
	return &out
}

// Canonical renders the reference as canonical Java text, used for
// synthesized nodes that have no source bytes.
func (t *TypeRef) Canonical() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Canonical())
	}
	b.WriteByte('>')
	return b.String()
}
