package ast

import (
	"relog/internal/source"
)

// ClassKind distinguishes the three type-declaration forms the parser keeps.
type ClassKind uint8

const (
	KindClass ClassKind = iota
	KindInterface
	KindEnum
)

// Member is a direct member of a class body.
type Member interface {
	Node
	member()
}

// ClassDeclaration is a class, interface, or enum declaration, possibly
// nested inside another class.
type ClassDecl struct {
	Meta
	Kind     ClassKind
	Name     string
	NameSpan source.Span
	// Extends is the superclass reference, nil when absent. Its resolved
	// identity, when attached, is what the hierarchy matcher compares.
	Extends *TypeRef
	// ExtendsSpan is the original source span of the extends type, kept even
	// after the reference is replaced by a synthesized one.
	ExtendsSpan source.Span
	Implements  []*TypeRef
	Members     []Member
	// BodyOpen is the offset of the body's '{'.
	BodyOpen uint32
	// TailStart is the end offset of the last member as parsed (or the byte
	// after '{' for an empty body). The printer emits [TailStart, Span.End)
	// verbatim after the surviving members.
	TailStart uint32
}

func (*ClassDecl) member() {}

// MethodDecl is a method or constructor declaration.
// Annotations, modifiers, type parameters, and the throws clause live in the
// byte gaps around the structured children, so a rename touches nothing but
// the name itself.
type MethodDecl struct {
	Meta
	// Ret is the return type; nil for constructors.
	Ret      *TypeRef
	Name     string
	NameSpan source.Span
	Params   []*Param
	// Body is nil when the declaration ends with ';' (abstract or interface
	// methods). An absent body is a distinct state from an empty one.
	Body *Block
	Ctor bool
}

func (*MethodDecl) member() {}

// WithName returns a copy of the method renamed to name. The copy keeps the
// original span so everything but the name prints verbatim.
func (m *MethodDecl) WithName(name string) *MethodDecl {
	if m.Name == name {
		return m
	}
	out := *m
	out.Name = name
	out.MarkDirty()
	return &out
}

// Param is a single method parameter.
type Param struct {
	Meta
	Type *TypeRef
	Name string
}

// FieldDecl is a field declaration with one or more declarators.
type FieldDecl struct {
	Meta
	Type *TypeRef
	Vars []*VarDecl
}

func (*FieldDecl) member() {}

// VarDecl is one declarator: a name with an optional initializer.
type VarDecl struct {
	Meta
	Name     string
	NameSpan source.Span
	Init     Expr // nil when absent
}

// RawMember is a member the parser keeps only as bytes: initializer blocks
// and anything else outside the subset. Never edited.
type RawMember struct {
	Meta
}

func (*RawMember) member() {}
