package ast

import (
	"relog/internal/source"
	"relog/internal/types"
)

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Ident is a plain identifier.
type Ident struct {
	Meta
	Name string
}

func (*Ident) expr() {}

// Lit is any literal; the bytes at Span are the literal.
type Lit struct {
	Meta
}

func (*Lit) expr() {}

// Select is a field access or qualified name segment: X.Name.
type Select struct {
	Meta
	X        Expr
	Name     string
	NameSpan source.Span
}

func (*Select) expr() {}

// Call is a method invocation: Recv.Name(Args) or Name(Args).
type Call struct {
	Meta
	Recv     Expr // nil for unqualified calls
	Name     string
	NameSpan source.Span
	Args     []Expr
	// Decl is the resolved declaring type of the invoked method, when the
	// resolver could determine it from the receiver's static type. Renames
	// are scoped by this identity, never by the name alone.
	Decl types.Identity
}

func (*Call) expr() {}

// WithName returns a copy of the call with the method name replaced.
func (c *Call) WithName(name string) *Call {
	if c.Name == name {
		return c
	}
	out := *c
	out.Name = name
	out.MarkDirty()
	return &out
}

// New is an object or array creation: new Type(Args) / new Type[...].
type New struct {
	Meta
	Type *TypeRef
	Args []Expr
}

func (*New) expr() {}

// TypeExpr is a type in expression position, as on the right of instanceof.
type TypeExpr struct {
	Meta
	Type *TypeRef
}

func (*TypeExpr) expr() {}

// Cast is a cast expression: (Type) X.
type Cast struct {
	Meta
	Type *TypeRef
	X    Expr
}

func (*Cast) expr() {}

// Unary is a prefix operator applied to X; the operator is in the raw gap.
type Unary struct {
	Meta
	X Expr
}

func (*Unary) expr() {}

// Binary is X op Y for any binary operator, including instanceof.
type Binary struct {
	Meta
	X Expr
	Y Expr
}

func (*Binary) expr() {}

// Assign is X = Y, including compound assignment operators.
type Assign struct {
	Meta
	X Expr
	Y Expr
}

func (*Assign) expr() {}

// Ternary is Cond ? Then : Else.
type Ternary struct {
	Meta
	Cond Expr
	Then Expr
	Else Expr
}

func (*Ternary) expr() {}

// Paren is a parenthesized expression.
type Paren struct {
	Meta
	X Expr
}

func (*Paren) expr() {}

// Index is an array access X[I].
type Index struct {
	Meta
	X Expr
	I Expr
}

func (*Index) expr() {}

// RawExpr is an expression outside the subset (lambda, method reference,
// array initializer, ...), kept as bytes and never edited.
type RawExpr struct {
	Meta
}

func (*RawExpr) expr() {}
