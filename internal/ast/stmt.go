package ast

import "relog/internal/source"

// Stmt is a statement inside a method body.
type Stmt interface {
	Node
	stmt()
}

// Block is a `{ ... }` statement sequence.
type Block struct {
	Meta
	Stmts []Stmt
}

func (*Block) stmt() {}

// IsEmpty reports whether the block holds no statements. Comments inside an
// otherwise empty block do not count as statements.
func (b *Block) IsEmpty() bool {
	return len(b.Stmts) == 0
}

// LocalVar is a `Type name = init, name2;` local variable statement.
type LocalVar struct {
	Meta
	Type *TypeRef
	Vars []*VarDecl
}

func (*LocalVar) stmt() {}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Meta
	X Expr
}

func (*ExprStmt) stmt() {}

// Return is a `return;` or `return expr;` statement.
type Return struct {
	Meta
	X Expr // nil for bare return
}

func (*Return) stmt() {}

// If is an if statement with an optional else branch.
type If struct {
	Meta
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

func (*If) stmt() {}

// While is a while loop.
type While struct {
	Meta
	Cond Expr
	Body Stmt
}

func (*While) stmt() {}

// For is any for loop. The header is kept as raw bytes; only the body is
// structured.
type For struct {
	Meta
	HeaderSpan source.Span
	Body       Stmt
}

func (*For) stmt() {}

// RawStmt is a statement outside the subset (try, switch, throw, do, ...),
// kept as bytes and never edited.
type RawStmt struct {
	Meta
}

func (*RawStmt) stmt() {}
