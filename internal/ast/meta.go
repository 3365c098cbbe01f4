package ast

import "relog/internal/source"

// Node is implemented by every AST node.
type Node interface {
	NodeSpan() source.Span
	Changed() bool
}

// Meta carries the bookkeeping every node embeds.
type Meta struct {
	// Span is the node's location in the original source.
	// The zero span marks synthesized nodes.
	Span source.Span
	// Lead is the trivia (whitespace, comments) between the previous sibling
	// and this node. Deleting a node deletes its lead with it.
	Lead source.Span
	// Dirty is set when this node or a descendant no longer matches the
	// bytes at Span. Clean nodes print verbatim from source.
	Dirty bool
}

func (m *Meta) NodeSpan() source.Span { return m.Span }
func (m *Meta) Changed() bool         { return m.Dirty }

// MarkDirty flags the node as edited.
func (m *Meta) MarkDirty() { m.Dirty = true }

// Synthetic reports whether the node has no original source location.
func (m *Meta) Synthetic() bool { return !m.Span.Valid() }
