package rewrite

import "relog/internal/types"

// PassKind identifies one deferred whole-tree pass.
type PassKind uint8

const (
	// PassChangeType retargets every resolved reference From to To and
	// rewrites a matching single-type import in place.
	PassChangeType PassKind = iota
	// PassRenameMethod renames call sites of Decl.FromName to ToName.
	// Declarations keep their names; overrides are out of scope here.
	PassRenameMethod
)

// Pass is one queued follow-up traversal.
type Pass struct {
	Kind PassKind

	From types.Identity
	To   types.Identity

	Decl     types.Identity
	FromName string
	ToName   string
}

// Queue defers passes until the structural rewrite has finished, then hands
// them out once, in the order they were enqueued. A pass enqueued twice runs
// once; the second enqueue is dropped.
type Queue struct {
	passes  []Pass
	drained bool
}

func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends p unless an identical pass is already queued.
func (q *Queue) Enqueue(p Pass) {
	if q.drained {
		panic("rewrite: enqueue after drain")
	}
	for _, have := range q.passes {
		if have == p {
			return
		}
	}
	q.passes = append(q.passes, p)
}

// Drain returns the queued passes in FIFO order. It can be called once; the
// queue is spent afterwards.
func (q *Queue) Drain() []Pass {
	if q.drained {
		panic("rewrite: queue drained twice")
	}
	q.drained = true
	passes := q.passes
	q.passes = nil
	return passes
}

func (q *Queue) Len() int {
	return len(q.passes)
}
