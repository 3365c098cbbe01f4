package source

import "fmt"

// Span is a half-open byte range [Start, End) inside one file.
// The zero Span marks synthesized nodes that have no source location.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

// Valid reports whether the span points at real source text.
// Synthesized nodes carry the zero span and are never valid.
func (s Span) Valid() bool {
	return s.End > s.Start || s.Start > 0
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover extends s to include other. Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Between returns the gap span [a.End, b.Start) in a's file.
func Between(a, b Span) Span {
	return Span{File: a.File, Start: a.End, End: b.Start}
}
