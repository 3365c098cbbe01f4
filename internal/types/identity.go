// Package types defines the resolved identity attached to type references.
//
// Identity is deliberately opaque: two identities are equal iff their
// fully-qualified names match exactly. A reference that resolution could not
// attach an identity to carries None, and every comparison against None fails.
// Partial classpaths are normal input, so "unresolved" is a state, not an
// error.
package types

import "strings"

// Identity is the fully-qualified name of a resolved type.
// The zero value None means "resolution did not succeed".
type Identity string

// None marks an unresolved type reference.
const None Identity = ""

// Valid reports whether the identity carries a resolved name.
func (id Identity) Valid() bool {
	return id != None
}

func (id Identity) String() string {
	return string(id)
}

// Simple returns the name after the last dot: "org.x.Layout" -> "Layout".
func (id Identity) Simple() string {
	s := string(id)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Package returns the name before the last dot, or "" for unqualified names.
func (id Identity) Package() string {
	s := string(id)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return ""
}

// Is reports an exact fully-qualified match. Unresolved identities never
// match anything, including other unresolved identities.
func (id Identity) Is(other Identity) bool {
	return id.Valid() && id == other
}
