package token

import "relog/internal/source"

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsModifier reports whether the token is a Java member modifier.
func (t Token) IsModifier() bool {
	switch t.Kind {
	case KwPublic, KwPrivate, KwProtected, KwAbstract, KwFinal, KwStatic,
		KwSynchronized, KwNative, KwTransient, KwVolatile, KwStrictfp, KwDefault:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether the token is a literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsTypeStart reports whether the token can begin a type reference.
// Primitive type names lex as identifiers, so Ident covers them too.
func (t Token) IsTypeStart() bool {
	return t.Kind == Ident || t.Kind == KwVoid
}
