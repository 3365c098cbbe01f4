package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// StringLit represents a string literal.
	StringLit
	// CharLit represents a character literal.
	CharLit

	// KwPackage represents the 'package' keyword.
	KwPackage // package
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwInterface represents the 'interface' keyword.
	KwInterface // interface
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwExtends represents the 'extends' keyword.
	KwExtends // extends
	// KwImplements represents the 'implements' keyword.
	KwImplements // implements
	// KwThrows represents the 'throws' keyword.
	KwThrows // throws
	// KwNew represents the 'new' keyword.
	KwNew // new
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwTry represents the 'try' keyword.
	KwTry // try
	// KwVoid represents the 'void' keyword.
	KwVoid // void
	// KwPublic represents the 'public' modifier.
	KwPublic // public
	// KwPrivate represents the 'private' modifier.
	KwPrivate // private
	// KwProtected represents the 'protected' modifier.
	KwProtected // protected
	// KwAbstract represents the 'abstract' modifier.
	KwAbstract // abstract
	// KwFinal represents the 'final' modifier.
	KwFinal // final
	// KwSynchronized represents the 'synchronized' modifier.
	KwSynchronized // synchronized
	// KwNative represents the 'native' modifier.
	KwNative // native
	// KwTransient represents the 'transient' modifier.
	KwTransient // transient
	// KwVolatile represents the 'volatile' modifier.
	KwVolatile // volatile
	// KwStrictfp represents the 'strictfp' modifier.
	KwStrictfp // strictfp
	// KwDefault represents the 'default' modifier.
	KwDefault // default

	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// Semi represents ';'.
	Semi
	// Comma represents ','.
	Comma
	// Dot represents '.'.
	Dot
	// Ellipsis represents '...'.
	Ellipsis
	// At represents '@'.
	At
	// Lt represents '<'.
	Lt
	// Gt represents '>'.
	Gt
	// Assign represents a lone '='.
	Assign
	// Question represents '?'.
	Question
	// Colon represents ':'.
	Colon
	// ColonColon represents '::'.
	ColonColon
	// Arrow represents '->'.
	Arrow
	// Star represents '*'.
	Star
	// Operator is the catch-all kind for every other operator or punctuation
	// the parser never dispatches on (+, -, ==, &&, +=, ...).
	Operator
)

// String returns a short human-readable name for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

var kindNames = [...]string{
	Invalid:        "invalid",
	EOF:            "eof",
	Ident:          "ident",
	IntLit:         "int",
	FloatLit:       "float",
	StringLit:      "string",
	CharLit:        "char",
	KwPackage:      "package",
	KwImport:       "import",
	KwStatic:       "static",
	KwClass:        "class",
	KwInterface:    "interface",
	KwEnum:         "enum",
	KwExtends:      "extends",
	KwImplements:   "implements",
	KwThrows:       "throws",
	KwNew:          "new",
	KwReturn:       "return",
	KwIf:           "if",
	KwElse:         "else",
	KwWhile:        "while",
	KwFor:          "for",
	KwDo:           "do",
	KwTry:          "try",
	KwVoid:         "void",
	KwPublic:       "public",
	KwPrivate:      "private",
	KwProtected:    "protected",
	KwAbstract:     "abstract",
	KwFinal:        "final",
	KwSynchronized: "synchronized",
	KwNative:       "native",
	KwTransient:    "transient",
	KwVolatile:     "volatile",
	KwStrictfp:     "strictfp",
	KwDefault:      "default",
	LParen:         "(",
	RParen:         ")",
	LBrace:         "{",
	RBrace:         "}",
	LBracket:       "[",
	RBracket:       "]",
	Semi:           ";",
	Comma:          ",",
	Dot:            ".",
	Ellipsis:       "...",
	At:             "@",
	Lt:             "<",
	Gt:             ">",
	Assign:         "=",
	Question:       "?",
	Colon:          ":",
	ColonColon:     "::",
	Arrow:          "->",
	Star:           "*",
	Operator:       "op",
}
