package token

var keywords = map[string]Kind{
	"package":      KwPackage,
	"import":       KwImport,
	"static":       KwStatic,
	"class":        KwClass,
	"interface":    KwInterface,
	"enum":         KwEnum,
	"extends":      KwExtends,
	"implements":   KwImplements,
	"throws":       KwThrows,
	"new":          KwNew,
	"return":       KwReturn,
	"if":           KwIf,
	"else":         KwElse,
	"while":        KwWhile,
	"for":          KwFor,
	"do":           KwDo,
	"try":          KwTry,
	"void":         KwVoid,
	"public":       KwPublic,
	"private":      KwPrivate,
	"protected":    KwProtected,
	"abstract":     KwAbstract,
	"final":        KwFinal,
	"synchronized": KwSynchronized,
	"native":       KwNative,
	"transient":    KwTransient,
	"volatile":     KwVolatile,
	"strictfp":     KwStrictfp,
	"default":      KwDefault,
}

// LookupIdent maps an identifier to its keyword kind, or Ident if it is not
// one of the keywords the parser dispatches on.
func LookupIdent(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Ident
}
