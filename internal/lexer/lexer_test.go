package lexer

import (
	"testing"

	"relog/internal/diag"
	"relog/internal/source"
	"relog/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.java", []byte(src))
	lx := New(fs.Get(id), nil)

	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
		if len(toks) > 10000 {
			t.Fatal("lexer did not terminate")
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexClassHeader(t *testing.T) {
	toks := lexAll(t, "public class MyAppender extends AppenderSkeleton {}")
	want := []token.Kind{
		token.KwPublic, token.KwClass, token.Ident, token.KwExtends, token.Ident,
		token.LBrace, token.RBrace,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
	if toks[2].Text != "MyAppender" {
		t.Fatalf("class name text = %q", toks[2].Text)
	}
}

func TestLexSkipsComments(t *testing.T) {
	toks := lexAll(t, "// line\n/* block\n   comment */ import org.x.Y;")
	if toks[0].Kind != token.KwImport {
		t.Fatalf("first token = %v, want import", toks[0].Kind)
	}
	// Spans still index the original bytes, comments included.
	if toks[0].Span.Start != 31 {
		t.Fatalf("import starts at %d", toks[0].Span.Start)
	}
}

func TestLexOperatorsAndGenerics(t *testing.T) {
	toks := lexAll(t, "Map<String, List<Integer>> m = x >= 1 && y != null ? a : b;")
	got := kinds(toks)
	want := []token.Kind{
		token.Ident, token.Lt, token.Ident, token.Comma, token.Ident, token.Lt,
		token.Ident, token.Gt, token.Gt, token.Ident, token.Assign, token.Ident,
		token.Operator, token.IntLit, token.Operator, token.Ident, token.Operator,
		token.Ident, token.Question, token.Ident, token.Colon, token.Ident, token.Semi,
	}
	if len(got) != len(want) {
		t.Fatalf("token kinds = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestLexLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind token.Kind
	}{
		{name: "int", src: "42", kind: token.IntLit},
		{name: "long suffix", src: "42L", kind: token.IntLit},
		{name: "hex", src: "0xFF_EC", kind: token.IntLit},
		{name: "float", src: "3.14", kind: token.FloatLit},
		{name: "float suffix", src: "1f", kind: token.FloatLit},
		{name: "exponent", src: "1e9", kind: token.FloatLit},
		{name: "string escape", src: `"a\"b"`, kind: token.StringLit},
		{name: "char", src: "'\\n'", kind: token.CharLit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexAll(t, tt.src)
			if len(toks) != 1 {
				t.Fatalf("got %d tokens: %v", len(toks), toks)
			}
			if toks[0].Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", toks[0].Kind, tt.kind)
			}
			if toks[0].Text != tt.src {
				t.Fatalf("text = %q, want %q", toks[0].Text, tt.src)
			}
		})
	}
}

func TestLexUnterminatedStringReports(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.java", []byte(`String s = "oops`))
	rep := diag.NewBagReporter(10)
	lx := New(fs.Get(id), rep)

	for lx.Next().Kind != token.EOF { //nolint:revive // drain
	}
	if !rep.Bag.HasErrors() {
		t.Fatal("expected an unterminated string diagnostic")
	}
	if rep.Bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("code = %v", rep.Bag.Items()[0].Code)
	}
}
