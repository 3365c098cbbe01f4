package parser

import (
	"testing"

	"relog/internal/ast"
	"relog/internal/source"
)

func parseSrc(t *testing.T, src string) *ast.CompilationUnit {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual("Test.java", []byte(src))
	res := ParseFile(fset.Get(id), Options{MaxErrors: 10})
	if res.Bag != nil && res.Bag.HasErrors() {
		for _, d := range res.Bag.Items() {
			t.Logf("diag: %s %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("unexpected parse errors in:\n%s", src)
	}
	return res.Unit
}

const appenderSrc = `package com.example.logging;

import org.apache.log4j.AppenderSkeleton;
import org.apache.log4j.spi.LoggingEvent;

// Writes events to standard output.
public class ConsoleAppender extends AppenderSkeleton {

    private int count;

    public ConsoleAppender(String name) {
        this.count = 0;
    }

    @Override
    protected void append(LoggingEvent event) {
        String line = layout.format(event);
        System.out.println(line);
    }

    public void close() {
    }

    public boolean requiresLayout() {
        return true;
    }
}
`

func TestParseAppenderUnit(t *testing.T) {
	unit := parseSrc(t, appenderSrc)

	if unit.Package == nil || unit.Package.Name != "com.example.logging" {
		t.Fatalf("package = %+v", unit.Package)
	}
	if len(unit.Imports) != 2 {
		t.Fatalf("imports = %d, want 2", len(unit.Imports))
	}
	if got := unit.Imports[0].Path; got != "org.apache.log4j.AppenderSkeleton" {
		t.Errorf("import[0] = %q", got)
	}
	if got := unit.Imports[1].Path; got != "org.apache.log4j.spi.LoggingEvent" {
		t.Errorf("import[1] = %q", got)
	}
	if unit.ImportsEnd != unit.Imports[1].Span.End {
		t.Errorf("ImportsEnd = %d, want %d", unit.ImportsEnd, unit.Imports[1].Span.End)
	}

	if len(unit.Types) != 1 {
		t.Fatalf("types = %d, want 1", len(unit.Types))
	}
	cls := unit.Types[0]
	if cls.Name != "ConsoleAppender" || cls.Kind != ast.KindClass {
		t.Fatalf("class = %q kind %d", cls.Name, cls.Kind)
	}
	if cls.Extends == nil || cls.Extends.Name != "AppenderSkeleton" {
		t.Fatalf("extends = %+v", cls.Extends)
	}
	if cls.ExtendsSpan != cls.Extends.Span {
		t.Errorf("ExtendsSpan = %v, extends span = %v", cls.ExtendsSpan, cls.Extends.Span)
	}
	if cls.TailStart <= cls.BodyOpen {
		t.Errorf("TailStart %d not past BodyOpen %d", cls.TailStart, cls.BodyOpen)
	}

	if len(cls.Members) != 5 {
		t.Fatalf("members = %d, want 5", len(cls.Members))
	}

	field, ok := cls.Members[0].(*ast.FieldDecl)
	if !ok || field.Vars[0].Name != "count" {
		t.Fatalf("member[0] = %#v", cls.Members[0])
	}

	ctor, ok := cls.Members[1].(*ast.MethodDecl)
	if !ok || !ctor.Ctor || ctor.Name != "ConsoleAppender" {
		t.Fatalf("member[1] = %#v", cls.Members[1])
	}
	if len(ctor.Params) != 1 || ctor.Params[0].Name != "name" {
		t.Fatalf("ctor params = %+v", ctor.Params)
	}

	app := method(t, cls, "append")
	if app.Ret == nil || app.Ret.Name != "void" {
		t.Errorf("append ret = %+v", app.Ret)
	}
	if len(app.Params) != 1 || app.Params[0].Type.Name != "LoggingEvent" {
		t.Fatalf("append params = %+v", app.Params)
	}
	if len(app.Body.Stmts) != 2 {
		t.Fatalf("append body stmts = %d", len(app.Body.Stmts))
	}
	lv, ok := app.Body.Stmts[0].(*ast.LocalVar)
	if !ok || lv.Type.Name != "String" {
		t.Fatalf("stmt[0] = %#v", app.Body.Stmts[0])
	}
	call, ok := lv.Vars[0].Init.(*ast.Call)
	if !ok || call.Name != "format" {
		t.Fatalf("init = %#v", lv.Vars[0].Init)
	}
	recv, ok := call.Recv.(*ast.Ident)
	if !ok || recv.Name != "layout" {
		t.Fatalf("recv = %#v", call.Recv)
	}

	if body := method(t, cls, "close").Body; body == nil || !body.IsEmpty() {
		t.Errorf("close body = %+v, want present and empty", body)
	}
	rl := method(t, cls, "requiresLayout")
	if len(rl.Body.Stmts) != 1 {
		t.Fatalf("requiresLayout stmts = %d", len(rl.Body.Stmts))
	}
	if _, ok := rl.Body.Stmts[0].(*ast.Return); !ok {
		t.Errorf("requiresLayout stmt = %#v", rl.Body.Stmts[0])
	}
}

func method(t *testing.T, cls *ast.ClassDecl, name string) *ast.MethodDecl {
	t.Helper()
	for _, m := range cls.Members {
		if md, ok := m.(*ast.MethodDecl); ok && md.Name == name {
			return md
		}
	}
	t.Fatalf("method %q not found", name)
	return nil
}

func TestParseMemberShapes(t *testing.T) {
	src := `package p;

interface Sink extends Closeable, Flushable {
    void accept(String s) throws IOException;
}

class Holder {
    java.util.List<String> names = new java.util.ArrayList<>();
    static { register(); }
    abstract void run();
    <T> T pick(T a, T... rest) { return a; }
}
`
	unit := parseSrc(t, src)
	if len(unit.Types) != 2 {
		t.Fatalf("types = %d", len(unit.Types))
	}

	iface := unit.Types[0]
	if iface.Kind != ast.KindInterface || iface.Extends != nil {
		t.Fatalf("interface parsed as %+v", iface)
	}
	if len(iface.Implements) != 2 {
		t.Fatalf("interface supertypes = %d", len(iface.Implements))
	}
	accept := method(t, iface, "accept")
	if accept.Body != nil {
		t.Errorf("interface method body = %+v, want nil", accept.Body)
	}

	holder := unit.Types[1]
	field, ok := holder.Members[0].(*ast.FieldDecl)
	if !ok {
		t.Fatalf("member[0] = %#v", holder.Members[0])
	}
	if field.Type.Name != "java.util.List" || len(field.Type.Args) != 1 {
		t.Errorf("field type = %+v", field.Type)
	}
	if _, ok := holder.Members[1].(*ast.RawMember); !ok {
		t.Errorf("static block = %#v, want RawMember", holder.Members[1])
	}
	if run := method(t, holder, "run"); run.Body != nil {
		t.Errorf("abstract method body = %+v, want nil", run.Body)
	}
	pick := method(t, holder, "pick")
	if len(pick.Params) != 2 {
		t.Errorf("generic method params = %+v", pick.Params)
	}
}

func TestStatementShapes(t *testing.T) {
	tests := []struct {
		name string
		stmt string
		want string
	}{
		{"qualified call", `a.b.c();`, "*ast.ExprStmt"},
		{"local with new", `Foo f = new Foo();`, "*ast.LocalVar"},
		{"array local", `int[] xs = new int[3];`, "*ast.LocalVar"},
		{"generic local", `Map<String, List<Integer>> m = null;`, "*ast.LocalVar"},
		{"final local", `final String s = "x";`, "*ast.LocalVar"},
		{"assignment", `x = y;`, "*ast.ExprStmt"},
		{"compound assign", `count += 1;`, "*ast.ExprStmt"},
		{"comparison", `ok = a < b;`, "*ast.ExprStmt"},
		{"return", `return;`, "*ast.Return"},
		{"if", `if (x) { y(); }`, "*ast.If"},
		{"while", `while (x) y();`, "*ast.While"},
		{"for", `for (int i = 0; i < n; i++) { use(i); }`, "*ast.For"},
		{"for each", `for (String s : items) use(s);`, "*ast.For"},
		{"try", `try { open(); } catch (Exception e) { log(e); } finally { close(); }`, "*ast.RawStmt"},
		{"do while", `do { tick(); } while (running);`, "*ast.RawStmt"},
		{"switch", `switch (kind) { case 1: break; default: break; }`, "*ast.RawStmt"},
		{"throw", `throw new IllegalStateException("no");`, "*ast.RawStmt"},
		{"synchronized", `synchronized (lock) { bump(); }`, "*ast.RawStmt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := parseSrc(t, "class C { void m() { "+tt.stmt+" } }")
			body := method(t, unit.Types[0], "m").Body
			if len(body.Stmts) != 1 {
				t.Fatalf("stmts = %d, want 1", len(body.Stmts))
			}
			if got := typeName(body.Stmts[0]); got != tt.want {
				t.Errorf("stmt = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(n ast.Node) string {
	switch n.(type) {
	case *ast.ExprStmt:
		return "*ast.ExprStmt"
	case *ast.LocalVar:
		return "*ast.LocalVar"
	case *ast.Return:
		return "*ast.Return"
	case *ast.If:
		return "*ast.If"
	case *ast.While:
		return "*ast.While"
	case *ast.For:
		return "*ast.For"
	case *ast.RawStmt:
		return "*ast.RawStmt"
	case *ast.Block:
		return "*ast.Block"
	default:
		return "other"
	}
}

func TestExpressionShapes(t *testing.T) {
	unit := parseSrc(t, `class C {
    void m() {
        Object o = (Layout) source;
        int v = (a + b) * c;
        boolean e = o instanceof LoggingEvent;
        Runnable r = () -> run();
        java.util.function.Consumer<String> p = System.out::println;
    }
}`)
	body := method(t, unit.Types[0], "m").Body

	cast, ok := body.Stmts[0].(*ast.LocalVar).Vars[0].Init.(*ast.Cast)
	if !ok || cast.Type.Name != "Layout" {
		t.Fatalf("stmt[0] init = %#v", body.Stmts[0].(*ast.LocalVar).Vars[0].Init)
	}
	if _, ok := cast.X.(*ast.Ident); !ok {
		t.Errorf("cast operand = %#v", cast.X)
	}

	bin, ok := body.Stmts[1].(*ast.LocalVar).Vars[0].Init.(*ast.Binary)
	if !ok {
		t.Fatalf("stmt[1] init = %#v", body.Stmts[1].(*ast.LocalVar).Vars[0].Init)
	}
	if _, ok := bin.X.(*ast.Paren); !ok {
		t.Errorf("grouped operand = %#v", bin.X)
	}

	inst, ok := body.Stmts[2].(*ast.LocalVar).Vars[0].Init.(*ast.Binary)
	if !ok {
		t.Fatalf("stmt[2] init = %#v", body.Stmts[2].(*ast.LocalVar).Vars[0].Init)
	}
	te, ok := inst.Y.(*ast.TypeExpr)
	if !ok || te.Type.Name != "LoggingEvent" {
		t.Errorf("instanceof type = %#v", inst.Y)
	}

	if _, ok := body.Stmts[3].(*ast.LocalVar).Vars[0].Init.(*ast.RawExpr); !ok {
		t.Errorf("lambda init = %#v", body.Stmts[3].(*ast.LocalVar).Vars[0].Init)
	}
	if _, ok := body.Stmts[4].(*ast.LocalVar).Vars[0].Init.(*ast.RawExpr); !ok {
		t.Errorf("method ref init = %#v", body.Stmts[4].(*ast.LocalVar).Vars[0].Init)
	}
}

func TestMemberLeadSpans(t *testing.T) {
	unit := parseSrc(t, appenderSrc)
	cls := unit.Types[0]
	f := sourceFileOf(t, appenderSrc)

	// Each member's lead runs from the previous token to the member's start,
	// so deleting a member removes its comments and blank lines with it.
	app := method(t, cls, "append")
	lead := f.Text(app.Lead)
	if lead == "" || lead[0] != '\n' {
		t.Errorf("append lead = %q", lead)
	}
	for _, m := range cls.Members {
		if m.NodeSpan().Start < cls.BodyOpen {
			t.Errorf("member span %v starts before body open %d", m.NodeSpan(), cls.BodyOpen)
		}
	}
}

func sourceFileOf(t *testing.T, src string) *source.File {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual("Test.java", []byte(src))
	return fset.Get(id)
}

func TestRecoveryKeepsGoing(t *testing.T) {
	fset := source.NewFileSet()
	id := fset.AddVirtual("Bad.java", []byte(`package p;
class C {
    void good() { ok(); }
    %%%
    void alsoGood() { ok(); }
}`))
	res := ParseFile(fset.Get(id), Options{MaxErrors: 10})
	if res.Bag == nil || !res.Bag.HasErrors() {
		t.Fatal("expected parse errors")
	}
	cls := res.Unit.Types[0]
	method(t, cls, "good")
	method(t, cls, "alsoGood")
}
