package resolve

import (
	"testing"

	"relog/internal/ast"
	"relog/internal/parser"
	"relog/internal/source"
	"relog/internal/types"
)

const (
	skeleton = types.Identity("org.apache.log4j.AppenderSkeleton")
	layout   = types.Identity("org.apache.log4j.Layout")
	event    = types.Identity("org.apache.log4j.spi.LoggingEvent")
)

func resolved(t *testing.T, src string, opts Options) *ast.CompilationUnit {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual("Test.java", []byte(src))
	res := parser.ParseFile(fset.Get(id), parser.Options{MaxErrors: 10})
	if res.Bag != nil && res.Bag.HasErrors() {
		t.Fatalf("parse errors in:\n%s", src)
	}
	Resolve(res.Unit, opts)
	return res.Unit
}

func inherited() Options {
	return Options{
		Inherited: map[types.Identity]map[string]types.Identity{
			skeleton: {"layout": layout},
		},
	}
}

func TestResolveTypeRefs(t *testing.T) {
	unit := resolved(t, `package com.example;

import org.apache.log4j.AppenderSkeleton;
import org.apache.log4j.spi.LoggingEvent;

public class FileAppender extends AppenderSkeleton {
    protected void append(LoggingEvent event) {
        String path = null;
        org.apache.log4j.Layout l = null;
        Unknown u = null;
    }
}
`, Options{})

	cls := unit.Types[0]
	if got := cls.Extends.Identity; got != skeleton {
		t.Errorf("extends identity = %q", got)
	}
	if got := cls.Extends.Identity; !got.Is(skeleton) {
		t.Errorf("extends does not match %q", skeleton)
	}

	m := methodNamed(t, cls, "append")
	if got := m.Params[0].Type.Identity; got != event {
		t.Errorf("param identity = %q", got)
	}

	wantLocals := []types.Identity{
		"java.lang.String",
		layout,
		types.None,
	}
	for i, want := range wantLocals {
		lv := m.Body.Stmts[i].(*ast.LocalVar)
		if got := lv.Type.Identity; got != want {
			t.Errorf("local %d identity = %q, want %q", i, got, want)
		}
	}
}

func TestUnresolvedNeverMatches(t *testing.T) {
	// A wildcard import could supply AppenderSkeleton, but single-file
	// evidence cannot prove it, so the reference stays unresolved.
	unit := resolved(t, `package p;

import org.apache.log4j.*;

class A extends AppenderSkeleton {
}
`, Options{})
	ext := unit.Types[0].Extends
	if ext.Identity.Valid() {
		t.Fatalf("identity = %q, want none", ext.Identity)
	}
	if ext.Identity.Is(skeleton) {
		t.Error("unresolved identity matched")
	}
}

func TestCallDeclFromReceiver(t *testing.T) {
	unit := resolved(t, `package com.example;

import org.apache.log4j.AppenderSkeleton;
import org.apache.log4j.Layout;
import org.apache.log4j.spi.LoggingEvent;

public class A extends AppenderSkeleton {
    private Layout backup;

    protected void append(LoggingEvent event) {
        layout.format(event);
        backup.format(event);
        this.append(event);
        super.close();
        ((Layout) resolveAny()).format(event);
        event.getMessage();
        helper().format(event);
    }
}
`, inherited())

	body := methodNamed(t, unit.Types[0], "append").Body
	self := types.Identity("com.example.A")

	want := []struct {
		name string
		decl types.Identity
	}{
		{"format", layout},   // inherited field receiver
		{"format", layout},   // declared field receiver
		{"append", self},     // this
		{"close", skeleton},  // super
		{"format", layout},   // cast receiver
		{"getMessage", event},
		{"format", types.None}, // call-result receiver is unknowable
	}
	for i, w := range want {
		call := body.Stmts[i].(*ast.ExprStmt).X.(*ast.Call)
		if call.Name != w.name {
			t.Fatalf("stmt %d call = %q, want %q", i, call.Name, w.name)
		}
		if call.Decl != w.decl {
			t.Errorf("stmt %d decl = %q, want %q", i, call.Decl, w.decl)
		}
	}
}

func TestLocalsShadowAndScope(t *testing.T) {
	unit := resolved(t, `package p;

import org.apache.log4j.Layout;

class A {
    void m(Layout layout) {
        layout.format(null);
        if (true) {
            String layout = "x";
        }
        layout.format(null);
    }
}
`, Options{})

	body := methodNamed(t, unit.Types[0], "m").Body
	first := body.Stmts[0].(*ast.ExprStmt).X.(*ast.Call)
	last := body.Stmts[2].(*ast.ExprStmt).X.(*ast.Call)
	if first.Decl != layout || last.Decl != layout {
		t.Errorf("decls = %q, %q; shadowing leaked across blocks", first.Decl, last.Decl)
	}
}

func TestStaticReceiverChain(t *testing.T) {
	unit := resolved(t, `package p;

class A {
    void m() {
        org.apache.log4j.Layout.getDefault();
        System.out.println("x");
    }
}
`, Options{})

	body := methodNamed(t, unit.Types[0], "m").Body
	qualified := body.Stmts[0].(*ast.ExprStmt).X.(*ast.Call)
	if qualified.Decl != layout {
		t.Errorf("qualified static decl = %q", qualified.Decl)
	}
	println := body.Stmts[1].(*ast.ExprStmt).X.(*ast.Call)
	if println.Decl.Valid() {
		t.Errorf("System.out chain decl = %q, want none", println.Decl)
	}
}

func TestNestedClassIdentity(t *testing.T) {
	unit := resolved(t, `package p;

class Outer {
    class Inner {
        void m() {
            run();
        }
    }
}
`, Options{})

	inner := unit.Types[0].Members[0].(*ast.ClassDecl)
	call := methodNamed(t, inner, "m").Body.Stmts[0].(*ast.ExprStmt).X.(*ast.Call)
	if got := call.Decl; got != "p.Outer.Inner" {
		t.Errorf("unqualified call decl = %q", got)
	}
}

func methodNamed(t *testing.T, cls *ast.ClassDecl, name string) *ast.MethodDecl {
	t.Helper()
	for _, m := range cls.Members {
		if md, ok := m.(*ast.MethodDecl); ok && md.Name == name {
			return md
		}
	}
	t.Fatalf("method %q not found", name)
	return nil
}
