package printer

import (
	"strings"
	"testing"

	"relog/internal/ast"
	"relog/internal/parser"
	"relog/internal/source"
	"relog/internal/types"
)

func parse(t *testing.T, src string) (*source.File, *ast.CompilationUnit) {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual("Test.java", []byte(src))
	f := fset.Get(id)
	res := parser.ParseFile(f, parser.Options{MaxErrors: 10})
	if res.Bag != nil && res.Bag.HasErrors() {
		t.Fatalf("parse errors in:\n%s", src)
	}
	return f, res.Unit
}

const appenderSrc = `package com.example;

import org.apache.log4j.AppenderSkeleton;
import org.apache.log4j.spi.LoggingEvent;

// Console appender with odd   spacing   kept intact.
public class ConsoleAppender extends AppenderSkeleton {

    @Override
    protected void append( LoggingEvent event ) {
        System.out.println(layout.format(event)); /* inline */
    }

    public void close() {
    }

    // always true here
    public boolean requiresLayout() {
        return true;
    }
}
`

func TestPrintUnchangedIsByteIdentical(t *testing.T) {
	f, unit := parse(t, appenderSrc)
	out := Print(f, unit)
	if string(out) != appenderSrc {
		t.Fatalf("unchanged unit reprinted differently:\n%s", out)
	}
}

func TestPrintExtendsReplacement(t *testing.T) {
	f, unit := parse(t, appenderSrc)
	cls := unit.Types[0]

	cls.Extends = ast.NewTypeRef("ch.qos.logback.core.AppenderBase",
		ast.NewTypeRef("ch.qos.logback.classic.spi.ILoggingEvent"))
	cls.MarkDirty()
	unit.MarkDirty()

	want := strings.Replace(appenderSrc,
		"extends AppenderSkeleton {",
		"extends AppenderBase<ILoggingEvent> {", 1)
	if got := string(Print(f, unit)); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintMethodRename(t *testing.T) {
	f, unit := parse(t, appenderSrc)
	out := ast.RewriteUnit(unit, &ast.Visitor{
		Method: func(m *ast.MethodDecl) *ast.MethodDecl {
			if m.Name == "close" {
				return m.WithName("stop")
			}
			return m
		},
	})

	want := strings.Replace(appenderSrc, "public void close()", "public void stop()", 1)
	if got := string(Print(f, out)); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintMemberRemovalTakesLeadTrivia(t *testing.T) {
	f, unit := parse(t, appenderSrc)
	out := ast.RewriteUnit(unit, &ast.Visitor{
		Class: func(c *ast.ClassDecl) *ast.ClassDecl {
			kept := c.Members[:0:0]
			for _, m := range c.Members {
				if md, ok := m.(*ast.MethodDecl); ok && md.Name == "requiresLayout" {
					continue
				}
				kept = append(kept, m)
			}
			if len(kept) == len(c.Members) {
				return c
			}
			cp := *c
			cp.Members = kept
			cp.MarkDirty()
			return &cp
		},
	})

	got := string(Print(f, out))
	if strings.Contains(got, "requiresLayout") {
		t.Fatalf("removed member still printed:\n%s", got)
	}
	if strings.Contains(got, "always true here") {
		t.Errorf("removed member's comment survived:\n%s", got)
	}
	if !strings.HasSuffix(got, "    public void close() {\n    }\n}\n") {
		t.Errorf("class tail mangled:\n%s", got)
	}
}

func TestPrintTypeRetargets(t *testing.T) {
	src := `package p;

import java.util.List;
import org.apache.log4j.spi.LoggingEvent;

class Buffer {
    void push(LoggingEvent e, List<LoggingEvent> pending) {
        Object o = pending;
        ((LoggingEvent) o).getRenderedMessage();
    }
}
`
	f, unit := parse(t, src)
	out := ast.RewriteUnit(unit, &ast.Visitor{
		TypeRef: func(tr *ast.TypeRef) *ast.TypeRef {
			if tr.Name == "LoggingEvent" {
				return tr.Retarget(types.Identity("ch.qos.logback.classic.spi.ILoggingEvent"))
			}
			return tr
		},
	})

	want := strings.ReplaceAll(src, "LoggingEvent", "ILoggingEvent")
	want = strings.Replace(want,
		"import org.apache.log4j.spi.ILoggingEvent;",
		"import org.apache.log4j.spi.LoggingEvent;", 1)
	if got := string(Print(f, out)); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintImportEdits(t *testing.T) {
	src := `package p;

import org.apache.log4j.spi.LoggingEvent;
import org.apache.log4j.Layout;

class A {
    void m(LoggingEvent e) {
    }
}
`
	f, unit := parse(t, src)

	// Drop the first import, keep the second, append a synthesized one.
	cp := *unit
	cp.Imports = []*ast.ImportDecl{
		unit.Imports[1],
		ast.NewImport("ch.qos.logback.classic.spi.ILoggingEvent"),
	}
	cp.MarkDirty()

	want := `package p;

import org.apache.log4j.Layout;
import ch.qos.logback.classic.spi.ILoggingEvent;

class A {
    void m(LoggingEvent e) {
    }
}
`
	if got := string(Print(f, &cp)); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintRemoveAllImports(t *testing.T) {
	src := `package p;

import org.apache.log4j.Layout;

class A {
}
`
	f, unit := parse(t, src)
	cp := *unit
	cp.Imports = nil
	cp.MarkDirty()

	want := `package p;

class A {
}
`
	if got := string(Print(f, &cp)); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintAddImportWithoutSection(t *testing.T) {
	src := `package p;

class A {
}
`
	f, unit := parse(t, src)
	cp := *unit
	cp.Imports = []*ast.ImportDecl{ast.NewImport("ch.qos.logback.core.AppenderBase")}
	cp.MarkDirty()

	want := `package p;

import ch.qos.logback.core.AppenderBase;

class A {
}
`
	if got := string(Print(f, &cp)); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintImportPathRewrite(t *testing.T) {
	src := `package p;

import org.apache.log4j.spi.LoggingEvent;

class A {
}
`
	f, unit := parse(t, src)
	out := ast.RewriteUnit(unit, &ast.Visitor{
		Import: func(imp *ast.ImportDecl) *ast.ImportDecl {
			if imp.Path != "org.apache.log4j.spi.LoggingEvent" {
				return imp
			}
			cp := *imp
			cp.Path = "ch.qos.logback.classic.spi.ILoggingEvent"
			cp.MarkDirty()
			return &cp
		},
	})

	want := strings.Replace(src,
		"org.apache.log4j.spi.LoggingEvent",
		"ch.qos.logback.classic.spi.ILoggingEvent", 1)
	if got := string(Print(f, out)); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}
