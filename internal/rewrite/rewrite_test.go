package rewrite

import (
	"errors"
	"strings"
	"testing"

	"relog/internal/ast"
	"relog/internal/parser"
	"relog/internal/printer"
	"relog/internal/resolve"
	"relog/internal/source"
	"relog/internal/types"
)

func migrate(t *testing.T, src string) (string, bool) {
	t.Helper()
	out, changed, err := migrateErr(t, src, TemplateSynthesizer{})
	if err != nil {
		t.Fatal(err)
	}
	return out, changed
}

func migrateErr(t *testing.T, src string, synth Synthesizer) (string, bool, error) {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual("Test.java", []byte(src))
	f := fset.Get(id)
	res := parser.ParseFile(f, parser.Options{MaxErrors: 10})
	if res.Bag != nil && res.Bag.HasErrors() {
		t.Fatalf("parse errors in:\n%s", src)
	}
	rule := Default()
	resolve.Resolve(res.Unit, resolve.Options{Inherited: rule.ResolveOptions()})
	unit, changed, err := Migrate(f, res.Unit, rule, synth)
	return string(printer.Print(f, unit)), changed, err
}

const consoleAppender = `package com.example;

import org.apache.log4j.AppenderSkeleton;
import org.apache.log4j.spi.LoggingEvent;

public class ConsoleAppender extends AppenderSkeleton {

    @Override
    protected void append(LoggingEvent event) {
        String line = layout.format(event);
        System.out.print(line);
    }

    @Override
    public void close() {
    }

    @Override
    public boolean requiresLayout() {
        return true;
    }
}
`

const consoleAppenderMigrated = `package com.example;

import ch.qos.logback.classic.spi.ILoggingEvent;
import ch.qos.logback.core.AppenderBase;

public class ConsoleAppender extends AppenderBase<ILoggingEvent> {

    @Override
    protected void append(ILoggingEvent event) {
        String line = layout.doLayout(event);
        System.out.print(line);
    }
}
`

func TestMigrateConsoleAppender(t *testing.T) {
	got, changed := migrate(t, consoleAppender)
	if !changed {
		t.Fatal("expected a change")
	}
	if got != consoleAppenderMigrated {
		t.Fatalf("got:\n%s\nwant:\n%s", got, consoleAppenderMigrated)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	first, _ := migrate(t, consoleAppender)
	second, changed := migrate(t, first)
	if changed {
		t.Fatal("second run reported a change")
	}
	if second != first {
		t.Fatalf("second run drifted:\n%s", second)
	}
}

func TestCloseWithWorkIsRenamed(t *testing.T) {
	got, _ := migrate(t, `package p;

import org.apache.log4j.AppenderSkeleton;
import org.apache.log4j.spi.LoggingEvent;

class A extends AppenderSkeleton {
    protected void append(LoggingEvent e) {
    }

    public void close() {
        drain();
    }
}
`)
	want := `package p;

import ch.qos.logback.classic.spi.ILoggingEvent;
import ch.qos.logback.core.AppenderBase;

class A extends AppenderBase<ILoggingEvent> {
    protected void append(ILoggingEvent e) {
    }

    public void stop() {
        drain();
    }
}
`
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestAbstractCloseIsRenamed(t *testing.T) {
	got, _ := migrate(t, `package p;

import org.apache.log4j.AppenderSkeleton;

abstract class A extends AppenderSkeleton {
    public abstract void close();
}
`)
	want := `package p;

import ch.qos.logback.core.AppenderBase;
import ch.qos.logback.classic.spi.ILoggingEvent;

abstract class A extends AppenderBase<ILoggingEvent> {
    public abstract void stop();
}
`
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLifecycleMembersMatchAnySignature(t *testing.T) {
	got, _ := migrate(t, `package p;

import org.apache.log4j.AppenderSkeleton;
import org.apache.log4j.spi.LoggingEvent;

class A extends AppenderSkeleton {
    protected void append(LoggingEvent e) {
    }

    public boolean requiresLayout(int flag) {
        return true;
    }

    public void close(int mode) {
    }

    public void close(long mode) {
        drain(mode);
    }
}
`)
	want := `package p;

import ch.qos.logback.classic.spi.ILoggingEvent;
import ch.qos.logback.core.AppenderBase;

class A extends AppenderBase<ILoggingEvent> {
    protected void append(ILoggingEvent e) {
    }

    public void stop(long mode) {
        drain(mode);
    }
}
`
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnrelatedClassUntouched(t *testing.T) {
	src := `package p;

import org.apache.log4j.AppenderSkeleton;
import com.acme.BaseAppender;

class A extends BaseAppender {
    public void close() {
    }

    public boolean requiresLayout() {
        return true;
    }
}
`
	got, changed := migrate(t, src)
	if changed {
		t.Fatal("unrelated class reported changed")
	}
	if got != src {
		t.Fatalf("bytes drifted:\n%s", got)
	}
}

func TestWildcardImportFailsClosed(t *testing.T) {
	src := `package p;

import org.apache.log4j.*;

class A extends AppenderSkeleton {
    public void close() {
    }
}
`
	got, changed := migrate(t, src)
	if changed || got != src {
		t.Fatalf("unresolvable superclass was rewritten:\n%s", got)
	}
}

func TestQualifiedNamesWithoutImports(t *testing.T) {
	got, _ := migrate(t, `package p;

public class A extends org.apache.log4j.AppenderSkeleton {
    protected void append(org.apache.log4j.spi.LoggingEvent e) {
    }
}
`)
	want := `package p;

import ch.qos.logback.core.AppenderBase;
import ch.qos.logback.classic.spi.ILoggingEvent;

public class A extends AppenderBase<ILoggingEvent> {
    protected void append(ILoggingEvent e) {
    }
}
`
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatRenameIsScopedToLayout(t *testing.T) {
	got, _ := migrate(t, `package p;

import org.apache.log4j.AppenderSkeleton;
import org.apache.log4j.spi.LoggingEvent;

class A extends AppenderSkeleton {
    protected void append(LoggingEvent e) {
        layout.format(e);
        String s = "";
        s.format(e);
        format(e);
    }
}
`)
	wantCalls := `        layout.doLayout(e);
        String s = "";
        s.format(e);
        format(e);
`
	if !strings.Contains(got, wantCalls) {
		t.Fatalf("rename leaked outside the layout receiver:\n%s", got)
	}
}

func TestNestedClassIsMigrated(t *testing.T) {
	got, changed := migrate(t, `package p;

import org.apache.log4j.AppenderSkeleton;

class Holder {
    static class Inner extends AppenderSkeleton {
        public boolean requiresLayout() {
            return false;
        }
    }
}
`)
	if !changed {
		t.Fatal("nested match not rewritten")
	}
	if strings.Contains(got, "requiresLayout") || !strings.Contains(got, "extends AppenderBase<ILoggingEvent>") {
		t.Fatalf("got:\n%s", got)
	}
}

func TestSynthesisFailureLeavesUnitAlone(t *testing.T) {
	src := `package p;

import org.apache.log4j.AppenderSkeleton;

class A extends AppenderSkeleton {
}
`
	got, changed, err := migrateErr(t, src, failingSynth{})
	if err == nil {
		t.Fatal("expected an error")
	}
	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("error = %T", err)
	}
	if changed || got != src {
		t.Fatalf("failed unit was modified:\n%s", got)
	}
}

type failingSynth struct{}

func (failingSynth) Synthesize(string, ...types.Identity) (*ast.TypeRef, error) {
	return nil, errors.New("boom")
}

func TestQueueDrainsOnce(t *testing.T) {
	q := NewQueue()
	q.Enqueue(Pass{Kind: PassChangeType, From: "a.B", To: "c.D"})
	q.Enqueue(Pass{Kind: PassChangeType, From: "a.B", To: "c.D"})
	if q.Len() != 1 {
		t.Fatalf("duplicate pass queued, len = %d", q.Len())
	}
	q.Drain()
	defer func() {
		if recover() == nil {
			t.Fatal("second drain did not panic")
		}
	}()
	q.Drain()
}
