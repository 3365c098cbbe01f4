package source

import (
	"testing"
)

func TestAddVirtualAndText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("A.java", []byte("class A {}\n"))

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected virtual flag on %q", f.Path)
	}
	if got := f.Text(Span{File: id, Start: 6, End: 7}); got != "A" {
		t.Fatalf("Text = %q, want %q", got, "A")
	}
	if got := f.Text(Span{File: id, Start: 5, End: 100}); got != "" {
		t.Fatalf("out-of-range Text = %q, want empty", got)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("B.java", []byte("package p;\n\nclass B {\n}\n"))

	tests := []struct {
		name  string
		off   uint32
		line  uint32
		col   uint32
	}{
		{name: "file start", off: 0, line: 1, col: 1},
		{name: "end of package", off: 9, line: 1, col: 10},
		{name: "class keyword", off: 12, line: 3, col: 1},
		{name: "closing brace", off: 22, line: 4, col: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start.Line != tt.line || start.Col != tt.col {
				t.Fatalf("Resolve(%d) = %d:%d, want %d:%d", tt.off, start.Line, start.Col, tt.line, tt.col)
			}
		})
	}
}

func TestNormalizeCRLF(t *testing.T) {
	got, changed := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	if !changed {
		t.Fatal("expected change")
	}
	if string(got) != "a\nb\rc\n" {
		t.Fatalf("normalizeCRLF = %q", got)
	}

	same, changed := normalizeCRLF([]byte("plain\n"))
	if changed || string(same) != "plain\n" {
		t.Fatalf("unexpected rewrite of clean input: %q", same)
	}
}

func TestSpanBetween(t *testing.T) {
	a := Span{File: 1, Start: 0, End: 4}
	b := Span{File: 1, Start: 10, End: 12}
	gap := Between(a, b)
	if gap.Start != 4 || gap.End != 10 {
		t.Fatalf("Between = %v", gap)
	}
}
