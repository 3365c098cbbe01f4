package ast

import (
	"relog/internal/source"
)

// CompilationUnit is the root node for one parsed source file.
// It owns every descendant node exclusively; no node is shared between units.
type CompilationUnit struct {
	Meta
	File    source.FileID
	Package *PackageDecl // nil in the default package
	Imports []*ImportDecl
	Types   []*ClassDecl

	// ImportsLead is the lead of the first import as parsed. When that import
	// is later removed, the first surviving import inherits this lead so the
	// blank line after the package declaration survives the edit.
	ImportsLead source.Span
	// ImportsEnd is the end offset of the last import as parsed, where
	// synthesized imports get appended. Zero when the unit had no imports.
	ImportsEnd uint32
}

// PackageDecl is a `package a.b.c;` declaration.
type PackageDecl struct {
	Meta
	Name string
}

// ImportDecl is a single `import a.b.C;` declaration.
type ImportDecl struct {
	Meta
	Static   bool
	Wildcard bool
	// Path is the dotted name without any trailing `.*`.
	Path string
	// PathSpan covers exactly the dotted name in the source (without `.*`).
	PathSpan source.Span
}

// NewImport builds a synthesized single-type import.
func NewImport(path string) *ImportDecl {
	return &ImportDecl{Meta: Meta{Dirty: true}, Path: path}
}

// PackageName returns the unit's package name, or "" in the default package.
func (u *CompilationUnit) PackageName() string {
	if u.Package == nil {
		return ""
	}
	return u.Package.Name
}
