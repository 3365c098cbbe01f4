package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"relog/internal/ast"
	"relog/internal/parser"
	"relog/internal/resolve"
	"relog/internal/rewrite"
	"relog/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.java>",
	Short: "Parse a Java source file and dump what the migration sees",
	Long:  `Parse shows the structure the rewrite operates on: declarations, the resolved identity of every type reference, and any diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParseCmd,
}

func init() {
	parseCmd.Flags().Bool("resolve", true, "attach type identities before dumping")
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	doResolve, err := cmd.Flags().GetBool("resolve")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}
	file := fileSet.Get(id)

	result := parser.ParseFile(file, parser.Options{MaxErrors: maxDiagnostics})
	if doResolve {
		resolve.Resolve(result.Unit, resolve.Options{Inherited: rewrite.Default().ResolveOptions()})
	}

	out := cmd.OutOrStdout()
	dumpUnit(out, result.Unit)

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		fmt.Fprintln(out)
		for _, d := range result.Bag.Items() {
			start, _ := fileSet.Resolve(d.Primary)
			fmt.Fprintf(out, "%s:%d:%d: %s[%s] %s\n",
				file.Path, start.Line, start.Col, d.Severity, d.Code.ID(), d.Message)
		}
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s: parse errors", file.Path)
	}
	return nil
}

func dumpUnit(out io.Writer, u *ast.CompilationUnit) {
	if name := u.PackageName(); name != "" {
		fmt.Fprintf(out, "package %s\n", name)
	}
	for _, imp := range u.Imports {
		line := "import " + imp.Path
		if imp.Static {
			line = "import static " + imp.Path
		}
		if imp.Wildcard {
			line += ".*"
		}
		fmt.Fprintln(out, line)
	}
	for _, cls := range u.Types {
		dumpClass(out, cls, 0)
	}
}

func dumpClass(out io.Writer, c *ast.ClassDecl, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(out, "%s%s %s", indent, classKindName(c.Kind), c.Name)
	if c.Extends != nil {
		fmt.Fprintf(out, " extends %s", typeRefLabel(c.Extends))
	}
	for i, impl := range c.Implements {
		if i == 0 {
			fmt.Fprint(out, " implements ")
		} else {
			fmt.Fprint(out, ", ")
		}
		fmt.Fprint(out, typeRefLabel(impl))
	}
	fmt.Fprintln(out)

	for _, m := range c.Members {
		switch m := m.(type) {
		case *ast.ClassDecl:
			dumpClass(out, m, depth+1)
		case *ast.MethodDecl:
			dumpMethod(out, m, depth+1)
		case *ast.FieldDecl:
			for _, v := range m.Vars {
				fmt.Fprintf(out, "%s  field %s %s\n", indent, typeRefLabel(m.Type), v.Name)
			}
		case *ast.RawMember:
			fmt.Fprintf(out, "%s  raw member\n", indent)
		}
	}
}

func dumpMethod(out io.Writer, m *ast.MethodDecl, depth int) {
	indent := strings.Repeat("  ", depth)
	kind := "method"
	if m.Ctor {
		kind = "ctor"
	}
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		params[i] = typeRefLabel(p.Type)
	}
	body := ""
	if m.Body == nil {
		body = " (no body)"
	} else if m.Body.IsEmpty() {
		body = " (empty body)"
	}
	fmt.Fprintf(out, "%s%s %s(%s)%s\n", indent, kind, m.Name, strings.Join(params, ", "), body)
}

func typeRefLabel(t *ast.TypeRef) string {
	if t == nil {
		return "?"
	}
	label := t.Canonical()
	if t.Identity.Valid() {
		label += " [" + string(t.Identity) + "]"
	}
	return label
}

func classKindName(k ast.ClassKind) string {
	switch k {
	case ast.KindInterface:
		return "interface"
	case ast.KindEnum:
		return "enum"
	default:
		return "class"
	}
}
