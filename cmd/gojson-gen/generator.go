package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// structMember mirrors describe.Member, but carries a field index rather
// than a reflect.Type: the generated code resolves the Type at init time
// via reflect.TypeOf(zero).Field(i).Type, so generator.go never has to
// print an arbitrary Go type expression.
type structMember struct {
	Name  string
	Field int
}

// structDecl is one struct type found in an input file, along with the
// members the generated code should register for it.
type structDecl struct {
	Name    string
	Members []structMember
}

// findStructs parses src (one Go source file's contents) and returns
// every struct type declaration in it, tagged the way describe.compute
// reads json tags. Anonymous (embedded) fields are registered under
// their own type name rather than promoted into the parent: unlike
// describe's reflection path, the generator works file-by-file and
// cannot always resolve an embedded field's own members.
func findStructs(filename string, src []byte) ([]structDecl, string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w", filename, err)
	}

	var decls []structDecl

	ast.Inspect(f, func(n ast.Node) bool {
		ts, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}
		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			return true
		}
		decls = append(decls, structDecl{
			Name:    ts.Name.Name,
			Members: structMembers(st),
		})
		return true
	})

	return decls, f.Name.Name, nil
}

func structMembers(st *ast.StructType) []structMember {
	var out []structMember
	field := 0

	for _, f := range st.Fields.List {
		names := f.Names
		if len(names) == 0 {
			// Anonymous field: registered under its declared type name.
			names = []*ast.Ident{{Name: embeddedName(f.Type)}}
		}

		tag := ""
		if f.Tag != nil {
			if unquoted, err := strconv.Unquote(f.Tag.Value); err == nil {
				tag = unquoted
			}
		}

		for _, n := range names {
			name, skip := memberName(n.Name, tag)
			if !skip {
				out = append(out, structMember{Name: name, Field: field})
			}
			field++
		}
	}

	return out
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	default:
		return "_"
	}
}

func memberName(goName, rawTag string) (name string, skip bool) {
	if goName == "" || !ast.IsExported(goName) {
		return "", true
	}

	if rawTag == "" {
		return goName, false
	}

	tag := reflect.StructTag(rawTag).Get("json")
	if tag == "" {
		return goName, false
	}
	if comma := strings.IndexByte(tag, ','); comma >= 0 {
		tag = tag[:comma]
	}
	if tag == "-" {
		return "", true
	}
	if tag == "" {
		return goName, false
	}
	return tag, false
}

// render emits a Go source file registering every decl with
// gojson/describe, via init()-time reflect.TypeOf calls.
func render(pkgName string, decls []structDecl, log *slog.Logger) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by gojson-gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	fmt.Fprintf(&buf, "import (\n\t\"reflect\"\n\n\t\"github.com/vfalco/gojson/describe\"\n)\n\n")
	fmt.Fprintf(&buf, "func init() {\n")

	sorted := make([]structDecl, len(decls))
	copy(sorted, decls)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, d := range sorted {
		if len(d.Members) == 0 {
			log.Debug("skipping struct with no describable fields", "type", d.Name)
			continue
		}

		fmt.Fprintf(&buf, "\t{\n")
		fmt.Fprintf(&buf, "\t\tt := reflect.TypeOf(%s{})\n", d.Name)
		fmt.Fprintf(&buf, "\t\tdescribe.Register(t, []describe.Member{\n")
		for _, m := range d.Members {
			fmt.Fprintf(&buf, "\t\t\t{Name: %q, Index: []int{%d}, Type: t.Field(%d).Type},\n",
				m.Name, m.Field, m.Field)
		}
		fmt.Fprintf(&buf, "\t\t})\n")
		fmt.Fprintf(&buf, "\t}\n")

		log.Info("registered struct", "type", d.Name, "fields", len(d.Members))
	}

	fmt.Fprintf(&buf, "}\n")

	return buf.Bytes()
}
