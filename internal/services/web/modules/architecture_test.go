package modules

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

var featureAreas = []string{"public", "passwordreset", "dashboard", "teams", "profile"}

// forbiddenImports maps an import path fragment to the reason feature code
// may not depend on it.
var forbiddenImports = map[string]string{
	"/internal/services/web/modules/":          "sibling feature module",
	"/internal/services/web/storage/sqlite":    "concrete store; depend on storage interfaces",
	"/internal/services/web/storage/s3avatars": "concrete store; depend on storage interfaces",
	"/internal/services/web/app":               "composition root",
}

func featureFiles(t *testing.T) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("*", "*.go"))
	if err != nil {
		t.Fatalf("glob feature files: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no feature files found")
	}
	return files
}

func TestFeatureModulesKeepImportBoundaries(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()
	for _, file := range featureFiles(t) {
		parsed, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", file, err)
		}
		for _, imp := range parsed.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			for fragment, reason := range forbiddenImports {
				if strings.Contains(path, fragment) {
					t.Errorf("%s imports %q (%s)", file, path, reason)
				}
			}
		}
	}
}

func TestFeatureModulesShareLayout(t *testing.T) {
	t.Parallel()

	for _, area := range featureAreas {
		for _, name := range []string{"module.go", "routes.go", "routes_test.go", "handlers.go", "service.go", "fakes_test.go"} {
			if _, err := os.Stat(filepath.Join(area, name)); err != nil {
				t.Errorf("module %s lacks %s: %v", area, name, err)
			}
		}
	}
}

// Mount may only read m.cfg so every collaborator arrives through Config.
func TestMountReadsOnlyConfig(t *testing.T) {
	t.Parallel()

	for _, area := range featureAreas {
		file := filepath.Join(area, "module.go")
		parsed, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.SkipObjectResolution)
		if err != nil {
			t.Fatalf("parse %s: %v", file, err)
		}
		mount := findMethod(parsed, "Mount")
		if mount == nil {
			t.Errorf("%s has no Mount method", file)
			continue
		}
		ast.Inspect(mount.Body, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if recv, ok := sel.X.(*ast.Ident); ok && recv.Name == "m" && sel.Sel.Name != "cfg" {
				t.Errorf("%s Mount reads m.%s", file, sel.Sel.Name)
			}
			return true
		})
	}
}

func findMethod(file *ast.File, name string) *ast.FuncDecl {
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv != nil && fn.Name.Name == name && fn.Body != nil {
			return fn
		}
	}
	return nil
}
