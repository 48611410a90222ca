package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type TB interface {
	Helper()
	Fatalf(format string, args ...any)
	Cleanup(func())
}

type pkgHarness struct {
	t   *testing.T
	dir string
}

func newPkg(t *testing.T) *pkgHarness {
	t.Helper()
	return &pkgHarness{t: t, dir: t.TempDir()}
}

func (p *pkgHarness) write(rel, content string) string {
	p.t.Helper()
	path := filepath.Join(p.dir, rel)
	mustWriteFile(p.t, path, content)
	return path
}

func (p *pkgHarness) out(rel string) string {
	return filepath.Join(p.dir, rel)
}

func (p *pkgHarness) read(rel string) string {
	p.t.Helper()
	return mustReadString(p.t, filepath.Join(p.dir, rel))
}

const shapesSource = `package shapes

type Circle struct{ R float64 }
type Square struct{ Side float64 }
type triangle struct{ A, B, C float64 }
`

const shapesSpec = `package: shapes
variant: Shape
types: [Circle, Square, triangle]
`

func writeGoMod(p *pkgHarness) {
	p.write("go.mod", "module example.com/shapes\n\ngo 1.22\n")
}

// typeCheck parses every given source as one package and type-checks it.
// Generated code imports nothing, so no importer is configured.
func typeCheck(t TB, srcs map[string]string) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	var files []*ast.File
	for name, src := range srcs {
		f, err := parser.ParseFile(fset, name, src, parser.ParseComments)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		files = append(files, f)
	}
	pkg, err := (&types.Config{}).Check(files[0].Name.Name, fset, files, nil)
	if err != nil {
		t.Fatalf("type-check: %v", err)
	}
	return pkg
}

func assertErrContains(t TB, err error, wantSubstr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", wantSubstr)
	}
	if !strings.Contains(err.Error(), wantSubstr) {
		t.Fatalf("err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func mustWriteFile(t TB, path, content string) {
	t.Helper()
	mustMkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustMkdirAll(t TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func mustReadString(t TB, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func assertContainsInOrder(t TB, s string, parts ...string) {
	t.Helper()
	pos := 0
	for _, p := range parts {
		i := strings.Index(s[pos:], p)
		if i < 0 {
			t.Fatalf("expected to find %q after pos=%d", p, pos)
		}
		pos += i + len(p)
	}
}

func assertPanicContains(t TB, fn func(), wantSubstr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", wantSubstr)
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, wantSubstr) {
			t.Fatalf("panic=%q want contains %q", msg, wantSubstr)
		}
	}()
	fn()
}

type fatalTB struct {
	testing.TB
}

func (f fatalTB) Helper() {}

func (f fatalTB) Cleanup(fn func()) {}

func (f fatalTB) Fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
