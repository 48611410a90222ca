// typevisit/cmd/visitgen/main.go
package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"go/token"
	"go/types"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/imports"
	"gopkg.in/yaml.v3"
)

// VisitSpec is the content of a *.visit.yaml file. JSON is accepted too.
type VisitSpec struct {
	Package string `yaml:"package" json:"package"`

	// Variant names the generated sealed interface.
	Variant string `yaml:"variant" json:"variant"`

	// Visitor names the generated struct of actions. Default: <Variant>Visitor.
	Visitor string `yaml:"visitor" json:"visitor"`

	// Types lists the members in declaration order. Each must be a bare type
	// declared in Package.
	Types []string `yaml:"types" json:"types"`
}

type specError struct{ msg string }

func (e *specError) Error() string { return "spec: " + e.msg }

func specErrorf(format string, args ...any) error {
	return &specError{msg: fmt.Sprintf(format, args...)}
}

func run(args []string) error {
	fs := flag.NewFlagSet("visitgen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	specPath := fs.String("spec", "", "path to *.visit.yaml")
	outPath := fs.String("out", "", "output .gen.go file path")
	check := fs.Bool("check", false, "type-check the listed types against the target package")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*specPath) == "" {
		return errors.New("missing -spec")
	}
	if strings.TrimSpace(*outPath) == "" {
		return errors.New("missing -out")
	}

	return generate(*specPath, *outPath, *check)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, errPrefix(os.Stderr)+err.Error())
		os.Exit(1)
	}
}

func errPrefix(f *os.File) string {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return "\x1b[31mvisitgen:\x1b[0m "
	}
	return "visitgen: "
}

func generate(specPath, outPath string, check bool) error {
	raw, err := os.ReadFile(specPath)
	if err != nil {
		return err
	}

	spec, err := parseSpec(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", specPath, err)
	}

	if check {
		if err := checkTypes(spec, outPath); err != nil {
			return fmt.Errorf("%s: %w", specPath, err)
		}
	}

	data := map[string]any{
		"Spec":     spec,
		"SpecPath": filepath.ToSlash(specPath),
		"SpecHash": sha256Hex(raw),
	}

	src, err := execTemplate(visitorTpl, data)
	if err != nil {
		return err
	}
	return writeFormatted(outPath, src)
}

func parseSpec(raw []byte) (VisitSpec, error) {
	var spec VisitSpec
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return VisitSpec{}, fmt.Errorf("decode: %w", err)
	}
	applyDefaults(&spec)
	if err := validateSpec(&spec); err != nil {
		return VisitSpec{}, err
	}
	return spec, nil
}

func applyDefaults(s *VisitSpec) {
	s.Package = strings.TrimSpace(s.Package)
	s.Variant = strings.TrimSpace(s.Variant)
	s.Visitor = strings.TrimSpace(s.Visitor)
	if s.Visitor == "" && s.Variant != "" {
		s.Visitor = s.Variant + "Visitor"
	}
	for i := range s.Types {
		s.Types[i] = strings.TrimSpace(s.Types[i])
	}
}

func isIdent(s string) bool {
	return token.IsIdentifier(s) && s != "_"
}

func validateSpec(s *VisitSpec) error {
	req := func(name, v string) error {
		if v == "" {
			return specErrorf("missing %s", name)
		}
		if !isIdent(v) {
			return specErrorf("%s %q is not a valid Go identifier", name, v)
		}
		return nil
	}
	if err := req("package", s.Package); err != nil {
		return err
	}
	if err := req("variant", s.Variant); err != nil {
		return err
	}
	if err := req("visitor", s.Visitor); err != nil {
		return err
	}
	if s.Visitor == s.Variant {
		return specErrorf("visitor and variant must differ, both are %q", s.Variant)
	}

	// Generated identifiers must not collide: On<Export(T)> fields, and the
	// member types themselves against the generated top-level names.
	generated := map[string]bool{
		s.Variant:           true,
		s.Visitor:           true,
		s.Variant + "Index": true,
		s.Variant + "Names": true,
	}
	fields := map[string]int{}
	for i, t := range s.Types {
		switch {
		case t == "":
			return specErrorf("types[%d] is empty", i)
		case strings.HasPrefix(t, "*"):
			return specErrorf("types[%d] %q is a pointer; list bare types", i, t)
		case strings.Contains(t, "."):
			return specErrorf("types[%d] %q must be declared in package %s", i, t, s.Package)
		case !isIdent(t):
			return specErrorf("types[%d] %q is not a valid Go identifier", i, t)
		case types.Universe.Lookup(t) != nil:
			return specErrorf("types[%d] %q is predeclared; list types declared in package %s", i, t, s.Package)
		case generated[t]:
			return specErrorf("types[%d] %q collides with a generated name", i, t)
		}
		f := "On" + exportName(t)
		if j, dup := fields[f]; dup {
			if s.Types[j] == t {
				return specErrorf("types[%d] and types[%d] both list %s", j, i, t)
			}
			return specErrorf("types[%d] %s and types[%d] %s both map to field %s", j, s.Types[j], i, t, f)
		}
		fields[f] = i
	}
	return nil
}

// checkTypes loads the package that will contain outPath and verifies every
// listed type exists there as a named, non-interface, non-pointer type.
// The current contents of outPath are replaced by an empty file so a stale
// generated file cannot break loading.
func checkTypes(s VisitSpec, outPath string) error {
	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return err
	}
	cfg := &packages.Config{
		Mode:    packages.NeedName | packages.NeedTypes,
		Dir:     filepath.Dir(absOut),
		Env:     append(os.Environ(), "GOWORK=off"),
		Overlay: map[string][]byte{absOut: []byte("package " + s.Package + "\n")},
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return fmt.Errorf("loading package: %w", err)
	}
	if len(pkgs) != 1 {
		return fmt.Errorf("expected one package in %s, got %d", filepath.ToSlash(cfg.Dir), len(pkgs))
	}
	pkg := pkgs[0]

	var errs []string
	for _, e := range pkg.Errors {
		errs = append(errs, e.Msg)
	}
	if len(errs) > 0 {
		return fmt.Errorf("package errors:\n  %s", strings.Join(errs, "\n  "))
	}
	if pkg.Name != s.Package {
		return specErrorf("package is %q but %s belongs to %q", s.Package, filepath.ToSlash(outPath), pkg.Name)
	}

	scope := pkg.Types.Scope()
	for _, name := range s.Types {
		obj := scope.Lookup(name)
		if obj == nil {
			return specErrorf("type %q not found in package %s", name, pkg.PkgPath)
		}
		tn, ok := obj.(*types.TypeName)
		if !ok {
			return specErrorf("%q is not a type in package %s", name, pkg.PkgPath)
		}
		if tn.IsAlias() {
			return specErrorf("%q is an alias; list the named type instead", name)
		}
		switch tn.Type().Underlying().(type) {
		case *types.Interface:
			return specErrorf("%q is an interface; list concrete types", name)
		case *types.Pointer:
			return specErrorf("%q is a pointer type; list bare types", name)
		}
		if named, ok := tn.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
			return specErrorf("%q is generic; instantiate it in a named type first", name)
		}
	}
	return nil
}

// -------------------------
// Misc helpers
// -------------------------

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func execTemplate(tpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFormatted(out string, src []byte) error {
	fmtSrc, err := imports.Process(out, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		_ = os.WriteFile(out, src, 0o644)
		return fmt.Errorf("format failed: %w", err)
	}
	return os.WriteFile(out, fmtSrc, 0o644)
}

// exportName upper-cases the first letter (circle -> Circle, éclair -> Éclair).
func exportName(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
