package main

import "text/template"

var visitorTpl = template.Must(template.New("visitor").Funcs(template.FuncMap{
	"exportName": exportName,
}).Parse(`// Code generated by visitgen; DO NOT EDIT.
// source: {{ .SpecPath }}
// sha256: {{ .SpecHash }}

package {{ .Spec.Package }}

// {{ .Spec.Variant }} is the closed set of types accepted by {{ .Spec.Visitor }}.
// Only pointers to the listed types implement it.
type {{ .Spec.Variant }} interface {
	is{{ .Spec.Variant }}()
}
{{ range .Spec.Types }}
func (*{{ . }}) is{{ $.Spec.Variant }}() {}
{{ end }}
// {{ .Spec.Visitor }} holds at most one action per {{ .Spec.Variant }} member.
// A nil field makes Visit a no-op for that type.
type {{ .Spec.Visitor }} struct {
{{- range .Spec.Types }}
	On{{ exportName . }} func(*{{ . }})
{{- end }}
}

// Visit runs the action for v's type and reports whether one ran.
// Nil pointers are never passed to an action.
func (vis {{ .Spec.Visitor }}) Visit(v {{ .Spec.Variant }}) bool {
{{- if .Spec.Types }}
	switch x := v.(type) {
{{- range .Spec.Types }}
	case *{{ . }}:
		if vis.On{{ exportName . }} != nil && x != nil {
			vis.On{{ exportName . }}(x)
			return true
		}
{{- end }}
	}
{{- end }}
	return false
}

// {{ .Spec.Variant }}Index returns the declaration ordinal of v's type, or
// {{ len .Spec.Types }} (one past the last member) when v is nil.
func {{ .Spec.Variant }}Index(v {{ .Spec.Variant }}) int {
{{- if .Spec.Types }}
	switch v.(type) {
{{- range $i, $t := .Spec.Types }}
	case *{{ $t }}:
		return {{ $i }}
{{- end }}
	}
{{- end }}
	return {{ len .Spec.Types }}
}

// {{ .Spec.Variant }}Names lists the member type names in declaration order.
var {{ .Spec.Variant }}Names = [...]string{
{{- range .Spec.Types }}
	{{ printf "%q" . }},
{{- end }}
}
`))
