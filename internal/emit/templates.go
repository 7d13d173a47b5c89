package emit

import "text/template"

// settingsTemplate renders one generated settings file: the wrapper
// struct with its constructor, six accessors per key, and one named
// type per referenced enum or flag set. Output goes through go/format
// and goimports afterwards, so the template only has to be valid Go,
// not pretty Go.
var settingsTemplate = template.Must(template.New("settings").Parse(settingsTemplateText))

const settingsTemplateText = `// Code generated by gsettings-codegen. DO NOT EDIT.

package {{.PackageName}}

import (
	"fmt"
	"strings"

	"gsettings-codegen/backend"
	"gsettings-codegen/variant"
)

{{if .HasDefault -}}
// SchemaID is the schema {{.TypeName}} binds to by default.
const SchemaID = "{{.SchemaID}}"

{{end -}}
// {{.TypeName}} is a typed view over the "{{.SchemaID}}" schema.
type {{.TypeName}} struct {
	store backend.Store
	id    string
}

{{if .HasDefault -}}
// New returns a {{.TypeName}} reading and writing through store under
// SchemaID.
func New(store backend.Store) *{{.TypeName}} {
	return &{{.TypeName}}{store: store, id: SchemaID}
}
{{- else -}}
// New returns a {{.TypeName}} reading and writing through store under
// the given schema id.
func New(store backend.Store, schemaID string) *{{.TypeName}} {
	return &{{.TypeName}}{store: store, id: schemaID}
}
{{- end}}

// SchemaID returns the schema id the wrapper was constructed with.
func (s *{{.TypeName}}) SchemaID() string {
	return s.id
}
{{range .Methods}}
{{template "method" .}}
{{- end}}
{{- range .Sets}}
{{template "set" .}}
{{- end}}`

func init() {
	template.Must(settingsTemplate.New("method").Parse(methodTemplateText))
	template.Must(settingsTemplate.New("set").Parse(setTemplateText))
}

const methodTemplateText = `// {{.Names.Getter}} returns the value of the "{{.Key}}" key.
{{- if .Summary}}
//
// {{.Summary}}
{{- end}}
{{- if .Description}}
//
// {{.Description}}
{{- end}}
{{- if .Default}}
//
// The schema default is {{.Default}}.
{{- end}}
func (s *{{.TypeName}}) {{.Names.Getter}}() {{.RetType}} {
{{- if .Custom}}
	var value {{.RetType}}
	if err := value.FromVariant(s.store.Value("{{.Key}}")); err != nil {
		panic(err)
	}

	return value
{{- else}}
	return {{.GetExpr}}
{{- end}}
}

// {{.Names.Setter}} writes the "{{.Key}}" key. It panics when the
// store rejects the write; use {{.Names.TrySetter}} to handle rejection.
func (s *{{.TypeName}}) {{.Names.Setter}}(value {{.ArgType}}) {
	if err := s.{{.Names.TrySetter}}(value); err != nil {
		panic(err)
	}
}

// {{.Names.TrySetter}} writes the "{{.Key}}" key, reporting a rejected
// write as an error.
func (s *{{.TypeName}}) {{.Names.TrySetter}}(value {{.ArgType}}) error {
	if !s.store.SetValue("{{.Key}}", {{.ToVariant}}) {
		return fmt.Errorf("settings: write to key %q rejected", "{{.Key}}")
	}

	return nil
}

// {{.Names.ConnectChanged}} registers fn to run after each change of
// the "{{.Key}}" key. The returned cancel func removes the
// registration.
func (s *{{.TypeName}}) {{.Names.ConnectChanged}}(fn func({{.RetType}})) (cancel func()) {
	return s.store.Subscribe("{{.Key}}", func(v variant.Value) {
{{- if .Custom}}
		var value {{.RetType}}
		if err := value.FromVariant(v); err != nil {
			panic(err)
		}

		fn(value)
{{- else}}
		fn({{.ConnectExpr}})
{{- end}}
	})
}

// {{.Names.Bind}} keeps the "{{.Key}}" key and the named property of
// target in sync until the returned cancel func runs.
func (s *{{.TypeName}}) {{.Names.Bind}}(target backend.Binder, property string) (cancel func()) {
	return s.store.Bind("{{.Key}}", target, property)
}

// {{.Names.CreateAction}} returns an action wired to the "{{.Key}}"
// key.
func (s *{{.TypeName}}) {{.Names.CreateAction}}() *backend.Action {
	return s.store.CreateAction("{{.Key}}")
}`

const setTemplateText = `{{$set := . -}}
{{if .IsFlags -}}
// {{.Name}} is the flag set declared as "{{.ID}}". Values combine with
// the | operator; each constant holds one bit.
type {{.Name}} uint32

const (
{{- range .Members}}
	{{.Const}} {{$set.Name}} = {{.Value}}
{{- end}}
)

// Has reports whether every bit of other is set in f.
func (f {{.Name}}) Has(other {{.Name}}) bool {
	return f&other == other
}

// IsValid reports whether f only carries declared bits.
func (f {{.Name}}) IsValid() bool {
	return f&^({{.AllBits}}) == 0
}

// Nicks returns the schema nicks of the set bits in declaration order.
func (f {{.Name}}) Nicks() []string {
	var nicks []string
{{- range .Members}}
	if f&{{.Const}} != 0 {
		nicks = append(nicks, "{{.Nick}}")
	}
{{- end}}

	return nicks
}

// String implements fmt.Stringer.
func (f {{.Name}}) String() string {
	return strings.Join(f.Nicks(), "|")
}

// ToVariant implements variant.Marshaler.
func (f {{.Name}}) ToVariant() variant.Value {
	return variant.StrvValue(f.Nicks())
}

// {{.Name}}FromNick maps one schema nick to its bit.
func {{.Name}}FromNick(nick string) ({{.Name}}, bool) {
	switch nick {
{{- range .Members}}
	case "{{.Nick}}":
		return {{.Const}}, true
{{- end}}
	}

	return 0, false
}

// {{.Name}}FromVariant decodes a stored nick array, ignoring nicks the
// declaration does not name.
func {{.Name}}FromVariant(v variant.Value) {{.Name}} {
	var f {{.Name}}
	for _, nick := range v.Strv() {
		if bit, ok := {{.Name}}FromNick(nick); ok {
			f |= bit
		}
	}

	return f
}
{{- else -}}
// {{.Name}} is the enumeration declared as "{{.ID}}".
type {{.Name}} int

const (
{{- range .Members}}
	{{.Const}} {{$set.Name}} = {{.Value}}
{{- end}}
)

// IsValid reports whether e is a declared variant.
func (e {{.Name}}) IsValid() bool {
	return e.Nick() != ""
}

// Nick returns the schema nick of e, "" for undeclared values.
func (e {{.Name}}) Nick() string {
	switch e {
{{- range .Members}}
	case {{.Const}}:
		return "{{.Nick}}"
{{- end}}
	}

	return ""
}

// String implements fmt.Stringer.
func (e {{.Name}}) String() string {
	return e.Nick()
}

// ToVariant implements variant.Marshaler.
func (e {{.Name}}) ToVariant() variant.Value {
	return variant.StringValue(e.Nick())
}

// {{.Name}}FromNick maps one schema nick to its variant.
func {{.Name}}FromNick(nick string) ({{.Name}}, bool) {
	switch nick {
{{- range .Members}}
	case "{{.Nick}}":
		return {{.Const}}, true
{{- end}}
	}

	return 0, false
}

// {{.Name}}FromVariant decodes a stored nick, yielding the zero
// variant for undeclared nicks.
func {{.Name}}FromVariant(v variant.Value) {{.Name}} {
	e, _ := {{.Name}}FromNick(v.Str())

	return e
}
{{- end}}`
