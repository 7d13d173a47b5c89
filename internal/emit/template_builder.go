package emit

import (
	"fmt"
	"strings"

	"gsettings-codegen/internal/accessor"
	"gsettings-codegen/internal/compile"
	"gsettings-codegen/internal/valueset"
)

// fileData holds everything the settings template needs.
type fileData struct {
	PackageName string
	TypeName    string
	SchemaID    string
	HasDefault  bool
	Methods     []methodData
	Sets        []setData
}

// methodData describes the six accessors of one key.
type methodData struct {
	// TypeName repeats the wrapper type so the method sub-template can
	// spell its receivers.
	TypeName string

	Key      string
	Names    accessor.Names
	ArgType  string
	RetType  string
	ReadOnly bool
	Custom   bool

	Summary     string
	Description string
	Default     string

	// ToVariant converts the parameter `value` into a variant.Value.
	ToVariant string
	// GetExpr reads and converts the stored value inside a getter.
	GetExpr string
	// ConnectExpr converts the callback parameter `v`.
	ConnectExpr string
}

// setData describes one generated enum or flag type.
type setData struct {
	Name    string
	ID      string
	IsFlags bool
	Members []memberData
	// AllBits is the union of every flag constant, "0" for enums.
	AllBits string
}

type memberData struct {
	Const string
	Nick  string
	Value uint32
}

// buildFileData flattens a compilation result for the template.
func buildFileData(res *compile.Result) *fileData {
	data := &fileData{
		PackageName: res.Request.Output.Package,
		TypeName:    res.Request.Output.Type,
		SchemaID:    res.Doc.Schema.ID,
		HasDefault:  res.HasDefaultPath(),
	}

	for _, spec := range res.Specs {
		data.Methods = append(data.Methods, buildMethodData(spec, data.TypeName))
	}

	for _, set := range res.Registry.Sets() {
		if usedByAnySpec(set, res.Specs) {
			data.Sets = append(data.Sets, buildSetData(set))
		}
	}

	return data
}

// usedByAnySpec reports whether a set still backs a generated key.
// Skip and define directives can orphan a set; orphaned types are not
// emitted.
func usedByAnySpec(set *valueset.Set, specs []accessor.Spec) bool {
	for _, spec := range specs {
		if spec.Set == set {
			return true
		}
	}

	return false
}

func buildMethodData(spec accessor.Spec, typeName string) methodData {
	m := methodData{
		TypeName:    typeName,
		Key:         spec.Key,
		Names:       spec.Names,
		ArgType:     spec.ArgType,
		RetType:     spec.RetType,
		ReadOnly:    spec.ReadOnly,
		Custom:      spec.Custom,
		Summary:     spec.Doc.Summary,
		Description: spec.Doc.Description,
		Default:     spec.Doc.Default,
		ToVariant:   toVariantExpr(spec),
	}

	if !spec.Custom {
		read := fmt.Sprintf("s.store.Value(%q)", spec.Key)
		m.GetExpr = fromVariantExpr(spec, read)
		m.ConnectExpr = fromVariantExpr(spec, "v")
	}

	return m
}

// toVariantExpr builds the expression converting the parameter `value`
// to a variant.Value.
func toVariantExpr(spec accessor.Spec) string {
	if spec.Custom {
		return "value.ToVariant()"
	}

	if spec.Set != nil {
		if spec.Set.Kind == valueset.KindFlags {
			return "variant.StrvValue(value.Nicks())"
		}

		return "variant.StringValue(value.Nick())"
	}

	switch spec.TypeCode {
	case "b":
		return "variant.BoolValue(value)"
	case "i":
		return "variant.Int32Value(value)"
	case "u":
		return "variant.Uint32Value(value)"
	case "x":
		return "variant.Int64Value(value)"
	case "t":
		return "variant.Uint64Value(value)"
	case "d":
		return "variant.DoubleValue(value)"
	case "s":
		return "variant.StringValue(value)"
	case "as":
		return "variant.StrvValue(value)"
	case "(ii)":
		return "variant.IntPairValue(value.X, value.Y)"
	default:
		// Unreachable: the resolver rejects unmapped codes without a
		// define directive.
		return "value.ToVariant()"
	}
}

// fromVariantExpr builds the expression converting the variant
// expression expr back to the accessor's return type.
func fromVariantExpr(spec accessor.Spec, expr string) string {
	if spec.Set != nil {
		return spec.Set.Name + "FromVariant(" + expr + ")"
	}

	switch spec.TypeCode {
	case "b":
		return expr + ".Bool()"
	case "i":
		return expr + ".Int32()"
	case "u":
		return expr + ".Uint32()"
	case "x":
		return expr + ".Int64()"
	case "t":
		return expr + ".Uint64()"
	case "d":
		return expr + ".Double()"
	case "s":
		return expr + ".Str()"
	case "as":
		return expr + ".Strv()"
	case "(ii)":
		return expr + ".IntPair()"
	default:
		return expr
	}
}

func buildSetData(set *valueset.Set) setData {
	d := setData{
		Name:    set.Name,
		ID:      set.ID,
		IsFlags: set.Kind == valueset.KindFlags,
		AllBits: "0",
	}

	var consts []string

	for _, m := range set.Members {
		c := constName(set, m)
		consts = append(consts, c)
		d.Members = append(d.Members, memberData{Const: c, Nick: m.Nick, Value: m.Value})
	}

	if d.IsFlags && len(consts) > 0 {
		d.AllBits = strings.Join(consts, " | ")
	}

	return d
}

// constName composes the Go constant for one member. Enum variants
// concatenate pascal-case idents; flag constants keep the
// screaming-snake ident behind an underscore, the way protoc-generated
// enums spell theirs.
func constName(set *valueset.Set, m valueset.Member) string {
	if set.Kind == valueset.KindFlags {
		return set.Name + "_" + m.Ident
	}

	return set.Name + m.Ident
}
