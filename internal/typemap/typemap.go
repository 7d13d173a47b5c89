// Package typemap maps value-type codes to the Go types used by
// generated accessors. The table is closed: any code outside it is a
// build-time failure unless a define directive supplies its own types.
package typemap

import (
	"sort"

	"gsettings-codegen/internal/diagnostic"
)

// Pair is the argument and return type of an accessor, as Go type
// expressions relative to the generated file.
type Pair struct {
	Arg string
	Ret string
}

// table is the fixed mapping of known type codes. Go has no
// borrowed/owned split, so codes whose original mapping differed only
// in ownership ("as", "s") map to the same type on both sides.
var table = map[string]Pair{
	"b":    {Arg: "bool", Ret: "bool"},
	"i":    {Arg: "int32", Ret: "int32"},
	"u":    {Arg: "uint32", Ret: "uint32"},
	"x":    {Arg: "int64", Ret: "int64"},
	"t":    {Arg: "uint64", Ret: "uint64"},
	"d":    {Arg: "float64", Ret: "float64"},
	"(ii)": {Arg: "variant.IntPair", Ret: "variant.IntPair"},
	"as":   {Arg: "[]string", Ret: "[]string"},
	"s":    {Arg: "string", Ret: "string"},
}

// Map returns the type pair for a value-type code, or an unmapped_type
// diagnostic for codes outside the table. Redirection of enum-bearing
// string keys is the resolver's job, not the mapper's.
func Map(code string) (Pair, error) {
	p, ok := table[code]
	if !ok {
		return Pair{}, diagnostic.Errorf(diagnostic.CodeUnmappedType,
			"no accessor types for type code %q", code).WithTypeCode(code)
	}

	return p, nil
}

// Supported reports whether the code is in the fixed table.
func Supported(code string) bool {
	_, ok := table[code]
	return ok
}

// Codes returns the supported type codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(table))
	for c := range table {
		codes = append(codes, c)
	}

	sort.Strings(codes)

	return codes
}
