// Package resolve decides, per schema key, what the generator should do
// with it: skip it, generate accessors with directive-supplied types, or
// generate with the default types from the enum registry or type table.
//
// Precedence, most specific first:
//  1. skip directive matching the key name
//  2. define directive matching the key name
//  3. skip directive matching the key's type code
//  4. define directive matching the key's type code
//  5. the registry's generated type, for enum/flag-bearing keys
//  6. the fixed type table
//
// Name selectors always beat type-code selectors, so a name-level define
// survives a type-code-level skip of the same key. Two directives of the
// same kind matching one key at the same level is a conflict.
package resolve

import (
	"gsettings-codegen/internal/diagnostic"
	"gsettings-codegen/internal/request"
	"gsettings-codegen/internal/schema"
	"gsettings-codegen/internal/typemap"
	"gsettings-codegen/internal/valueset"
)

// Behavior is the kind of effective behavior chosen for a key.
type Behavior int

const (
	// Generate means accessors are emitted with Resolution.Arg/Ret.
	Generate Behavior = iota
	// Skip means the key produces no accessors at all.
	Skip
)

// Resolution is the effective behavior of one key.
type Resolution struct {
	Behavior Behavior

	// Arg and Ret are Go type expressions, set when Behavior is Generate.
	Arg string
	Ret string

	// Custom is true when a define directive supplied the types. Such
	// types must handle their own variant conversion.
	Custom bool

	// Set is the value set backing the types, when they came from the
	// registry's default enum/flag path.
	Set *valueset.Set
}

// KeyResolution pairs a key with its resolution, keeping document order.
type KeyResolution struct {
	Key        *schema.Key
	Resolution Resolution
}

// Key resolves a single key against the registry and the request's
// directives.
func Key(k *schema.Key, reg *valueset.Registry, req *request.Request) (Resolution, error) {
	code := k.TypeCode()

	// Name-level directives.
	if matched, err := matchSkips(req.Skips, k.Name, byName(k)); err != nil {
		return Resolution{}, err
	} else if matched {
		return Resolution{Behavior: Skip}, nil
	}

	if def, err := matchDefines(req.Defines, k.Name, defByName(k)); err != nil {
		return Resolution{}, err
	} else if def != nil {
		return Resolution{Behavior: Generate, Arg: def.ArgType, Ret: def.RetType, Custom: true}, nil
	}

	// Type-code-level directives.
	if matched, err := matchSkips(req.Skips, k.Name, bySignature(code)); err != nil {
		return Resolution{}, err
	} else if matched {
		return Resolution{Behavior: Skip}, nil
	}

	if def, err := matchDefines(req.Defines, k.Name, defBySignature(code)); err != nil {
		return Resolution{}, err
	} else if def != nil {
		return Resolution{Behavior: Generate, Arg: def.ArgType, Ret: def.RetType, Custom: true}, nil
	}

	// Default enum/flag path. Runs after directive matching because a
	// define may override the registry's generated type.
	if set := reg.ForKey(k.Name); set != nil {
		return Resolution{Behavior: Generate, Arg: set.Name, Ret: set.Name, Set: set}, nil
	}

	// Fixed table fallback.
	pair, err := typemap.Map(code)
	if err != nil {
		var d *diagnostic.Diagnostic
		if diagnostic.CodeOf(err) == diagnostic.CodeUnmappedType {
			d = diagnostic.Errorf(diagnostic.CodeUnmappedType,
				"key %q has type code %q with no table entry and no define directive",
				k.Name, code).WithKey(k.Name).WithTypeCode(code)
		} else {
			d = diagnostic.Errorf(diagnostic.CodeUnmappedType, "key %q: %v", k.Name, err).WithKey(k.Name)
		}

		return Resolution{}, d
	}

	return Resolution{Behavior: Generate, Arg: pair.Arg, Ret: pair.Ret}, nil
}

// All resolves every key of the schema in document order, failing fast
// on the first error.
func All(s *schema.Schema, reg *valueset.Registry, req *request.Request) ([]KeyResolution, error) {
	out := make([]KeyResolution, 0, len(s.Keys))

	for i := range s.Keys {
		k := &s.Keys[i]

		res, err := Key(k, reg, req)
		if err != nil {
			return nil, err
		}

		out = append(out, KeyResolution{Key: k, Resolution: res})
	}

	return out, nil
}

// byName selects skip directives naming the key.
func byName(k *schema.Key) func(request.Skip) bool {
	return func(s request.Skip) bool { return s.KeyName == k.Name }
}

// bySignature selects skip directives naming the key's type code.
func bySignature(code string) func(request.Skip) bool {
	return func(s request.Skip) bool { return s.Signature != "" && s.Signature == code }
}

func defByName(k *schema.Key) func(request.Define) bool {
	return func(d request.Define) bool { return d.KeyName == k.Name }
}

func defBySignature(code string) func(request.Define) bool {
	return func(d request.Define) bool { return d.Signature != "" && d.Signature == code }
}

// matchSkips reports whether a skip directive at this level matches.
// Two matching skips at one level collide.
func matchSkips(skips []request.Skip, keyName string, match func(request.Skip) bool) (bool, error) {
	var hits []request.Skip

	for _, s := range skips {
		if match(s) {
			hits = append(hits, s)
		}
	}

	if len(hits) > 1 {
		return false, conflict(keyName, hits[0].String(), hits[1].String())
	}

	return len(hits) == 1, nil
}

// matchDefines returns the single matching define at this level, nil if
// none, or a conflict error for a double match.
func matchDefines(defines []request.Define, keyName string, match func(request.Define) bool) (*request.Define, error) {
	var hits []*request.Define

	for i := range defines {
		if match(defines[i]) {
			hits = append(hits, &defines[i])
		}
	}

	if len(hits) > 1 {
		return nil, conflict(keyName, hits[0].String(), hits[1].String())
	}

	if len(hits) == 0 {
		return nil, nil
	}

	return hits[0], nil
}

func conflict(keyName, first, second string) error {
	return diagnostic.Errorf(diagnostic.CodeConflictingOverride,
		"%s and %s both match key %q at the same precedence level",
		first, second, keyName).
		WithKey(keyName).
		WithDirective(first)
}
