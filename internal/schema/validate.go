package schema

import "gsettings-codegen/internal/diagnostic"

// validate checks the structural invariants of a parsed document.
// Value-set casing and bit-width invariants are checked later by the
// registry; this pass only rejects documents no stage could work with.
func validate(doc *Document) *diagnostic.Diagnostics {
	ds := &diagnostic.Diagnostics{}

	if len(doc.Schemas) == 0 {
		ds.Add(diagnostic.Errorf(diagnostic.CodeParseError, "document declares no schemas"))
		return ds
	}

	declared := make(map[string]bool)
	for _, e := range doc.Enums {
		declared[e.ID] = true
	}

	for _, f := range doc.Flags {
		declared[f.ID] = true
	}

	for _, s := range doc.Schemas {
		if s.ID == "" {
			ds.Add(diagnostic.Errorf(diagnostic.CodeParseError, "schema without id attribute"))
		}

		seen := make(map[string]bool)

		for i := range s.Keys {
			k := &s.Keys[i]

			if k.Name == "" {
				ds.Add(diagnostic.Errorf(diagnostic.CodeParseError,
					"schema %s declares a key without a name", s.ID))
				continue
			}

			if seen[k.Name] {
				ds.Add(diagnostic.Errorf(diagnostic.CodeDuplicateKey,
					"schema %s declares key %q twice", s.ID, k.Name).WithKey(k.Name))
			}

			seen[k.Name] = true

			if k.TypeCode() == "" {
				ds.Add(diagnostic.Errorf(diagnostic.CodeParseError,
					"key %q has neither a type code nor an enum/flags reference", k.Name).
					WithKey(k.Name))
			}

			if k.EnumRef != "" && !declared[k.EnumRef] {
				ds.Add(diagnostic.Errorf(diagnostic.CodeUnknownValueSet,
					"key %q references undeclared enum %q", k.Name, k.EnumRef).WithKey(k.Name))
			}

			if k.FlagsRef != "" && !declared[k.FlagsRef] {
				ds.Add(diagnostic.Errorf(diagnostic.CodeUnknownValueSet,
					"key %q references undeclared flags %q", k.Name, k.FlagsRef).WithKey(k.Name))
			}
		}
	}

	return ds
}

func (doc *Document) validate() error {
	return validate(doc).Err()
}
