package accessor

import (
	"gsettings-codegen/internal/resolve"
	"gsettings-codegen/internal/schema"
	"gsettings-codegen/internal/typemap"
	"gsettings-codegen/internal/valueset"
	"gsettings-codegen/variant"
)

// Generate produces the ordered Spec sequence for a schema from its
// resolved behaviors. Keys resolved to Skip are left out entirely.
// Output order is document order and is stable across runs.
func Generate(s *schema.Schema, resolutions []resolve.KeyResolution) []Spec {
	specs := make([]Spec, 0, len(resolutions))

	for _, kr := range resolutions {
		if kr.Resolution.Behavior == resolve.Skip {
			continue
		}

		specs = append(specs, newSpec(kr.Key, kr.Resolution))
	}

	return specs
}

func newSpec(k *schema.Key, res resolve.Resolution) Spec {
	spec := Spec{
		Key:      k.Name,
		TypeCode: k.TypeCode(),
		ArgType:  res.Arg,
		RetType:  res.Ret,
		ReadOnly: k.ReadOnly,
		Custom:   res.Custom,
		Set:      res.Set,
		Names:    methodNames(k.Name),
		Doc: Doc{
			Summary:     k.Summary,
			Description: k.Description,
			Default:     renderDefault(k),
		},
	}

	if res.Set != nil {
		spec.SetName = res.Set.Name
	}

	return spec
}

// methodNames derives all six method-name fragments from the key name.
func methodNames(keyName string) Names {
	base := valueset.PascalCase(keyName)

	return Names{
		Getter:         base,
		Setter:         "Set" + base,
		TrySetter:      "TrySet" + base,
		ConnectChanged: "Connect" + base + "Changed",
		Bind:           "Bind" + base,
		CreateAction:   "Create" + base + "Action",
	}
}

// renderDefault decodes the schema default and re-renders it
// canonically, so documentation shows the same text regardless of how
// the schema author spaced or quoted it. Defaults of codes outside the
// table (custom-defined keys) pass through verbatim.
func renderDefault(k *schema.Key) string {
	code := k.TypeCode()
	if !typemap.Supported(code) {
		return k.Default
	}

	v, err := variant.Parse(code, k.Default)
	if err != nil {
		return k.Default
	}

	return v.Text()
}
