// Package accessor turns resolved keys into method-specification
// bundles: one Spec per generated key, carrying everything the code
// emitter needs and nothing it has to re-derive.
package accessor

import "gsettings-codegen/internal/valueset"

// Names holds the derived method names for one key. All six are derived
// deterministically from the key name.
type Names struct {
	// Getter reads the value: WindowWidth().
	Getter string
	// Setter writes the value and fails loudly on read-only keys:
	// SetWindowWidth(v).
	Setter string
	// TrySetter writes the value and reports failure instead:
	// TrySetWindowWidth(v).
	TrySetter string
	// ConnectChanged subscribes to change notifications:
	// ConnectWindowWidthChanged(fn).
	ConnectChanged string
	// Bind establishes a live property binding: BindWindowWidth(o, p).
	Bind string
	// CreateAction builds a stateful action: CreateWindowWidthAction().
	CreateAction string
}

// Doc is the documentation payload carried from the schema.
type Doc struct {
	Summary     string
	Description string
	// Default is the key's default value rendered in canonical text form.
	Default string
}

// Spec is the generated, language-agnostic description of one key's
// typed accessors. Specs are created once per key during generation,
// consumed by the emitter, and never persisted.
type Spec struct {
	// Key is the schema key name.
	Key string

	// TypeCode is the key's effective value-type code.
	TypeCode string

	// ArgType and RetType are the resolved accessor types.
	ArgType string
	RetType string

	// ReadOnly annotates keys whose setters must fail at call time. The
	// generator never rejects read-only keys; the emitter decides what
	// to do with them.
	ReadOnly bool

	// Custom is true when a define directive supplied ArgType/RetType.
	// Custom types convert themselves via variant.Marshaler and
	// variant.Unmarshaler.
	Custom bool

	// Set is the value set backing the types when the default enum/flag
	// path resolved them, nil otherwise. Borrowed from the registry.
	Set *valueset.Set `json:"-"`

	// SetName is Set's generated type name, kept separately so a Spec
	// serializes cleanly.
	SetName string

	Names Names
	Doc   Doc
}
