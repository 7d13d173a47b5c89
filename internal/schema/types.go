// Package schema loads GSettings schema documents into a validated
// in-memory model. The model is the sole owner of all key and value-set
// data; downstream stages borrow from it and never mutate it.
package schema

import "encoding/xml"

// Document is one parsed schema file. Schemas, value-set declarations,
// and keys all keep document order.
type Document struct {
	// Schemas holds every schema definition in the file, in order.
	Schemas []Schema

	// Enums and Flags hold the top-level value-set declarations.
	Enums []ValueSetDecl
	Flags []ValueSetDecl

	// Schema points at the selected definition (see Load).
	Schema *Schema

	// Pinned is true when the caller supplied the schema id. A pinned id
	// enables the zero-argument construction path in generated code.
	Pinned bool
}

// Schema is a single schema definition.
type Schema struct {
	// ID is the stable schema identifier, e.g. "io.github.seadve.test".
	ID string

	// Path is the optional settings path.
	Path string

	// Keys in document order. Order drives generation order.
	Keys []Key
}

// Key is one named, typed settings entry.
type Key struct {
	// Name is the kebab-case key name, unique within the schema.
	Name string

	// Type is the declared value-type code ("b", "i", "(ii)", ...).
	// Empty when the key references an enum or flags declaration.
	Type string

	// Default is the raw default value in GVariant text encoding.
	Default string

	Summary     string
	Description string

	// ReadOnly marks keys that reject writes at runtime.
	ReadOnly bool

	// Choices lists the allowed values of an inline <choices> block on a
	// string key.
	Choices []string

	// EnumRef / FlagsRef name a top-level <enum> or <flags> declaration.
	EnumRef  string
	FlagsRef string
}

// TypeCode returns the effective value-type code of the key. Enum keys
// serialize as their nick string, flag keys as an array of nicks.
func (k *Key) TypeCode() string {
	switch {
	case k.Type != "":
		return k.Type
	case k.EnumRef != "":
		return "s"
	case k.FlagsRef != "":
		return "as"
	default:
		return ""
	}
}

// HasValueSet reports whether the key carries an inline choice list or
// references a declared enum or flags set.
func (k *Key) HasValueSet() bool {
	return len(k.Choices) > 0 || k.EnumRef != "" || k.FlagsRef != ""
}

// ValueSetDecl is a top-level <enum> or <flags> declaration.
type ValueSetDecl struct {
	// ID is the declaration identifier, usually dotted like a schema id.
	ID string

	// Nicks in document order.
	Nicks []string
}

// xmlSchemaList mirrors the document layout for decoding.
type xmlSchemaList struct {
	XMLName xml.Name      `xml:"schemalist"`
	Enums   []xmlValueSet `xml:"enum"`
	Flags   []xmlValueSet `xml:"flags"`
	Schemas []xmlSchema   `xml:"schema"`
}

type xmlValueSet struct {
	ID     string     `xml:"id,attr"`
	Values []xmlValue `xml:"value"`
}

type xmlValue struct {
	Nick  string `xml:"nick,attr"`
	Value int64  `xml:"value,attr"`
}

type xmlSchema struct {
	ID   string   `xml:"id,attr"`
	Path string   `xml:"path,attr"`
	Keys []xmlKey `xml:"key"`
}

type xmlKey struct {
	Name        string      `xml:"name,attr"`
	Type        string      `xml:"type,attr"`
	Enum        string      `xml:"enum,attr"`
	Flags       string      `xml:"flags,attr"`
	ReadOnly    bool        `xml:"readonly,attr"`
	Default     string      `xml:"default"`
	Summary     string      `xml:"summary"`
	Description string      `xml:"description"`
	Choices     *xmlChoices `xml:"choices"`
}

type xmlChoices struct {
	Choices []xmlChoice `xml:"choice"`
}

type xmlChoice struct {
	Value string `xml:"value,attr"`
}
