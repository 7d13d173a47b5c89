// Package request models the generation request: the schema file to
// compile, the optional schema id, output options, and the skip/define
// directives that override per-key generation.
package request

import (
	"fmt"

	"gsettings-codegen/internal/diagnostic"
)

// Request is the root of a YAML generation-request file.
type Request struct {
	// File is the path of the schema document. Required.
	File string `yaml:"file"`

	// ID pins the schema definition to generate from. When set, the
	// generated type also gets a zero-argument constructor.
	ID string `yaml:"id,omitempty"`

	// Output controls where and how generated code is written.
	Output Output `yaml:"output,omitempty"`

	// Skips lists keys or type codes to leave out of generation.
	Skips []Skip `yaml:"skip,omitempty"`

	// Defines lists custom argument/return types for keys or type codes.
	Defines []Define `yaml:"define,omitempty"`
}

// Output holds code-emission options.
type Output struct {
	// Path of the generated file.
	Path string `yaml:"path,omitempty"`

	// Package name of the generated file.
	Package string `yaml:"package,omitempty"`

	// Type name of the generated settings wrapper.
	Type string `yaml:"type,omitempty"`
}

// Skip removes matching keys from generation. Exactly one selector must
// be set.
type Skip struct {
	// KeyName matches a single key by exact name.
	KeyName string `yaml:"key_name,omitempty"`

	// Signature matches every key with the given type code.
	Signature string `yaml:"signature,omitempty"`
}

// String renders the directive the way diagnostics refer to it.
func (s Skip) String() string {
	if s.KeyName != "" {
		return fmt.Sprintf("skip(key_name=%q)", s.KeyName)
	}

	return fmt.Sprintf("skip(signature=%q)", s.Signature)
}

// Define replaces the generated argument and return types of matching
// keys. Exactly one selector must be set, and both types are required.
type Define struct {
	KeyName   string `yaml:"key_name,omitempty"`
	Signature string `yaml:"signature,omitempty"`
	ArgType   string `yaml:"arg_type"`
	RetType   string `yaml:"ret_type"`
}

// String renders the directive the way diagnostics refer to it.
func (d Define) String() string {
	if d.KeyName != "" {
		return fmt.Sprintf("define(key_name=%q)", d.KeyName)
	}

	return fmt.Sprintf("define(signature=%q)", d.Signature)
}

// Validate checks the request's internal consistency.
func (r *Request) Validate() error {
	ds := &diagnostic.Diagnostics{}

	if r.File == "" {
		ds.Add(diagnostic.Errorf(diagnostic.CodeBadDirective, "request is missing the schema file path"))
	}

	for _, s := range r.Skips {
		checkSelector(ds, s.String(), s.KeyName, s.Signature)
	}

	for _, d := range r.Defines {
		checkSelector(ds, d.String(), d.KeyName, d.Signature)

		if d.ArgType == "" || d.RetType == "" {
			ds.Add(diagnostic.Errorf(diagnostic.CodeBadDirective,
				"define directives need both arg_type and ret_type").
				WithDirective(d.String()))
		}
	}

	return ds.Err()
}

// checkSelector enforces the mutually-exclusive key_name/signature rule.
func checkSelector(ds *diagnostic.Diagnostics, directive, keyName, signature string) {
	switch {
	case keyName == "" && signature == "":
		ds.Add(diagnostic.Errorf(diagnostic.CodeBadDirective,
			"directive needs a key_name or signature selector").
			WithDirective(directive))
	case keyName != "" && signature != "":
		ds.Add(diagnostic.Errorf(diagnostic.CodeBadDirective,
			"key_name and signature selectors are mutually exclusive").
			WithDirective(directive))
	}
}
