// Package diagnostic carries coded, actionable errors through the
// compilation pipeline. Every failure names the schema key, type code,
// or directive it originates from so it can be fixed without re-reading
// the schema.
package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic codes. Generation aborts on the first stage that reports
// any of these; there is no partial output.
const (
	CodeNotFound            = "not_found"
	CodeParseError          = "parse_error"
	CodeSchemaNotFound      = "schema_not_found"
	CodeAmbiguousSchema     = "ambiguous_schema"
	CodeDuplicateKey        = "duplicate_key"
	CodeUnknownValueSet     = "unknown_value_set"
	CodeDuplicateVariant    = "duplicate_variant"
	CodeFlagOverflow        = "flag_overflow"
	CodeUnmappedType        = "unmapped_type"
	CodeConflictingOverride = "conflicting_override"
	CodeBadDirective        = "bad_directive"
)

// Diagnostic is a single coded failure.
type Diagnostic struct {
	// Code is one of the Code* constants.
	Code string
	// Message is the human-readable description.
	Message string
	// Key is the schema key the failure relates to, if any.
	Key string
	// TypeCode is the value-type code the failure relates to, if any.
	TypeCode string
	// Directive names the offending skip/define directive, if any.
	Directive string
}

// Error implements the error interface.
func (d *Diagnostic) Error() string { return d.String() }

// String returns a formatted diagnostic line.
func (d *Diagnostic) String() string {
	var ctx []string
	if d.Key != "" {
		ctx = append(ctx, "key "+d.Key)
	}

	if d.TypeCode != "" {
		ctx = append(ctx, "type "+d.TypeCode)
	}

	if d.Directive != "" {
		ctx = append(ctx, "directive "+d.Directive)
	}

	msg := fmt.Sprintf("[%s] %s", d.Code, d.Message)
	if len(ctx) > 0 {
		msg += " (" + strings.Join(ctx, ", ") + ")"
	}

	return msg
}

// Errorf builds a Diagnostic with a formatted message. Context fields
// are attached by the With* chain.
func Errorf(code, format string, args ...any) *Diagnostic {
	return &Diagnostic{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithKey attaches the offending key name.
func (d *Diagnostic) WithKey(key string) *Diagnostic {
	d.Key = key
	return d
}

// WithTypeCode attaches the offending value-type code.
func (d *Diagnostic) WithTypeCode(code string) *Diagnostic {
	d.TypeCode = code
	return d
}

// WithDirective attaches the offending directive description.
func (d *Diagnostic) WithDirective(directive string) *Diagnostic {
	d.Directive = directive
	return d
}

// CodeOf returns the diagnostic code carried by err, or "" if err has
// no Diagnostic in its chain.
func CodeOf(err error) string {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Code
	}

	return ""
}

// Diagnostics collects failures from one validation pass.
type Diagnostics struct {
	Errors []*Diagnostic
}

// Add appends a diagnostic.
func (ds *Diagnostics) Add(d *Diagnostic) {
	ds.Errors = append(ds.Errors, d)
}

// HasErrors returns true if any diagnostic was collected.
func (ds *Diagnostics) HasErrors() bool {
	return len(ds.Errors) > 0
}

// Err returns the first collected diagnostic as an error, or nil.
// Compilation is fail-fast: downstream stages never run on a pass that
// reported errors, and reporting the first keeps output deterministic.
func (ds *Diagnostics) Err() error {
	if len(ds.Errors) == 0 {
		return nil
	}

	return ds.Errors[0]
}

// Combined returns all collected diagnostics as one error, or nil.
func (ds *Diagnostics) Combined() error {
	if len(ds.Errors) == 0 {
		return nil
	}

	parts := make([]string, len(ds.Errors))
	for i, d := range ds.Errors {
		parts[i] = d.String()
	}

	return errors.New(strings.Join(parts, "; "))
}
