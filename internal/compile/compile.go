// Package compile runs the schema-to-spec pipeline: load and validate
// the schema, collect value sets, resolve directives, and generate the
// accessor spec sequence. It is a pure transform: the same request
// always yields the same specs or the same first error.
package compile

import (
	"github.com/rs/zerolog"

	"gsettings-codegen/internal/accessor"
	"gsettings-codegen/internal/request"
	"gsettings-codegen/internal/resolve"
	"gsettings-codegen/internal/schema"
	"gsettings-codegen/internal/valueset"
)

// Result is the output of one compilation.
type Result struct {
	// Doc is the parsed schema document with its selected schema.
	Doc *schema.Document

	// Registry holds the value sets the schema references.
	Registry *valueset.Registry

	// Specs is the ordered accessor spec sequence, document order.
	Specs []accessor.Spec

	// Request is the request the result was compiled from.
	Request *request.Request
}

// HasDefaultPath reports whether generated code gets the zero-argument
// construction path (the request pinned the schema id).
func (r *Result) HasDefaultPath() bool { return r.Doc.Pinned }

// Run compiles the request, reading the schema from req.File.
func Run(req *request.Request, logger zerolog.Logger) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	doc, err := schema.Load(req.File, req.ID)
	if err != nil {
		return nil, err
	}

	return Build(doc, req, logger)
}

// Build compiles a pre-parsed document. Split out from Run so callers
// holding in-memory schema data skip the filesystem.
func Build(doc *schema.Document, req *request.Request, logger zerolog.Logger) (*Result, error) {
	reg, err := valueset.Collect(doc)
	if err != nil {
		return nil, err
	}

	resolutions, err := resolve.All(doc.Schema, reg, req)
	if err != nil {
		return nil, err
	}

	specs := accessor.Generate(doc.Schema, resolutions)

	logger.Debug().
		Str("schema", doc.Schema.ID).
		Int("keys", len(doc.Schema.Keys)).
		Int("specs", len(specs)).
		Int("value_sets", len(reg.Sets())).
		Msg("compiled schema")

	return &Result{Doc: doc, Registry: reg, Specs: specs, Request: req}, nil
}
