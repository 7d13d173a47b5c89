package request

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default output options applied by Parse.
const (
	DefaultPackage = "settings"
	DefaultType    = "Settings"
)

// LoadFile loads and parses a YAML request file from the given path.
// Relative schema and output paths in the request resolve against the
// request file's directory.
func LoadFile(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file %s: %w", path, err)
	}

	req, err := Parse(data)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if req.File != "" && !filepath.IsAbs(req.File) {
		req.File = filepath.Join(dir, req.File)
	}

	if !filepath.IsAbs(req.Output.Path) {
		req.Output.Path = filepath.Join(dir, req.Output.Path)
	}

	return req, nil
}

// Parse parses YAML data into a validated Request.
func Parse(data []byte) (*Request, error) {
	var req Request

	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request YAML: %w", err)
	}

	applyDefaults(&req)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return &req, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(req *Request) {
	if req.Output.Package == "" {
		req.Output.Package = DefaultPackage
	}

	if req.Output.Type == "" {
		req.Output.Type = DefaultType
	}

	if req.Output.Path == "" {
		req.Output.Path = req.Output.Package + "_gen.go"
	}
}
