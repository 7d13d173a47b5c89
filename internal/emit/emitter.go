// Package emit renders a compilation result into a Go source file: the
// typed settings wrapper, its accessors, and one named type per enum or
// flag set the generated keys use. Rendering is deterministic; the same
// result always yields the same bytes.
package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"gsettings-codegen/internal/compile"
)

// Emitter renders compilation results.
type Emitter struct {
	// DebugDir, when set, receives an .unformatted.go sidecar whenever
	// formatting fails, so the broken render can be inspected.
	DebugDir string
}

// GeneratedFile is one rendered Go source file.
type GeneratedFile struct {
	// Filename is the base name of the file, taken from the request's
	// output path.
	Filename string
	// Content is the formatted, import-fixed Go source.
	Content []byte
}

// Emit renders res into a single generated file.
func (e *Emitter) Emit(res *compile.Result) (*GeneratedFile, error) {
	data := buildFileData(res)
	filename := filepath.Base(res.Request.Output.Path)

	var buf bytes.Buffer
	if err := settingsTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering settings template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		e.dumpUnformatted(filename, buf.Bytes())

		return nil, fmt.Errorf("formatting generated code: %w", err)
	}

	// goimports drops the imports orphaned by all-skip requests or
	// set-free schemas.
	fixed, err := imports.Process(filename, formatted, nil)
	if err != nil {
		return nil, fmt.Errorf("fixing imports: %w", err)
	}

	return &GeneratedFile{Filename: filename, Content: fixed}, nil
}

// dumpUnformatted keeps an .unformatted.go copy of a render that failed
// gofmt, so the broken template output can be read in place. Kept as a
// .go file for editor highlighting; best-effort, never fails emission
// harder.
func (e *Emitter) dumpUnformatted(filename string, src []byte) {
	if e.DebugDir == "" || filename == "" {
		return
	}

	if err := os.MkdirAll(e.DebugDir, 0o755); err != nil {
		return
	}

	name := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	_ = os.WriteFile(filepath.Join(e.DebugDir, name), src, 0o644)
}
