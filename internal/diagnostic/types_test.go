package diagnostic

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticString(t *testing.T) {
	d := Errorf(CodeUnmappedType, "no mapping for type code").
		WithKey("cache-dir").
		WithTypeCode("(ss)")

	assert.Equal(t, "[unmapped_type] no mapping for type code (key cache-dir, type (ss))", d.String())
	assert.Equal(t, d.String(), d.Error())
}

func TestDiagnosticStringBare(t *testing.T) {
	d := Errorf(CodeParseError, "unexpected EOF")
	assert.Equal(t, "[parse_error] unexpected EOF", d.String())
}

func TestCodeOf(t *testing.T) {
	d := Errorf(CodeAmbiguousSchema, "2 schemas, no id given")

	assert.Equal(t, CodeAmbiguousSchema, CodeOf(d))
	assert.Equal(t, CodeAmbiguousSchema, CodeOf(fmt.Errorf("compile: %w", d)))
	assert.Equal(t, "", CodeOf(fmt.Errorf("plain error")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestDiagnosticsFailFast(t *testing.T) {
	var ds Diagnostics

	assert.False(t, ds.HasErrors())
	assert.NoError(t, ds.Err())
	assert.NoError(t, ds.Combined())

	ds.Add(Errorf(CodeDuplicateKey, "key declared twice").WithKey("a"))
	ds.Add(Errorf(CodeDuplicateVariant, "collision").WithKey("b"))

	require.True(t, ds.HasErrors())
	assert.Equal(t, CodeDuplicateKey, CodeOf(ds.Err()))
	assert.Contains(t, ds.Combined().Error(), "duplicate_key")
	assert.Contains(t, ds.Combined().Error(), "duplicate_variant")
}
