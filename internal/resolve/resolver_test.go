package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gsettings-codegen/internal/diagnostic"
	"gsettings-codegen/internal/request"
	"gsettings-codegen/internal/schema"
	"gsettings-codegen/internal/valueset"
)

const resolveSchema = `<schemalist>
  <schema id="org.example">
    <key name="window-width" type="i"><default>600</default></key>
    <key name="window-size" type="(ii)"><default>(600, 400)</default></key>
    <key name="string-tuple" type="(ss)"><default>('a', 'b')</default></key>
    <key name="theme" type="s">
      <choices><choice value="light"/><choice value="dark"/></choices>
      <default>'light'</default>
    </key>
    <key name="recent-files" type="as"><default>[]</default></key>
  </schema>
</schemalist>`

func fixture(t *testing.T) (*schema.Document, *valueset.Registry) {
	t.Helper()

	doc, err := schema.Parse([]byte(resolveSchema), "")
	require.NoError(t, err)

	reg, err := valueset.Collect(doc)
	require.NoError(t, err)

	return doc, reg
}

func keyNamed(t *testing.T, doc *schema.Document, name string) *schema.Key {
	t.Helper()

	for i := range doc.Schema.Keys {
		if doc.Schema.Keys[i].Name == name {
			return &doc.Schema.Keys[i]
		}
	}

	t.Fatalf("no key %q in fixture", name)

	return nil
}

func TestResolveDefaults(t *testing.T) {
	doc, reg := fixture(t)
	req := &request.Request{File: "x"}

	t.Run("table type", func(t *testing.T) {
		res, err := Key(keyNamed(t, doc, "window-width"), reg, req)
		require.NoError(t, err)
		assert.Equal(t, Generate, res.Behavior)
		assert.Equal(t, "int32", res.Arg)
		assert.Equal(t, "int32", res.Ret)
		assert.Nil(t, res.Set)
	})

	t.Run("enum-bearing string key redirects to the registry", func(t *testing.T) {
		res, err := Key(keyNamed(t, doc, "theme"), reg, req)
		require.NoError(t, err)
		assert.Equal(t, Generate, res.Behavior)
		assert.Equal(t, "Theme", res.Arg)
		assert.Equal(t, "Theme", res.Ret)
		require.NotNil(t, res.Set)
		assert.Equal(t, valueset.KindEnum, res.Set.Kind)
	})

	t.Run("unmapped type code is fatal", func(t *testing.T) {
		_, err := Key(keyNamed(t, doc, "string-tuple"), reg, req)
		require.Error(t, err)
		assert.Equal(t, diagnostic.CodeUnmappedType, diagnostic.CodeOf(err))
		assert.Contains(t, err.Error(), "string-tuple")
		assert.Contains(t, err.Error(), "(ss)")
	})
}

func TestResolveSkip(t *testing.T) {
	doc, reg := fixture(t)

	t.Run("by name", func(t *testing.T) {
		req := &request.Request{Skips: []request.Skip{{KeyName: "window-width"}}}

		res, err := Key(keyNamed(t, doc, "window-width"), reg, req)
		require.NoError(t, err)
		assert.Equal(t, Skip, res.Behavior)
	})

	t.Run("by signature", func(t *testing.T) {
		req := &request.Request{Skips: []request.Skip{{Signature: "(ss)"}}}

		res, err := Key(keyNamed(t, doc, "string-tuple"), reg, req)
		require.NoError(t, err)
		assert.Equal(t, Skip, res.Behavior)

		// Other keys are untouched.
		res, err = Key(keyNamed(t, doc, "window-width"), reg, req)
		require.NoError(t, err)
		assert.Equal(t, Generate, res.Behavior)
	})
}

func TestResolveDefine(t *testing.T) {
	doc, reg := fixture(t)

	t.Run("by signature", func(t *testing.T) {
		req := &request.Request{Defines: []request.Define{
			{Signature: "(ss)", ArgType: "[2]string", RetType: "[2]string"},
		}}

		res, err := Key(keyNamed(t, doc, "string-tuple"), reg, req)
		require.NoError(t, err)
		assert.Equal(t, Generate, res.Behavior)
		assert.Equal(t, "[2]string", res.Arg)
		assert.Equal(t, "[2]string", res.Ret)
	})

	t.Run("by name beats the enum path", func(t *testing.T) {
		req := &request.Request{Defines: []request.Define{
			{KeyName: "theme", ArgType: "string", RetType: "string"},
		}}

		res, err := Key(keyNamed(t, doc, "theme"), reg, req)
		require.NoError(t, err)
		assert.Equal(t, "string", res.Arg)
		assert.Nil(t, res.Set)
	})

	t.Run("name define beats signature define", func(t *testing.T) {
		req := &request.Request{Defines: []request.Define{
			{Signature: "i", ArgType: "int", RetType: "int"},
			{KeyName: "window-width", ArgType: "uint", RetType: "uint"},
		}}

		res, err := Key(keyNamed(t, doc, "window-width"), reg, req)
		require.NoError(t, err)
		assert.Equal(t, "uint", res.Arg)
	})

	t.Run("name define beats signature skip", func(t *testing.T) {
		// Most specific wins across directive kinds.
		req := &request.Request{
			Skips:   []request.Skip{{Signature: "i"}},
			Defines: []request.Define{{KeyName: "window-width", ArgType: "int", RetType: "int"}},
		}

		res, err := Key(keyNamed(t, doc, "window-width"), reg, req)
		require.NoError(t, err)
		assert.Equal(t, Generate, res.Behavior)
		assert.Equal(t, "int", res.Arg)
	})

	t.Run("name skip beats name define", func(t *testing.T) {
		req := &request.Request{
			Skips:   []request.Skip{{KeyName: "window-width"}},
			Defines: []request.Define{{KeyName: "window-width", ArgType: "int", RetType: "int"}},
		}

		res, err := Key(keyNamed(t, doc, "window-width"), reg, req)
		require.NoError(t, err)
		assert.Equal(t, Skip, res.Behavior)
	})
}

func TestResolveConflicts(t *testing.T) {
	doc, reg := fixture(t)

	t.Run("two name defines", func(t *testing.T) {
		req := &request.Request{Defines: []request.Define{
			{KeyName: "window-width", ArgType: "int", RetType: "int"},
			{KeyName: "window-width", ArgType: "uint", RetType: "uint"},
		}}

		_, err := Key(keyNamed(t, doc, "window-width"), reg, req)
		require.Error(t, err)
		assert.Equal(t, diagnostic.CodeConflictingOverride, diagnostic.CodeOf(err))
		assert.Contains(t, err.Error(), "window-width")
	})

	t.Run("two signature defines", func(t *testing.T) {
		req := &request.Request{Defines: []request.Define{
			{Signature: "(ss)", ArgType: "A", RetType: "A"},
			{Signature: "(ss)", ArgType: "B", RetType: "B"},
		}}

		_, err := Key(keyNamed(t, doc, "string-tuple"), reg, req)
		require.Error(t, err)
		assert.Equal(t, diagnostic.CodeConflictingOverride, diagnostic.CodeOf(err))
	})

	t.Run("duplicate name skips", func(t *testing.T) {
		req := &request.Request{Skips: []request.Skip{
			{KeyName: "window-width"},
			{KeyName: "window-width"},
		}}

		_, err := Key(keyNamed(t, doc, "window-width"), reg, req)
		require.Error(t, err)
		assert.Equal(t, diagnostic.CodeConflictingOverride, diagnostic.CodeOf(err))
	})

	t.Run("name define plus signature define is not a conflict", func(t *testing.T) {
		req := &request.Request{Defines: []request.Define{
			{KeyName: "window-width", ArgType: "int", RetType: "int"},
			{Signature: "i", ArgType: "uint", RetType: "uint"},
		}}

		res, err := Key(keyNamed(t, doc, "window-width"), reg, req)
		require.NoError(t, err)
		assert.Equal(t, "int", res.Arg, "name level resolves first")
	})
}

func TestAll(t *testing.T) {
	doc, reg := fixture(t)
	req := &request.Request{
		Skips:   []request.Skip{{KeyName: "recent-files"}},
		Defines: []request.Define{{Signature: "(ss)", ArgType: "[2]string", RetType: "[2]string"}},
	}

	resolutions, err := All(doc.Schema, reg, req)
	require.NoError(t, err)
	require.Len(t, resolutions, 5, "one resolution per key, document order")

	assert.Equal(t, "window-width", resolutions[0].Key.Name)
	assert.Equal(t, Generate, resolutions[0].Resolution.Behavior)
	assert.Equal(t, Skip, resolutions[4].Resolution.Behavior)
}

func TestAllFailsFast(t *testing.T) {
	doc, reg := fixture(t)

	// string-tuple has no table entry and no directive.
	_, err := All(doc.Schema, reg, &request.Request{})
	require.Error(t, err)
	assert.Equal(t, diagnostic.CodeUnmappedType, diagnostic.CodeOf(err))
}
