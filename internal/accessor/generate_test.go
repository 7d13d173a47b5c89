package accessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gsettings-codegen/internal/request"
	"gsettings-codegen/internal/resolve"
	"gsettings-codegen/internal/schema"
	"gsettings-codegen/internal/valueset"
)

const generateSchema = `<schemalist>
  <enum id="org.example.alert-sound">
    <value nick="bang" value="0"/>
    <value nick="glass" value="1"/>
  </enum>
  <schema id="org.example">
    <key name="a" type="b"><default>false</default></key>
    <key name="b" type="i">
      <default> 100 </default>
      <summary>Key b</summary>
      <description>The second key.</description>
    </key>
    <key name="c" type="as"><default>['x', 'y']</default></key>
    <key name="alert-sound" enum="org.example.alert-sound">
      <default>'bang'</default>
    </key>
    <key name="install-dir" type="s" readonly="true"><default>'/usr'</default></key>
  </schema>
</schemalist>`

func compile(t *testing.T, req *request.Request) []Spec {
	t.Helper()

	doc, err := schema.Parse([]byte(generateSchema), "")
	require.NoError(t, err)

	reg, err := valueset.Collect(doc)
	require.NoError(t, err)

	resolutions, err := resolve.All(doc.Schema, reg, req)
	require.NoError(t, err)

	return Generate(doc.Schema, resolutions)
}

func TestGenerate(t *testing.T) {
	specs := compile(t, &request.Request{})
	require.Len(t, specs, 5)

	b := specs[1]
	assert.Equal(t, "b", b.Key)
	assert.Equal(t, "i", b.TypeCode)
	assert.Equal(t, "int32", b.ArgType)
	assert.Equal(t, "int32", b.RetType)
	assert.Equal(t, "Key b", b.Doc.Summary)
	assert.Equal(t, "The second key.", b.Doc.Description)
	assert.Equal(t, "100", b.Doc.Default, "default is re-rendered canonically")

	alert := specs[3]
	assert.Equal(t, "AlertSound", alert.ArgType)
	assert.Equal(t, "AlertSound", alert.SetName)
	require.NotNil(t, alert.Set)

	install := specs[4]
	assert.True(t, install.ReadOnly, "read-only keys are annotated, not rejected")
	assert.NotEmpty(t, install.Names.Setter, "setter names are still derived")
}

func TestMethodNames(t *testing.T) {
	specs := compile(t, &request.Request{})

	alert := specs[3]
	assert.Equal(t, Names{
		Getter:         "AlertSound",
		Setter:         "SetAlertSound",
		TrySetter:      "TrySetAlertSound",
		ConnectChanged: "ConnectAlertSoundChanged",
		Bind:           "BindAlertSound",
		CreateAction:   "CreateAlertSoundAction",
	}, alert.Names)
}

func TestGenerateSkipRemovesKey(t *testing.T) {
	specs := compile(t, &request.Request{
		Skips: []request.Skip{{KeyName: "b"}},
	})

	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Key
	}

	assert.Equal(t, []string{"a", "c", "alert-sound", "install-dir"}, names)
}

func TestGenerateDeterministic(t *testing.T) {
	first := compile(t, &request.Request{})
	second := compile(t, &request.Request{})

	assert.Equal(t, first, second, "same input yields identical spec sequences")
}

func TestRenderDefaultPassthrough(t *testing.T) {
	k := &schema.Key{Name: "pair", Type: "(ss)", Default: "('a', 'b')"}
	assert.Equal(t, "('a', 'b')", renderDefault(k), "unsupported codes pass through verbatim")
}
