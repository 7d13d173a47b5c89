package emit_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"gsettings-codegen/internal/compile"
	"gsettings-codegen/internal/emit"
	"gsettings-codegen/internal/request"
	"gsettings-codegen/internal/schema"
)

const playerSchema = `<schemalist>
  <enum id="org.example.player.repeat-mode">
    <value nick="none" value="0"/>
    <value nick="one" value="1"/>
    <value nick="all" value="2"/>
  </enum>
  <flags id="org.example.player.decorations">
    <value nick="title-bar" value="1"/>
    <value nick="status-bar" value="2"/>
    <value nick="tool-bar" value="4"/>
  </flags>
  <schema id="org.example.player">
    <key name="repeat-mode" enum="org.example.player.repeat-mode">
      <default>'none'</default>
    </key>
    <key name="decorations" flags="org.example.player.decorations">
      <default>[]</default>
    </key>
    <key name="volume" type="d">
      <default>1.0</default>
    </key>
  </schema>
</schemalist>`

// roundtripMain drives the emitted wrapper against a MemoryStore and
// exits non-zero on the first value that does not survive the store's
// serialization.
const roundtripMain = `package main

import (
	"fmt"
	"os"

	"gsettings-codegen/backend"
	"gsettings-codegen/variant"
)

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	store := backend.NewMemoryStore()
	store.Seed("repeat-mode", variant.StringValue("none"), true)
	store.Seed("decorations", variant.StrvValue(nil), true)
	store.Seed("volume", variant.DoubleValue(1.0), true)

	s := New(store)

	union := Decorations_TITLE_BAR | Decorations_STATUS_BAR
	s.SetDecorations(union)

	if got := s.Decorations(); got != union {
		fail("decorations: got %v, want %v", got, union)
	}

	if got := s.Decorations(); !got.Has(Decorations_TITLE_BAR) || !got.Has(Decorations_STATUS_BAR) {
		fail("decorations: union lost a bit")
	}

	if text := store.Value("decorations").Text(); text != "['title-bar', 'status-bar']" {
		fail("decorations stored as %s", text)
	}

	s.SetRepeatMode(RepeatModeAll)

	if got := s.RepeatMode(); got != RepeatModeAll {
		fail("repeat-mode: got %v, want %v", got, RepeatModeAll)
	}

	if text := store.Value("repeat-mode").Text(); text != "'all'" {
		fail("repeat-mode stored as %s", text)
	}

	var seen []RepeatMode
	cancel := s.ConnectRepeatModeChanged(func(m RepeatMode) { seen = append(seen, m) })
	s.SetRepeatMode(RepeatModeOne)
	cancel()

	if len(seen) != 1 || seen[0] != RepeatModeOne {
		fail("change notification: got %v", seen)
	}

	s.SetVolume(0.5)

	if got := s.Volume(); got != 0.5 {
		fail("volume: got %v, want 0.5", got)
	}

	fmt.Println("ok")
}
`

// TestGeneratedCode_StoreRoundTrip compiles a schema, emits the
// bindings, and executes them: the emitted package is assembled into a
// temporary module together with the runtime packages it imports, and
// driven end to end through a MemoryStore.
func TestGeneratedCode_StoreRoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := schema.Parse([]byte(playerSchema), "org.example.player")
	require.NoError(t, err)

	req := &request.Request{
		File:   "player.gschema.xml",
		ID:     "org.example.player",
		Output: request.Output{Path: "player_gen.go", Package: "main", Type: "PlayerSettings"},
	}

	res, err := compile.Build(doc, req, zerolog.Nop())
	require.NoError(t, err)

	file, err := (&emit.Emitter{}).Emit(res)
	require.NoError(t, err)

	dir := t.TempDir()
	writeRoundtripFile(t, dir, "go.mod", []byte("module gsettings-codegen\n\ngo 1.21\n"))
	writeRoundtripFile(t, dir, "player_gen.go", file.Content)
	writeRoundtripFile(t, dir, "main.go", []byte(roundtripMain))

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	copyPackage(t, filepath.Join(repoRoot, "backend"), filepath.Join(dir, "backend"))
	copyPackage(t, filepath.Join(repoRoot, "variant"), filepath.Join(dir, "variant"))

	cmd := exec.CommandContext(context.Background(), "go", "run", ".")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOWORK=off")

	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "round trip failed:\n%s", out)
	require.Contains(t, string(out), "ok")
}

func writeRoundtripFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

// copyPackage copies the non-test sources of one package into the
// temporary module, which keeps its build free of outside requirements.
func copyPackage(t *testing.T, src, dst string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(dst, 0o755))

	paths, err := filepath.Glob(filepath.Join(src, "*.go"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, p := range paths {
		if strings.HasSuffix(p, "_test.go") {
			continue
		}

		data, err := os.ReadFile(p)
		require.NoError(t, err)

		writeRoundtripFile(t, dst, filepath.Base(p), data)
	}
}
