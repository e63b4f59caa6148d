package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyanc/internal/driver"
)

// run выполняет nyanc с аргументами в каталоге dir.
func run(t *testing.T, dir, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Chdir(dir)
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	}
	return dir
}

func TestParseTree(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.ny": "fn main() { return 1; }\n"})
	out, stderr, err := run(t, dir, "", "parse", "main.ny")
	require.NoError(t, err, stderr)
	assert.Contains(t, out, "Item Fn")
	assert.Contains(t, out, "Stmt Return")
	assert.Empty(t, stderr)
}

func TestParseWithImports(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ny":    "import lib::util;\nfn main() {}\n",
		"lib/util.ny": "pub fn helper() {}\n",
	})
	out, stderr, err := run(t, dir, "", "parse", "--imports", "main.ny")
	require.NoError(t, err, stderr)
	assert.Contains(t, out, "main.ny ==")
	assert.Contains(t, out, "util.ny ==")
	assert.Contains(t, out, "Name: helper")
}

func TestParseSyntaxErrorFails(t *testing.T) {
	dir := writeTree(t, map[string]string{"bad.ny": "let = 1;\n"})
	out, stderr, err := run(t, dir, "", "parse", "--color", "off", "bad.ny")
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, "SYN")
	assert.Contains(t, stderr, "bad.ny:1:")
	assert.Contains(t, out, "Item", "a best-effort tree is still printed")
}

func TestShortDiagnostics(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.ny": "import gone;\n"})
	_, stderr, err := run(t, dir, "", "imports", "--diagnostics-format", "short", "main.ny")
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, "error PRJ5002 main.ny:1:")
	assert.Contains(t, stderr, "note PRJ5002 main.ny:1:")
}

func TestParseMsgpack(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ny": "import util;\n",
		"util.ny": "let x = 1;\n",
	})
	out, stderr, err := run(t, dir, "", "parse", "--imports", "--format", "msgpack", "main.ny")
	require.NoError(t, err, stderr)

	snap, err := driver.DecodeSnapshot(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, snap.Files, 2)
	assert.True(t, snap.Files[0].Parsed)
	assert.True(t, snap.Files[1].Parsed)
	assert.Equal(t, []string{"util"}, snap.Files[0].Imports)
}

func TestImportsCommand(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ny": "import a;\nimport gone;\n",
		"a.ny":    "let x = 1;\n",
	})
	out, stderr, err := run(t, dir, "", "imports", "--color", "off", "main.ny")
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, "PRJ5002")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasSuffix(lines[0], "a.ny"), "dependencies come first: %q", out)
	assert.Contains(t, out, "-> ")
	assert.Contains(t, out, "missing: gone")
}

func TestImportsCycle(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.ny": "import b;\n",
		"b.ny": "import a;\n",
	})
	out, stderr, err := run(t, dir, "", "imports", "a.ny")
	require.NoError(t, err, "cycles are warnings")
	assert.Contains(t, out, "# import cycle")
	assert.Contains(t, stderr, "PRJ5004")
}

func TestTokenizeStdin(t *testing.T) {
	out, stderr, err := run(t, t.TempDir(), "let x = 1;", "tokenize", "--format", "json", "-")
	require.NoError(t, err, stderr)
	assert.Contains(t, out, `"kind": "let"`)
}

func TestManifestEntryAndUnknownKeys(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"nyan.toml":   "[package]\nname = \"demo\"\n[build]\nentry = \"src/main.ny\"\nfancy = 1\n",
		"src/main.ny": "fn main() {}\n",
	})
	out, stderr, err := run(t, filepath.Join(dir, "src"), "", "parse", "--color", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "Item Fn")
	assert.Contains(t, stderr, "PRJ5006")
	assert.Contains(t, stderr, "build.fancy")
}

func TestMissingInput(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "", "parse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input file")
}

func TestTraceOutput(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.ny": "let x = 1;\n"})
	tracePath := filepath.Join(dir, "trace.log")
	_, stderr, err := run(t, dir, "", "parse", "--format", "none",
		"--trace", tracePath, "--trace-level", "detail", "main.ny")
	require.NoError(t, err, stderr)

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[session] → nyanc parse")
	assert.Contains(t, string(data), "[file]")
}

func TestTraceRingDumpedForFailingFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ny": "import util;\nlet = 1;\n",
		"util.ny": "let x = 1;\n",
	})
	_, stderr, err := run(t, dir, "", "parse", "--imports", "--format", "none",
		"--trace-level", "error", "main.ny")
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, "-- recent trace events --")
	assert.Contains(t, stderr, "[session] → nyanc parse")
	assert.Regexp(t, `← ast \{path=\S*main\.ny`, stderr)
	assert.NotRegexp(t, `← ast \{path=\S*util\.ny`, stderr, "files without errors are left out of the dump")
}

func TestVersionJSON(t *testing.T) {
	out, _, err := run(t, t.TempDir(), "", "version", "--format", "json", "--full")
	require.NoError(t, err)
	assert.Contains(t, out, `"tool": "nyanc"`)
	assert.Contains(t, out, `"git_commit": "unknown"`)
}

func TestTimings(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.ny": "let x = 1;\n"})
	_, stderr, err := run(t, dir, "", "parse", "--timings", "--format", "none", "main.ny")
	require.NoError(t, err)
	assert.Contains(t, stderr, "timings:")
	assert.Contains(t, stderr, "parse")
	assert.Contains(t, stderr, "nodes")
}
