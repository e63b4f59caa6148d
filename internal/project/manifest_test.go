package project

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"demo\"\n")
	deep := filepath.Join(root, "src", "net", "http")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := FindManifest(deep)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(root, ManifestName) {
		t.Errorf("path = %q", path)
	}
	dir, ok, err := FindProjectRoot(deep)
	if err != nil || !ok || dir != root {
		t.Errorf("FindProjectRoot = %q, %v, %v", dir, ok, err)
	}
}

func TestFindManifestMissing(t *testing.T) {
	// во временном каталоге и выше nyan.toml быть не должно
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Skip("a nyan.toml exists above the temp dir")
	}
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.ny"), "fn main() {}\n")
	writeFile(t, filepath.Join(root, ManifestName), `
[package]
name = "demo-app"

[build]
entry = "src/main.ny"
max_diagnostics = 50
trace_level = "detail"
trace_format = "ndjson"
optimize = true
`)

	m, err := LoadManifest(filepath.Join(root, ManifestName))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Name != "demo-app" || m.Root != root {
		t.Errorf("name/root = %q, %q", m.Name, m.Root)
	}
	if m.Entry != filepath.Join(root, "src", "main.ny") {
		t.Errorf("entry = %q", m.Entry)
	}
	if m.MaxDiagnostics != 50 || m.TraceLevel != "detail" || m.TraceFormat != "ndjson" {
		t.Errorf("build = %+v", m)
	}
	if !slices.Equal(m.Unknown, []string{"build.optimize"}) {
		t.Errorf("unknown = %v", m.Unknown)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"no package", "[build]\nentry = \"main.ny\"\n", ErrPackageSectionMissing},
		{"empty name", "[package]\nname = \"\"\n", ErrPackageNameInvalid},
		{"bad name", "[package]\nname = \"9lives\"\n", ErrPackageNameInvalid},
		{"escaping entry", "[package]\nname = \"x\"\n[build]\nentry = \"../main.ny\"\n", ErrEntryInvalid},
		{"wrong extension", "[package]\nname = \"x\"\n[build]\nentry = \"main.go\"\n", ErrEntryInvalid},
		{"missing entry", "[package]\nname = \"x\"\n[build]\nentry = \"nope.ny\"\n", ErrEntryInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			path := filepath.Join(root, ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadManifest(path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadManifestSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[package\nname = ")
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected a TOML error")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"demo\"\n")
	sub := filepath.Join(root, "lib")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	m, ok, err := Discover(sub)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if m.Entry != "" {
		t.Errorf("entry = %q, want empty", m.Entry)
	}
}
