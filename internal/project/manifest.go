package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"

	"nyanc/internal/source"
)

// Manifest is the decoded nyan.toml of a project.
type Manifest struct {
	Path string // путь к самому nyan.toml
	Root string // каталог манифеста
	Name string

	Entry          string // абсолютный путь к входному файлу, "" если не задан
	MaxDiagnostics int
	TraceLevel     string
	TraceFormat    string

	// Unknown lists keys the manifest sets but nyanc does not understand.
	Unknown []string
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameInvalid indicates an empty or malformed [package].name.
	ErrPackageNameInvalid = errors.New("invalid [package].name")
	// ErrEntryInvalid indicates a [build].entry that cannot name a source file.
	ErrEntryInvalid = errors.New("invalid [build].entry")
)

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Build struct {
		Entry          string `toml:"entry"`
		MaxDiagnostics int    `toml:"max_diagnostics"`
		TraceLevel     string `toml:"trace_level"`
		TraceFormat    string `toml:"trace_format"`
	} `toml:"build"`
}

// LoadManifest parses the nyan.toml at path.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if !IsValidPackageName(name) {
		return nil, fmt.Errorf("%s: %w %q", path, ErrPackageNameInvalid, name)
	}
	if cfg.Build.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [build].max_diagnostics must not be negative", path)
	}

	m := &Manifest{
		Path:           path,
		Root:           filepath.Dir(path),
		Name:           name,
		MaxDiagnostics: cfg.Build.MaxDiagnostics,
		TraceLevel:     strings.TrimSpace(cfg.Build.TraceLevel),
		TraceFormat:    strings.TrimSpace(cfg.Build.TraceFormat),
	}
	if meta.IsDefined("build", "entry") {
		entry, err := ResolveEntry(m.Root, cfg.Build.Entry)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		m.Entry = entry
	}
	for _, key := range meta.Undecoded() {
		m.Unknown = append(m.Unknown, key.String())
	}
	slices.Sort(m.Unknown)
	return m, nil
}

// Discover finds and loads the manifest above startDir. A missing manifest
// is not an error: ok is false and m is nil.
func Discover(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// ResolveEntry resolves entry relative to root. The entry must stay inside
// root, carry the .ny extension and exist as a regular file.
func ResolveEntry(root, entry string) (string, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return "", fmt.Errorf("%w: empty", ErrEntryInvalid)
	}
	if filepath.IsAbs(entry) {
		return "", fmt.Errorf("%w %q: must be relative", ErrEntryInvalid, entry)
	}
	if filepath.Ext(entry) != source.Extension {
		return "", fmt.Errorf("%w %q: must end with %s", ErrEntryInvalid, entry, source.Extension)
	}
	path := filepath.Join(root, filepath.Clean(filepath.FromSlash(entry)))
	if !pathWithin(root, path) {
		return "", fmt.Errorf("%w %q: escapes project root", ErrEntryInvalid, entry)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrEntryInvalid, entry, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w %q: not a regular file", ErrEntryInvalid, entry)
	}
	return path, nil
}

// IsValidPackageName accepts ASCII identifiers, with '-' allowed after the
// first character.
func IsValidPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
