package driver

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"nyanc/internal/source"
	"nyanc/internal/trace"
)

var errBadSegment = errors.New("invalid module path segment")

// ResolveModule maps `import a::b` in anchor to <dir of anchor>/a/b.ny and
// loads that file. It never parses the result, so modules importing each
// other resolve without recursion.
//
// Segments are not joined blindly: an empty list, an empty segment, "." or
// "..", and a segment containing '/', '\' or NUL resolve to false without
// touching disk, so an import never leaves the anchor's directory tree.
// Other failures (a virtual anchor without a directory, IO errors) are also
// reported as false; the caller decides whether that deserves a diagnostic.
func (db *Database) ResolveModule(anchor source.FileID, segments []string) (source.FileID, bool) {
	path, ok := db.sources.Path(anchor)
	if !ok {
		return 0, false
	}
	dir, ok := anchorDir(db.sources.File(anchor), path)
	if !ok {
		trace.Point(db.tracer, trace.ScopeQuery, "resolve", db.span, "anchor has no directory", "anchor", path)
		return 0, false
	}
	rel, err := modulePath(segments)
	if err != nil {
		trace.Point(db.tracer, trace.ScopeQuery, "resolve", db.span, err.Error(), "anchor", path)
		return 0, false
	}

	candidate := filepath.Join(dir, rel) + source.Extension
	id, err := db.sources.Load(candidate)
	if err != nil {
		trace.Point(db.tracer, trace.ScopeQuery, "resolve", db.span, "miss", "candidate", candidate)
		return 0, false
	}
	trace.Point(db.tracer, trace.ScopeQuery, "resolve", db.span, "hit", "candidate", candidate)
	return id, true
}

// anchorDir — каталог файла-якоря. Виртуальные файлы с относительным
// именем каталога не имеют.
func anchorDir(f *source.File, path string) (string, bool) {
	if f.Virtual() && !filepath.IsAbs(path) {
		return "", false
	}
	dir := filepath.Dir(path)
	if dir == path {
		return "", false
	}
	return dir, true
}

// modulePath joins segments into a relative path. Empty, "." and ".."
// segments and segments containing a separator are rejected so an import
// can only descend from the anchor directory.
func modulePath(segments []string) (string, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: empty module path", errBadSegment)
	}
	for _, seg := range segments {
		switch {
		case seg == "", seg == ".", seg == "..":
			return "", fmt.Errorf("%w: %q", errBadSegment, seg)
		case strings.ContainsAny(seg, `/\`+"\x00"), strings.ContainsRune(seg, filepath.Separator):
			return "", fmt.Errorf("%w: %q", errBadSegment, seg)
		}
	}
	return filepath.Join(segments...), nil
}
