package diagfmt

import (
	"path/filepath"

	"nyanc/internal/diag"
)

// formatPath применяет PathMode к каноническому пути.
func formatPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		return filepath.ToSlash(path)
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative:
		if baseDir != "" && filepath.IsAbs(path) {
			if rel, err := filepath.Rel(baseDir, path); err == nil {
				return filepath.ToSlash(rel)
			}
		}
		return filepath.ToSlash(path)
	default:
		return diag.DisplayPath(path, baseDir)
	}
}
