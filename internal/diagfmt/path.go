package diagfmt

import (
	"os"
	"path/filepath"
)

// formatPath applies mode to p; on failure the path is returned unchanged.
func formatPath(p string, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return p
			}
			base = wd
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return p
		}
		if rel, err := filepath.Rel(base, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathModeBasename:
		return filepath.Base(p)
	}
	return p
}
