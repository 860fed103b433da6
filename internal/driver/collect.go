package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tabtidy/internal/ast"
)

// ErrNoFiles is returned when the given paths contain no test data.
var ErrNoFiles = errors.New("driver: no test data files found")

// Extensions lists the file suffixes picked up when walking directories.
var Extensions = []string{".robot", ".resource", ".txt", ".tsv"}

// KindFor derives the file kind from its name: __init__.* is a suite
// initialization file, *.resource a resource file, anything else a suite.
func KindFor(path string) ast.FileKind {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	switch {
	case strings.TrimSuffix(base, filepath.Ext(base)) == "__init__":
		return ast.InitFile
	case ext == ".resource":
		return ast.ResourceFile
	default:
		return ast.SuiteFile
	}
}

// HasExtension reports whether path ends in one of Extensions, ignoring case.
func HasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// CollectFiles expands paths into a sorted, deduplicated file list.
// Directories are walked recursively and filtered by Extensions; hidden
// directories below the root are skipped. Explicit file arguments are taken
// as is.
func CollectFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if HasExtension(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
