// Package fsutil locates grid files on disk.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// FindFilesByExtension returns every file under root whose name ends in
// ext, in lexical order. root may name a single file. Directories whose
// name starts with a dot are skipped, except root itself.
func FindFilesByExtension(root, ext string) ([]string, error) {
	if ext == "" {
		panic("fsutil: extension must not be empty")
	}

	var found []string
	walk := func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case d.IsDir():
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
		case strings.HasSuffix(d.Name(), ext):
			found = append(found, path)
		}
		return nil
	}
	if err := filepath.WalkDir(root, walk); err != nil {
		return nil, err
	}

	slices.Sort(found)
	return found, nil
}
