package batch

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/vmunix/ripped/internal/convert"
)

// Discover walks root and returns every legacy-container file below it,
// sorted lexicographically by full path. Unreadable entries are skipped.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if convert.NeedsConversion(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
