// Package scan discovers input files for batch conversion.
package scan

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Files walks root recursively and returns every regular file with the
// given extension. Hidden files are skipped.
func Files(root, ext string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
