// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package locate discovers input files for a conversion run by walking
// root directories and matching extensions against a source format.
package locate

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/pdiddy/convert-engine/pkg/types"
)

// Find walks each root recursively and returns the absolute paths of
// regular files whose extension (case-insensitive) belongs to the source
// format's extension set. Directories that cannot be read are skipped,
// with a warning written to w. Order is stable for a given filesystem
// state but otherwise unspecified.
func Find(roots []string, source types.Format, w io.Writer) []string {
	var files []string
	for _, root := range roots {
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				fmt.Fprintf(w, "warning: skipping %s: %v\n", path, err)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if source.Matches(filepath.Ext(d.Name())) {
				if abs, err := filepath.Abs(path); err == nil {
					path = abs
				}
				files = append(files, path)
			}
			return nil
		})
	}
	return files
}
