// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UniquePath returns path if nothing exists there, otherwise the first
// candidate with "(1)", "(2)", ... inserted before the extension that does
// not exist. The check-then-create window is not atomic; within one run no
// two tasks target the same output path, so the race is not closed here.
func UniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s(%d)%s", base, counter, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
