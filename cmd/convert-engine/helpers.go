package main

import (
	"os"
	"path/filepath"
)

// defaultHistoryDir is where run history lives when not configured.
// An undetermined home directory disables history rather than erroring.
func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "convert-engine")
}
