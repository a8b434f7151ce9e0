package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".ragdesk"

// GetRuntimePath resolves the runtime directory before any .env is loaded.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("RAGDESK_RUNTIME_PATH"))
}

// resolveRuntimePath anchors relative paths in the user's home directory.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}
	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
