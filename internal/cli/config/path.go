package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath converts the `config init` path argument to an absolute path.
// "~" and "~/..." expand to the home directory; relative paths resolve
// against the working directory.
func ResolvePath(rawPath string) (string, error) {
	if rawPath == "~" || strings.HasPrefix(rawPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding tilde in path: %w", err)
		}
		rawPath = filepath.Join(home, strings.TrimPrefix(rawPath, "~"))
	}

	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return absPath, nil
}

// EnsureDirectory creates path (and parents) with 0755 permissions unless it
// already exists. It fails when path exists but is a file.
func EnsureDirectory(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("path exists and is not a directory: %s", path)
	case err == nil:
		return nil
	case os.IsNotExist(err):
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("checking path %s: %w", path, err)
	}
}
