package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/taglog/config.yml
// - macOS: ~/Library/Application Support/taglog/config.yml
// - Windows: %APPDATA%\taglog\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "taglog"), nil
}

// ProjectConfigPath returns the project-level YAML config file inside root.
// An empty root means the current directory.
func ProjectConfigPath(root string) string {
	return filepath.Join(ProjectConfigDir(root), "config.yml")
}

// ProjectJSONConfigPath returns the project-level JSON config file inside root.
func ProjectJSONConfigPath(root string) string {
	return filepath.Join(ProjectConfigDir(root), "config.json")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir(root string) string {
	return filepath.Join(root, ".taglog")
}
