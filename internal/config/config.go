// taglog - Tag-routed changelog generation from git history
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/taglog

// Package config loads the changelog configuration using koanf.
// Layers are applied in order: defaults < user config (~/.config/taglog/config.yml)
// < project config (.taglog/config.yml or .taglog/config.json) < explicit --config file
// < environment variables (TAGLOG_*). Each layer is a partial override; keys a layer
// does not mention keep the value from the layers below it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ariel-frischer/taglog/internal/changelog"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigSource tracks where a configuration layer came from
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUser     ConfigSource = "user"
	SourceProject  ConfigSource = "project"
	SourceExplicit ConfigSource = "explicit"
	SourceEnv      ConfigSource = "env"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "TAGLOG_"

// delimitersKey is decoded outside mapstructure so malformed pairs degrade
// to empty instead of failing the whole file.
const delimitersKey = "delimiters"

// Layer records one configuration source that contributed to the result.
type Layer struct {
	Source ConfigSource
	Path   string
}

func (l Layer) String() string {
	if l.Path == "" {
		return string(l.Source)
	}
	return fmt.Sprintf("%s (%s)", l.Source, l.Path)
}

// Loaded is the merged configuration plus the layers it was built from.
type Loaded struct {
	Config changelog.Configuration
	Layers []Layer
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath is an explicit config file (--config). It must exist.
	ConfigPath string
	// ProjectDir overrides the directory holding .taglog/ (default: working directory)
	ProjectDir string
	// UserConfigPath overrides the user config file (default: UserConfigPath())
	UserConfigPath string
	// SkipUser ignores the user-level config entirely
	SkipUser bool
	// SkipEnv ignores TAGLOG_* environment variables
	SkipEnv bool
}

// Load loads configuration from every layer with default options.
func Load(configPath string) (*Loaded, error) {
	return LoadWithOptions(LoadOptions{ConfigPath: configPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Loaded, error) {
	loaded := &Loaded{
		Config: changelog.DefaultConfiguration(),
		Layers: []Layer{{Source: SourceDefault}},
	}

	if !opts.SkipUser {
		if err := loadUserConfig(loaded, opts.UserConfigPath); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(loaded, opts.ProjectDir); err != nil {
		return nil, err
	}

	if opts.ConfigPath != "" {
		if !fileExists(opts.ConfigPath) {
			return nil, &ValidationError{FilePath: opts.ConfigPath, Message: "file not found"}
		}
		if err := loadFileLayer(loaded, opts.ConfigPath, SourceExplicit); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if !opts.SkipEnv {
		if err := loadEnvironmentConfig(loaded); err != nil {
			return nil, err
		}
	}

	if err := Validate(&loaded.Config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	loaded.Config.Git.RepoPath = expandHomePath(loaded.Config.Git.RepoPath)
	return loaded, nil
}

// loadUserConfig applies the user-level YAML config if it exists.
func loadUserConfig(loaded *Loaded, customPath string) error {
	path := customPath
	if path == "" {
		var err error
		if path, err = UserConfigPath(); err != nil {
			// No resolvable config dir (e.g. HOME unset): nothing to load.
			return nil
		}
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadFileLayer(loaded, path, SourceUser); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig applies .taglog/config.yml, falling back to
// .taglog/config.json when no YAML file exists.
func loadProjectConfig(loaded *Loaded, projectDir string) error {
	for _, path := range []string{ProjectConfigPath(projectDir), ProjectJSONConfigPath(projectDir)} {
		if !fileExists(path) {
			continue
		}
		if err := loadFileLayer(loaded, path, SourceProject); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		return nil
	}
	return nil
}

// loadFileLayer parses one file into a fresh koanf instance and merges it.
func loadFileLayer(loaded *Loaded, path string, source ConfigSource) error {
	k := koanf.New(".")
	if isJSON(path) {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return &DecodeError{FilePath: path, Err: err}
		}
	} else {
		if err := ValidateYAMLSyntax(path); err != nil {
			return fmt.Errorf("validating YAML syntax for %s config: %w", source, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return &DecodeError{FilePath: path, Err: err}
		}
	}

	overrides, err := decodeOverrides(k)
	if err != nil {
		return &DecodeError{FilePath: path, Err: err}
	}
	overrides.MergeInto(&loaded.Config)
	loaded.Layers = append(loaded.Layers, Layer{Source: source, Path: path})
	return nil
}

// loadEnvironmentConfig applies TAGLOG_* overrides.
func loadEnvironmentConfig(loaded *Loaded) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	if len(k.Keys()) == 0 {
		return nil
	}
	overrides, err := decodeOverrides(k)
	if err != nil {
		return &DecodeError{FilePath: "environment", Err: err}
	}
	overrides.MergeInto(&loaded.Config)
	loaded.Layers = append(loaded.Layers, Layer{Source: SourceEnv})
	return nil
}

// decodeOverrides unmarshals a single layer. Delimiters are decoded
// leniently and removed before the strict unmarshal.
func decodeOverrides(k *koanf.Koanf) (changelog.Overrides, error) {
	var delims *changelog.DelimiterConfiguration
	if k.Exists(delimitersKey) {
		decoded := changelog.DecodeDelimiterConfiguration(k.Get(delimitersKey))
		delims = &decoded
		k.Delete(delimitersKey)
	}

	var overrides changelog.Overrides
	if err := k.Unmarshal("", &overrides); err != nil {
		return changelog.Overrides{}, err
	}
	overrides.Delimiters = delims
	return overrides, nil
}

// envVars maps supported environment variables to config keys.
var envVars = map[string]string{
	"HEADER":                             "format.header",
	"FOOTER":                             "format.footer",
	"SHOW_TAGS":                          "format.show_tags",
	"SHOW_AUTHORS":                       "format.show_authors",
	"CONTRIBUTOR_HANDLE_PREFIX":          "contributor_handle_prefix",
	"MARKER_PATTERN":                     "transform.marker_pattern",
	"DEDUP_CHERRY_PICKS":                 "transform.dedup_cherry_picks",
	"GIT_REPO_PATH":                      "git.repo_path",
	"GIT_TAG_PREFIX":                     "git.tag_prefix",
	"GIT_BUILD_NUMBER_FROM_COMMIT_COUNT": "git.build_number_from_commit_count",
}

// envTransform converts environment variable names to config keys.
// Unknown variables map to "" and are dropped by the provider.
// Example: TAGLOG_GIT_TAG_PREFIX -> git.tag_prefix
func envTransform(s string) string {
	return envVars[strings.TrimPrefix(s, EnvPrefix)]
}

// EnvVarNames lists the supported environment variables, for help text.
func EnvVarNames() []string {
	names := make([]string, 0, len(envVars))
	for name := range envVars {
		names = append(names, EnvPrefix+name)
	}
	sort.Strings(names)
	return names
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
