package errors

import "fmt"

// Common error messages for the taglog CLI.
// These templates ensure consistent, actionable error messages.

// InvalidVersions creates an error for a malformed --versions value.
func InvalidVersions(provided string, err error) *CLIError {
	e := NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid --versions %q: %v", provided, err),
		"taglog compare --versions \"<old> <new>\"",
		"Pass two semantic versions separated by a space",
		"Example: taglog compare --versions \"1.4.0 1.5.0\"",
	)
	e.Err = err
	return e
}

// VersionsRequired creates an error when no version range can be determined.
func VersionsRequired() *CLIError {
	return NewArgumentErrorWithUsage(
		"a version range is required",
		"taglog compare --versions \"<old> <new>\"",
		"Pass --versions explicitly",
		"Or tag at least two releases so the latest pair can be detected",
	)
}

// UnknownFormat creates an error for an unsupported --format value.
func UnknownFormat(format string, valid []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown output format: %s", format),
		fmt.Sprintf("Valid formats: %v", valid),
	)
}

// ConfigInvalid wraps a configuration loading or validation failure.
func ConfigInvalid(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check the file reported above for syntax errors",
		"Show the merged configuration with: taglog config show",
		"Write a fresh template with: taglog config init --force",
	)
}

// ConfigFileExists creates an error when config init would overwrite a file.
func ConfigFileExists(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file already exists: %s", path),
		"Use --force to overwrite it",
	)
}

// HistoryUnavailable wraps a failure to read commit history.
func HistoryUnavailable(err error) *CLIError {
	return WrapWithMessage(err, Source,
		"reading commit history failed",
		"Run taglog inside a git repository or set git.repo_path",
		"Check that both release tags exist: git tag --list",
		"Or pipe a log in with: taglog compare --stdin",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}
