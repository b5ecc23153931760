// Package shared provides constants and types used across CLI subpackages.
package shared

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/taglog/internal/errors"
)

// Command group IDs shown in `taglog --help`.
const (
	GroupGenerate      = "generate"
	GroupConfiguration = "configuration"
	GroupInfo          = "info"
)

// ConfigFlagName is the persistent flag selecting an explicit config file.
const ConfigFlagName = "config"

// Exit codes for the taglog CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitGenerationFailed indicates the changelog could not be produced
	ExitGenerationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfigError indicates the configuration could not be loaded
	ExitConfigError = 4
)

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps err to a process exit code. CLI errors map by category;
// anything else is a generation failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitConfigError
		}
	}
	return ExitGenerationFailed
}
