package changelog

import (
	"errors"
	"fmt"
)

// ErrNoLogSource is returned when history is requested from git but the
// generator was built without a LogSource.
var ErrNoLogSource = errors.New("no log source configured")

// SourceError reports that the raw log could not be obtained. It always
// aborts generation.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsSourceError returns true if err is or wraps a SourceError.
func IsSourceError(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}

// debugLogger is a no-op until SetDebugLogger is called.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for changelog generation.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}
