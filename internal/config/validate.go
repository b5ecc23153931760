package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/ariel-frischer/taglog/internal/changelog"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// DecodeError is returned when a syntactically valid file does not fit the
// configuration schema, e.g. a string where a list of sections is expected.
type DecodeError struct {
	FilePath string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding config: %v", e.FilePath, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err came from loading or validating configuration.
func IsConfigError(err error) bool {
	var validation *ValidationError
	var decode *DecodeError
	return errors.As(err, &validation) || errors.As(err, &decode)
}

// ValidateYAMLSyntax checks if the YAML file has valid syntax.
// Returns nil if valid, or a ValidationError with line/column information if invalid.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Missing file is not an error - will use defaults
		}
		if os.IsPermission(err) {
			return &ValidationError{
				FilePath: filePath,
				Message:  "permission denied",
			}
		}
		return &ValidationError{
			FilePath: filePath,
			Message:  err.Error(),
		}
	}
	return ValidateYAMLSyntaxFromBytes(data, filePath)
}

// ValidateYAMLSyntaxFromBytes checks if YAML data has valid syntax.
// Returns nil if valid, or a ValidationError if invalid.
func ValidateYAMLSyntaxFromBytes(data []byte, filePath string) error {
	// Empty data is valid - will use defaults
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		var typeError *yaml.TypeError
		if errors.As(err, &typeError) {
			return &ValidationError{
				FilePath: filePath,
				Message:  strings.Join(typeError.Errors, "; "),
			}
		}

		line, column := extractLineColumn(err.Error())
		return &ValidationError{
			FilePath: filePath,
			Line:     line,
			Column:   column,
			Message:  cleanYAMLError(err.Error()),
		}
	}

	return nil
}

var configValidator = newValidator()

// newValidator names fields after their yaml keys and registers the
// regular expression checks used by the transform tags.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return toSnakeCase(f.Name)
		}
		return name
	})
	if err := v.RegisterValidation("marker", validRegexp); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("pattern", validRegexp); err != nil {
		panic(err)
	}
	return v
}

// validRegexp accepts a compilable pattern. Empty falls back to the default
// marker and is accepted.
func validRegexp(fl validator.FieldLevel) bool {
	_, err := changelog.CompileMarker(fl.Field().String())
	return err == nil
}

// Validate checks the merged configuration against the validate tags on
// changelog.Configuration and reports the first violation.
func Validate(cfg *changelog.Configuration) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		return &ValidationError{
			FilePath: "config",
			Field:    fieldPath(fieldErr),
			Message:  formatValidationError(fieldErr),
		}
	}
	return &ValidationError{FilePath: "config", Message: err.Error()}
}

// fieldPath drops the root struct name: "Configuration.format.header"
// becomes "format.header".
func fieldPath(fieldErr validator.FieldError) string {
	_, path, found := strings.Cut(fieldErr.Namespace(), ".")
	if !found {
		return fieldErr.Field()
	}
	return path
}

// formatValidationError formats a validation error for a specific field.
func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		if fieldErr.Kind() == reflect.Slice && fieldErr.Param() == "1" {
			return "must not be empty"
		}
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "unique":
		return fmt.Sprintf("%s values must be unique", toSnakeCase(fieldErr.Param()))
	case "marker", "pattern":
		pattern, _ := fieldErr.Value().(string)
		if _, err := regexp.Compile(pattern); err != nil {
			return "invalid regular expression: " + err.Error()
		}
		return "invalid regular expression"
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}

// toSnakeCase converts a CamelCase field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}

// extractLineColumn attempts to extract line and column numbers from a YAML error message.
// Returns 0, 0 if unable to extract.
func extractLineColumn(errMsg string) (line, column int) {
	// yaml.v3 errors look like: "yaml: line 5: could not find expected ':'"
	var l, c int
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// cleanYAMLError removes the "yaml: line X:" prefix from error messages for cleaner output.
func cleanYAMLError(errMsg string) string {
	if idx := strings.LastIndex(errMsg, ": "); idx > 0 {
		if strings.HasPrefix(errMsg, "yaml:") {
			return errMsg[idx+2:]
		}
	}
	return errMsg
}
