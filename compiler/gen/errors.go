package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("protoval: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("protoval: code generation failed")
)

// GenerationError represents a failure to generate the code of one message.
// It never affects the generation of other messages.
type GenerationError struct {
	Type    string // Message name
	Field   string // Field name (if applicable)
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("protoval: generation error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(typeName, fieldName, message string, cause error) *GenerationError {
	return &GenerationError{
		Type:    typeName,
		Field:   fieldName,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("protoval: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("protoval: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
