package framework

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPairing is wrapped by ConfigurationError when two extractions
	// that must describe the same page do not.
	ErrInvalidPairing = errors.New("invalid page pairing")
	// ErrRootMismatch is wrapped by DegradedPathError.
	ErrRootMismatch = errors.New("path is outside of root")
)

// ConfigurationError reports an unrecoverable construction failure. The
// partially built value must not be used.
type ConfigurationError struct {
	Component string
	Reason    string
	Err       error
}

// NewConfigurationError creates a ConfigurationError for the given component.
func NewConfigurationError(component, reason string, err error) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Reason:    reason,
		Err:       err,
	}
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Component, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Component, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DegradedPathError reports a recoverable path computation failure. The
// caller continues with Fallback.
type DegradedPathError struct {
	Root     string
	Path     string
	Fallback string
}

// NewDegradedPathError creates a DegradedPathError.
func NewDegradedPathError(root, path, fallback string) *DegradedPathError {
	return &DegradedPathError{
		Root:     root,
		Path:     path,
		Fallback: fallback,
	}
}

func (e *DegradedPathError) Error() string {
	return fmt.Sprintf("%q did not start with %q, using %q", e.Path, e.Root, e.Fallback)
}

func (e *DegradedPathError) Unwrap() error {
	return ErrRootMismatch
}
