// Package errors defines the typed error taxonomy for the configuration engine.
package errors

import (
	"errors"
	"fmt"
)

// Common error codes.
const (
	// Recoverable registry errors
	ErrCodeDuplicateModule     = "DUPLICATE_MODULE"
	ErrCodeModuleNotRegistered = "MODULE_NOT_REGISTERED"
	ErrCodeLayoutNotRegistered = "LAYOUT_NOT_REGISTERED"

	// Input errors
	ErrCodeInvalidSessionData = "INVALID_SESSION_DATA"
	ErrCodeInvalidDefinition  = "INVALID_DEFINITION"

	// Orchestration errors
	ErrCodeGenerationFailed = "GENERATION_FAILED"
	ErrCodeSeedInvalid      = "SEED_INVALID"
)

// EngineError represents a failure inside the configuration engine. Errors
// cross the public API as values; nothing in the engine panics.
type EngineError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	ModuleType string         `json:"module_type,omitempty"`
	LayoutType string         `json:"layout_type,omitempty"`
	Cause      error          `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// NewEngineError creates a new engine error.
func NewEngineError(code, message string) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
	}
}

// WithCause adds an underlying cause to the error.
func (e *EngineError) WithCause(cause error) *EngineError {
	e.Cause = cause
	return e
}

// WithModule adds the module type the error relates to.
func (e *EngineError) WithModule(moduleType string) *EngineError {
	e.ModuleType = moduleType
	return e
}

// WithLayout adds the layout type the error relates to.
func (e *EngineError) WithLayout(layoutType string) *EngineError {
	e.LayoutType = layoutType
	return e
}

// WithDetails adds additional details to the error.
func (e *EngineError) WithDetails(details map[string]any) *EngineError {
	e.Details = details
	return e
}

// NewDuplicateModule reports a second registration of the same module type.
func NewDuplicateModule(moduleType string) *EngineError {
	return &EngineError{
		Code:       ErrCodeDuplicateModule,
		Message:    fmt.Sprintf("module already registered: %s", moduleType),
		ModuleType: moduleType,
	}
}

// NewModuleNotRegistered reports an operation on an unknown module type.
func NewModuleNotRegistered(moduleType string) *EngineError {
	return &EngineError{
		Code:       ErrCodeModuleNotRegistered,
		Message:    fmt.Sprintf("module not registered: %s", moduleType),
		ModuleType: moduleType,
	}
}

// NewLayoutNotRegistered reports an operation on an unknown layout type.
func NewLayoutNotRegistered(layoutType string) *EngineError {
	return &EngineError{
		Code:       ErrCodeLayoutNotRegistered,
		Message:    fmt.Sprintf("layout not registered: %s", layoutType),
		LayoutType: layoutType,
	}
}

// NewInvalidDefinition reports a module definition that violates a registry invariant.
func NewInvalidDefinition(moduleType, message string) *EngineError {
	return &EngineError{
		Code:       ErrCodeInvalidDefinition,
		Message:    message,
		ModuleType: moduleType,
	}
}

// NewInvalidLayout reports a layout template that violates a catalog invariant.
func NewInvalidLayout(layoutType, message string) *EngineError {
	return &EngineError{
		Code:       ErrCodeInvalidDefinition,
		Message:    message,
		LayoutType: layoutType,
	}
}

// NewInvalidSessionData reports session input rejected at the analyzer boundary.
func NewInvalidSessionData(message string) *EngineError {
	return &EngineError{
		Code:    ErrCodeInvalidSessionData,
		Message: message,
	}
}

// Wrap wraps an error with an engine error code.
func Wrap(err error, code, message string) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapGeneration wraps an unexpected orchestration failure.
func WrapGeneration(err error, message string) *EngineError {
	return Wrap(err, ErrCodeGenerationFailed, message)
}

// CodeOf returns the engine error code, or empty for foreign errors.
func CodeOf(err error) string {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

// IsDuplicateModule reports whether err is a duplicate registration error.
func IsDuplicateModule(err error) bool {
	return CodeOf(err) == ErrCodeDuplicateModule
}

// IsNotRegistered reports whether err is a missing module or layout error.
func IsNotRegistered(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeModuleNotRegistered || code == ErrCodeLayoutNotRegistered
}
