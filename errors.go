package enterprise

import (
	"errors"
	"fmt"
)

// Sentinel errors for common registry error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrPluginNotRegistered indicates a lookup or execution referenced a
	// (category, name) key with no current instance.
	ErrPluginNotRegistered = errors.New("plugin not registered")

	// ErrInvalidConfig indicates a plugin's required settings are missing
	// or malformed. Surfaced at registration time; the registration does
	// not proceed.
	ErrInvalidConfig = errors.New("invalid plugin configuration")

	// ErrInitializationFailed indicates a plugin's setup step could not
	// complete even with valid-looking settings.
	ErrInitializationFailed = errors.New("plugin initialization failed")

	// ErrExecutionFailed indicates the plugin's underlying provider call
	// failed.
	ErrExecutionFailed = errors.New("plugin execution failed")

	// ErrInvalidCategory indicates a category outside the known set.
	ErrInvalidCategory = errors.New("invalid plugin category")

	// ErrRegistryClosed indicates the registry has been closed and can no
	// longer register or dispatch plugins.
	ErrRegistryClosed = errors.New("registry closed")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors where a plugin was not found.
	KindNotFound = "not_found"

	// KindValidation represents settings validation failures.
	KindValidation = "validation"

	// KindInitialization represents plugin initialization failures.
	KindInitialization = "initialization"

	// KindConfiguration represents malformed registration requests.
	KindConfiguration = "configuration"

	// KindExecution represents failures during plugin execution.
	KindExecution = "execution"

	// KindInternal represents internal registry errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// context about the operation that failed and the category of error.
//
// Error implements the error interface and supports unwrapping, making
// it compatible with errors.Is() and errors.As().
type Error struct {
	// Op is the operation that failed (e.g., "Registry.Register").
	Op string

	// Kind categorizes the error (e.g., KindNotFound, KindValidation).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error, such as the
	// plugin category, name, and requested action.
	Context map[string]any
}

// Error implements the error interface, returning a formatted message
// that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("enterprise: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("enterprise: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("enterprise: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and
// errors.As() to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on
// the underlying error or on a target Error's Kind (and Op when set).
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with the provided context
// merged in. Useful for attaching the plugin identity to a failure.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewNotFoundError creates a new Error with KindNotFound.
func NewNotFoundError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindNotFound, Err: err}
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

// NewInitializationError creates a new Error with KindInitialization.
func NewInitializationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindInitialization, Err: err}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfiguration, Err: err}
}

// NewExecutionError creates a new Error with KindExecution.
func NewExecutionError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindExecution, Err: err}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindInternal, Err: err}
}
