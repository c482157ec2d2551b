// Package errors provides the unified error type and factory functions for
// the property-evidence service.  Every layer (domain, repositories,
// interfaces) uses AppError as the single carrier for structured error
// information, so that HTTP responses, CLI output, and logging classify
// failures consistently.
package errors

import (
	"errors"
	"fmt"
)

// ─────────────────────────────────────────────────────────────────────────────
// AppError — the canonical error type
// ─────────────────────────────────────────────────────────────────────────────

// AppError is the single structured error type used throughout the service.
// It satisfies the standard error interface and supports Go 1.13+ error
// wrapping so that errors.Is / errors.As / errors.Unwrap work transparently
// across all layers.
//
// Usage:
//
//	return errors.InvalidEntity("client phone number has invalid length")
//	return errors.Wrap(err, errors.KindStoreFault, "failed to insert client")
type AppError struct {
	// Kind is the typed category that uniquely identifies the failure class.
	Kind Kind

	// Message is the human-readable description of the error, suitable for
	// presentation to callers.
	Message string

	// Cause is the underlying error that triggered this AppError, enabling
	// errors.Is / errors.As traversal of the full chain.
	Cause error
}

// Error implements the standard error interface.
// Format: "[<kind>] <message>: <cause>"; the cause segment is omitted when
// there is no underlying error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As to
// traverse the full error chain.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ─────────────────────────────────────────────────────────────────────────────
// Factory functions
// ─────────────────────────────────────────────────────────────────────────────

// New constructs a fresh AppError with the given kind and message.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Newf constructs a fresh AppError with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an AppError that wraps an existing error.
// If err is nil, Wrap returns nil so it can be used inline on fallible calls.
// When err is already an *AppError and kind is KindUnknown the original kind
// is preserved, preventing loss of classification during propagation.
func Wrap(err error, kind Kind, message string) *AppError {
	if err == nil {
		return nil
	}
	if kind == KindUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			kind = ae.Kind
		}
	}
	return &AppError{Kind: kind, Message: message, Cause: err}
}

// InvalidArgument constructs a KindInvalidArgument AppError.  Use for
// missing or out-of-domain arguments detected before any store interaction.
func InvalidArgument(message string) *AppError {
	return &AppError{Kind: KindInvalidArgument, Message: message}
}

// InvalidEntity constructs a KindInvalidEntity AppError.  Use for field
// validation failures and persistence-state precondition failures.
func InvalidEntity(message string) *AppError {
	return &AppError{Kind: KindInvalidEntity, Message: message}
}

// NotFound constructs a KindNotFound AppError.  Use when an update or
// delete matched no stored row.
func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// StoreFault constructs a KindStoreFault AppError wrapping the underlying
// store error.
func StoreFault(err error, message string) *AppError {
	return &AppError{Kind: KindStoreFault, Message: message, Cause: err}
}

// ─────────────────────────────────────────────────────────────────────────────
// Error-chain inspection helpers
// ─────────────────────────────────────────────────────────────────────────────

// GetKind extracts the Kind from the first *AppError found in err's chain.
// If no *AppError is present, KindUnknown is returned; a nil error has no
// kind and also reports KindUnknown.
func GetKind(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// IsKind reports whether any error in err's chain is an *AppError with the
// given kind.
func IsKind(err error, kind Kind) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Kind == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsInvalidArgument reports whether err is classified as a caller argument
// error.
func IsInvalidArgument(err error) bool {
	return IsKind(err, KindInvalidArgument)
}

// IsInvalidEntity reports whether err is classified as an entity-validity
// error.  Not-found update/delete failures count as entity-validity errors
// per the repository contract, so this reports true for KindNotFound too.
func IsInvalidEntity(err error) bool {
	return IsKind(err, KindInvalidEntity) || IsKind(err, KindNotFound)
}

// IsNotFound reports whether err marks an update/delete that matched no row.
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}

// IsStoreFault reports whether err originates from the underlying store.
func IsStoreFault(err error) bool {
	return IsKind(err, KindStoreFault)
}
