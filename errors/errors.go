// Package errors provides error handling for rbxtypes.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//   - Network portability for distributed systems
//   - Sentry integration
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "try increasing the timeout")
//
//	// Check errors
//	if errors.Is(err, sql.ErrNoRows) {
//	    // handle not found
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSafeDetails    = crdb.WithSafeDetails
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Advanced features
var (
	Handled                 = crdb.Handled
	HandledWithMessage      = crdb.HandledWithMessage
	WithDomain              = crdb.WithDomain
	GetDomain               = crdb.GetDomain
	WithContextTags         = crdb.WithContextTags
	EncodeError             = crdb.EncodeError
	DecodeError             = crdb.DecodeError
	GetReportableStackTrace = crdb.GetReportableStackTrace
)

// GetStack is an alias for GetReportableStackTrace for convenience.
var GetStack = crdb.GetReportableStackTrace

// Assertions and panics
var (
	AssertionFailedf                 = crdb.AssertionFailedf
	NewAssertionErrorWithWrappedErrf = crdb.NewAssertionErrorWithWrappedErrf
)

// Sentinel errors for the generator. Wrap these with errors.Wrapf to attach
// the offending class, anchor or location while keeping errors.Is working.
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")

	// ErrUnknownClass indicates a class name missing from the API dump.
	// Raised for explicitly requested classes and for dangling superclass references.
	ErrUnknownClass = New("unknown class")

	// ErrCyclicHierarchy indicates a superclass chain that revisits a class
	ErrCyclicHierarchy = New("cyclic class hierarchy")

	// ErrAnchorNotFound indicates a patch target has no line containing its anchor
	ErrAnchorNotFound = New("anchor not found")

	// ErrFetch indicates an upstream document could not be retrieved
	ErrFetch = New("fetch failed")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// IsUnknownClassError checks if an error is or wraps ErrUnknownClass
func IsUnknownClassError(err error) bool {
	return err != nil && Is(err, ErrUnknownClass)
}

// IsAnchorNotFoundError checks if an error is or wraps ErrAnchorNotFound
func IsAnchorNotFoundError(err error) bool {
	return err != nil && Is(err, ErrAnchorNotFound)
}

// IsFetchError checks if an error is or wraps ErrFetch
func IsFetchError(err error) bool {
	return err != nil && Is(err, ErrFetch)
}

// NewUnknownClassError reports a class name missing from the API dump
func NewUnknownClassError(name string) error {
	return WithHintf(Wrapf(ErrUnknownClass, "%q", name),
		"check the class allow-list, or the dump may have renamed %q", name)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}
