package domain

import (
	"context"
	"errors"
)

// ErrorKind classifies why a remote call (and therefore a sequence stage) failed.
type ErrorKind string

const (
	// KindNetworkFailure is a transport-level failure; the remote system may or may not have applied the call.
	KindNetworkFailure ErrorKind = "network_failure"

	// KindVersionConflict means the remote system rejected a stale version.
	KindVersionConflict ErrorKind = "version_conflict"

	// KindMissingVersion means a response omitted the version the next stage depends on.
	KindMissingVersion ErrorKind = "missing_version"

	// KindValidationFailure means the remote system rejected the payload shape or content.
	KindValidationFailure ErrorKind = "validation_failure"

	// KindNotFound means the addressed resource does not exist.
	KindNotFound ErrorKind = "not_found"

	// KindUnknown is used for errors that carry none of the sentinels below.
	KindUnknown ErrorKind = "unknown"
)

// Remote call errors. Platform adapters wrap one of these so callers can classify failures with errors.Is.
var (
	// ErrNetworkFailure indicates the call did not complete at the transport level.
	ErrNetworkFailure = errors.New("network failure")

	// ErrVersionConflict indicates the expected version is older than the stored one.
	ErrVersionConflict = errors.New("version conflict")

	// ErrMissingVersion indicates a response without a usable version (omitted or malformed).
	ErrMissingVersion = errors.New("missing version")

	// ErrValidationFailure indicates the remote system rejected the request content.
	ErrValidationFailure = errors.New("validation failure")

	// ErrResourceNotFound indicates that a resource with the given ID does not exist.
	ErrResourceNotFound = errors.New("resource not found")
)

// Local input errors, detected before any remote call is made.
var (
	// ErrEmptyCart indicates a checkout was attempted with no lines in the cart snapshot.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidQuantity indicates a non-positive line item quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidAmount indicates an amount that could not be parsed as a decimal.
	ErrInvalidAmount = errors.New("invalid decimal amount")

	// ErrNegativePrice indicates an attempt to set a negative price.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrZeroPrice indicates an attempt to set a zero price.
	ErrZeroPrice = errors.New("price cannot be zero")

	// ErrEmptyProductName indicates an attempt to create a product with an empty name.
	ErrEmptyProductName = errors.New("product name cannot be empty")

	// ErrProductNameTooLong indicates the product name exceeds maximum length.
	ErrProductNameTooLong = errors.New("product name exceeds maximum length of 255 characters")

	// ErrEmptyResourceID indicates an operation addressed a resource without an ID.
	ErrEmptyResourceID = errors.New("resource id cannot be empty")

	// ErrNotAuthenticated indicates an operation that needs a logged-in customer.
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrNotAdmin indicates an admin-only operation attempted by a regular customer.
	ErrNotAdmin = errors.New("admin privileges required")

	// ErrInvalidCredentials indicates a login with an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// KindOf classifies err by the remote call sentinel it wraps.
// Context cancellation and deadlines are transport failures from the caller's point of view.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingVersion):
		return KindMissingVersion
	case errors.Is(err, ErrVersionConflict):
		return KindVersionConflict
	case errors.Is(err, ErrValidationFailure):
		return KindValidationFailure
	case errors.Is(err, ErrResourceNotFound):
		return KindNotFound
	case errors.Is(err, ErrNetworkFailure),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return KindNetworkFailure
	}
	return KindUnknown
}
