// Package apierr defines the classified error type returned by every
// TaskHive client operation.
//
// Instead of an error-class hierarchy, failures are a single concrete Error
// with a Kind discriminant. Callers branch on the kind (or the predicate
// helpers) rather than matching message strings.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies a failed client operation.
type Kind int

const (
	// KindUnclassified is the fallback for non-2xx responses with no
	// recognized code.
	KindUnclassified Kind = iota

	// KindAuthentication means the credential was rejected.
	KindAuthentication

	// KindQuotaExceeded means the usage allowance is exhausted.
	KindQuotaExceeded

	// KindInvalidRequest means the input was malformed or violated a
	// constraint, detected locally or by the remote service.
	KindInvalidRequest

	// KindUpstreamService means a dependency of the remote service (such as
	// the target site) was unreachable or erroring.
	KindUpstreamService

	// KindSolveFailed means the challenge could not be solved this attempt.
	KindSolveFailed

	// KindInternalService means the remote service hit an internal fault.
	KindInternalService

	// KindInventoryUnavailable means the product cannot be fulfilled with the
	// selected fulfillment type or location.
	KindInventoryUnavailable

	// KindTransport covers network failures, timeouts and malformed
	// response bodies.
	KindTransport
)

// String returns a stable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindInvalidRequest:
		return "invalid_request"
	case KindUpstreamService:
		return "upstream_service"
	case KindSolveFailed:
		return "solve_failed"
	case KindInternalService:
		return "internal_service"
	case KindInventoryUnavailable:
		return "inventory_unavailable"
	case KindTransport:
		return "transport"
	default:
		return "unclassified"
	}
}

// Error is a classified API failure. StatusCode is zero for failures that
// never produced an HTTP response (local validation, network errors).
type Error struct {
	Kind       Kind
	StatusCode int
	Code       string
	Message    string
	Details    string
	Suggestion string

	cause error
}

// New creates a classified error from a remote error envelope.
func New(kind Kind, statusCode int, code, message string) *Error {
	return &Error{
		Kind:       kind,
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// InvalidRequest creates a local validation failure. No network call was made.
func InvalidRequest(message string) *Error {
	return &Error{
		Kind:    KindInvalidRequest,
		Code:    "INVALID_REQUEST",
		Message: message,
	}
}

// Transport wraps a network-level failure (connection error, timeout,
// unparseable body) so callers never see raw platform error types directly.
// The cause remains reachable through Unwrap for diagnostics.
func Transport(message string, cause error) *Error {
	return &Error{
		Kind:    KindTransport,
		Code:    "TRANSPORT_ERROR",
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("taskhive: %s (status %d, code %s): %s", e.Kind, e.StatusCode, e.Code, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("taskhive: %s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("taskhive: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// WithDetails attaches free-text diagnostic detail and returns the receiver.
func (e *Error) WithDetails(details string) *Error {
	e.Details = details
	return e
}

// WithSuggestion attaches a remediation hint and returns the receiver.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// IsAuthentication reports whether the credential was rejected.
func (e *Error) IsAuthentication() bool { return e.Kind == KindAuthentication }

// IsQuotaExceeded reports whether the usage allowance is exhausted.
func (e *Error) IsQuotaExceeded() bool { return e.Kind == KindQuotaExceeded }

// IsInvalidRequest reports whether the input must be fixed before retrying.
func (e *Error) IsInvalidRequest() bool { return e.Kind == KindInvalidRequest }

// IsUpstreamService reports whether a dependency of the remote service failed.
func (e *Error) IsUpstreamService() bool { return e.Kind == KindUpstreamService }

// IsSolveFailed reports whether the challenge was unsolvable this attempt.
func (e *Error) IsSolveFailed() bool { return e.Kind == KindSolveFailed }

// IsInternalService reports whether the remote service faulted internally.
func (e *Error) IsInternalService() bool { return e.Kind == KindInternalService }

// IsInventoryUnavailable reports whether the selected fulfillment cannot be
// served.
func (e *Error) IsInventoryUnavailable() bool { return e.Kind == KindInventoryUnavailable }

// IsTransport reports whether the failure happened below the API layer.
func (e *Error) IsTransport() bool { return e.Kind == KindTransport }

// Retryable reports whether retrying the same call later can succeed without
// changing the input.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindUpstreamService, KindSolveFailed, KindInternalService, KindTransport:
		return true
	default:
		return false
	}
}

// KindOf extracts the kind from any error, unwrapping as needed. It returns
// KindUnclassified and false when err is not a classified error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindUnclassified, false
}
