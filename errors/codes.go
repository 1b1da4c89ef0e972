package errors

// ErrorCategory classifies errors by their nature and retry semantics.
type ErrorCategory string

// Error categories define how errors should be handled.
const (
	// CategoryTransient indicates temporary failures where retry may succeed.
	// Examples: request timeouts, 5xx responses from the completion service.
	CategoryTransient ErrorCategory = "transient"

	// CategoryPermanent indicates failures where retry will not help.
	// Examples: bad credentials, malformed requests, connection
	// failures, cancellation.
	CategoryPermanent ErrorCategory = "permanent"

	// CategoryResource indicates provider budget exhaustion.
	// Examples: requests-per-minute or tokens-per-minute limits, quota.
	CategoryResource ErrorCategory = "resource"

	// CategoryInternal indicates unexpected errors or bugs.
	CategoryInternal ErrorCategory = "internal"
)

// String returns the string representation of the category.
func (c ErrorCategory) String() string {
	return string(c)
}

// IsRetryable returns true if errors in this category may succeed on retry.
func (c ErrorCategory) IsRetryable() bool {
	switch c {
	case CategoryTransient, CategoryResource:
		return true
	default:
		return false
	}
}

// ErrorCode identifies specific failure types within categories.
type ErrorCode string

// Error codes for completion-service failures.
const (
	// Transient errors
	ErrCodeTimeout     ErrorCode = "TIMEOUT"      // Attempt exceeded its deadline
	ErrCodeServerError ErrorCode = "SERVER_ERROR" // Provider returned a 5xx response

	// Resource errors
	ErrCodeRateLimited   ErrorCode = "RATE_LIMITED"   // Provider returned 429
	ErrCodeQuotaExceeded ErrorCode = "QUOTA_EXCEEDED" // Billing or quota exhausted

	// Permanent errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"  // Credential rejected (401/403)
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT" // Provider rejected the request body
	ErrCodeNetworkErr   ErrorCode = "NETWORK_ERR"   // Connection-level failure, terminal for the worker
	ErrCodeCanceled     ErrorCode = "CANCELED"      // Operation was canceled

	// Internal errors
	ErrCodeInternal ErrorCode = "INTERNAL" // Unexpected internal error
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	return string(c)
}

// DefaultCategory returns the default category for an error code.
func (c ErrorCode) DefaultCategory() ErrorCategory {
	switch c {
	case ErrCodeTimeout, ErrCodeServerError:
		return CategoryTransient

	case ErrCodeRateLimited, ErrCodeQuotaExceeded:
		return CategoryResource

	case ErrCodeUnauthorized, ErrCodeInvalidInput, ErrCodeNetworkErr, ErrCodeCanceled:
		return CategoryPermanent

	default:
		return CategoryInternal
	}
}

// DefaultRetryable returns whether this error code is typically retryable.
func (c ErrorCode) DefaultRetryable() bool {
	return c.DefaultCategory().IsRetryable()
}
