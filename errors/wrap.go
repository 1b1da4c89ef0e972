package errors

import (
	"context"
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context while preserving the error chain.
// If err is nil, Wrap returns nil.
// If err is already an *Error, its code, category, and retry semantics carry over.
// Otherwise the error is classified: context deadline and cancellation map to
// their codes, and anything else becomes an internal error.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}

	var swarmErr *Error
	if errors.As(err, &swarmErr) {
		wrapped := &Error{
			code:      swarmErr.code,
			category:  swarmErr.category,
			message:   message,
			cause:     err,
			metadata:  swarmErr.Metadata(),
			retryable: swarmErr.retryable,
			workerID:  swarmErr.workerID,
		}
		for _, opt := range opts {
			opt(wrapped)
		}
		return wrapped
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return New(ErrCodeTimeout, message, append(opts, WithCause(err))...)
	}
	if errors.Is(err, context.Canceled) {
		return New(ErrCodeCanceled, message, append(opts, WithCause(err))...)
	}

	return New(ErrCodeInternal, message, append(opts, WithCause(err))...)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific error code.
func WrapWithCode(err error, code ErrorCode, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}
	opts = append(opts, WithCause(err))
	return New(code, message, opts...)
}

// Is checks if any error in the chain has the given error code.
func Is(err error, code ErrorCode) bool {
	var swarmErr *Error
	if errors.As(err, &swarmErr) {
		return swarmErr.code == code
	}
	return false
}

// IsCategory checks if any error in the chain has the given category.
func IsCategory(err error, category ErrorCategory) bool {
	var swarmErr *Error
	if errors.As(err, &swarmErr) {
		return swarmErr.category == category
	}
	return false
}

// IsRetryable checks if the error is retryable.
// Non-structured errors default to not retryable.
func IsRetryable(err error) bool {
	var swarmErr *Error
	if errors.As(err, &swarmErr) {
		return swarmErr.Retryable()
	}
	return false
}

// IsTransient checks if the error is transient.
func IsTransient(err error) bool {
	return IsCategory(err, CategoryTransient)
}

// IsPermanent checks if the error is permanent.
func IsPermanent(err error) bool {
	return IsCategory(err, CategoryPermanent)
}

// Code extracts the error code from an error, if available.
// Returns empty string if err is not an *Error.
func Code(err error) ErrorCode {
	var swarmErr *Error
	if errors.As(err, &swarmErr) {
		return swarmErr.code
	}
	return ""
}

// Category extracts the error category from an error, if available.
// Returns empty string if err is not an *Error.
func Category(err error) ErrorCategory {
	var swarmErr *Error
	if errors.As(err, &swarmErr) {
		return swarmErr.category
	}
	return ""
}

// Cause returns the root cause of the error chain.
func Cause(err error) error {
	for {
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		inner := unwrapper.Unwrap()
		if inner == nil {
			return err
		}
		err = inner
	}
}
