package llm

import (
	"context"
	stderrors "errors"
	"net"

	"github.com/vinayprograms/gptswarm/errors"
)

// classifyStatus maps a provider HTTP status to a structured error.
// The worker retry state machine acts on the resulting code: 429 and 5xx
// are retryable, credential and input failures are terminal, and billing
// failures are resource errors that retrying will not fix.
func classifyStatus(status int, provider string, cause error) *errors.Error {
	opts := []errors.Option{
		errors.WithCause(cause),
		errors.WithMetadata("provider", provider),
	}

	switch {
	case status == 401 || status == 403:
		return errors.New(errors.ErrCodeUnauthorized,
			"completion credential rejected", opts...)
	case status == 402:
		return errors.New(errors.ErrCodeQuotaExceeded,
			"completion quota or billing exhausted",
			append(opts, errors.WithRetryable(false))...)
	case status == 429:
		return errors.New(errors.ErrCodeRateLimited,
			"completion rate limit exceeded", opts...)
	case status >= 500:
		return errors.New(errors.ErrCodeServerError,
			"completion service error", opts...)
	case status >= 400:
		return errors.New(errors.ErrCodeInvalidInput,
			"completion request rejected", opts...)
	default:
		return errors.New(errors.ErrCodeInternal,
			"unexpected completion response", opts...)
	}
}

// classifyTransport maps non-HTTP failures (timeouts, cancellation,
// connection errors) to structured errors.
func classifyTransport(err error, provider string) *errors.Error {
	opts := []errors.Option{
		errors.WithCause(err),
		errors.WithMetadata("provider", provider),
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.New(errors.ErrCodeTimeout, "completion attempt timed out", opts...)
	}
	if stderrors.Is(err, context.Canceled) {
		return errors.New(errors.ErrCodeCanceled, "completion attempt canceled", opts...)
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		if netErr.Timeout() {
			return errors.New(errors.ErrCodeTimeout, "completion attempt timed out", opts...)
		}
		return errors.New(errors.ErrCodeNetworkErr, "completion transport failure", opts...)
	}

	return errors.New(errors.ErrCodeInternal, "completion call failed", opts...)
}
