// Package errors provides the structured error taxonomy that drives retry
// decisions in gptswarm. Completion-service adapters translate SDK and HTTP
// failures into coded errors; workers decide whether to retry from the code
// and category alone, never from message wording.
//
// # Error Categories
//
// Errors are classified into four categories:
//
//   - Transient: Temporary failures where retry may succeed (timeouts, 5xx)
//   - Permanent: Failures where retry will not help (bad credentials, bad input)
//   - Resource: Provider budget exhaustion (rate limits, quota)
//   - Internal: Unexpected errors indicating bugs or system failures
//
// Transient and resource errors are retryable by default; an error can
// override the default with WithRetryable (e.g. quota exhaustion is a
// resource error that retrying will not fix).
//
// # Usage
//
// Create a new error:
//
//	err := errors.New(errors.ErrCodeRateLimited, "provider returned 429")
//
// Wrap an existing error with context:
//
//	wrapped := errors.Wrap(err, "completion attempt failed")
//
// Check if an error is retryable:
//
//	if errors.IsRetryable(err) {
//	    // retry logic
//	}
//
// # JSON Serialization
//
// Errors support JSON round-trips for logging and record keeping:
//
//	data, err := json.Marshal(swarmErr)
package errors
