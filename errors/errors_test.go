package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestDefaultCategories(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		category ErrorCategory
	}{
		{ErrCodeTimeout, CategoryTransient},
		{ErrCodeServerError, CategoryTransient},
		{ErrCodeNetworkErr, CategoryPermanent},
		{ErrCodeRateLimited, CategoryResource},
		{ErrCodeQuotaExceeded, CategoryResource},
		{ErrCodeUnauthorized, CategoryPermanent},
		{ErrCodeInvalidInput, CategoryPermanent},
		{ErrCodeCanceled, CategoryPermanent},
		{ErrCodeInternal, CategoryInternal},
	}

	for _, tt := range tests {
		if got := tt.code.DefaultCategory(); got != tt.category {
			t.Errorf("%s: expected category %s, got %s", tt.code, tt.category, got)
		}
	}
}

func TestRetryableByCategory(t *testing.T) {
	if !New(ErrCodeRateLimited, "429").Retryable() {
		t.Error("rate limited should be retryable")
	}
	if !New(ErrCodeServerError, "500").Retryable() {
		t.Error("server error should be retryable")
	}
	if !New(ErrCodeTimeout, "deadline").Retryable() {
		t.Error("timeout should be retryable")
	}
	if New(ErrCodeUnauthorized, "401").Retryable() {
		t.Error("unauthorized should not be retryable")
	}
	if New(ErrCodeNetworkErr, "connection refused").Retryable() {
		t.Error("connection failures should not be retryable")
	}
	if New(ErrCodeInternal, "boom").Retryable() {
		t.Error("internal should not be retryable")
	}
}

func TestRetryableOverride(t *testing.T) {
	// Quota exhaustion is a resource error, but retrying will not fix it.
	err := New(ErrCodeQuotaExceeded, "insufficient credits", WithRetryable(false))
	if err.Retryable() {
		t.Error("expected override to win over category default")
	}
	if err.Category() != CategoryResource {
		t.Errorf("expected resource category, got %s", err.Category())
	}
}

func TestWrapContextErrors(t *testing.T) {
	timeout := Wrap(context.DeadlineExceeded, "attempt timed out")
	if timeout.Code() != ErrCodeTimeout {
		t.Errorf("expected TIMEOUT, got %s", timeout.Code())
	}
	if !timeout.Retryable() {
		t.Error("wrapped deadline should be retryable")
	}

	canceled := Wrap(context.Canceled, "worker canceled")
	if canceled.Code() != ErrCodeCanceled {
		t.Errorf("expected CANCELED, got %s", canceled.Code())
	}
	if canceled.Retryable() {
		t.Error("cancellation should not be retryable")
	}
}

func TestWrapPreservesStructuredError(t *testing.T) {
	inner := New(ErrCodeRateLimited, "429", WithWorkerID("w-1"))
	wrapped := Wrap(inner, "completion attempt failed")

	if wrapped.Code() != ErrCodeRateLimited {
		t.Errorf("expected RATE_LIMITED, got %s", wrapped.Code())
	}
	if wrapped.WorkerID() != "w-1" {
		t.Errorf("expected worker id to carry over, got %q", wrapped.WorkerID())
	}
	if !errors.Is(wrapped, inner) {
		t.Error("expected wrapped error to match inner via errors.Is")
	}
}

func TestWrapUnknownError(t *testing.T) {
	err := Wrap(fmt.Errorf("connection reset"), "post failed")
	if err.Code() != ErrCodeInternal {
		t.Errorf("expected INTERNAL for unknown cause, got %s", err.Code())
	}
	if err.Retryable() {
		t.Error("unknown errors should not be retryable")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "nothing") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestHelpers(t *testing.T) {
	err := New(ErrCodeUnauthorized, "bad key")

	if Code(err) != ErrCodeUnauthorized {
		t.Errorf("Code: expected UNAUTHORIZED, got %s", Code(err))
	}
	if Category(err) != CategoryPermanent {
		t.Errorf("Category: expected permanent, got %s", Category(err))
	}
	if !Is(err, ErrCodeUnauthorized) {
		t.Error("Is should match the code")
	}
	if IsRetryable(err) {
		t.Error("IsRetryable should be false for unauthorized")
	}
	if IsRetryable(fmt.Errorf("plain")) {
		t.Error("IsRetryable should be false for non-structured errors")
	}
	if Code(fmt.Errorf("plain")) != "" {
		t.Error("Code should be empty for non-structured errors")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	orig := New(ErrCodeRateLimited, "provider returned 429",
		WithWorkerID("w-7"),
		WithMetadata("provider", "openai"),
	)

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Error
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.Code() != ErrCodeRateLimited {
		t.Errorf("expected RATE_LIMITED, got %s", decoded.Code())
	}
	if !decoded.Retryable() {
		t.Error("retryable flag should survive the round trip")
	}
	if decoded.WorkerID() != "w-7" {
		t.Errorf("expected worker id w-7, got %q", decoded.WorkerID())
	}
	if decoded.Metadata()["provider"] != "openai" {
		t.Error("metadata should survive the round trip")
	}
}

func TestCause(t *testing.T) {
	root := fmt.Errorf("root")
	wrapped := Wrap(Wrap(root, "inner"), "outer")
	if Cause(wrapped) != root {
		t.Errorf("expected root cause, got %v", Cause(wrapped))
	}
}
