package llm

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/vinayprograms/gptswarm/errors"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status    int
		code      errors.ErrorCode
		retryable bool
	}{
		{401, errors.ErrCodeUnauthorized, false},
		{403, errors.ErrCodeUnauthorized, false},
		{402, errors.ErrCodeQuotaExceeded, false},
		{429, errors.ErrCodeRateLimited, true},
		{500, errors.ErrCodeServerError, true},
		{503, errors.ErrCodeServerError, true},
		{400, errors.ErrCodeInvalidInput, false},
		{0, errors.ErrCodeInternal, false},
	}

	for _, tt := range tests {
		err := classifyStatus(tt.status, "openai", fmt.Errorf("status %d", tt.status))
		if err.Code() != tt.code {
			t.Errorf("status %d: expected %s, got %s", tt.status, tt.code, err.Code())
		}
		if err.Retryable() != tt.retryable {
			t.Errorf("status %d: expected retryable=%v", tt.status, tt.retryable)
		}
		if err.Metadata()["provider"] != "openai" {
			t.Errorf("status %d: expected provider metadata", tt.status)
		}
	}
}

type fakeNetError struct {
	timeout bool
}

func (e *fakeNetError) Error() string   { return "fake net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

var _ net.Error = (*fakeNetError)(nil)

func TestClassifyTransport(t *testing.T) {
	deadline := classifyTransport(context.DeadlineExceeded, "openai")
	if deadline.Code() != errors.ErrCodeTimeout {
		t.Errorf("expected TIMEOUT, got %s", deadline.Code())
	}
	if !deadline.Retryable() {
		t.Error("timeout should be retryable")
	}

	canceled := classifyTransport(context.Canceled, "openai")
	if canceled.Code() != errors.ErrCodeCanceled {
		t.Errorf("expected CANCELED, got %s", canceled.Code())
	}

	netTimeout := classifyTransport(&fakeNetError{timeout: true}, "openai")
	if netTimeout.Code() != errors.ErrCodeTimeout {
		t.Errorf("expected TIMEOUT for net timeout, got %s", netTimeout.Code())
	}

	conn := classifyTransport(&fakeNetError{}, "openai")
	if conn.Code() != errors.ErrCodeNetworkErr {
		t.Errorf("expected NETWORK_ERR, got %s", conn.Code())
	}
	if conn.Retryable() {
		t.Error("connection failures terminate the worker, not retried")
	}

	other := classifyTransport(fmt.Errorf("mystery"), "openai")
	if other.Code() != errors.ErrCodeInternal {
		t.Errorf("expected INTERNAL, got %s", other.Code())
	}
}

func TestWithAttemptDeadline(t *testing.T) {
	// No deadline: one is applied.
	ctx, cancel := withAttemptDeadline(context.Background())
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Error("expected a deadline to be applied")
	}

	// Existing deadline: preserved.
	parent, pcancel := context.WithTimeout(context.Background(), time.Second)
	defer pcancel()
	ctx2, cancel2 := withAttemptDeadline(parent)
	defer cancel2()
	d1, _ := parent.Deadline()
	d2, _ := ctx2.Deadline()
	if !d1.Equal(d2) {
		t.Error("existing deadline should be preserved")
	}
}
