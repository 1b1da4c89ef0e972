package swarm

import (
	"fmt"
	"time"
)

// DefaultPermitMargin is the safety headroom, in multiples of
// AvgTokensPerRequest, subtracted from the tokens budget before the permit
// closes. Up to that many admitted-but-unaccounted requests can still add
// their usage after admission stops, so the permit must close early enough
// to absorb the overshoot. The value 2 is inherited from production tuning;
// override via Config.PermitMargin.
const DefaultPermitMargin = 2

// Engine defaults for the knobs Validate does not require.
const (
	DefaultMaxRetries     = 3
	DefaultWindow         = time.Minute
	DefaultPollInterval   = 100 * time.Millisecond
	DefaultRequestTimeout = 10 * time.Second
)

// Config holds the provider budgets and engine knobs for a batch run.
// The three budget figures are required; everything else defaults.
type Config struct {
	// MaxTokensPerWindow is the provider's tokens-per-window budget (TPM
	// when Window is one minute). Required.
	MaxTokensPerWindow int

	// MaxRequestsPerWindow is the provider's requests-per-window budget
	// (RPM when Window is one minute). Required.
	MaxRequestsPerWindow int

	// AvgTokensPerRequest estimates the usage of a single request; it sizes
	// the permit-close headroom. Required.
	AvgTokensPerRequest int

	// MaxRetries bounds retries after the first attempt, so a worker makes
	// at most MaxRetries+1 attempts. Default 3.
	MaxRetries int

	// Window is the rolling accounting interval. Default one minute.
	Window time.Duration

	// PollInterval bounds how long the controller waits for a completion
	// signal before re-checking the window. Default 100ms.
	PollInterval time.Duration

	// PermitMargin overrides DefaultPermitMargin when positive.
	PermitMargin int

	// RequestTimeout bounds a single completion attempt. Default 10s.
	RequestTimeout time.Duration
}

// Validate checks the required budget figures.
func (c *Config) Validate() error {
	if c.MaxTokensPerWindow <= 0 {
		return fmt.Errorf("max tokens per window is required")
	}
	if c.MaxRequestsPerWindow <= 0 {
		return fmt.Errorf("max requests per window is required")
	}
	if c.AvgTokensPerRequest <= 0 {
		return fmt.Errorf("avg tokens per request is required")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative")
	}
	return nil
}

// window returns the effective rolling window length.
func (c *Config) window() time.Duration {
	if c.Window > 0 {
		return c.Window
	}
	return DefaultWindow
}

// pollInterval returns the effective controller poll interval.
func (c *Config) pollInterval() time.Duration {
	if c.PollInterval > 0 {
		return c.PollInterval
	}
	return DefaultPollInterval
}

// permitMargin returns the effective permit-close margin.
func (c *Config) permitMargin() int {
	if c.PermitMargin > 0 {
		return c.PermitMargin
	}
	return DefaultPermitMargin
}

// requestTimeout returns the effective per-attempt timeout.
func (c *Config) requestTimeout() time.Duration {
	if c.RequestTimeout > 0 {
		return c.RequestTimeout
	}
	return DefaultRequestTimeout
}

// maxRetries returns the effective retry bound.
func (c *Config) maxRetries() int {
	if c.MaxRetries > 0 {
		return c.MaxRetries
	}
	return DefaultMaxRetries
}

// period returns the pacing interval between globally admitted requests:
// the window spread evenly across the requests budget.
func (c *Config) period() time.Duration {
	return c.window() / time.Duration(c.MaxRequestsPerWindow)
}

// closeThreshold returns the tokens-per-window level at which the
// controller closes the admission permit.
func (c *Config) closeThreshold() int {
	return c.MaxTokensPerWindow - c.permitMargin()*c.AvgTokensPerRequest
}
