package swarm

import (
	"context"
	"sync"
	"time"
)

// Usage is a point-in-time snapshot of the shared accounting record.
type Usage struct {
	// RequestsThisWindow is the admission ticket count since the last reset.
	RequestsThisWindow int

	// TokensThisWindow is the reported usage accumulated since the last
	// reset. It may transiently exceed the configured budget by the usage
	// of requests that were already in flight when the permit closed.
	TokensThisWindow int

	// TokensLifetime is the total reported usage for the run.
	TokensLifetime int

	// PermitOpen reports whether workers may currently issue requests.
	PermitOpen bool
}

// budgetState is the accounting record shared by all workers and the
// controller. Every read-modify-write happens under one mutex, held only
// across the update itself, never across I/O or a wait.
//
// The permit is a broadcast gate: when open, gate is a closed channel and
// waitPermit returns immediately; when closed, gate is a live channel and
// waiters block until the controller's window reset closes it again.
// Workers only ever wait on the permit; only the controller flips it.
type budgetState struct {
	mu             sync.Mutex
	requests       int       // tickets issued this window
	windowTokens   int       // reported usage this window
	lifetimeTokens int       // reported usage for the whole run
	windowStart    time.Time // zero while the window is disarmed
	permitOpen     bool
	gate           chan struct{}
}

// newBudgetState creates a zeroed record with an open permit.
func newBudgetState() *budgetState {
	gate := make(chan struct{})
	close(gate)
	return &budgetState{
		permitOpen: true,
		gate:       gate,
	}
}

// takeTicket increments the per-window request count and returns the
// resulting admission ticket number. Tickets are strictly monotonic within
// a window; a window reset restarts them at 1.
func (b *budgetState) takeTicket() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests++
	return b.requests
}

// recordUsage adds reported token usage to the window and lifetime totals.
func (b *budgetState) recordUsage(tokens int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.windowTokens += tokens
	b.lifetimeTokens += tokens
}

// waitPermit blocks until the permit is open or the context ends.
func (b *budgetState) waitPermit(ctx context.Context) error {
	b.mu.Lock()
	gate := b.gate
	b.mu.Unlock()

	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// closePermitIfOver closes the permit when window usage has reached the
// threshold. Returns true if this call closed it.
func (b *budgetState) closePermitIfOver(threshold int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.permitOpen || b.windowTokens < threshold {
		return false
	}
	b.permitOpen = false
	b.gate = make(chan struct{})
	return true
}

// arm records the window start if the window is not already armed.
// Returns true if this call armed it.
func (b *budgetState) arm(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.windowStart.IsZero() {
		return false
	}
	b.windowStart = now
	return true
}

// armedSince returns the window start time and whether the window is armed.
func (b *budgetState) armedSince() (time.Time, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.windowStart, !b.windowStart.IsZero()
}

// reset zeroes the window counters, reopens the permit, and disarms the
// window so it re-arms on the next completion signal. One atomic step:
// workers woken by the reopened gate observe the fresh counters.
func (b *budgetState) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = 0
	b.windowTokens = 0
	b.windowStart = time.Time{}
	if !b.permitOpen {
		b.permitOpen = true
		close(b.gate)
	}
}

// usage returns a snapshot of the record.
func (b *budgetState) usage() Usage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Usage{
		RequestsThisWindow: b.requests,
		TokensThisWindow:   b.windowTokens,
		TokensLifetime:     b.lifetimeTokens,
		PermitOpen:         b.permitOpen,
	}
}

// pacingDelay spreads admissions evenly across the window: the k-th
// admitted ticket becomes eligible (k-1) periods after admission started,
// independent of which worker holds it.
func pacingDelay(ticket int, period time.Duration) time.Duration {
	if ticket <= 1 {
		return 0
	}
	return time.Duration(ticket-1) * period
}
