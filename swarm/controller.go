package swarm

import (
	"context"
	"time"

	"github.com/vinayprograms/gptswarm/logging"
)

// controller enforces the rolling tokens-per-window budget. It arms the
// window on the first completion signal after a reset, closes the
// admission permit when window usage reaches the configured threshold,
// and resets the window once it has been armed for the full interval.
type controller struct {
	cfg     Config
	budget  *budgetState
	signals *completionSignal
	log     *logging.Logger

	now func() time.Time // for testing
}

func newController(cfg Config, budget *budgetState, signals *completionSignal, log *logging.Logger) *controller {
	return &controller{
		cfg:     cfg,
		budget:  budget,
		signals: signals,
		log:     log,
		now:     time.Now,
	}
}

// run polls until cancelled. Cancellation is the only exit; it is the
// orchestrator's shutdown signal, not a failure.
func (c *controller) run(ctx context.Context) {
	threshold := c.cfg.closeThreshold()
	window := c.cfg.window()

	for {
		// Probe the completion channel, bounded by the poll interval so
		// window expiry is noticed even when no completions arrive.
		select {
		case <-ctx.Done():
			c.log.Warn("controller cancelled")
			return
		case <-c.signals.recv():
			if c.budget.arm(c.now()) {
				c.log.Debug("first completion since reset, window armed")
			}
		case <-time.After(c.cfg.pollInterval()):
		}

		if c.budget.closePermitIfOver(threshold) {
			c.log.Debug("tokens-per-window budget reached, permit closed",
				map[string]interface{}{"threshold": threshold})
		}

		if start, armed := c.budget.armedSince(); armed {
			if elapsed := c.now().Sub(start); elapsed >= window {
				c.budget.reset()
				c.log.Debug("window reset, permit reopened",
					map[string]interface{}{"elapsed": elapsed.Round(time.Millisecond)})
			}
		}
	}
}
