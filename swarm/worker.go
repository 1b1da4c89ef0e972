package swarm

import (
	"context"
	"time"

	"github.com/vinayprograms/gptswarm/errors"
	"github.com/vinayprograms/gptswarm/llm"
	"github.com/vinayprograms/gptswarm/logging"
)

// Outcome is the terminal result of one worker.
type Outcome struct {
	// Message is the assistant message, nil when the worker produced none.
	Message *llm.Message

	// Retryable is true only when the retry bound was exhausted on a
	// transient failure; the conversation might succeed on a later run.
	Retryable bool
}

// worker drives exactly one conversation to a terminal outcome: take an
// admission ticket, wait out the pacing delay and the permit, issue one
// attempt, classify the result, and either finish or retry.
type worker struct {
	id        string
	completer llm.Completer
	cfg       Config
	budget    *budgetState
	signals   *completionSignal
	log       *logging.Logger
}

func (w *worker) run(ctx context.Context, conv llm.Conversation) Outcome {
	period := w.cfg.period()
	maxRetries := w.cfg.maxRetries()
	retries := 0

	for {
		ticket := w.budget.takeTicket()
		delay := pacingDelay(ticket, period)
		w.log.Debug("admission ticket issued",
			map[string]interface{}{"ticket": ticket, "delay": delay})

		if err := sleepCtx(ctx, delay); err != nil {
			w.log.Warn("worker cancelled during pacing delay")
			return Outcome{}
		}

		if err := w.budget.waitPermit(ctx); err != nil {
			w.log.Warn("worker cancelled waiting for permit")
			return Outcome{}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, w.cfg.requestTimeout())
		comp, err := w.completer.Complete(attemptCtx, conv)
		cancel()

		if err == nil {
			w.budget.recordUsage(comp.TokensUsed)
			w.signals.notify()
			w.log.Debug("completion received",
				map[string]interface{}{"tokens": comp.TokensUsed})
			msg := comp.Message
			return Outcome{Message: &msg}
		}

		if ctx.Err() != nil {
			w.log.Warn("worker cancelled")
			return Outcome{}
		}

		serr := errors.Wrap(err, "completion attempt failed", errors.WithWorkerID(w.id))
		if !serr.Retryable() {
			w.log.Error("completion failed, not retrying",
				map[string]interface{}{"code": serr.Code(), "error": serr})
			return Outcome{}
		}

		retries++
		w.log.Warn("transient completion failure",
			map[string]interface{}{"code": serr.Code(), "retries": retries})
		if retries > maxRetries {
			w.log.Error("retry bound exhausted",
				map[string]interface{}{"code": serr.Code(), "attempts": retries})
			return Outcome{Retryable: true}
		}
	}
}

// sleepCtx waits for d, returning early if the context ends.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
