// Package swarm runs batches of LLM conversations concurrently while
// honoring a provider's requests-per-window and tokens-per-window limits.
//
// A Swarm wraps a single llm.Completer. Each Run call spawns one worker
// per conversation plus a budget controller. Workers self-pace: each one
// takes a numbered admission ticket, sleeps long enough to spread the
// batch's requests evenly across the window, waits for the shared token
// permit, and then issues exactly one attempt. Transient failures are
// retried up to the configured bound; permanent failures end the worker
// immediately.
//
// The controller owns the rolling window. It closes the permit when the
// window's reported token usage comes within a safety margin of the
// budget, and reopens it when the window elapses. Admission control is
// pessimistic (ticket pacing) before the fact and corrective (permit
// closure) after, so short bursts can overshoot the token budget by at
// most the usage of requests already in flight when the permit closed.
//
// Stop cancels the workers of the current batch; the controller is
// joined by Run itself once the workers settle, so final accounting is
// always consistent.
package swarm
