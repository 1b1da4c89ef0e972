package swarm

// completionSignal is the wakeup channel between workers and the
// controller: it exists so the controller learns "a completion just
// happened" without contending for the accounting mutex on every poll
// tick. The signal carries no payload, so producers never block: when
// the buffer is full the notification coalesces with the ones already
// pending, and one pending signal wakes the controller just as well as
// ten.
type completionSignal struct {
	ch chan struct{}
}

// newCompletionSignal creates a signal with room for buffer pending
// notifications. Size it to the worker count so bursts rarely coalesce.
func newCompletionSignal(buffer int) *completionSignal {
	if buffer < 1 {
		buffer = 1
	}
	return &completionSignal{
		ch: make(chan struct{}, buffer),
	}
}

// notify signals the consumer. Never blocks.
func (s *completionSignal) notify() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// recv exposes the receive side for the consumer's select loop.
func (s *completionSignal) recv() <-chan struct{} {
	return s.ch
}
