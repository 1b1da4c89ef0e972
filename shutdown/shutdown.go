// Package shutdown wires interrupt signals to graceful-stop handlers.
// A batch run registers its stop function here so SIGINT cancels the live
// workers instead of killing the process mid-flight.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Common errors.
var (
	// ErrAlreadyShutdown indicates shutdown was already initiated.
	ErrAlreadyShutdown = errors.New("shutdown already initiated")

	// ErrTimeout indicates shutdown did not complete within the timeout.
	ErrTimeout = errors.New("shutdown timeout exceeded")
)

// Handler is implemented by components that need graceful shutdown.
type Handler interface {
	// OnShutdown is called when shutdown is initiated. The context is
	// cancelled when the shutdown timeout is reached.
	OnShutdown(ctx context.Context) error
}

// HandlerFunc is a convenience type for simple shutdown functions.
type HandlerFunc func(ctx context.Context) error

// OnShutdown implements Handler.
func (f HandlerFunc) OnShutdown(ctx context.Context) error {
	return f(ctx)
}

// DefaultTimeout bounds ShutdownWithTimeout when no timeout is given.
const DefaultTimeout = 30 * time.Second

// Coordinator runs registered handlers once, in registration order, when
// shutdown is initiated programmatically or by SIGINT/SIGTERM.
type Coordinator struct {
	mu       sync.Mutex
	handlers []namedHandler
	started  bool

	done    chan struct{}
	doneErr error
}

type namedHandler struct {
	name    string
	handler Handler
}

// NewCoordinator creates a new shutdown coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		done: make(chan struct{}),
	}
}

// Register adds a handler to be called during shutdown.
// Registration after shutdown has started is ignored.
func (c *Coordinator) Register(name string, handler Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.handlers = append(c.handlers, namedHandler{name: name, handler: handler})
}

// HandleSignals arranges for SIGINT and SIGTERM to initiate shutdown with
// the default timeout. Must be called before the signals are expected.
func (c *Coordinator) HandleSignals() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		signal.Stop(ch)
		c.ShutdownWithTimeout(DefaultTimeout)
	}()
}

// Shutdown initiates graceful shutdown, calling all registered handlers in
// order. Returns ErrAlreadyShutdown if called more than once; handler errors
// are joined and also available via Err after Done closes.
func (c *Coordinator) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyShutdown
	}
	c.started = true
	handlers := c.handlers
	c.mu.Unlock()

	var errs []error
	for _, h := range handlers {
		if ctx.Err() != nil {
			errs = append(errs, ErrTimeout)
			break
		}
		if err := h.handler.OnShutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	c.doneErr = errors.Join(errs...)
	close(c.done)
	return c.doneErr
}

// ShutdownWithTimeout initiates shutdown bounded by a timeout.
func (c *Coordinator) ShutdownWithTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return c.Shutdown(ctx)
}

// Done returns a channel that is closed when shutdown is complete.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Err returns any error that occurred during shutdown.
// Only valid after Done() is closed.
func (c *Coordinator) Err() error {
	return c.doneErr
}
