package swarm

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vinayprograms/gptswarm/llm"
	"github.com/vinayprograms/gptswarm/logging"
)

// Swarm dispatches batches of conversations against one completion service
// while keeping the provider's requests-per-window and tokens-per-window
// budgets. One batch at a time; Stop may be called from any goroutine.
type Swarm struct {
	completer llm.Completer
	cfg       Config
	log       *logging.Logger

	mu      sync.Mutex
	workers map[string]context.CancelFunc // live worker registry
	budget  *budgetState                  // current run's accounting
}

// New creates a swarm around a completion service.
// A nil logger disables logging.
func New(completer llm.Completer, cfg Config, log *logging.Logger) (*Swarm, error) {
	if completer == nil {
		return nil, fmt.Errorf("completer is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Swarm{
		completer: completer,
		cfg:       cfg,
		log:       log,
		workers:   make(map[string]context.CancelFunc),
	}, nil
}

// Run processes one batch. It starts the window controller, spawns one
// worker per conversation, and waits for every worker to reach a terminal
// outcome before cancelling and joining the controller.
//
// The returned slice matches the input positionally; a conversation that
// produced no message has a nil Outcome.Message. Worker failures stay
// local to their outcome; the only non-nil error Run returns is the
// context's, when the batch was cancelled from outside.
func (s *Swarm) Run(ctx context.Context, conversations []llm.Conversation) ([]Outcome, error) {
	budget := newBudgetState()
	s.mu.Lock()
	s.budget = budget
	s.mu.Unlock()

	signals := newCompletionSignal(len(conversations))

	// The controller gets its own context, detached from the batch
	// context: external cancellation targets the workers, and the
	// controller is shut down here only after the workers settle.
	ctrlCtx, ctrlCancel := context.WithCancel(context.Background())
	defer ctrlCancel()

	ctrl := newController(s.cfg, budget, signals, s.log.WithComponent("controller"))
	ctrlDone := make(chan struct{})
	go func() {
		defer close(ctrlDone)
		ctrl.run(ctrlCtx)
	}()

	outcomes := make([]Outcome, len(conversations))
	var wg sync.WaitGroup

	for i, conv := range conversations {
		id := uuid.NewString()
		wctx, cancel := context.WithCancel(ctx)
		s.addWorker(id, cancel)

		w := &worker{
			id:        id,
			completer: s.completer,
			cfg:       s.cfg,
			budget:    budget,
			signals:   signals,
			log:       s.log.WithComponent("worker").WithWorker(id),
		}

		wg.Add(1)
		go func(i int, conv llm.Conversation) {
			defer wg.Done()
			defer s.removeWorker(id)
			defer cancel()
			outcomes[i] = w.run(wctx, conv)
		}(i, conv)
	}

	wg.Wait()

	ctrlCancel()
	<-ctrlDone

	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// Stop cancels every live worker. The controller is not a target: the
// owning Run call shuts it down after the workers settle, so accounting
// stays consistent through the teardown.
func (s *Swarm) Stop() {
	s.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(s.workers))
	for _, cancel := range s.workers {
		cancels = append(cancels, cancel)
	}
	s.mu.Unlock()

	if len(cancels) > 0 {
		s.log.Info("stopping swarm", map[string]interface{}{"workers": len(cancels)})
	}
	for _, cancel := range cancels {
		cancel()
	}
}

// LiveWorkers returns the number of workers currently registered.
func (s *Swarm) LiveWorkers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workers)
}

// Usage returns a snapshot of the current (or most recent) run's
// accounting. The zero Usage before any run.
func (s *Swarm) Usage() Usage {
	s.mu.Lock()
	budget := s.budget
	s.mu.Unlock()
	if budget == nil {
		return Usage{}
	}
	return budget.usage()
}

func (s *Swarm) addWorker(id string, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers[id] = cancel
}

func (s *Swarm) removeWorker(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workers, id)
}
