package runtime

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmdflow/cmdflow/internal/logging"
	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/events"
	"github.com/google/uuid"
)

// Engine walks a workflow graph depth-first and executes node actions.
// Only one run is active at a time.
type Engine struct {
	logger *slog.Logger
	bus    *events.Bus
	now    func() time.Time

	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	state  domain.RunState
	runID  string
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithBus sets the bus the engine publishes to.
func WithBus(bus *events.Bus) Option {
	return func(e *Engine) {
		if bus != nil {
			e.bus = bus
		}
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an idle engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
		now:    time.Now,
		state:  domain.RunIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bus == nil {
		e.bus = events.NewBus()
	}
	return e
}

// Bus returns the bus the engine publishes to.
func (e *Engine) Bus() *events.Bus {
	return e.bus
}

// IsRunning reports whether a run is in progress.
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// State returns Running during a run and the last terminal state afterwards.
// It is Idle only before the first run; use IsRunning to tell whether the engine is free.
func (e *Engine) State() domain.RunState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// RunID returns the id of the active or most recent run.
func (e *Engine) RunID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runID
}

// Stop requests cancellation of the active run. It is a no-op when idle.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel := e.cancel
	e.mu.Unlock()
	if cancel != nil {
		e.logger.Debug("stop requested")
		cancel()
	}
}

// Run executes g on the calling goroutine and blocks until the run ends.
//
// A call made while another run is active is declined: it returns a Report with
// Declined set and a nil error, and publishes nothing. Cancellation, through Stop
// or ctx, ends the run in the Cancelled state without an error. A failing node
// ends it in the Failed state and its *NodeError is returned.
func (e *Engine) Run(ctx context.Context, g *domain.Graph) (*domain.Report, error) {
	exec, ok := e.Begin(ctx, g)
	if !ok {
		e.logger.Debug("run declined, engine busy", "active_run", e.RunID())
		return &domain.Report{Declined: true}, nil
	}
	return exec.Execute()
}

// Execution is a run that has claimed the engine but not started traversing.
type Execution struct {
	run    *run
	cancel context.CancelFunc
}

// Begin claims the engine for a run of g and returns without executing it.
// It reports false when another run is active. From a successful Begin on,
// IsRunning is true, RunID names the new run and Stop cancels it; the caller
// must then call Execute exactly once.
func (e *Engine) Begin(ctx context.Context, g *domain.Graph) (*Execution, bool) {
	runCtx, cancel := context.WithCancel(ctx)

	// Stop takes mu too, so it never sees the running flag without the cancel func.
	e.mu.Lock()
	if !e.running.CompareAndSwap(false, true) {
		e.mu.Unlock()
		cancel()
		return nil, false
	}
	r := &run{
		engine: e,
		graph:  g,
		ctx:    runCtx,
		report: &domain.Report{
			RunID:     uuid.NewString(),
			State:     domain.RunRunning,
			StartedAt: e.now(),
		},
	}
	e.cancel = cancel
	e.state = domain.RunRunning
	e.runID = r.report.RunID
	e.mu.Unlock()

	return &Execution{run: r, cancel: cancel}, true
}

// RunID returns the id of the claimed run.
func (x *Execution) RunID() string {
	return x.run.report.RunID
}

// Execute traverses the graph on the calling goroutine and releases the engine
// when the run ends. Results follow the same rules as Engine.Run.
func (x *Execution) Execute() (*domain.Report, error) {
	r, e := x.run, x.run.engine
	defer e.running.Store(false)
	defer x.cancel()

	r.publish(domain.Event{Type: domain.EventRunStarted})
	r.log(domain.SeverityInfo, "workflow execution started")

	err := r.execute()
	state := r.finish(err)

	e.mu.Lock()
	e.cancel = nil
	e.state = state
	e.mu.Unlock()

	r.publish(domain.Event{Type: domain.EventRunStopped, State: state})
	return r.report, err
}
