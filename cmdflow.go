package cmdflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmdflow/cmdflow/internal/logging"
	"github.com/cmdflow/cmdflow/internal/runtime"
	"github.com/cmdflow/cmdflow/pkg/actuator"
	"github.com/cmdflow/cmdflow/pkg/adapters/memory"
	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/events"
	"github.com/cmdflow/cmdflow/pkg/nodes"
	"github.com/cmdflow/cmdflow/pkg/ports"
	"github.com/cmdflow/cmdflow/pkg/registry"
	"github.com/cmdflow/cmdflow/pkg/samples"
)

// ErrBusy is returned by Start when a run is already in progress.
var ErrBusy = errors.New("a run is already in progress")

// Engine is the high-level entry point for the cmdflow library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime  *runtime.Engine
	bus      *events.Bus
	registry *registry.Registry
	store    ports.RunStore
	devices  nodes.Devices
	logger   *slog.Logger
	clock    func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore sets where run reports are kept. Defaults to an in-memory store.
func WithStore(store ports.RunStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithDevices sets the input devices used by the built-in kinds.
// Defaults to a dry-run actuator that only logs.
func WithDevices(devices nodes.Devices) Option {
	return func(e *Engine) {
		e.devices = devices
	}
}

// WithRegistry replaces the kind registry. WithDevices is ignored when set.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithBus publishes events to an existing bus.
func WithBus(bus *events.Bus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// WithClock overrides the time source of event timestamps and reports.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.clock = now
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.bus == nil {
		eng.bus = events.NewBus()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.devices.Pointer == nil || eng.devices.Keyboard == nil {
		dry := actuator.NewDryRun(eng.logger)
		if eng.devices.Pointer == nil {
			eng.devices.Pointer = dry
		}
		if eng.devices.Keyboard == nil {
			eng.devices.Keyboard = dry
		}
	}
	if eng.registry == nil {
		eng.registry = registry.NewDefault(eng.devices)
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithBus(eng.bus),
		runtime.WithClock(eng.clock),
	)
	return eng
}

// Run executes g and blocks until it ends, then records the report in the store.
// Declined runs are not recorded.
func (e *Engine) Run(ctx context.Context, g *domain.Graph) (*domain.Report, error) {
	report, err := e.runtime.Run(ctx, g)
	if report != nil && !report.Declined {
		e.save(ctx, report)
	}
	return report, err
}

// save records report even when the run context is already cancelled.
func (e *Engine) save(ctx context.Context, report *domain.Report) {
	if err := e.store.Save(context.WithoutCancel(ctx), report); err != nil {
		e.logger.Warn("failed to save run report", "run_id", report.RunID, "error", err)
	}
}

// Result is the outcome of an asynchronous run.
type Result struct {
	Report *domain.Report
	Err    error
}

// Start runs g on a new goroutine. The channel receives exactly one Result.
// The engine is claimed before Start returns, so a second Start made right
// after it returns ErrBusy.
func (e *Engine) Start(ctx context.Context, g *domain.Graph) (<-chan Result, error) {
	exec, ok := e.runtime.Begin(ctx, g)
	if !ok {
		return nil, ErrBusy
	}
	out := make(chan Result, 1)
	go func() {
		report, err := exec.Execute()
		e.save(ctx, report)
		out <- Result{Report: report, Err: err}
	}()
	return out, nil
}

// Stop cancels the active run, if any.
func (e *Engine) Stop() {
	e.runtime.Stop()
}

// IsRunning reports whether a run is in progress.
func (e *Engine) IsRunning() bool {
	return e.runtime.IsRunning()
}

// State returns the state of the active or most recent run.
func (e *Engine) State() domain.RunState {
	return e.runtime.State()
}

// RunID returns the id of the active or most recent run.
func (e *Engine) RunID() string {
	return e.runtime.RunID()
}

// Subscribe returns a channel of engine events and a function to unsubscribe.
func (e *Engine) Subscribe(buffer int) (<-chan domain.Event, func()) {
	return e.bus.Subscribe(buffer)
}

// Bus exposes the event bus for observers.
func (e *Engine) Bus() *events.Bus {
	return e.bus
}

// Registry returns the kind registry used to build sample workflows.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Sample builds one of the built-in workflows.
func (e *Engine) Sample(name string) (*domain.Graph, error) {
	return samples.Build(name, e.registry)
}

// History lists stored reports, most recent first.
func (e *Engine) History(ctx context.Context, limit int) ([]*domain.Report, error) {
	return e.store.List(ctx, limit)
}

// Report loads the stored report of one run.
func (e *Engine) Report(ctx context.Context, runID string) (*domain.Report, error) {
	return e.store.Load(ctx, runID)
}
