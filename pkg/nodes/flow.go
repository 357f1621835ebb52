package nodes

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cmdflow/cmdflow/pkg/actuator"
	"github.com/cmdflow/cmdflow/pkg/domain"
)

// Start marks an entry point of the workflow.
type Start struct{}

func (Start) Execute(ctx context.Context) error { return nil }

// NewStart creates a start node with a single "out" port.
func NewStart(title string, opts ...domain.NodeOption) *domain.Node {
	opts = append([]domain.NodeOption{domain.WithPorts(nil, []string{domain.PortOut})}, opts...)
	return domain.NewNode(domain.KindStart, title, Start{}, opts...)
}

// DelayConfig configures a Delay.
type DelayConfig struct {
	Duration time.Duration `mapstructure:"duration" json:"duration"`
}

// DefaultDelayConfig returns a one second delay.
func DefaultDelayConfig() DelayConfig {
	return DelayConfig{Duration: time.Second}
}

// Validate rejects negative durations.
func (c DelayConfig) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("delay duration must not be negative, got %s", c.Duration)
	}
	return nil
}

// Delay waits for the configured duration, or until cancelled.
type Delay struct {
	detail
	Config DelayConfig
}

func (d *Delay) Execute(ctx context.Context) error {
	d.set(fmt.Sprintf("waiting %s", d.Config.Duration))
	if err := actuator.Sleep(ctx, d.Config.Duration); err != nil {
		d.set("interrupted")
		return err
	}
	d.set("done")
	return nil
}

// NewDelay creates a delay node.
func NewDelay(title string, cfg DelayConfig, opts ...domain.NodeOption) *domain.Node {
	return domain.NewNode(domain.KindDelay, title, &Delay{Config: cfg}, opts...)
}

// LoopConfig configures a Loop.
type LoopConfig struct {
	Count int `mapstructure:"count" json:"count"`
}

// DefaultLoopConfig returns three iterations.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{Count: 3}
}

// Validate rejects negative counts.
func (c LoopConfig) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("loop count must not be negative, got %d", c.Count)
	}
	return nil
}

// Loop repeats its "body" branch Count times. Execute prepares the loop;
// each Iterate call counts one pass.
type Loop struct {
	detail
	Config    LoopConfig
	iteration atomic.Int64
}

func (l *Loop) Execute(ctx context.Context) error {
	l.set(fmt.Sprintf("iteration 0/%d", l.Config.Count))
	return nil
}

func (l *Loop) Iterate(ctx context.Context) error {
	i := l.iteration.Add(1)
	l.set(fmt.Sprintf("iteration %d/%d", i, l.Config.Count))
	return nil
}

func (l *Loop) Continue() bool {
	return l.iteration.Load() < int64(l.Config.Count)
}

func (l *Loop) Reset() {
	l.iteration.Store(0)
	l.set("")
}

// Iteration returns the number of completed passes since the last Reset.
func (l *Loop) Iteration() int {
	return int(l.iteration.Load())
}

// NewLoop creates a loop node with outputs "body" and "done".
func NewLoop(title string, cfg LoopConfig, opts ...domain.NodeOption) *domain.Node {
	opts = append([]domain.NodeOption{
		domain.WithPorts([]string{domain.PortIn}, []string{domain.PortBody, domain.PortDone}),
	}, opts...)
	return domain.NewNode(domain.KindLoop, title, &Loop{Config: cfg}, opts...)
}
