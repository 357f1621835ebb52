package nodes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmdflow/cmdflow/pkg/actuator"
	"github.com/cmdflow/cmdflow/pkg/domain"
)

// smoothStep is the interval between cursor updates of a smooth move.
const smoothStep = 10 * time.Millisecond

var errNoPointer = errors.New("no pointer actuator configured")

// MouseClickConfig configures a MouseClick.
type MouseClickConfig struct {
	X        int             `mapstructure:"x" json:"x"`
	Y        int             `mapstructure:"y" json:"y"`
	Button   actuator.Button `mapstructure:"button" json:"button"`
	Clicks   int             `mapstructure:"clicks" json:"clicks"`
	Interval time.Duration   `mapstructure:"interval" json:"interval"`
}

// DefaultMouseClickConfig returns a single left click with 100ms between repeated clicks.
func DefaultMouseClickConfig() MouseClickConfig {
	return MouseClickConfig{
		Button:   actuator.ButtonLeft,
		Clicks:   1,
		Interval: 100 * time.Millisecond,
	}
}

func (c MouseClickConfig) Validate() error {
	if _, err := actuator.ParseButton(string(c.Button)); err != nil {
		return err
	}
	if c.Clicks < 0 {
		return fmt.Errorf("click count must not be negative, got %d", c.Clicks)
	}
	if c.Interval < 0 {
		return fmt.Errorf("click interval must not be negative, got %s", c.Interval)
	}
	return nil
}

// MouseClick moves to (X, Y) and clicks Clicks times.
type MouseClick struct {
	detail
	Config  MouseClickConfig
	Pointer actuator.Pointer
}

func (m *MouseClick) Execute(ctx context.Context) error {
	if m.Pointer == nil {
		return errNoPointer
	}
	button, err := actuator.ParseButton(string(m.Config.Button))
	if err != nil {
		return err
	}
	for i := 0; i < m.Config.Clicks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.set(fmt.Sprintf("click %d/%d", i+1, m.Config.Clicks))
		if err := m.Pointer.MoveTo(m.Config.X, m.Config.Y); err != nil {
			return fmt.Errorf("move to (%d,%d): %w", m.Config.X, m.Config.Y, err)
		}
		if err := m.Pointer.Click(button); err != nil {
			return fmt.Errorf("%s click: %w", button, err)
		}
		if i < m.Config.Clicks-1 {
			if err := actuator.Sleep(ctx, m.Config.Interval); err != nil {
				return err
			}
		}
	}
	m.set("done")
	return nil
}

// NewMouseClick creates a mouse click node.
func NewMouseClick(title string, cfg MouseClickConfig, p actuator.Pointer, opts ...domain.NodeOption) *domain.Node {
	return domain.NewNode(domain.KindMouseClick, title, &MouseClick{Config: cfg, Pointer: p}, opts...)
}

// MouseMoveConfig configures a MouseMove.
type MouseMoveConfig struct {
	X        int           `mapstructure:"x" json:"x"`
	Y        int           `mapstructure:"y" json:"y"`
	Smooth   bool          `mapstructure:"smooth" json:"smooth"`
	Duration time.Duration `mapstructure:"duration" json:"duration"`
}

// DefaultMouseMoveConfig returns an instant move; smooth moves last 500ms.
func DefaultMouseMoveConfig() MouseMoveConfig {
	return MouseMoveConfig{Duration: 500 * time.Millisecond}
}

func (c MouseMoveConfig) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("move duration must not be negative, got %s", c.Duration)
	}
	return nil
}

// MouseMove moves the cursor to (X, Y), optionally interpolating from
// the current position in 10ms steps.
type MouseMove struct {
	detail
	Config  MouseMoveConfig
	Pointer actuator.Pointer
}

func (m *MouseMove) Execute(ctx context.Context) error {
	if m.Pointer == nil {
		return errNoPointer
	}
	target := actuator.Point{X: m.Config.X, Y: m.Config.Y}
	m.set(fmt.Sprintf("moving to (%d,%d)", target.X, target.Y))

	steps := int(m.Config.Duration / smoothStep)
	if !m.Config.Smooth || steps == 0 {
		if err := m.Pointer.MoveTo(target.X, target.Y); err != nil {
			return fmt.Errorf("move to (%d,%d): %w", target.X, target.Y, err)
		}
		m.set("done")
		return nil
	}

	from, err := m.Pointer.Position()
	if err != nil {
		return fmt.Errorf("read cursor position: %w", err)
	}
	for i := 0; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := interpolate(from, target, float64(i)/float64(steps))
		if err := m.Pointer.MoveTo(p.X, p.Y); err != nil {
			return fmt.Errorf("move to (%d,%d): %w", p.X, p.Y, err)
		}
		if err := actuator.Sleep(ctx, smoothStep); err != nil {
			return err
		}
	}
	m.set("done")
	return nil
}

func interpolate(from, to actuator.Point, progress float64) actuator.Point {
	return actuator.Point{
		X: from.X + int(float64(to.X-from.X)*progress),
		Y: from.Y + int(float64(to.Y-from.Y)*progress),
	}
}

// NewMouseMove creates a mouse move node.
func NewMouseMove(title string, cfg MouseMoveConfig, p actuator.Pointer, opts ...domain.NodeOption) *domain.Node {
	return domain.NewNode(domain.KindMouseMove, title, &MouseMove{Config: cfg, Pointer: p}, opts...)
}
