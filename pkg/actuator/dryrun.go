package actuator

import (
	"io"
	"log/slog"
	"sync"
)

// DryRun is a Pointer and Keyboard that only logs what it would do.
// It is what the CLI uses when no native injector is available.
type DryRun struct {
	mu     sync.Mutex
	pos    Point
	logger *slog.Logger
}

// NewDryRun creates a dry-run actuator logging at info level.
func NewDryRun(logger *slog.Logger) *DryRun {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DryRun{logger: logger.With("actuator", "dry-run")}
}

func (d *DryRun) Position() (Point, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pos, nil
}

func (d *DryRun) MoveTo(x, y int) error {
	d.mu.Lock()
	d.pos = Point{X: x, Y: y}
	d.mu.Unlock()
	d.logger.Debug("pointer move", "x", x, "y", y)
	return nil
}

func (d *DryRun) Click(b Button) error {
	p, _ := d.Position()
	d.logger.Info("pointer click", "button", string(b), "x", p.X, "y", p.Y)
	return nil
}

func (d *DryRun) TypeRune(r rune) error {
	d.logger.Debug("key type", "char", string(r))
	return nil
}

func (d *DryRun) Press(k Key) error {
	d.logger.Info("key press", "key", string(k))
	return nil
}

func (d *DryRun) Release(k Key) error {
	d.logger.Debug("key release", "key", string(k))
	return nil
}
