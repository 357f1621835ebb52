package actuator

import (
	"fmt"
	"sync"
)

// Call is one recorded actuator operation.
type Call struct {
	Op     string
	X, Y   int
	Button Button
	Rune   rune
	Key    Key
}

func (c Call) String() string {
	switch c.Op {
	case "move":
		return fmt.Sprintf("move(%d,%d)", c.X, c.Y)
	case "click":
		return fmt.Sprintf("click(%s)", c.Button)
	case "type":
		return fmt.Sprintf("type(%q)", c.Rune)
	default:
		return fmt.Sprintf("%s(%s)", c.Op, c.Key)
	}
}

// Recorder is an in-memory Pointer and Keyboard that records every call.
// Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	pos   Point
	calls []Call
}

// NewRecorder creates a recorder with the cursor at the given position.
func NewRecorder(start Point) *Recorder {
	return &Recorder{pos: start}
}

func (r *Recorder) record(c Call) {
	r.calls = append(r.calls, c)
}

func (r *Recorder) Position() (Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pos, nil
}

func (r *Recorder) MoveTo(x, y int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pos = Point{X: x, Y: y}
	r.record(Call{Op: "move", X: x, Y: y})
	return nil
}

func (r *Recorder) Click(b Button) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Op: "click", X: r.pos.X, Y: r.pos.Y, Button: b})
	return nil
}

func (r *Recorder) TypeRune(c rune) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Op: "type", Rune: c})
	return nil
}

func (r *Recorder) Press(k Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Op: "press", Key: k})
	return nil
}

func (r *Recorder) Release(k Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Op: "release", Key: k})
	return nil
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Ops returns the recorded calls formatted as strings, e.g. "move(10,20)".
func (r *Recorder) Ops() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
