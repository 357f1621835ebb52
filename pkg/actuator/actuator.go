// Package actuator defines the effectors node kinds drive: a pointer, a keyboard,
// and a cancellable delay. OS-level injection lives outside this module; the
// package ships a Recorder for tests and a slog-backed dry-run implementation.
package actuator

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Point is a screen coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Button is a mouse button.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

// ParseButton validates a button name. An empty name means left.
func ParseButton(s string) (Button, error) {
	switch b := Button(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return ButtonLeft, nil
	case ButtonLeft, ButtonRight, ButtonMiddle:
		return b, nil
	default:
		return "", fmt.Errorf("unknown mouse button %q", s)
	}
}

// Pointer moves and clicks the mouse.
type Pointer interface {
	Position() (Point, error)
	MoveTo(x, y int) error
	Click(b Button) error
}

// Keyboard injects characters and key strokes.
type Keyboard interface {
	TypeRune(r rune) error
	Press(k Key) error
	Release(k Key) error
}

// Sleep waits for d or until ctx is done, whichever comes first.
// It returns ctx.Err() when interrupted.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
