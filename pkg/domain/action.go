package domain

import "context"

// Action is the capability every node kind implements.
// Execute performs the node's work and must return promptly once ctx is cancelled.
type Action interface {
	Execute(ctx context.Context) error
}

// Looper is implemented by loop kinds. The engine calls Iterate while Continue
// holds, running the loop body after each iteration, and Reset once the loop ends.
type Looper interface {
	Action
	Iterate(ctx context.Context) error
	Continue() bool
	Reset()
}

// Describer is optionally implemented by actions that expose a short
// human-readable progress text (e.g. "iteration 2/3").
type Describer interface {
	Detail() string
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func(ctx context.Context) error

// Execute calls f(ctx).
func (f ActionFunc) Execute(ctx context.Context) error {
	return f(ctx)
}
