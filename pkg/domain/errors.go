package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNilNode is returned when a nil node is passed to a graph mutation.
	ErrNilNode = errors.New("nil node")

	// ErrDuplicateNode is returned when a node with the same ID already exists in the graph.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrNodeNotFound is returned when the node is not part of the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound is returned when the edge is not part of the graph.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrDirectionMismatch is returned when both ports of an edge have the same direction.
	ErrDirectionMismatch = errors.New("ports must have opposite directions")

	// ErrSelfLoop is returned when both ports of an edge belong to the same node.
	ErrSelfLoop = errors.New("ports belong to the same node")

	// ErrDuplicateEdge is returned when an edge with the same source and target already exists.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrPortNotInGraph is returned when an edge endpoint is nil or owned by a node outside the graph.
	ErrPortNotInGraph = errors.New("port is not attached to a node of this graph")

	// ErrRunNotFound is returned when a run report cannot be found in a run store.
	ErrRunNotFound = errors.New("run not found")
)

// ValidationError reports a rejected graph mutation.
// It wraps one of the sentinel errors above so callers can use errors.Is.
type ValidationError struct {
	Op     string
	Source string
	Target string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Source == "" && e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.Source, e.Target, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
