package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventLog        EventType = "log"
	EventRunStarted EventType = "run_started"
	EventRunStopped EventType = "run_stopped"
	EventNodeStatus EventType = "node_status"
)

// Severity grades log events.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// LogEvent is a human-readable progress message.
type LogEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
}

// NodeEvent describes a node status change.
type NodeEvent struct {
	NodeID string     `json:"node_id"`
	Kind   string     `json:"kind"`
	Title  string     `json:"title"`
	Status NodeStatus `json:"status"`
	Detail string     `json:"detail,omitempty"`
}

// Event is what the engine publishes to observers.
// Exactly one of Log or Node is set for log and node_status events;
// run_stopped carries the terminal State.
type Event struct {
	Type      EventType  `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	RunID     string     `json:"run_id"`
	Log       *LogEvent  `json:"log,omitempty"`
	Node      *NodeEvent `json:"node,omitempty"`
	State     RunState   `json:"state,omitempty"`
}
