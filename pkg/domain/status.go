package domain

// NodeStatus is the execution status of a single node.
type NodeStatus int32

const (
	StatusIdle NodeStatus = iota
	StatusRunning
	StatusSucceeded
	StatusFailed
)

func (s NodeStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunState is the state of the engine's run lifecycle.
//
//	Idle -> Running -> {Completed, Cancelled, Failed} -> Idle
type RunState string

const (
	// RunIdle is reported by Engine.State only before the first run. After a run
	// the terminal state stays visible and Engine.IsRunning tells that the engine is free again.
	RunIdle      RunState = "idle"
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunCancelled RunState = "cancelled"
	RunFailed    RunState = "failed"
)

// Terminal reports whether the state ends a run.
func (s RunState) Terminal() bool {
	return s == RunCompleted || s == RunCancelled || s == RunFailed
}

// MarshalText encodes the status by name.
func (s NodeStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name. Unknown names decode to StatusIdle.
func (s *NodeStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "running":
		*s = StatusRunning
	case "succeeded":
		*s = StatusSucceeded
	case "failed":
		*s = StatusFailed
	default:
		*s = StatusIdle
	}
	return nil
}
