package domain

import "time"

// Report summarizes a run.
type Report struct {
	RunID string   `json:"run_id"`
	State RunState `json:"state"`

	// Declined is set when Run was called while another run was active.
	// Nothing was executed and no events were published.
	Declined bool `json:"declined,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Executed counts node visits, body nodes once per loop pass.
	// Loop.Iterate calls are not counted.
	Executed int `json:"executed"`

	// FailedNode and Error describe the cause of a Failed run.
	FailedNode string `json:"failed_node,omitempty"`
	Error      string `json:"error,omitempty"`

	Err error `json:"-"`
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
