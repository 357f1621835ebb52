package ports

import (
	"context"

	"github.com/cmdflow/cmdflow/pkg/domain"
)

// RunStore persists run reports so past runs can be inspected.
type RunStore interface {
	// Save persists the report under its RunID, replacing any previous copy.
	Save(ctx context.Context, report *domain.Report) error

	// Load retrieves the report of a run.
	// Returns domain.ErrRunNotFound if the run is unknown or expired.
	Load(ctx context.Context, runID string) (*domain.Report, error)

	// List returns up to limit reports, most recently started first.
	// A limit <= 0 returns every stored report.
	List(ctx context.Context, limit int) ([]*domain.Report, error)

	// Delete removes a report. Deleting an unknown run is not an error.
	Delete(ctx context.Context, runID string) error
}
