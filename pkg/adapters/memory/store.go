package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/cmdflow/cmdflow/pkg/domain"
)

// Store implements ports.RunStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Report
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Report),
	}
}

// Save keeps a copy of the report.
func (s *Store) Save(ctx context.Context, report *domain.Report) error {
	if report == nil || report.RunID == "" {
		return errors.New("report without run id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[report.RunID] = *report
	return nil
}

// Load returns a copy so callers cannot mutate the stored report.
func (s *Store) Load(ctx context.Context, runID string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.data[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return &r, nil
}

// List returns stored reports, most recently started first.
func (s *Store) List(ctx context.Context, limit int) ([]*domain.Report, error) {
	s.mu.RLock()
	out := make([]*domain.Report, 0, len(s.data))
	for _, r := range s.data {
		out = append(out, &r)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes the report.
func (s *Store) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}
