package ports

import (
	"context"
	"testing"
	"time"

	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract. The store must start empty.
func RunRunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	report := func(id string, offset time.Duration) *domain.Report {
		return &domain.Report{
			RunID:      id,
			State:      domain.RunCompleted,
			StartedAt:  base.Add(offset),
			FinishedAt: base.Add(offset + time.Second),
			Executed:   3,
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		r := report("run-1", 0)
		r.State = domain.RunFailed
		r.FailedNode = "click"
		r.Error = "boom"
		require.NoError(t, store.Save(ctx, r))

		loaded, err := store.Load(ctx, "run-1")
		require.NoError(t, err)
		assert.Equal(t, "run-1", loaded.RunID)
		assert.Equal(t, domain.RunFailed, loaded.State)
		assert.Equal(t, "click", loaded.FailedNode)
		assert.Equal(t, "boom", loaded.Error)
		assert.Equal(t, 3, loaded.Executed)
		assert.True(t, r.StartedAt.Equal(loaded.StartedAt))
		assert.Equal(t, time.Second, loaded.Duration())

		// Mutating the loaded copy must not change the stored one.
		loaded.State = domain.RunCompleted
		again, err := store.Load(ctx, "run-1")
		require.NoError(t, err)
		assert.Equal(t, domain.RunFailed, again.State)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("List newest first", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, report("run-2", time.Minute)))
		require.NoError(t, store.Save(ctx, report("run-3", 2*time.Minute)))

		all, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "run-3", all[0].RunID)
		assert.Equal(t, "run-2", all[1].RunID)
		assert.Equal(t, "run-1", all[2].RunID)

		latest, err := store.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, latest, 2)
		assert.Equal(t, "run-3", latest[0].RunID)
	})

	t.Run("Save replaces", func(t *testing.T) {
		r := report("run-2", time.Minute)
		r.State = domain.RunCancelled
		require.NoError(t, store.Save(ctx, r))

		loaded, err := store.Load(ctx, "run-2")
		require.NoError(t, err)
		assert.Equal(t, domain.RunCancelled, loaded.State)

		all, err := store.List(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "run-1"))
		_, err := store.Load(ctx, "run-1")
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		all, err := store.List(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		assert.NoError(t, store.Delete(ctx, "run-1"), "deleting twice is not an error")
	})

	t.Run("Rejects empty id", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, &domain.Report{}))
		assert.Error(t, store.Save(ctx, nil))
	})
}
