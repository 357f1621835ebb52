package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmdflow/cmdflow/pkg/adapters/memory"
	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunRunStoreContract(t, memory.NewStore())
}

func TestMemoryStore_ConcurrentSaves(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, &domain.Report{
				RunID:     time.Duration(i).String(),
				StartedAt: time.Unix(int64(i), 0),
			})
		}()
	}
	wg.Wait()

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 50)
	assert.Equal(t, "49ns", all[0].RunID)
}
