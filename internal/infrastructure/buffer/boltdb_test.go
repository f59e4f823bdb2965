package buffer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "totals.db"), "totals")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEnqueueAndGetBatch(t *testing.T) {
	store := openTestStore(t)

	base := time.Now()
	for i, day := range []string{"2024-06-13", "2024-06-14", "2024-06-15"} {
		require.NoError(t, store.Enqueue(Delta{
			Day:       day,
			Amount:    int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Millisecond),
		}))
	}

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	deltas, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, deltas, 3)

	// Timestamp-prefixed keys keep insertion order.
	assert.Equal(t, "2024-06-13", deltas[0].Day)
	assert.Equal(t, "2024-06-15", deltas[2].Day)
	assert.NotEmpty(t, deltas[0].ID, "ids are assigned on enqueue")

	// Peeking does not consume.
	size, err = store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestGetBatchHonorsLimit(t *testing.T) {
	store := openTestStore(t)

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Enqueue(Delta{
			Day:       "2024-06-15",
			Amount:    1,
			Timestamp: base.Add(time.Duration(i) * time.Millisecond),
		}))
	}

	deltas, err := store.GetBatch(2)
	require.NoError(t, err)
	assert.Len(t, deltas, 2)
}

func TestRemoveDeletesOnlyTheGivenDelta(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Delta{Day: "2024-06-14", Amount: 1}))
	require.NoError(t, store.Enqueue(Delta{Day: "2024-06-15", Amount: 1}))

	deltas, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, deltas, 2)

	require.NoError(t, store.Remove(deltas[0]))

	remaining, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, deltas[1].ID, remaining[0].ID)
}

func TestRequeueBumpsTimestamp(t *testing.T) {
	store := openTestStore(t)

	old := Delta{Day: "2024-06-15", Amount: 1, Timestamp: time.Now().Add(-time.Hour)}
	require.NoError(t, store.Enqueue(old))

	deltas, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, deltas, 1)

	delta := deltas[0]
	delta.Retries++
	require.NoError(t, store.Remove(delta))
	require.NoError(t, store.Requeue(delta))

	requeued, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, requeued, 1)
	assert.Equal(t, delta.ID, requeued[0].ID)
	assert.Equal(t, 1, requeued[0].Retries)
	assert.True(t, requeued[0].Timestamp.After(delta.Timestamp))
}
