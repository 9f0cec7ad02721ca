package collector

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiktok_fetcher/internal/domain"
)

func rec(id string) domain.VideoRecord {
	return domain.VideoRecord{ID: id}
}

func TestAccumulator_AppendAndDrain(t *testing.T) {
	a := NewAccumulator(3)

	assert.True(t, a.Append(rec("v1")))
	assert.True(t, a.Append(rec("v2")))
	assert.False(t, a.Full())
	assert.True(t, a.Append(rec("v3")))
	assert.True(t, a.Full())

	batch := a.Drain()
	require.Len(t, batch, 3)
	assert.Equal(t, "v1", batch[0].ID)
	assert.Equal(t, 0, a.Len())
	assert.Empty(t, a.Drain())
}

func TestAccumulator_DeduplicatesByID(t *testing.T) {
	a := NewAccumulator(10)

	assert.True(t, a.Append(rec("v1")))
	assert.False(t, a.Append(rec("v1")))
	assert.Equal(t, 1, a.Len())

	// Dedup spans drains: the same ID never reappears in a later batch.
	a.Drain()
	assert.False(t, a.Append(rec("v1")))
	assert.True(t, a.Append(rec("v2")))
}

func TestAccumulator_ConcurrentAppendsDrainExactlyOnce(t *testing.T) {
	a := NewAccumulator(1000)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a.Append(rec(fmt.Sprintf("v%d", i)))
		}(i)
	}
	wg.Wait()

	seen := make(map[string]int)
	for _, r := range a.Drain() {
		seen[r.ID]++
	}
	require.Len(t, seen, 100)
	for id, n := range seen {
		assert.Equal(t, 1, n, "record %s drained more than once", id)
	}
	assert.Empty(t, a.Drain())
}
