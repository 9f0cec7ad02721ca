package budget

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrySpend_RespectsCap(t *testing.T) {
	tr := New(3, time.Hour, time.Minute)

	assert.True(t, tr.TrySpend(1))
	assert.True(t, tr.TrySpend(1))
	assert.True(t, tr.TrySpend(1))
	assert.False(t, tr.TrySpend(1))
	assert.Equal(t, 3, tr.Spent())
	assert.Equal(t, 0, tr.RemainingRequests())
}

func TestTrySpend_DeniesWithoutMutating(t *testing.T) {
	tr := New(5, time.Hour, time.Minute)

	require.True(t, tr.TrySpend(4))
	assert.False(t, tr.TrySpend(2))
	assert.Equal(t, 4, tr.Spent())
	assert.True(t, tr.TrySpend(1))
}

func TestTrySpend_DeniesInsideMargin(t *testing.T) {
	tr := New(100, 10*time.Minute, time.Minute)

	start := time.Now()
	tr.now = func() time.Time { return start.Add(8 * time.Minute) }
	assert.True(t, tr.TrySpend(1))
	assert.False(t, tr.InsideMargin())

	// Cross into the safety margin: 9m30s elapsed of a 10m limit with a
	// 1m margin.
	tr.now = func() time.Time { return start.Add(9*time.Minute + 30*time.Second) }
	assert.False(t, tr.TrySpend(1))
	assert.True(t, tr.InsideMargin())
	assert.Negative(t, tr.RemainingTime())
	assert.Equal(t, 1, tr.Spent())
}

func TestTrySpend_ConcurrentNeverOverspends(t *testing.T) {
	const total = 50
	tr := New(total, time.Hour, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tr.TrySpend(1) {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, total, granted)
	assert.Equal(t, total, tr.Spent())
}

func TestRemainingTime_CountsDownToSoftDeadline(t *testing.T) {
	tr := New(10, 10*time.Minute, time.Minute)

	start := time.Now()
	tr.now = func() time.Time { return start }
	got := tr.RemainingTime()
	assert.InDelta(t, float64(9*time.Minute), float64(got), float64(time.Second))
}
