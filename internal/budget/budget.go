// Package budget enforces the per-run request cap and wall-clock deadline.
// Every network-bound operation must pass through Tracker.TrySpend before
// issuing a request.
package budget

import (
	"errors"
	"sync"
	"time"
)

// ErrExhausted is returned by callers whose spend request was denied. It is
// an expected termination cause, not a failure.
var ErrExhausted = errors.New("budget: request budget exhausted")

// Tracker is the single source of truth for "may we do one more unit of
// work?". Safe for concurrent use; check-and-increment is one atomic step so
// concurrent fetchers cannot overspend the cap.
type Tracker struct {
	mu       sync.Mutex
	total    int
	spent    int
	deadline time.Time     // hard wall-clock limit
	margin   time.Duration // reserve for final flush and summary emission

	now func() time.Time
}

// New creates a Tracker allowing at most total requests before
// maxExecution elapses. The margin is subtracted from the deadline so an
// in-flight batch flush can complete before the external timeout.
func New(total int, maxExecution, margin time.Duration) *Tracker {
	t := &Tracker{
		total:  total,
		margin: margin,
		now:    time.Now,
	}
	t.deadline = t.now().Add(maxExecution)
	return t
}

// TrySpend atomically consumes n requests if both the cap and the deadline
// (minus the safety margin) allow it. Returns false without mutating state
// otherwise.
func (t *Tracker) TrySpend(n int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.spent+n > t.total {
		return false
	}
	if !t.now().Before(t.deadline.Add(-t.margin)) {
		return false
	}
	t.spent += n
	return true
}

// Spent returns the number of requests consumed so far.
func (t *Tracker) Spent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.spent
}

// RemainingRequests returns how many requests may still be spent.
func (t *Tracker) RemainingRequests() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total - t.spent
}

// RemainingTime returns the time left until the soft deadline (hard deadline
// minus margin). Negative once the margin has been crossed.
func (t *Tracker) RemainingTime() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deadline.Add(-t.margin).Sub(t.now())
}

// InsideMargin reports whether the run has crossed into the safety margin.
// Once true, no new work units should start.
func (t *Tracker) InsideMargin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.now().Before(t.deadline.Add(-t.margin))
}
