package collector

import (
	"sync"

	"tiktok_fetcher/internal/domain"
)

// Accumulator buffers fetched records until they are drained for a flush.
// Records are deduplicated by ID for the whole run, so no identifier ever
// appears twice in one batch or across batches. Safe for concurrent use.
type Accumulator struct {
	mu      sync.Mutex
	size    int
	records []domain.VideoRecord
	seen    map[string]struct{}
}

// NewAccumulator creates an Accumulator that asks for a flush at size
// records.
func NewAccumulator(size int) *Accumulator {
	return &Accumulator{
		size: size,
		seen: make(map[string]struct{}),
	}
}

// Append buffers the record. Returns false when a record with the same ID
// was already accepted during this run.
func (a *Accumulator) Append(r domain.VideoRecord) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, dup := a.seen[r.ID]; dup {
		return false
	}
	a.seen[r.ID] = struct{}{}
	a.records = append(a.records, r)
	return true
}

// Len returns the number of buffered records.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}

// Full reports whether the buffer has reached the flush threshold.
func (a *Accumulator) Full() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records) >= a.size
}

// Drain atomically empties the buffer and returns its contents in append
// order. Each record is returned by exactly one drain.
func (a *Accumulator) Drain() []domain.VideoRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.records
	a.records = nil
	return out
}
