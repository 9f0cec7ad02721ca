// Package schedule iterates the configured search terms, tracking how many
// videos each one has yielded and abandoning terms that stop producing.
package schedule

import (
	"sync"

	"tiktok_fetcher/internal/domain"
)

// Unit is one work unit: a term plus the number of videos still wanted for
// it. The sequence of units is lazy, finite and non-restartable.
type Unit struct {
	Tag    string
	Target int
}

type termState struct {
	term       domain.SearchTerm
	collected  int
	emptyPages int
	abandoned  bool
	truncated  bool
	visited    bool
}

// Scheduler consumes the configured term list in the given order. Per-term
// targets are soft: the global budget and deadline always override them.
type Scheduler struct {
	mu             sync.Mutex
	terms          []*termState
	next           int
	emptyPageLimit int
}

// New creates a Scheduler over the given terms. A term is abandoned after
// emptyPageLimit consecutive empty pages.
func New(terms []domain.SearchTerm, emptyPageLimit int) *Scheduler {
	states := make([]*termState, len(terms))
	for i, t := range terms {
		states[i] = &termState{term: t}
	}
	return &Scheduler{terms: states, emptyPageLimit: emptyPageLimit}
}

// Next yields the next term to work on, or ok=false when the list is
// exhausted. Each term is yielded at most once.
func (s *Scheduler) Next() (Unit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.terms) {
		return Unit{}, false
	}
	st := s.terms[s.next]
	s.next++
	st.visited = true
	return Unit{Tag: st.term.Tag, Target: st.term.Target}, true
}

// Remaining returns how many more videos the term wants, zero when the term
// is done or abandoned.
func (s *Scheduler) Remaining(tag string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.find(tag)
	if st == nil || st.abandoned {
		return 0
	}
	if r := st.term.Target - st.collected; r > 0 {
		return r
	}
	return 0
}

// RecordCollected adds n collected videos to the term and resets its
// consecutive-empty-page counter.
func (s *Scheduler) RecordCollected(tag string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := s.find(tag); st != nil {
		st.collected += n
		st.emptyPages = 0
	}
}

// RecordEmptyPage notes a page that yielded nothing for the term. Returns
// true when the term has now been abandoned as exhausted-supply.
func (s *Scheduler) RecordEmptyPage(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.find(tag)
	if st == nil {
		return false
	}
	st.emptyPages++
	if st.emptyPages >= s.emptyPageLimit {
		st.abandoned = true
	}
	return st.abandoned
}

// MarkExhausted abandons the term because the platform reported no further
// pages.
func (s *Scheduler) MarkExhausted(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := s.find(tag); st != nil {
		st.abandoned = true
	}
}

// MarkTruncated flags the term as cut short by the global budget or
// deadline.
func (s *Scheduler) MarkTruncated(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := s.find(tag); st != nil {
		st.truncated = true
	}
}

// Outcomes reports the terminal status of every term the scheduler yielded.
func (s *Scheduler) Outcomes() []domain.TermOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.TermOutcome
	for _, st := range s.terms {
		if !st.visited {
			continue
		}
		o := domain.TermOutcome{Tag: st.term.Tag, Collected: st.collected}
		switch {
		case st.truncated:
			o.Status = domain.TermTruncated
		case st.collected >= st.term.Target:
			o.Status = domain.TermCompleted
		default:
			o.Status = domain.TermExhaustedSupply
		}
		out = append(out, o)
	}
	return out
}

func (s *Scheduler) find(tag string) *termState {
	for _, st := range s.terms {
		if st.term.Tag == tag {
			return st
		}
	}
	return nil
}
