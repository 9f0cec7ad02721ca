// Package tokens manages the rotating pool of session tokens used to
// authorize platform API calls. A fresh pool is constructed per run from
// externally supplied credentials; retirement never outlives the process.
package tokens

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrNoTokensAvailable means every token in the pool has been retired. This
// is fatal for the run.
var ErrNoTokensAvailable = errors.New("tokens: no usable tokens in pool")

// Token is an opaque authentication credential with a consecutive-failure
// counter. Owned by the Pool; fetchers borrow one per request group and
// report the outcome back.
type Token struct {
	value    string
	failures int
	retired  bool
}

// Value returns the credential string.
func (t *Token) Value() string { return t.value }

// Pool hands out tokens round-robin among the non-retired ones. Round-robin
// rather than least-recently-failed spreads load evenly and avoids hammering
// a single token right after recovery.
type Pool struct {
	mu           sync.Mutex
	tokens       []*Token
	next         int
	failureLimit int
	logger       *slog.Logger
}

// NewPool builds a pool from credential values. A token is retired once its
// consecutive-failure count exceeds failureLimit.
func NewPool(values []string, failureLimit int, logger *slog.Logger) *Pool {
	tokens := make([]*Token, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		tokens = append(tokens, &Token{value: v})
	}
	return &Pool{
		tokens:       tokens,
		failureLimit: failureLimit,
		logger:       logger,
	}
}

// Acquire returns the next fresh token in rotation, or ErrNoTokensAvailable
// when every token has been retired.
func (p *Pool) Acquire() (*Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i < len(p.tokens); i++ {
		t := p.tokens[p.next%len(p.tokens)]
		p.next++
		if !t.retired {
			return t, nil
		}
	}
	return nil, ErrNoTokensAvailable
}

// ReportFailure increments the token's consecutive-failure counter and
// retires it once the counter exceeds the pool's limit.
func (p *Pool) ReportFailure(t *Token, reason error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t.retired {
		return
	}
	t.failures++
	if t.failures > p.failureLimit {
		t.retired = true
		p.logger.Warn("token retired",
			"consecutive_failures", t.failures,
			"reason", reason,
			"usable_left", p.usableLocked(),
		)
	}
}

// Retire retires the token immediately, regardless of its failure count.
// Used for authentication expiry, where retrying the same token is pointless.
func (p *Pool) Retire(t *Token, reason error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t.retired {
		return
	}
	t.retired = true
	p.logger.Warn("token retired", "reason", reason, "usable_left", p.usableLocked())
}

// ReportSuccess resets the token's consecutive-failure counter.
func (p *Pool) ReportSuccess(t *Token) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t.failures = 0
}

// Usable returns the number of non-retired tokens.
func (p *Pool) Usable() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.usableLocked()
}

func (p *Pool) usableLocked() int {
	n := 0
	for _, t := range p.tokens {
		if !t.retired {
			n++
		}
	}
	return n
}
