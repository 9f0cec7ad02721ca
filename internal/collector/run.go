// Package collector orchestrates one time-boxed collection run: terms are
// scheduled, pages fetched with rotating tokens under the request budget,
// records enriched and batched, batches flushed to the dataset sink.
package collector

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tiktok_fetcher/internal/budget"
	"tiktok_fetcher/internal/domain"
	"tiktok_fetcher/internal/schedule"
	"tiktok_fetcher/internal/source/tiktok"
	"tiktok_fetcher/internal/tokens"
)

// State is the run controller's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateCollecting
	StateFlushing
	StateFinalizing
	StateFailing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollecting:
		return "collecting"
	case StateFlushing:
		return "flushing"
	case StateFinalizing:
		return "finalizing"
	case StateFailing:
		return "failing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Config holds controller tunables.
type Config struct {
	BatchSize       int
	Concurrency     int
	ThumbnailPrefix string
}

// Controller runs the collection state machine. It always produces a
// RunSummary, even when the run ends in the failing state.
type Controller struct {
	cfg       Config
	budget    *budget.Tracker
	pool      TokenPool
	sched     *schedule.Scheduler
	fetcher   Fetcher
	dataset   DatasetSink
	thumbs    ThumbnailSink
	seen      SeenStore
	publisher FlushPublisher
	acc       *Accumulator
	logger    *slog.Logger

	mu    sync.Mutex
	state State
	errs  []domain.CollectError
}

// New wires a Controller. seen and publisher may be nil.
func New(
	cfg Config,
	tracker *budget.Tracker,
	pool TokenPool,
	sched *schedule.Scheduler,
	fetcher Fetcher,
	dataset DatasetSink,
	thumbs ThumbnailSink,
	seen SeenStore,
	publisher FlushPublisher,
	logger *slog.Logger,
) *Controller {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Controller{
		cfg:       cfg,
		budget:    tracker,
		pool:      pool,
		sched:     sched,
		fetcher:   fetcher,
		dataset:   dataset,
		thumbs:    thumbs,
		seen:      seen,
		publisher: publisher,
		acc:       NewAccumulator(cfg.BatchSize),
		logger:    logger.With("component", "collector"),
	}
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Run executes one collection run and returns its summary. Per-record and
// per-request failures are swallowed into the summary's error list; only
// credential-pool exhaustion aborts collection early.
func (c *Controller) Run(ctx context.Context) *domain.RunSummary {
	start := time.Now()
	sum := &domain.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: start.UTC(),
	}

	c.setState(StateCollecting)
	c.logger.Info("run started",
		"run_id", sum.RunID,
		"request_budget", c.budget.RemainingRequests(),
		"time_budget", c.budget.RemainingTime(),
	)

	var fatal error
loop:
	for {
		if c.budget.InsideMargin() {
			sum.Truncation = domain.TruncationDeadlineReached
			break
		}
		if c.budget.RemainingRequests() <= 0 {
			sum.Truncation = domain.TruncationBudgetExhausted
			break
		}

		unit, ok := c.sched.Next()
		if !ok {
			sum.Truncation = domain.TruncationTermsExhausted
			break
		}

		if err := c.collectTerm(ctx, unit, sum); err != nil {
			switch {
			case errors.Is(err, tokens.ErrNoTokensAvailable):
				fatal = err
				break loop
			case errors.Is(err, budget.ErrExhausted):
				if c.budget.RemainingRequests() <= 0 {
					sum.Truncation = domain.TruncationBudgetExhausted
				} else {
					sum.Truncation = domain.TruncationDeadlineReached
				}
				break loop
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				sum.Truncation = domain.TruncationDeadlineReached
				break loop
			default:
				// Term-level failure; move on to the next term.
				c.recordErr("page", unit.Tag, "", err)
			}
		}
	}

	if fatal != nil {
		c.setState(StateFailing)
		sum.Truncation = domain.TruncationFatalError
		sum.FatalCause = fatal.Error()
		c.logger.Error("run failing", "cause", fatal)
	}

	// Best-effort flush of whatever was accumulated, then the summary.
	c.setState(StateFinalizing)
	c.flush(ctx, sum)

	sum.Terms = c.sched.Outcomes()
	sum.RequestsSpent = c.budget.Spent()
	sum.Duration = time.Since(start)
	c.mu.Lock()
	sum.Errors = c.errs
	c.mu.Unlock()

	c.setState(StateDone)
	c.logger.Info("run finished",
		"run_id", sum.RunID,
		"videos", sum.VideosCollected,
		"requests", sum.RequestsSpent,
		"batches", sum.BatchesFlushed,
		"truncation", sum.Truncation,
		"errors", len(sum.Errors),
		"duration", sum.Duration,
	)
	return sum
}

// collectTerm pages through one term until its target is met, its supply
// runs dry, or the global budget stops the run.
func (c *Controller) collectTerm(ctx context.Context, unit schedule.Unit, sum *domain.RunSummary) error {
	c.logger.Info("collecting term", "tag", unit.Tag, "target", unit.Target)

	cursor := ""
	for c.sched.Remaining(unit.Tag) > 0 {
		if c.budget.InsideMargin() {
			c.sched.MarkTruncated(unit.Tag)
			return budget.ErrExhausted
		}

		tok, err := c.pool.Acquire()
		if err != nil {
			c.sched.MarkTruncated(unit.Tag)
			return err
		}

		records, next, exhausted, err := c.fetcher.FetchPage(ctx, unit.Tag, cursor, tok.Value())
		if err != nil {
			if errors.Is(err, budget.ErrExhausted) {
				c.sched.MarkTruncated(unit.Tag)
				return err
			}
			if ctx.Err() != nil {
				c.sched.MarkTruncated(unit.Tag)
				return ctx.Err()
			}
			c.reportTokenOutcome(tok, err)
			c.recordErr("page", unit.Tag, "", err)
			if c.sched.RecordEmptyPage(unit.Tag) {
				return nil
			}
			continue
		}
		c.pool.ReportSuccess(tok)

		if len(records) == 0 {
			if exhausted {
				c.sched.MarkExhausted(unit.Tag)
				return nil
			}
			if c.sched.RecordEmptyPage(unit.Tag) {
				return nil
			}
			cursor = next
			continue
		}

		added := c.enrichAndBuffer(ctx, unit.Tag, records, tok)
		if added > 0 {
			c.sched.RecordCollected(unit.Tag, added)
		} else if c.sched.RecordEmptyPage(unit.Tag) {
			// Pages full of already-seen videos count against the
			// empty-page limit so a stale term cannot loop forever.
			return nil
		}

		if c.acc.Full() || c.budget.InsideMargin() {
			c.flush(ctx, sum)
		}

		if exhausted {
			c.sched.MarkExhausted(unit.Tag)
			return nil
		}
		cursor = next
	}
	return nil
}

// enrichAndBuffer runs per-record follow-up fetches with bounded concurrency
// and appends the results. Returns the number of records accepted. Once the
// deadline margin is crossed no new enrichments start, but in-flight ones
// complete.
func (c *Controller) enrichAndBuffer(ctx context.Context, tag string, records []domain.VideoRecord, tok *tokens.Token) int {
	if want := c.sched.Remaining(tag); len(records) > want {
		records = records[:want]
	}

	sem := make(chan struct{}, c.cfg.Concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	added := 0

	for _, r := range records {
		if c.budget.InsideMargin() {
			break
		}
		if c.seen != nil {
			isNew, err := c.seen.IsNew(ctx, r.ID)
			if err != nil {
				c.recordErr("dedup", tag, r.ID, err)
			} else if !isNew {
				continue
			}
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(r domain.VideoRecord) {
			defer wg.Done()
			defer func() { <-sem }()

			c.enrich(ctx, tag, &r, tok)
			if !c.acc.Append(r) {
				return
			}
			mu.Lock()
			added++
			mu.Unlock()
			if c.seen != nil {
				if err := c.seen.MarkSeen(ctx, r.ID); err != nil {
					c.recordErr("dedup", tag, r.ID, err)
				}
			}
		}(r)
	}
	wg.Wait()
	return added
}

// enrich fills in top comments and the thumbnail. Failures leave the
// corresponding field empty and are logged as recoverable errors; they never
// invalidate the record.
func (c *Controller) enrich(ctx context.Context, tag string, r *domain.VideoRecord, tok *tokens.Token) {
	if r.CommentCount > 0 {
		comments, err := c.fetcher.FetchTopComments(ctx, r.ID, tok.Value())
		if err != nil {
			c.recordErr("comments", tag, r.ID, err)
			if !errors.Is(err, budget.ErrExhausted) {
				c.reportTokenOutcome(tok, err)
			}
		} else {
			r.TopComments = comments
		}
	}

	key := c.cfg.ThumbnailPrefix + r.ID + ".jpg"
	exists, err := c.thumbs.Exists(ctx, key)
	if err != nil {
		c.recordErr("thumbnail", tag, r.ID, err)
		return
	}
	if exists {
		r.ThumbnailKey = key
		return
	}

	if r.CoverURL == "" {
		c.recordErr("thumbnail", tag, r.ID, errors.New("no cover url"))
		return
	}
	img, err := c.fetcher.FetchThumbnail(ctx, r.CoverURL)
	if err != nil {
		c.recordErr("thumbnail", tag, r.ID, err)
		return
	}
	if err := c.thumbs.Put(ctx, key, img); err != nil {
		c.recordErr("thumbnail", tag, r.ID, err)
		return
	}
	r.ThumbnailKey = key
}

// reportTokenOutcome maps a request failure to the pool: authentication
// expiry retires the token immediately, anything else counts one failure.
func (c *Controller) reportTokenOutcome(tok *tokens.Token, err error) {
	if errors.Is(err, tiktok.ErrAuthExpired) {
		c.pool.Retire(tok, err)
		return
	}
	c.pool.ReportFailure(tok, err)
}

// flush drains the accumulator and hands the batch to the dataset sink,
// retrying once on failure. A batch that fails twice is recorded as lost,
// never silently dropped.
func (c *Controller) flush(ctx context.Context, sum *domain.RunSummary) {
	batch := c.acc.Drain()
	if len(batch) == 0 {
		return
	}

	prev := c.State()
	c.setState(StateFlushing)
	defer c.setState(prev)

	statuses, err := c.dataset.AppendBatch(ctx, batch)
	if err != nil {
		c.logger.Warn("batch flush failed, retrying once", "size", len(batch), "error", err)
		statuses, err = c.dataset.AppendBatch(ctx, batch)
	}
	if err != nil {
		sum.RecordsLost += len(batch)
		c.recordErr("flush", "", "", err)
		c.logger.Error("batch lost after retry", "size", len(batch), "error", err)
		return
	}

	stored := len(batch)
	for _, st := range statuses {
		if st.Err != "" {
			stored--
			sum.RecordsLost++
			c.recordErr("flush", "", st.ID, errors.New(st.Err))
		}
	}
	sum.VideosCollected += stored
	sum.BatchesFlushed++
	c.logger.Info("batch flushed", "size", len(batch), "stored", stored)

	if c.publisher != nil {
		if err := c.publisher.PublishFlush(ctx, sum.RunID, batch); err != nil {
			c.recordErr("flush", "", "", err)
		}
	}
}

func (c *Controller) recordErr(stage, term, videoID string, err error) {
	c.logger.Warn("recoverable error", "stage", stage, "term", term, "video_id", videoID, "error", err)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, domain.CollectError{
		Stage:   stage,
		Term:    term,
		VideoID: videoID,
		Err:     err.Error(),
	})
}
