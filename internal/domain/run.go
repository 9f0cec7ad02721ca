package domain

import "time"

// TruncationReason records why a run stopped collecting.
type TruncationReason string

const (
	TruncationBudgetExhausted TruncationReason = "budget-exhausted"
	TruncationDeadlineReached TruncationReason = "deadline-reached"
	TruncationTermsExhausted  TruncationReason = "terms-exhausted"
	TruncationFatalError      TruncationReason = "fatal-error"
)

// TermStatus is the terminal status of one search term within a run.
type TermStatus string

const (
	// TermCompleted means the per-term target was reached.
	TermCompleted TermStatus = "completed"
	// TermExhaustedSupply means the platform stopped yielding results
	// before the target was reached.
	TermExhaustedSupply TermStatus = "exhausted-supply"
	// TermTruncated means the global budget or deadline cut the term short.
	TermTruncated TermStatus = "truncated"
)

// TermOutcome is the per-term result reported in the run summary.
type TermOutcome struct {
	Tag       string     `json:"tag"`
	Collected int        `json:"collected"`
	Status    TermStatus `json:"status"`
}

// RecordStatus is the per-record outcome of a batch append. Err is empty on
// success.
type RecordStatus struct {
	ID  string
	Err string
}

// CollectError is a recoverable error swallowed during collection. The run
// continues; the error is only reported in the summary.
type CollectError struct {
	Stage   string `json:"stage"` // "page", "comments", "thumbnail", "flush"
	Term    string `json:"term,omitempty"`
	VideoID string `json:"video_id,omitempty"`
	Err     string `json:"error"`
}

// RunSummary is the terminal report of one collection run. A run always
// produces a summary, even when it ends in the failing state.
type RunSummary struct {
	RunID           string           `json:"run_id"`
	StartedAt       time.Time        `json:"started_at"`
	Duration        time.Duration    `json:"duration"`
	VideosCollected int              `json:"videos_collected"`
	RequestsSpent   int              `json:"requests_spent"`
	BatchesFlushed  int              `json:"batches_flushed"`
	RecordsLost     int              `json:"records_lost"`
	Terms           []TermOutcome    `json:"terms"`
	Truncation      TruncationReason `json:"truncation"`
	FatalCause      string           `json:"fatal_cause,omitempty"`
	Errors          []CollectError   `json:"errors,omitempty"`
}
