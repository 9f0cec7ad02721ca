package collector

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"tiktok_fetcher/internal/domain"
	"tiktok_fetcher/internal/tokens"
)

// Fetcher retrieves pages of video metadata plus per-video follow-up data.
// Every call is budget-gated by the implementation; a denied spend surfaces
// as budget.ErrExhausted.
type Fetcher interface {
	FetchPage(ctx context.Context, tag, cursor, token string) (records []domain.VideoRecord, nextCursor string, exhausted bool, err error)
	FetchTopComments(ctx context.Context, videoID, token string) ([]string, error)
	FetchThumbnail(ctx context.Context, coverURL string) ([]byte, error)
}

// TokenPool hands out session tokens and tracks their health.
type TokenPool interface {
	Acquire() (*tokens.Token, error)
	ReportSuccess(t *tokens.Token)
	ReportFailure(t *tokens.Token, reason error)
	Retire(t *tokens.Token, reason error)
}

// DatasetSink appends a batch to the persisted columnar dataset with
// upsert-by-identifier semantics: a later run's record replaces an earlier
// one with the same ID.
type DatasetSink interface {
	AppendBatch(ctx context.Context, records []domain.VideoRecord) ([]domain.RecordStatus, error)
}

// ThumbnailSink stores thumbnail images in object storage.
type ThumbnailSink interface {
	Exists(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string, img []byte) error
}

// SeenStore remembers video IDs collected by earlier runs so the engine does
// not spend detail requests on them again. Optional; a nil store disables
// the check.
type SeenStore interface {
	IsNew(ctx context.Context, videoID string) (bool, error)
	MarkSeen(ctx context.Context, videoID string) error
}

// FlushPublisher emits an event for every successfully flushed batch so
// downstream consumers can react to fresh data. Optional.
type FlushPublisher interface {
	PublishFlush(ctx context.Context, runID string, records []domain.VideoRecord) error
	Close() error
}
