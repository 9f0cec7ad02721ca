// Package postgres persists the collected dataset in a relational table,
// as an alternative to the parquet object sink.
package postgres

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tiktok_fetcher/internal/domain"
)

// DatasetSink upserts video records into the videos table. Each record is
// written independently, so one bad record does not sink the whole batch.
type DatasetSink struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewDatasetSink(db *sqlx.DB, logger *slog.Logger) *DatasetSink {
	return &DatasetSink{
		db:     db,
		logger: logger.With("component", "pg_dataset"),
	}
}

func (s *DatasetSink) AppendBatch(ctx context.Context, records []domain.VideoRecord) ([]domain.RecordStatus, error) {
	query := `
		INSERT INTO videos (
			video_id, posted_at, description, author_id, author_name,
			follower_count, view_count, like_count, share_count,
			comment_count, repost_count, thumbnail_key, top_comments,
			collected_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW()
		)
		ON CONFLICT (video_id) DO UPDATE SET
			description = EXCLUDED.description,
			author_name = EXCLUDED.author_name,
			follower_count = EXCLUDED.follower_count,
			view_count = EXCLUDED.view_count,
			like_count = EXCLUDED.like_count,
			share_count = EXCLUDED.share_count,
			comment_count = EXCLUDED.comment_count,
			repost_count = EXCLUDED.repost_count,
			thumbnail_key = EXCLUDED.thumbnail_key,
			top_comments = EXCLUDED.top_comments,
			collected_at = NOW()`

	statuses := make([]domain.RecordStatus, len(records))
	failed := 0
	for i, r := range records {
		statuses[i] = domain.RecordStatus{ID: r.ID}

		_, err := s.db.ExecContext(ctx, query,
			r.ID,
			r.PostedAt,
			r.Description,
			r.AuthorID,
			r.AuthorName,
			r.FollowerCount,
			r.ViewCount,
			r.LikeCount,
			r.ShareCount,
			r.CommentCount,
			r.RepostCount,
			r.ThumbnailKey,
			pq.Array(r.TopComments),
		)
		if err != nil {
			statuses[i].Err = err.Error()
			failed++
		}
	}

	s.logger.Info("batch upserted", "size", len(records), "failed", failed)
	return statuses, nil
}

// Count returns the number of stored videos.
func (s *DatasetSink) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM videos")
	return n, err
}
