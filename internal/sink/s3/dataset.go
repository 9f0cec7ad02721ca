// Package s3 persists the collected dataset and thumbnails in object
// storage. The dataset is a single parquet object merged on every flush;
// thumbnails are individual JPEG objects keyed by video ID.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/parquet-go/parquet-go"

	"tiktok_fetcher/internal/domain"
)

// Client is the slice of the S3 API the sinks use. *s3.Client satisfies it.
type Client interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *awss3.HeadObjectInput, optFns ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error)
}

// datasetRow is the parquet schema of one video.
type datasetRow struct {
	VideoID       string   `parquet:"video_id"`
	PostedTS      int64    `parquet:"posted_ts"`
	Description   string   `parquet:"description"`
	AuthorID      string   `parquet:"author_id"`
	AuthorName    string   `parquet:"author_name"`
	FollowerCount int64    `parquet:"follower_count"`
	ViewCount     int64    `parquet:"view_count"`
	LikeCount     int64    `parquet:"like_count"`
	ShareCount    int64    `parquet:"share_count"`
	CommentCount  int64    `parquet:"comment_count"`
	RepostCount   int64    `parquet:"repost_count"`
	ThumbnailKey  string   `parquet:"thumbnail_key"`
	TopComments   []string `parquet:"top_comments,list"`
}

func toRow(r domain.VideoRecord) datasetRow {
	return datasetRow{
		VideoID:       r.ID,
		PostedTS:      r.PostedAt.Unix(),
		Description:   r.Description,
		AuthorID:      r.AuthorID,
		AuthorName:    r.AuthorName,
		FollowerCount: int64(r.FollowerCount),
		ViewCount:     int64(r.ViewCount),
		LikeCount:     int64(r.LikeCount),
		ShareCount:    int64(r.ShareCount),
		CommentCount:  int64(r.CommentCount),
		RepostCount:   int64(r.RepostCount),
		ThumbnailKey:  r.ThumbnailKey,
		TopComments:   r.TopComments,
	}
}

// DatasetSink appends batches into one parquet object with upsert semantics:
// an incoming row replaces an existing row with the same video_id. The object
// is read and rewritten whole on each flush, which is fine at this dataset's
// scale.
type DatasetSink struct {
	client Client
	bucket string
	key    string
	logger *slog.Logger
}

func NewDatasetSink(client Client, bucket, key string, logger *slog.Logger) *DatasetSink {
	return &DatasetSink{
		client: client,
		bucket: bucket,
		key:    key,
		logger: logger.With("component", "s3_dataset"),
	}
}

// AppendBatch merges records into the parquet object. The whole batch either
// lands or fails together, so per-record statuses are always success when the
// returned error is nil.
func (s *DatasetSink) AppendBatch(ctx context.Context, records []domain.VideoRecord) ([]domain.RecordStatus, error) {
	existing, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(existing))
	for i, row := range existing {
		index[row.VideoID] = i
	}

	merged := existing
	replaced := 0
	for _, r := range records {
		row := toRow(r)
		if i, ok := index[row.VideoID]; ok {
			merged[i] = row
			replaced++
			continue
		}
		index[row.VideoID] = len(merged)
		merged = append(merged, row)
	}

	var buf bytes.Buffer
	if err := parquet.Write(&buf, merged); err != nil {
		return nil, fmt.Errorf("s3: encoding dataset: %w", err)
	}

	_, err = s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return nil, fmt.Errorf("s3: writing dataset: %w", err)
	}

	s.logger.Info("dataset merged",
		"batch", len(records),
		"replaced", replaced,
		"total_rows", len(merged),
		"key", s.key,
	)

	statuses := make([]domain.RecordStatus, len(records))
	for i, r := range records {
		statuses[i] = domain.RecordStatus{ID: r.ID}
	}
	return statuses, nil
}

// readAll loads the current dataset object. A missing object is an empty
// dataset, not an error.
func (s *DatasetSink) readAll(ctx context.Context) ([]datasetRow, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, nil
		}
		return nil, fmt.Errorf("s3: reading dataset: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3: reading dataset body: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	rows, err := parquet.Read[datasetRow](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("s3: decoding dataset: %w", err)
	}
	return rows, nil
}

// RowCount reports the dataset's current size. Used for post-run logging.
func (s *DatasetSink) RowCount(ctx context.Context) (int, error) {
	rows, err := s.readAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
