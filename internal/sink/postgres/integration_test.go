//go:build integration

package postgres

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"tiktok_fetcher/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
	logger    *slog.Logger
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_videos.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM videos")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) record(id string, views int) domain.VideoRecord {
	return domain.VideoRecord{
		ID:            id,
		PostedAt:      time.Unix(1700000000, 0).UTC(),
		Description:   "desc " + id,
		AuthorID:      "author-1",
		AuthorName:    "skincarelab",
		FollowerCount: 12000,
		ViewCount:     views,
		LikeCount:     42,
		CommentCount:  7,
		ThumbnailKey:  "raw/thumbnails/" + id + ".jpg",
		TopComments:   []string{"obsessed", "need this"},
	}
}

func (s *PostgresIntegrationSuite) TestAppendBatch_Insert() {
	sink := NewDatasetSink(s.db, s.logger)

	statuses, err := sink.AppendBatch(s.ctx, []domain.VideoRecord{
		s.record("v1", 100),
		s.record("v2", 200),
	})
	s.Require().NoError(err)
	s.Require().Len(statuses, 2)
	for _, st := range statuses {
		s.Empty(st.Err)
	}

	n, err := sink.Count(s.ctx)
	s.NoError(err)
	s.Equal(2, n)
}

func (s *PostgresIntegrationSuite) TestAppendBatch_UpsertReplacesMetrics() {
	sink := NewDatasetSink(s.db, s.logger)

	_, err := sink.AppendBatch(s.ctx, []domain.VideoRecord{s.record("v1", 100)})
	s.Require().NoError(err)

	_, err = sink.AppendBatch(s.ctx, []domain.VideoRecord{s.record("v1", 150)})
	s.Require().NoError(err)

	var views int
	err = s.db.GetContext(s.ctx, &views, "SELECT view_count FROM videos WHERE video_id = $1", "v1")
	s.NoError(err)
	s.Equal(150, views)

	n, err := sink.Count(s.ctx)
	s.NoError(err)
	s.Equal(1, n)
}

func (s *PostgresIntegrationSuite) TestAppendBatch_TopCommentsRoundTrip() {
	sink := NewDatasetSink(s.db, s.logger)

	_, err := sink.AppendBatch(s.ctx, []domain.VideoRecord{s.record("v1", 100)})
	s.Require().NoError(err)

	var comments pq.StringArray
	err = s.db.GetContext(s.ctx, &comments, "SELECT top_comments FROM videos WHERE video_id = $1", "v1")
	s.NoError(err)
	s.Equal(pq.StringArray{"obsessed", "need this"}, comments)
}

func (s *PostgresIntegrationSuite) TestAppendBatch_BadRecordDoesNotSinkBatch() {
	sink := NewDatasetSink(s.db, s.logger)

	bad := s.record("", 0)
	bad.PostedAt = time.Time{}
	bad.ID = "v-bad"
	// Violate the schema with an out-of-range timestamp.
	bad.PostedAt = time.Date(300000, 1, 1, 0, 0, 0, 0, time.UTC)

	statuses, err := sink.AppendBatch(s.ctx, []domain.VideoRecord{
		s.record("v-good", 100),
		bad,
	})
	s.Require().NoError(err)
	s.Require().Len(statuses, 2)
	s.Empty(statuses[0].Err)
	s.NotEmpty(statuses[1].Err)

	n, err := sink.Count(s.ctx)
	s.NoError(err)
	s.Equal(1, n)
}
