package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"tiktok_fetcher/internal/budget"
	"tiktok_fetcher/internal/collector"
	"tiktok_fetcher/internal/config"
	"tiktok_fetcher/internal/dedup"
	"tiktok_fetcher/internal/domain"
	"tiktok_fetcher/internal/publisher"
	"tiktok_fetcher/internal/schedule"
	pgsink "tiktok_fetcher/internal/sink/postgres"
	s3sink "tiktok_fetcher/internal/sink/s3"
	"tiktok_fetcher/internal/source/tiktok"
	"tiktok_fetcher/internal/tokens"
)

func main() {
	logger := setupLogger("info")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = setupLogger(cfg.LogLevel)

	// Inside Lambda the runtime drives the handler; anywhere else the run
	// starts immediately and the summary goes to stdout.
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(func(ctx context.Context) (*domain.RunSummary, error) {
			return run(ctx, cfg, logger)
		})
		return
	}

	sum, err := run(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("run setup failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		logger.Error("failed to encode summary", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

// run wires the engine from configuration and executes one collection run.
// Collection failures land in the summary; only setup failures return an
// error.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*domain.RunSummary, error) {
	if len(cfg.Tokens) == 0 {
		return nil, errors.New("no session tokens configured, set MS_TOKEN or MS_TOKEN_1..N")
	}

	tracker := budget.New(cfg.Collect.RequestCap, cfg.Collect.MaxExecutionTime, cfg.Collect.SafetyMargin)
	pool := tokens.NewPool(cfg.Tokens, cfg.Collect.TokenFailureLimit, logger)
	sched := schedule.New(cfg.Terms, cfg.Collect.EmptyPageLimit)

	source := tiktok.New(tiktok.Config{
		BaseURL:      cfg.API.BaseURL,
		PageSize:     cfg.API.PageSize,
		Timeout:      cfg.API.Timeout,
		RetryBackoff: cfg.API.RetryBackoff,
	}, tracker, logger)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	s3Client := awss3.NewFromConfig(awsCfg)

	thumbs := s3sink.NewThumbnailSink(s3Client, cfg.S3.Bucket, logger)

	var dataset collector.DatasetSink
	switch cfg.DatasetSink() {
	case config.SinkPostgres:
		db, err := sqlx.Connect("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		dataset = pgsink.NewDatasetSink(db, logger)
	case config.SinkS3:
		dataset = s3sink.NewDatasetSink(s3Client, cfg.S3.Bucket, cfg.S3.DataKey, logger)
	default:
		return nil, fmt.Errorf("unknown dataset sink %q", cfg.DatasetSink())
	}

	var seen collector.SeenStore
	if cfg.Redis.Addr != "" {
		store, err := dedup.New(ctx, cfg.Redis.Addr, cfg.Redis.TTL)
		if err != nil {
			// Dedup is advisory; run without it rather than abort.
			logger.Warn("seen store unavailable, running without dedup", "error", err)
		} else {
			defer store.Close()
			seen = store
		}
	}

	var flushPub collector.FlushPublisher
	if cfg.RabbitMQ.URL != "" {
		pub, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Warn("publisher unavailable, running without flush events", "error", err)
		} else {
			defer pub.Close()
			flushPub = pub
		}
	}

	ctrl := collector.New(
		collector.Config{
			BatchSize:       cfg.Collect.BatchSize,
			Concurrency:     cfg.Collect.Concurrency,
			ThumbnailPrefix: cfg.S3.ThumbnailPrefix,
		},
		tracker,
		pool,
		sched,
		source,
		dataset,
		thumbs,
		seen,
		flushPub,
		logger,
	)

	logger.Info("starting collection run",
		"terms", len(cfg.Terms),
		"request_cap", cfg.Collect.RequestCap,
		"max_execution", cfg.Collect.MaxExecutionTime,
		"sink", cfg.DatasetSink(),
	)

	return ctrl.Run(ctx), nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
