//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"tiktok_fetcher/internal/domain"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange",
		RoutingKey: "test-routing-key",
		QueueName:  "test-queue",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.NoError(err)
	s.NotNil(pub)

	err = pub.Close()
	s.NoError(err)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishFlush() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-flush",
		RoutingKey: "test-routing-key-flush",
		QueueName:  "test-queue-flush",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	posted := time.Unix(1700000000, 0).UTC()
	records := []domain.VideoRecord{
		{
			ID:            "7310000000000000001",
			PostedAt:      posted,
			Description:   "glass skin routine",
			AuthorID:      "a1",
			AuthorName:    "skincarelab",
			FollowerCount: 12000,
			ViewCount:     500000,
			LikeCount:     42000,
			ShareCount:    300,
			CommentCount:  512,
			RepostCount:   18,
			ThumbnailKey:  "raw/thumbnails/7310000000000000001.jpg",
			TopComments:   []string{"obsessed", "need this"},
		},
		{
			ID:       "7310000000000000002",
			PostedAt: posted,
		},
	}

	err = pub.PublishFlush(s.ctx, "run-abc", records)
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal("application/json", msg.ContentType)
	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)

	var received BatchMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal("run-abc", received.RunID)
	s.Equal(2, received.Count)
	s.Require().Len(received.Records, 2)
	s.Equal("7310000000000000001", received.Records[0].ID)
	s.Equal("skincarelab", received.Records[0].AuthorName)
	s.Equal(500000, received.Records[0].ViewCount)
	s.Len(received.Records[0].TopComments, 2)
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_EmptyBatch() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-empty",
		RoutingKey: "test-routing-key-empty",
		QueueName:  "test-queue-empty",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	err = pub.PublishFlush(s.ctx, "run-empty", nil)
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	var received BatchMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal(0, received.Count)
	s.Empty(received.Records)
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
		return nil
	}
}
