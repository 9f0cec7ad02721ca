// Package config assembles the engine's configuration from environment
// variables, with an optional YAML file for the search term list. The binary
// runs in environments where all settings arrive through the environment, so
// there is no required config file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"tiktok_fetcher/internal/domain"
)

type Config struct {
	Collect  CollectConfig
	API      APIConfig
	S3       S3Config
	Database DatabaseConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	LogLevel string

	// Tokens are the session credentials for the platform API, in rotation
	// order.
	Tokens []string

	// Terms is the per-run search plan.
	Terms []domain.SearchTerm
}

type CollectConfig struct {
	VideosPerTag      int
	RequestCap        int
	BatchSize         int
	MaxExecutionTime  time.Duration
	SafetyMargin      time.Duration
	Concurrency       int
	EmptyPageLimit    int
	TokenFailureLimit int
}

type APIConfig struct {
	BaseURL      string
	PageSize     int
	Timeout      time.Duration
	RetryBackoff time.Duration
}

// S3Config covers both the parquet dataset object and the thumbnail prefix.
type S3Config struct {
	Bucket          string
	Region          string
	DataKey         string
	ThumbnailPrefix string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr string
	TTL  time.Duration
}

type RabbitMQConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

// DatasetSink selects where the columnar dataset is persisted.
const (
	SinkS3       = "s3"
	SinkPostgres = "postgres"
)

// defaultTerms is the built-in search plan, used when SEARCH_TERMS_FILE is
// not set.
var defaultTerms = []string{
	"tonerrecommendation",
	"serumreview",
	"koreancosmetics",
	"japaneseskincare",
	"skincaretips",
	"kbeautyroutine",
	"ulzzangmakeup",
	"kmakeup",
	"jskincare",
	"sheetmask",
	"beautyreview",
	"asianbeauty",
	"koreabeautyproducts",
	"tokyomakeup",
	"cosmeランキング",
	"韓国メイク",
	"メイク好きさんと繋がりたい",
	"垢抜けメイク",
	"スキンケアマニア",
	"メイクレビュー",
	"時短メイク",
	"プチプラコスメ",
	"デパコス",
	"ナチュラルメイク",
	"韓国アイドルメイク",
	"メイク動画",
}

// DatasetSink returns the configured sink kind, defaulting to s3.
func (c *Config) DatasetSink() string {
	if v := os.Getenv("DATASET_SINK"); v != "" {
		return v
	}
	return SinkS3
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Collect: CollectConfig{
			VideosPerTag:      envInt("VIDEOS_PER_TAG", 50),
			RequestCap:        envInt("REQUEST_CAP", 200),
			BatchSize:         envInt("BATCH_SIZE", 25),
			MaxExecutionTime:  envSeconds("MAX_EXECUTION_TIME", 840*time.Second),
			SafetyMargin:      envSeconds("SAFETY_MARGIN", 60*time.Second),
			Concurrency:       envInt("COLLECT_CONCURRENCY", 4),
			EmptyPageLimit:    envInt("EMPTY_PAGE_LIMIT", 3),
			TokenFailureLimit: envInt("TOKEN_FAILURE_LIMIT", 2),
		},
		API: APIConfig{
			BaseURL:      envString("API_BASE_URL", "https://www.tiktok.com"),
			PageSize:     envInt("API_PAGE_SIZE", 20),
			Timeout:      envSeconds("HTTP_TIMEOUT", 15*time.Second),
			RetryBackoff: envSeconds("RETRY_BACKOFF", 2*time.Second),
		},
		S3: S3Config{
			Bucket:          envString("S3_BUCKET", "socialmediaanalyzer"),
			Region:          envString("AWS_REGION", "ap-northeast-2"),
			DataKey:         envString("S3_DATA_KEY", "raw/data/tiktok_data.parquet"),
			ThumbnailPrefix: envString("S3_THUMBNAILS_PREFIX", "raw/thumbnails/"),
		},
		Database: DatabaseConfig{
			Host:     envString("DATABASE_HOST", "localhost"),
			Port:     envInt("DATABASE_PORT", 5432),
			User:     envString("DATABASE_USER", "postgres"),
			Password: os.Getenv("DATABASE_PASSWORD"),
			DBName:   envString("DATABASE_NAME", "tiktok"),
			SSLMode:  envString("DATABASE_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_ADDR"),
			TTL:  envSeconds("REDIS_SEEN_TTL", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        os.Getenv("RABBITMQ_URL"),
			Exchange:   envString("RABBITMQ_EXCHANGE", "tiktok_fetcher"),
			RoutingKey: envString("RABBITMQ_ROUTING_KEY", "batches"),
			QueueName:  envString("RABBITMQ_QUEUE", "collected_batches"),
		},
		LogLevel: envString("LOG_LEVEL", "info"),
	}

	cfg.Tokens = loadTokens()

	terms, err := loadTerms(os.Getenv("SEARCH_TERMS_FILE"), cfg.Collect.VideosPerTag)
	if err != nil {
		return nil, err
	}
	cfg.Terms = terms

	return cfg, nil
}

// loadTokens reads MS_TOKEN_1, MS_TOKEN_2, ... until the first gap, falling
// back to a single MS_TOKEN.
func loadTokens() []string {
	var tokens []string
	for i := 1; ; i++ {
		token := os.Getenv(fmt.Sprintf("MS_TOKEN_%d", i))
		if token == "" {
			break
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		if token := os.Getenv("MS_TOKEN"); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// loadTerms reads the search plan from a YAML file, or builds one from the
// built-in list with a uniform per-tag target.
func loadTerms(path string, target int) ([]domain.SearchTerm, error) {
	if path == "" {
		terms := make([]domain.SearchTerm, len(defaultTerms))
		for i, tag := range defaultTerms {
			terms[i] = domain.SearchTerm{Tag: tag, Target: target}
		}
		return terms, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read terms file: %w", err)
	}

	var parsed struct {
		Terms []domain.SearchTerm `yaml:"terms"`
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &parsed); err != nil {
		return nil, fmt.Errorf("parse terms file: %w", err)
	}

	for i := range parsed.Terms {
		if parsed.Terms[i].Target == 0 {
			parsed.Terms[i].Target = target
		}
	}
	return parsed.Terms, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return time.Duration(n) * time.Second
}
