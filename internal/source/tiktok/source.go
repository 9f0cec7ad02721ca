// Package tiktok fetches video metadata, comments and thumbnails from the
// platform API. Every network call passes through the injected request gate
// before it is attempted, and carries its own short timeout so a hung call
// cannot eat the remaining run budget.
package tiktok

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"tiktok_fetcher/internal/budget"
	"tiktok_fetcher/internal/domain"
)

const (
	defaultBaseURL   = "https://www.tiktok.com"
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	// maxThumbnailBytes bounds thumbnail downloads; covers are small JPEGs.
	maxThumbnailBytes = 8 << 20

	commentFetchCount = 50
)

// RequestGate authorizes one network request before it is attempted.
// Implemented by budget.Tracker.
type RequestGate interface {
	TrySpend(n int) bool
}

// Config holds source configuration.
type Config struct {
	BaseURL      string
	PageSize     int
	Timeout      time.Duration
	RetryBackoff time.Duration
}

// Source is the platform API client.
type Source struct {
	httpClient   *http.Client
	baseURL      string
	pageSize     int
	retryBackoff time.Duration
	gate         RequestGate
	logger       *slog.Logger

	mu           sync.Mutex
	challengeIDs map[string]string // tag -> challenge ID
}

// New creates a Source. The gate must not be nil.
func New(cfg Config, gate RequestGate, logger *slog.Logger) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = 20
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = 2 * time.Second
	}
	return &Source{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      cfg.BaseURL,
		pageSize:     cfg.PageSize,
		retryBackoff: cfg.RetryBackoff,
		gate:         gate,
		logger:       logger.With("source", "tiktok"),
	}
}

// FetchPage retrieves one page of videos for the tag. The cursor is opaque;
// pass the empty string for the first page. exhausted reports that the
// platform has no further pages. A denied budget spend returns
// budget.ErrExhausted without touching the network; callers must stop
// scheduling work, not treat it as an empty page.
func (s *Source) FetchPage(ctx context.Context, tag, cursor, token string) ([]domain.VideoRecord, string, bool, error) {
	challengeID, err := s.challengeID(ctx, tag, token)
	if err != nil {
		return nil, "", false, fmt.Errorf("resolve challenge %q: %w", tag, err)
	}

	c := 0
	if cursor != "" {
		c, err = strconv.Atoi(cursor)
		if err != nil {
			return nil, "", false, fmt.Errorf("%w: bad cursor %q", ErrInvalidResponse, cursor)
		}
	}

	reqURL := fmt.Sprintf("%s/api/challenge/item_list/?challengeID=%s&count=%d&cursor=%d&msToken=%s",
		s.baseURL, url.QueryEscape(challengeID), s.pageSize, c, url.QueryEscape(token))

	var resp itemListResponse
	if err := s.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, "", false, fmt.Errorf("fetch page for %q: %w", tag, err)
	}

	records := make([]domain.VideoRecord, 0, len(resp.ItemList))
	for _, raw := range resp.ItemList {
		records = append(records, parseVideo(raw))
	}

	if !resp.HasMore {
		return records, "", true, nil
	}
	return records, strconv.Itoa(resp.Cursor), false, nil
}

// FetchTopComments returns up to domain.MaxTopComments comment texts for the
// video, ranked by like count descending.
func (s *Source) FetchTopComments(ctx context.Context, videoID, token string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/api/comment/list/?aweme_id=%s&count=%d&msToken=%s",
		s.baseURL, url.QueryEscape(videoID), commentFetchCount, url.QueryEscape(token))

	var resp commentListResponse
	if err := s.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("fetch comments for %s: %w", videoID, err)
	}
	return rankComments(resp.Comments, domain.MaxTopComments), nil
}

// FetchThumbnail downloads the raw cover image.
func (s *Source) FetchThumbnail(ctx context.Context, coverURL string) ([]byte, error) {
	if coverURL == "" {
		return nil, fmt.Errorf("%w: empty cover url", ErrInvalidResponse)
	}

	var data []byte
	err := s.withRetry(ctx, func() error {
		resp, err := s.doRequest(ctx, coverURL)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err = io.ReadAll(io.LimitReader(resp.Body, maxThumbnailBytes))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch thumbnail: %w", err)
	}
	return data, nil
}

// challengeID resolves and caches the platform ID behind a tag. The lookup
// itself costs one budget unit.
func (s *Source) challengeID(ctx context.Context, tag, token string) (string, error) {
	s.mu.Lock()
	if id, ok := s.challengeIDs[tag]; ok {
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	reqURL := fmt.Sprintf("%s/api/challenge/detail/?challengeName=%s&msToken=%s",
		s.baseURL, url.QueryEscape(tag), url.QueryEscape(token))

	var resp challengeDetailResponse
	if err := s.getJSON(ctx, reqURL, &resp); err != nil {
		return "", err
	}
	if resp.ChallengeInfo.Challenge.ID == "" {
		return "", fmt.Errorf("%w: challenge %q", ErrNotFound, tag)
	}

	s.mu.Lock()
	if s.challengeIDs == nil {
		s.challengeIDs = make(map[string]string)
	}
	s.challengeIDs[tag] = resp.ChallengeInfo.Challenge.ID
	s.mu.Unlock()
	return resp.ChallengeInfo.Challenge.ID, nil
}

// getJSON performs a gated GET with the retry policy and decodes the body.
func (s *Source) getJSON(ctx context.Context, reqURL string, out any) error {
	return s.withRetry(ctx, func() error {
		resp, err := s.doRequest(ctx, reqURL)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode body: %v", ErrInvalidResponse, err)
		}
		return nil
	})
}

// withRetry runs fn, retrying once after a short backoff on rate-limit and
// transient failures. Any other error, or a second consecutive failure, is
// returned to the caller, who reports it against the token in use.
func (s *Source) withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}
	if !retryable(err) {
		return err
	}

	s.logger.Warn("request failed, retrying once", "backoff", s.retryBackoff, "error", err)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.retryBackoff):
	}

	return fn()
}

func retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTransient)
}

// doRequest spends one budget unit, then executes a GET with standard
// headers and maps the status code to sentinel errors.
func (s *Source) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	if !s.gate.TrySpend(1) {
		return nil, budget.ErrExhausted
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", s.baseURL+"/")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		return nil, ErrAuthExpired
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	case resp.StatusCode >= 500:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", ErrTransient, resp.StatusCode)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}
}
