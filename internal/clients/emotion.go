// Package clients holds HTTP clients for remote scoring services.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/model"
)

type emotionRequest struct {
	Text string `json:"text"`
}

type emotionResponse struct {
	DominantEmotion string               `json:"dominant_emotion"`
	Emotions        []model.EmotionScore `json:"emotions"`
}

// EmotionClient ranks emotions through a remote detection service exposing
// POST /detect and GET /health.
type EmotionClient struct {
	client  *http.Client
	baseURL string
	retry   common.RetryOptions

	availableOnce sync.Once
	available     bool
}

// NewEmotionClient creates a client for the service at baseURL.
func NewEmotionClient(baseURL string, timeout time.Duration) *EmotionClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &EmotionClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		retry: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     2 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// WithRetryOptions overrides the retry policy used for /detect calls.
func (c *EmotionClient) WithRetryOptions(opts common.RetryOptions) *EmotionClient {
	c.retry = opts
	return c
}

// Available checks the service health endpoint once and remembers the answer
// for the life of the client.
func (c *EmotionClient) Available(ctx context.Context) bool {
	c.availableOnce.Do(func() {
		c.available = c.checkHealth(ctx)
		if !c.available {
			slog.Warn("Emotion service unavailable, emotions will be absent", "url", c.baseURL)
		}
	})
	return c.available
}

func (c *EmotionClient) checkHealth(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		slog.Debug("Emotion health check failed", "error", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// Rank posts text to /detect and returns the ranking, highest first.
func (c *EmotionClient) Rank(ctx context.Context, text string) ([]model.EmotionScore, error) {
	var out emotionResponse
	err := common.WithRetry(ctx, func() error {
		var err error
		out, err = c.detect(ctx, text)
		return err
	}, c.retry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrScorerUnavailable, err)
	}

	ranking := make([]model.EmotionScore, 0, len(out.Emotions))
	for _, e := range out.Emotions {
		if label := strings.ToLower(strings.TrimSpace(e.Label)); label != "" {
			ranking = append(ranking, model.EmotionScore{Label: label, Score: e.Score})
		}
	}
	if len(ranking) == 0 && out.DominantEmotion != "" {
		ranking = append(ranking, model.EmotionScore{Label: strings.ToLower(out.DominantEmotion), Score: 1})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].Label < ranking[j].Label
	})
	return ranking, nil
}

func (c *EmotionClient) detect(ctx context.Context, text string) (emotionResponse, error) {
	b, err := json.Marshal(emotionRequest{Text: text})
	if err != nil {
		return emotionResponse{}, &common.RetryableError{Err: err, Retryable: false}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect", bytes.NewReader(b))
	if err != nil {
		return emotionResponse{}, &common.RetryableError{Err: err, Retryable: false}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return emotionResponse{}, &common.RetryableError{Err: err, Retryable: true}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return emotionResponse{}, fmt.Errorf("emotion %s: %w", resp.Status, common.ErrRateLimit)
	case resp.StatusCode >= 500:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return emotionResponse{}, &common.RetryableError{Err: fmt.Errorf("emotion %s: %s", resp.Status, body), Retryable: true}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return emotionResponse{}, &common.RetryableError{Err: fmt.Errorf("emotion %s: %s", resp.Status, body), Retryable: false}
	}

	var out emotionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return emotionResponse{}, &common.RetryableError{Err: fmt.Errorf("emotion decode: %w", err), Retryable: false}
	}
	return out, nil
}
