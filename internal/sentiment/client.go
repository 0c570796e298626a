package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client scores text through the configured sentiment API and falls back
// to keyword scoring when no key is configured or the call fails. Scoring
// may complete after the response entry was already appended; callers
// backfill the score.
type Client struct {
	apiURL   string
	apiKey   string
	client   *http.Client
	fallback KeywordScorer
	logger   *zap.Logger
}

func NewClient(apiURL string, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (client *Client) Score(ctx context.Context, text string) (float64, error) {
	if client.apiKey == "" || strings.TrimSpace(text) == "" {
		return client.fallback.Score(ctx, text)
	}

	score, err := client.scoreRemote(ctx, text)
	if err != nil {
		client.logger.Warn("sentiment api call failed, using keyword fallback", zap.Error(err))
		return client.fallback.Score(ctx, text)
	}
	return clamp(score), nil
}

func (client *Client) scoreRemote(ctx context.Context, text string) (float64, error) {
	payload, err := json.Marshal(map[string]string{
		"text":  text,
		"model": "sentiment-analysis",
	})
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, client.apiURL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+client.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("sentiment status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		SentimentScore float64 `json:"sentiment_score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return result.SentimentScore, nil
}

func clamp(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}
