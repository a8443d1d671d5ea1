// Package context7 wraps the Context7 knowledge provider API used to fetch
// up-to-date teaching practice content.
package context7

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrUnavailable marks every provider-side failure: timeout, transport
// error, non-200 status or malformed payload. Callers treat it as a signal
// to degrade, never as a caller-visible error.
var ErrUnavailable = fmt.Errorf("context7: provider unavailable")

// Config holds the Context7 client configuration.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration // per-call budget (default: 5s)
	MaxRetries int           // attempts per call (default: 2, i.e. one retry)
	CallRate   rate.Limit    // outstanding-call cap (default: 10/s)
	CallBurst  int           // burst above the sustained rate (default: 4)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://api.context7.dev/v1",
		Timeout:    5 * time.Second,
		MaxRetries: 2,
		CallRate:   rate.Every(100 * time.Millisecond),
		CallBurst:  4,
	}
}

// Client is a Context7 API client. It is safe for concurrent use; the
// limiter queues excess calls instead of failing them so concurrent category
// fetches and batch queries cannot flood the provider.
type Client struct {
	httpClient *http.Client
	config     *Config
	limiter    *rate.Limiter
}

// NewClient creates a new Context7 client.
func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.context7.dev/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 2
	}
	if cfg.CallRate == 0 {
		cfg.CallRate = rate.Every(100 * time.Millisecond)
	}
	if cfg.CallBurst <= 0 {
		cfg.CallBurst = 4
	}

	if cfg.APIKey == "" {
		slog.Warn("context7 API key not configured, live content will be unavailable")
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
		limiter:    rate.NewLimiter(cfg.CallRate, cfg.CallBurst),
	}
}

type resolveRequest struct {
	Query    string `json:"query"`
	Domain   string `json:"domain"`
	Language string `json:"language"`
}

type resolveResponse struct {
	LibraryID string `json:"library_id"`
}

// ResolveLibraryID resolves a knowledge library ID from a free-text
// description. An empty ID with nil error means the provider knows no
// matching library.
func (c *Client) ResolveLibraryID(ctx context.Context, query string) (string, error) {
	payload := resolveRequest{
		Query:    query,
		Domain:   "education",
		Language: "zh-CN",
	}

	var result resolveResponse
	if err := c.post(ctx, "/resolve-library-id", payload, &result); err != nil {
		return "", err
	}
	return result.LibraryID, nil
}

type docsRequest struct {
	LibraryID string   `json:"library_id"`
	Topic     string   `json:"topic"`
	Keywords  []string `json:"keywords,omitempty"`
	Format    string   `json:"format"`
	Language  string   `json:"language"`
}

type docsResponse struct {
	Content string `json:"content"`
}

// GetLibraryDocs fetches structured content for a library topic, filtered by
// the given keywords.
func (c *Client) GetLibraryDocs(ctx context.Context, libraryID, topic string, keywords []string) (string, error) {
	payload := docsRequest{
		LibraryID: libraryID,
		Topic:     topic,
		Keywords:  keywords,
		Format:    "structured",
		Language:  "zh-CN",
	}

	var result docsResponse
	if err := c.post(ctx, "/get-library-docs", payload, &result); err != nil {
		return "", err
	}
	if result.Content == "" {
		return "", fmt.Errorf("%w: empty content", ErrUnavailable)
	}
	return result.Content, nil
}

// post issues one JSON POST with at most one retry. Retrying is safe because
// both provider endpoints are idempotent reads.
func (c *Client) post(ctx context.Context, path string, payload, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", ErrUnavailable, err)
	}

	var lastErr error
	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
			}
		}

		lastErr = c.doPost(ctx, path, body, result)
		if lastErr == nil {
			return nil
		}
		slog.Debug("context7 request failed",
			"path", path, "attempt", attempt+1, "err", lastErr)
	}
	return lastErr
}

func (c *Client) doPost(ctx context.Context, path string, body []byte, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}
