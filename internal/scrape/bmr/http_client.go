package bmr

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kdvs/nflodds/internal/pkg/config"
	"github.com/kdvs/nflodds/internal/pkg/models"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

// Client talks to the odds site: the NFL scoreboard page (HTML) and the
// ms-odds-v2 service (JSON). One instance is safe for concurrent use.
type Client struct {
	scoreboardURL string
	oddsURL       string
	userAgent     string
	headers       map[string]string
	retries       int
	backoff       time.Duration
	httpClient    *http.Client
}

func NewClient(cfg *config.ScrapeConfig) *Client {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		scoreboardURL: strings.TrimSuffix(cfg.ScoreboardURL, "/") + "/",
		oddsURL:       cfg.OddsURL,
		userAgent:     userAgent,
		headers:       cfg.Headers,
		retries:       cfg.Retries,
		backoff:       cfg.RetryBackoff,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

// doRequest issues one GET with bounded retry. Transport errors and 429/5xx
// responses are retried with growing backoff; other non-2xx statuses fail
// immediately since the upstream will answer them the same way again.
func (c *Client) doRequest(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, &models.FetchError{URL: rawURL, Err: ctx.Err()}
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}

		body, retryable, err := c.attempt(ctx, rawURL, headers)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, rawURL string, headers map[string]string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, &models.FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, &models.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, &models.FetchError{URL: rawURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, &models.FetchError{URL: rawURL, Status: resp.StatusCode, Body: truncate(string(body), 512)}
	}
	return body, false, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
