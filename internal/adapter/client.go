package adapter

import (
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodySize caps how much of any upstream response is read. The sources
// normally answer in a few kilobytes; anything near the cap is garbage.
const maxBodySize = 8 << 20

// Client is the shared HTTP fetcher behind every upstream source. Each call
// is a single GET with a fixed timeout. Transport errors, unexpected status
// codes, and decode failures all collapse into an absence result plus a log
// line; callers never see an error and nothing is retried.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// ClientConfig configures a Client.
type ClientConfig struct {
	Timeout   time.Duration
	UserAgent string
	Logger    *zap.Logger
}

// NewClient creates a Client. Zero-value config fields get working defaults.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		logger:     cfg.Logger,
	}
}

// FetchBody GETs url and returns the response body, or nil when anything at
// all went wrong on the way.
func (c *Client) FetchBody(ctx context.Context, url string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("build request", zap.String("url", url), zap.Error(err))
		return nil
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("fetch failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("unexpected status",
			zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.logger.Warn("read body", zap.String("url", url), zap.Error(err))
		return nil
	}
	return body
}

// FetchJSON GETs url and decodes the JSON body into out. It reports whether
// out was populated.
func (c *Client) FetchJSON(ctx context.Context, url string, out any) bool {
	body := c.FetchBody(ctx, url)
	if body == nil {
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Warn("decode json", zap.String("url", url), zap.Error(err))
		return false
	}
	return true
}

// FetchText GETs url and returns the body as a string, or "" on any failure.
func (c *Client) FetchText(ctx context.Context, url string) string {
	return string(c.FetchBody(ctx, url))
}
