// Package spapi is a thin client for the Selling Partner API endpoints this
// integration consumes: orders, per-order financial events and FBA inventory.
package spapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	defaultMaxTokenPages = 500
	defaultMaxRetries    = 8
	maxErrorBodyBytes    = 512
)

// UpstreamError carries a non-2xx upstream response. The body is truncated;
// retry policy belongs to the caller, not here (throttling excepted).
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("spapi: upstream status %d: %s", e.StatusCode, e.Body)
}

// Client issues authenticated SP-API requests for one connection.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	marketplaceID string

	pace          time.Duration
	maxTokenPages int
	maxRetries    int
	retryBase     time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

// Option customizes a Client.
type Option func(*Client)

// WithPace sets the delay between successive result pages.
func WithPace(d time.Duration) Option {
	return func(c *Client) { c.pace = d }
}

// WithMaxTokenPages bounds NextToken pagination loops.
func WithMaxTokenPages(n int) Option {
	return func(c *Client) { c.maxTokenPages = n }
}

// WithBaseURL overrides the regional endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithRetry tunes the throttle backoff.
func WithRetry(maxRetries int, base time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryBase = base
	}
}

// WithHTTPClient replaces the authenticated transport, used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds a client for a region using the connection's refresh token.
func NewClient(ctx context.Context, creds Credentials, refreshToken, region, marketplace string, opts ...Option) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	endpoint, ok := EndpointForRegion(region)
	if !ok {
		return nil, fmt.Errorf("spapi: unknown region %q", region)
	}
	marketplaceID, ok := MarketplaceID(marketplace)
	if !ok {
		return nil, fmt.Errorf("spapi: unknown marketplace %q", marketplace)
	}

	c := &Client{
		httpClient:    oauth2.NewClient(ctx, creds.TokenSource(ctx, refreshToken)),
		baseURL:       endpoint,
		marketplaceID: marketplaceID,
		maxTokenPages: defaultMaxTokenPages,
		maxRetries:    defaultMaxRetries,
		retryBase:     2 * time.Second,
		now:           time.Now,
		sleep:         time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// getJSON performs one GET with throttle retry and decodes the response
// envelope into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	attempt := 0
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("spapi: build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("spapi: request %s: %w", path, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			attempt++
			if attempt > c.maxRetries {
				return &UpstreamError{StatusCode: resp.StatusCode, Body: "throttled, retries exhausted"}
			}
			wait := c.backoff(attempt)
			log.Warn().Str("path", path).Int("attempt", attempt).Dur("wait", wait).
				Msg("spapi throttled, backing off")
			c.sleep(wait)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
			resp.Body.Close()
			return &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("spapi: decode %s: %w", path, err)
		}
		return nil
	}
}

// backoff doubles per attempt, capped at a minute, with a little jitter so
// parallel workers do not re-throttle in lockstep.
func (c *Client) backoff(attempt int) time.Duration {
	wait := c.retryBase << (attempt - 1)
	if wait > time.Minute {
		wait = time.Minute
	}
	return wait + time.Duration(rand.Int63n(int64(300*time.Millisecond)))
}

func (c *Client) paceSleep() {
	if c.pace > 0 {
		c.sleep(c.pace)
	}
}

// ClampBefore clamps a window end to the end of yesterday UTC and never into
// the future; SP-API rejects windows that reach past "now".
func ClampBefore(before time.Time, now time.Time) time.Time {
	yesterdayEnd := now.UTC().Truncate(24 * time.Hour).Add(-time.Second)
	safeNow := now.Add(-2 * time.Minute)

	clamped := before
	if yesterdayEnd.Before(clamped) {
		clamped = yesterdayEnd
	}
	if safeNow.Before(clamped) {
		clamped = safeNow
	}
	return clamped
}
