package httpfetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"mtgmcp/internal/ports"
)

const (
	DefaultInterval = 75 * time.Millisecond
	DefaultTimeout  = 30 * time.Second
)

// Fetcher implements ports.Fetcher with a minimum spacing between dispatches.
// Share one Fetcher between every client that talks to the upstream APIs.
type Fetcher struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
	timeout     time.Duration
	logger      *zap.Logger
}

var _ ports.Fetcher = (*Fetcher)(nil)

// Option configures the Fetcher
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client. A nil client is ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.httpClient = c
		}
	}
}

// WithInterval sets the minimum spacing between dispatches
func WithInterval(d time.Duration) Option {
	return func(f *Fetcher) {
		f.rateLimiter = newLimiter(d)
	}
}

// WithTimeout sets the request timeout. The client passed to WithHTTPClient
// is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// NewFetcher creates a Fetcher that identifies itself as userAgent
func NewFetcher(userAgent string, opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		rateLimiter: newLimiter(DefaultInterval),
		userAgent:   userAgent,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.timeout > 0 && f.httpClient.Timeout != f.timeout {
		c := *f.httpClient
		c.Timeout = f.timeout
		f.httpClient = &c
	}
	return f
}

// newLimiter allows one dispatch per interval with no burst
func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Fetch waits for its dispatch slot, then sends a GET for url
func (f *Fetcher) Fetch(ctx context.Context, url string) (*http.Response, error) {
	if err := f.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	f.logger.Debug("upstream request", zap.String("url", url))

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	return resp, nil
}
