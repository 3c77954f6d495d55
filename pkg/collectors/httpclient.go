package collectors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Defaults for the shared outbound client.
const (
	DefaultHTTPTimeout = 15 * time.Second
	DefaultRateLimit   = rate.Limit(10)
	DefaultRateBurst   = 10
)

// ErrNetwork marks failures that happened before an HTTP response arrived
// (DNS, connect, TLS, cancelled context).
var ErrNetwork = errors.New("Network request failed")

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s from %s", e.Status, e.URL)
}

// HTTPClient is the outbound client shared by every collector. Requests are
// paced by a token-bucket limiter so a burst of widget refreshes cannot
// hammer the free public APIs.
type HTTPClient struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (tests pass the one
// from httptest.Server).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) { h.client = c }
}

// WithRateLimit sets the request pacing.
func WithRateLimit(limit rate.Limit, burst int) HTTPOption {
	return func(h *HTTPClient) { h.limiter = rate.NewLimiter(limit, burst) }
}

// WithUserAgent sets the User-Agent sent on every request unless the
// caller overrides it per request.
func WithUserAgent(ua string) HTTPOption {
	return func(h *HTTPClient) { h.userAgent = ua }
}

// NewHTTPClient returns a client with DefaultHTTPTimeout and the default
// rate limit.
func NewHTTPClient(opts ...HTTPOption) *HTTPClient {
	h := &HTTPClient{
		client:  &http.Client{Timeout: DefaultHTTPTimeout},
		limiter: rate.NewLimiter(DefaultRateLimit, DefaultRateBurst),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// GetJSON issues a GET and decodes the JSON body into out. Transport
// failures wrap ErrNetwork, non-2xx answers return *StatusError and bodies
// that are not valid JSON return a decode error.
func (h *HTTPClient) GetJSON(ctx context.Context, url string, header http.Header, out interface{}) error {
	if err := h.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNetwork, url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
