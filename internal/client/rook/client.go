package rook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"hidingbook/internal/metrics"
)

const (
	defaultRookHost = "https://api.rook.fi/api/v1"
	defaultBookHost = "https://hidingbook.keeperdao.com/api/v1"
	maxBodyBytes    = 16 << 20
)

// ErrMalformedPayload marks a 200 response whose body could not be decoded.
var ErrMalformedPayload = errors.New("malformed upstream payload")

// APIError is a non-200 upstream answer.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

// BreakerSettings configures the per-client circuit breaker. A zero value
// disables it.
type BreakerSettings struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// Client talks to the trade/coordinator API and to the Hiding Book order host.
type Client struct {
	rookHost   string
	bookHost   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(httpClient *http.Client, rookHost, bookHost string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if rookHost == "" {
		rookHost = defaultRookHost
	}
	if bookHost == "" {
		bookHost = defaultBookHost
	}
	return &Client{
		rookHost:   strings.TrimRight(rookHost, "/"),
		bookHost:   strings.TrimRight(bookHost, "/"),
		httpClient: httpClient,
	}
}

// WithBreaker wraps every request in a circuit breaker that opens after the
// configured run of consecutive failures. Client errors (4xx) and callers
// that cancel do not count.
func (c *Client) WithBreaker(s BreakerSettings) *Client {
	if s.ConsecutiveFailures == 0 {
		return c
	}
	threshold := s.ConsecutiveFailures
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "rook-upstream",
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: breakerSuccess,
	})
	return c
}

// breakerSuccess reports whether err says nothing about upstream health. A
// deadline is still a failure: the upstream was too slow.
func breakerSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError
}

func (c *Client) getRook(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.get(ctx, "rook", c.rookHost, path, query)
}

func (c *Client) getBook(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.get(ctx, "hidingbook", c.bookHost, path, query)
}

func (c *Client) get(ctx context.Context, upstream, host, path string, query url.Values) ([]byte, error) {
	if c.breaker == nil {
		return c.doRequest(ctx, upstream, host, path, query)
	}
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doRequest(ctx, upstream, host, path, query)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.UpstreamRequests.WithLabelValues(upstream, path, "breaker_open").Inc()
		return nil, fmt.Errorf("%s%s: %w", upstream, path, err)
	}
	return body, err
}

func (c *Client) doRequest(ctx context.Context, upstream, host, path string, query url.Values) ([]byte, error) {
	fullURL := host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamDuration.WithLabelValues(upstream, path).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(upstream, path, "transport_error").Inc()
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequests.WithLabelValues(upstream, path, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: truncate(string(body), 512)}
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
