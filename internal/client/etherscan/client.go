package etherscan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"hidingbook/internal/metrics"
)

const defaultHost = "https://api.etherscan.io"

// ErrMissingAPIKey is returned before any request when no key is configured.
var ErrMissingAPIKey = errors.New("etherscan api key not configured")

type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("etherscan error (%d): %s", e.Status, e.Message)
}

// Client is a rate-limited block explorer client. The free tier allows five
// calls per second per key.
type Client struct {
	host       string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(httpClient *http.Client, host, apiKey string, perSecond float64, burst int) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if host == "" {
		host = defaultHost
	}
	if perSecond <= 0 {
		perSecond = 5
	}
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		host:       strings.TrimRight(host, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// TokenBalance returns the raw integer ERC-20 balance of wallet.
func (c *Client) TokenBalance(ctx context.Context, contract, wallet string) (decimal.Decimal, error) {
	if c.apiKey == "" {
		return decimal.Zero, ErrMissingAPIKey
	}
	query := url.Values{}
	query.Set("module", "account")
	query.Set("action", "tokenbalance")
	query.Set("contractaddress", contract)
	query.Set("address", wallet)
	query.Set("tag", "latest")
	query.Set("apikey", c.apiKey)

	env, err := c.do(ctx, "tokenbalance", query)
	if err != nil {
		return decimal.Zero, fmt.Errorf("etherscan: token balance: %w", err)
	}
	var s string
	if err := json.Unmarshal(env.Result, &s); err != nil {
		return decimal.Zero, fmt.Errorf("etherscan: decode balance: %w", err)
	}
	bal, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("etherscan: parse balance %q: %w", s, err)
	}
	return bal, nil
}

func (c *Client) do(ctx context.Context, action string, query url.Values) (*envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamDuration.WithLabelValues("etherscan", action).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("etherscan", action, "transport_error").Inc()
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequests.WithLabelValues("etherscan", action, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: string(body)}
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Status != "1" {
		msg := env.Message
		var detail string
		if json.Unmarshal(env.Result, &detail) == nil && detail != "" {
			msg = msg + ": " + detail
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return &env, nil
}
