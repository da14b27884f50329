// Package rates fetches currency exchange rates from the public currency
// API, with a fallback mirror for when the primary CDN is unavailable.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Service looks up exchange rates between currency pairs.
type Service interface {
	// Rate returns how many units of target one unit of source buys.
	Rate(ctx context.Context, source, target string) (decimal.Decimal, error)
}

// Client implements Service over the fawazahmed0 currency API. Responses
// are cached briefly so repeated conversions on one page render don't
// hammer the CDN.
type Client struct {
	httpClient  *http.Client
	primaryURL  string
	fallbackURL string

	cacheTTL time.Duration
	mu       sync.Mutex
	cache    map[string]cachedRates
}

type cachedRates struct {
	rates     map[string]decimal.Decimal
	fetchedAt time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCacheTTL overrides how long fetched rate tables are reused.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cacheTTL = ttl }
}

// NewClient creates a rates client. primaryURL and fallbackURL point at the
// /v1/currencies base of the API and its mirror.
func NewClient(primaryURL, fallbackURL string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
		cacheTTL:    5 * time.Minute,
		cache:       make(map[string]cachedRates),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rate returns the exchange rate from source to target. Same-currency
// pairs short-circuit to 1.
func (c *Client) Rate(ctx context.Context, source, target string) (decimal.Decimal, error) {
	source = strings.ToLower(source)
	target = strings.ToLower(target)

	if source == target {
		return decimal.NewFromInt(1), nil
	}

	table, err := c.ratesFor(ctx, source)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := table[target]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate from %s to %s", source, target)
	}
	return rate, nil
}

func (c *Client) ratesFor(ctx context.Context, source string) (map[string]decimal.Decimal, error) {
	c.mu.Lock()
	cached, ok := c.cache[source]
	c.mu.Unlock()
	if ok && time.Since(cached.fetchedAt) < c.cacheTTL {
		return cached.rates, nil
	}

	table, err := c.fetch(ctx, c.primaryURL, source)
	if err != nil {
		slog.Warn("Primary rates endpoint failed, trying fallback", "source", source, "error", err)
		table, err = c.fetch(ctx, c.fallbackURL, source)
		if err != nil {
			return nil, fmt.Errorf("all rate endpoints failed: %w", err)
		}
	}

	c.mu.Lock()
	c.cache[source] = cachedRates{rates: table, fetchedAt: time.Now()}
	c.mu.Unlock()
	return table, nil
}

func (c *Client) fetch(ctx context.Context, baseURL, source string) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s.json", strings.TrimSuffix(baseURL, "/"), source)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates endpoint returned %d", resp.StatusCode)
	}

	// Response shape: {"date": "2024-01-01", "<source>": {"usd": 1.1, ...}}
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}

	raw, ok := payload[source]
	if !ok {
		return nil, fmt.Errorf("rates response missing %q table", source)
	}

	var numbers map[string]json.Number
	if err := json.Unmarshal(raw, &numbers); err != nil {
		return nil, fmt.Errorf("failed to decode rate table: %w", err)
	}

	table := make(map[string]decimal.Decimal, len(numbers))
	for code, n := range numbers {
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			continue
		}
		table[strings.ToLower(code)] = d
	}
	return table, nil
}
