package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateFromPrimary(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/usd.json", r.URL.Path)
		w.Write([]byte(`{"date":"2024-01-01","usd":{"eur":0.92,"gbp":0.79}}`))
	}))
	defer primary.Close()

	client := NewClient(primary.URL, "http://127.0.0.1:0")

	rate, err := client.Rate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.92")), "got %s", rate)
}

func TestRateFallsBackWhenPrimaryFails(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date":"2024-01-01","usd":{"ngn":1540.5}}`))
	}))
	defer fallback.Close()

	client := NewClient(primary.URL, fallback.URL)

	rate, err := client.Rate(context.Background(), "usd", "ngn")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("1540.5")), "got %s", rate)
}

func TestRateSameCurrency(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "http://127.0.0.1:0")
	rate, err := client.Rate(context.Background(), "USD", "usd")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))
}

func TestRateUnknownTarget(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date":"2024-01-01","usd":{"eur":0.92}}`))
	}))
	defer primary.Close()

	client := NewClient(primary.URL, primary.URL)
	_, err := client.Rate(context.Background(), "usd", "xyz")
	assert.Error(t, err)
}

func TestRateUsesCache(t *testing.T) {
	calls := 0
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"date":"2024-01-01","usd":{"eur":0.92}}`))
	}))
	defer primary.Close()

	client := NewClient(primary.URL, primary.URL, WithCacheTTL(time.Minute))

	_, err := client.Rate(context.Background(), "usd", "eur")
	require.NoError(t, err)
	_, err = client.Rate(context.Background(), "usd", "eur")
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second lookup should hit the cache")
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("https://primary.test", "https://fallback.test")
	assert.Equal(t, 5*time.Minute, client.cacheTTL)
}
