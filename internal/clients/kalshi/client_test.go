package kalshi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBalance_SendsAccessHeaders(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Balance{Balance: 500})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-api-key", NewSigner(testKey(t)), zerolog.Nop())
	balance, err := client.GetBalance()
	require.NoError(t, err)

	assert.Equal(t, int64(500), balance.Balance)
	assert.Equal(t, "/trade-api/v2/portfolio/balance", captured.URL.Path)
	assert.Equal(t, "test-api-key", captured.Header.Get("KALSHI-ACCESS-KEY"))
	assert.NotEmpty(t, captured.Header.Get("KALSHI-ACCESS-SIGNATURE"))
	assert.NotEmpty(t, captured.Header.Get("KALSHI-ACCESS-TIMESTAMP"))
}

func TestGetBalance_FreshSignaturePerRequest(t *testing.T) {
	var signatures []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signatures = append(signatures, r.Header.Get("KALSHI-ACCESS-SIGNATURE"))
		json.NewEncoder(w).Encode(Balance{Balance: 100})
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", NewSigner(testKey(t)), zerolog.Nop())
	_, err := client.GetBalance()
	require.NoError(t, err)
	_, err = client.GetBalance()
	require.NoError(t, err)

	require.Len(t, signatures, 2)
	assert.NotEqual(t, signatures[0], signatures[1], "PSS signatures must be freshly computed per call")
}

func TestGetPositions_ParsesMarketPositions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trade-api/v2/portfolio/positions", r.URL.Path)
		w.Write([]byte(`{"market_positions":[{"ticker":"KXHIGHCHI-X","position":10,"market_exposure_dollars":"2.00","realized_pnl_dollars":"0.00"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", NewSigner(testKey(t)), zerolog.Nop())
	positions, err := client.GetPositions()
	require.NoError(t, err)

	require.Len(t, positions, 1)
	assert.Equal(t, "KXHIGHCHI-X", positions[0].Ticker)
	assert.Equal(t, int64(10), positions[0].Position)
	assert.Equal(t, "2.00", positions[0].MarketExposureDollars)
}

func TestGetMarket_UnwrapsMarketObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trade-api/v2/markets/KXHIGHCHI-X", r.URL.Path)
		w.Write([]byte(`{"market":{"yes_ask":65,"last_price":60,"result":"","subtitle":"High temp in Chicago"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", NewSigner(testKey(t)), zerolog.Nop())
	market, err := client.GetMarket("KXHIGHCHI-X")
	require.NoError(t, err)

	assert.Equal(t, int64(65), market.YesAsk)
	assert.Equal(t, "High temp in Chicago", market.Subtitle)
}

func TestGet_NoPrivateKeyFailsPerCall(t *testing.T) {
	client := NewClient("http://localhost:0", "k", nil, zerolog.Nop())
	_, err := client.GetBalance()
	assert.ErrorContains(t, err, "private key not loaded")
}

func TestGet_NonOKStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", NewSigner(testKey(t)), zerolog.Nop())
	_, err := client.GetBalance()
	assert.ErrorContains(t, err, "401")
}
