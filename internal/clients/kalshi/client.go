package kalshi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const basePath = "/trade-api/v2"

// Client for the Kalshi trade API. Every GET carries the three access
// headers derived from the request-signing scheme in signer.go.
type Client struct {
	baseURL string
	apiKey  string
	signer  *Signer
	client  *http.Client
	log     zerolog.Logger
	now     func() time.Time
}

// NewClient creates a new Kalshi client. signer may be nil when no private
// key was found at startup; requests then fail individually instead of
// preventing the process from starting.
func NewClient(baseURL, apiKey string, signer *Signer, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		signer:  signer,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "kalshi").Logger(),
		now: time.Now,
	}
}

// get makes a signed GET request to an endpoint under /trade-api/v2
func (c *Client) get(endpoint string, out any) error {
	if c.signer == nil {
		return fmt.Errorf("kalshi private key not loaded")
	}

	apiPath := basePath + endpoint
	timestamp, signature, err := c.signer.Sign(http.MethodGet, apiPath, c.now())
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+apiPath, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("KALSHI-ACCESS-KEY", c.apiKey)
	req.Header.Set("KALSHI-ACCESS-SIGNATURE", signature)
	req.Header.Set("KALSHI-ACCESS-TIMESTAMP", timestamp)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("kalshi API returned %d for %s", resp.StatusCode, endpoint)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// GetBalance gets the account cash balance
func (c *Client) GetBalance() (*Balance, error) {
	var result Balance
	if err := c.get("/portfolio/balance", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPositions gets the open market positions
func (c *Client) GetPositions() ([]MarketPosition, error) {
	var result positionsResponse
	if err := c.get("/portfolio/positions", &result); err != nil {
		return nil, err
	}
	return result.MarketPositions, nil
}

// GetMarket gets the market snapshot for a single ticker
func (c *Client) GetMarket(ticker string) (*Market, error) {
	var result marketResponse
	if err := c.get("/markets/"+ticker, &result); err != nil {
		return nil, err
	}
	return &result.Market, nil
}
