package monday

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const apiVersion = "2024-10"

// Client for the Monday GraphQL API
type Client struct {
	url    string
	token  string
	client *http.Client
	log    zerolog.Logger
}

// NewClient creates a new Monday client. An empty token is tolerated at
// startup; queries then fail with the API's auth error per call.
func NewClient(url, token string, log zerolog.Logger) *Client {
	return &Client{
		url:   url,
		token: token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "monday").Logger(),
	}
}

// QueryResponse is the GraphQL envelope for board queries
type QueryResponse struct {
	Data struct {
		Boards []Board `json:"boards"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Board holds one page of board items
type Board struct {
	ItemsPage struct {
		Items []Item `json:"items"`
	} `json:"items_page"`
}

// Item is a single board item with its typed column values
type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ColumnValues []ColumnValue `json:"column_values"`
}

// ColumnValue is the text rendering of one column
type ColumnValue struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ColumnText returns the text of the column with the given id, or "".
func (i Item) ColumnText(id string) string {
	for _, c := range i.ColumnValues {
		if c.ID == id {
			return c.Text
		}
	}
	return ""
}

// Query posts a GraphQL query and decodes the response envelope
func (c *Client) Query(query string) (*QueryResponse, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("API-Version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result QueryResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("monday API error: %s", result.Errors[0].Message)
	}

	return &result, nil
}
