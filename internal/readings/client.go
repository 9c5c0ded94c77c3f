// Package readings fetches the readings document, a JSON array of numbers.
package readings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const fetchTimeout = 10 * time.Second

type Client struct {
	URL  string
	HTTP *http.Client
}

func New(url string) *Client {
	return &Client{
		URL:  url,
		HTTP: http.DefaultClient,
	}
}

// Fetch downloads and decodes the readings.
func (c *Client) Fetch(ctx context.Context) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch readings failed: %s", resp.Status)
	}
	var out []float64
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode readings: %w", err)
	}
	return out, nil
}

// Count returns how many readings the document holds.
func (c *Client) Count(ctx context.Context) (int, error) {
	list, err := c.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// Describe is the display string: the count on success, the error otherwise.
func (c *Client) Describe(ctx context.Context) string {
	n, err := c.Count(ctx)
	if err != nil {
		return "Download error: " + err.Error()
	}
	return fmt.Sprintf("Found %d readings", n)
}
