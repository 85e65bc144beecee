// Package upc looks up product details for a scanned barcode. The
// lookup is best-effort enrichment: every failure mode degrades to
// "not found" and the caller proceeds with whatever name it has.
package upc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.upcitemdb.com/prod/trial/lookup"

// Product is the subset of lookup data the inventory keeps.
type Product struct {
	Name        string
	Description string
	Category    string
}

// Lookup resolves a UPC to product details. A nil Product with a nil
// error means the code is unknown.
type Lookup interface {
	Lookup(ctx context.Context, code string) (*Product, error)
}

// Client queries the upcitemdb trial API.
type Client struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		logger:  logger,
	}
}

type apiResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
	} `json:"items"`
}

// Lookup fetches product details for a UPC. Non-2xx responses and
// empty result sets both come back as (nil, nil); only transport
// failures surface an error, and callers treat those the same way.
func (c *Client) Lookup(ctx context.Context, code string) (*Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?upc="+url.QueryEscape(code), nil)
	if err != nil {
		return nil, fmt.Errorf("build lookup request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upc lookup: %w", err)
	}
	defer resp.Body.Close()

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		c.logger.Debug("upc lookup quota",
			"remaining", remaining,
			"reset", resp.Header.Get("X-RateLimit-Reset"))
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("upc lookup miss", "upc", code, "status", resp.StatusCode)
		return nil, nil
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}
	if len(parsed.Items) == 0 {
		return nil, nil
	}

	item := parsed.Items[0]
	return &Product{
		Name:        item.Title,
		Description: item.Description,
		Category:    item.Category,
	}, nil
}

// Noop never finds anything. It keeps the core free of network
// concerns when lookup is disabled.
type Noop struct{}

func (Noop) Lookup(ctx context.Context, code string) (*Product, error) {
	return nil, nil
}
