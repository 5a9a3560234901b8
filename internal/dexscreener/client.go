// Package dexscreener implements a minimal client for the DexScreener
// search API, used to resolve a token contract address to its primary
// liquidity pair.
package dexscreener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the base URL for the DexScreener API.
	DefaultBaseURL = "https://api.dexscreener.com"

	// DefaultTimeout bounds a single lookup call.
	DefaultTimeout = 10 * time.Second
)

// ErrNoPairs indicates the search returned an empty result set.
var ErrNoPairs = errors.New("no pairs found for token")

// Client is an HTTP client for the DexScreener API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *slog.Logger
}

// NewClient creates a new DexScreener API client.
func NewClient(httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
		log:        log.With("component", "dexscreener"),
	}
}

// WithBaseURL sets a custom base URL for the client.
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

// Search queries the search endpoint and returns all matching pairs.
func (c *Client) Search(ctx context.Context, query string) ([]Pair, error) {
	u := c.baseURL + "/latest/dex/search?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return result.Pairs, nil
}

// ResolvePair returns the pair address of the first search result for
// the contract address. An empty result set yields ErrNoPairs. One
// attempt per call; the caller is expected to skip forwarding rather
// than retry.
func (c *Client) ResolvePair(ctx context.Context, contractAddress string) (string, error) {
	pairs, err := c.Search(ctx, contractAddress)
	if err != nil {
		c.log.Warn("pair lookup failed", "contract", contractAddress, "error", err)
		return "", err
	}
	if len(pairs) == 0 {
		c.log.Info("no pairs found", "contract", contractAddress)
		return "", ErrNoPairs
	}
	return pairs[0].PairAddress, nil
}
