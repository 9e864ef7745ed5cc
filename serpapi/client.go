// Package serpapi is a minimal client for the SerpAPI Google-search
// endpoint. It only reads organic results; everything else in the provider
// response is ignored.
package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// resultBackstop caps the organic results kept from one query no matter
// how many were requested.
const resultBackstop = 30

// ErrNoResults means the provider answered but no result carried a usable
// snippet. Callers should show a "nothing found" message, not an error.
var ErrNoResults = errors.New("search returned no usable results")

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	apiKey   string
	language string
}

// Result is one organic search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type providerResponse struct {
	OrganicResults []Result `json:"organic_results"`
}

// NewClient returns a client for the hosted SerpAPI endpoint.
func NewClient(apiKey, language string) *Client {
	return &Client{
		BaseURL: "https://serpapi.com/search",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:   apiKey,
		language: language,
	}
}

// Search runs one Google query and returns at most min(count, 30) results,
// in provider order, excluding any result without a snippet. An empty
// filtered list is reported as ErrNoResults.
func (c *Client) Search(ctx context.Context, query string, count int) ([]Result, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if count <= 0 {
		return nil, fmt.Errorf("result count must be positive, got %d", count)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("engine", "google")
	params.Set("num", strconv.Itoa(count))
	params.Set("hl", c.language)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var provider providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&provider); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Re-truncate regardless of the requested count. The provider has been
	// observed to return more entries than asked for.
	organic := provider.OrganicResults
	limit := resultBackstop
	if count < limit {
		limit = count
	}
	if len(organic) > limit {
		organic = organic[:limit]
	}

	results := make([]Result, 0, len(organic))
	for _, r := range organic {
		if r.Snippet == "" {
			continue
		}
		results = append(results, r)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}
	return results, nil
}
