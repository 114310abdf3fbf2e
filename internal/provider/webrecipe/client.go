// Package webrecipe fetches recipe pages and extracts their schema.org
// Recipe JSON-LD data.
package webrecipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultUserAgent = "cook-import/1.0 (+https://cooklang.org)"

var ErrNoRecipe = errors.New("no schema.org recipe found on page")

// maxPageBytes caps how much of a page is read.
const maxPageBytes = 8 << 20

type Client struct {
	HTTPClient *http.Client
	UserAgent  string
}

// Fetch downloads url and extracts its recipe. The raw page is returned
// alongside for debugging.
func (c *Client) Fetch(ctx context.Context, url string) (Recipe, []byte, error) {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	ua := strings.TrimSpace(c.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Recipe{}, nil, fmt.Errorf("create recipe page request: %w", err)
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := httpClient.Do(req)
	if err != nil {
		return Recipe{}, nil, fmt.Errorf("execute recipe page request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return Recipe{}, nil, fmt.Errorf("read recipe page: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Recipe{}, body, fmt.Errorf("recipe page request failed with status %d", resp.StatusCode)
	}

	recipe, err := Extract(strings.NewReader(string(body)))
	if err != nil {
		return Recipe{}, body, err
	}
	if recipe.URL == "" {
		recipe.URL = url
	}
	return recipe, body, nil
}
