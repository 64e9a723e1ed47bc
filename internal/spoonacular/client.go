package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.spoonacular.com"

// ErrNoAPIKey is returned when the client is used without a configured key.
var ErrNoAPIKey = errors.New("spoonacular API key is not configured")

// SearchResult is one external recipe hit.
type SearchResult struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image"`
}

// Client talks to the Spoonacular recipe search API. Responses are kept
// in a small in-process cache since the free tier has a daily quota.
type Client struct {
	http *resty.Client

	mu    sync.Mutex
	cache map[string][]SearchResult
}

func NewClient(apiKey string) *Client {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetQueryParam("apiKey", apiKey)

	return &Client{
		http:  client,
		cache: make(map[string][]SearchResult),
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(url string) {
	c.http.SetBaseURL(url)
}

// Search runs a free-text recipe search.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("search:%s:%d", strings.ToLower(query), limit)
	if hit, ok := c.cached(cacheKey); ok {
		return hit, nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		SetQueryParam("number", fmt.Sprintf("%d", limit)).
		Get("/recipes/complexSearch")
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Spoonacular: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, ErrNoAPIKey
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("Spoonacular API returned error: %s", resp.String())
	}

	var result struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse Spoonacular response: %w", err)
	}

	c.store(cacheKey, result.Results)
	return result.Results, nil
}

// FindByIngredients searches for recipes using up what is at home.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string, limit int) ([]SearchResult, error) {
	if len(ingredients) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	joined := strings.Join(ingredients, ",")
	cacheKey := fmt.Sprintf("ingredients:%s:%d", strings.ToLower(joined), limit)
	if hit, ok := c.cached(cacheKey); ok {
		return hit, nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("ingredients", joined).
		SetQueryParam("number", fmt.Sprintf("%d", limit)).
		Get("/recipes/findByIngredients")
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Spoonacular: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, ErrNoAPIKey
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("Spoonacular API returned error: %s", resp.String())
	}

	var results []SearchResult
	if err := json.Unmarshal(resp.Body(), &results); err != nil {
		return nil, fmt.Errorf("failed to parse Spoonacular response: %w", err)
	}

	c.store(cacheKey, results)
	return results, nil
}

func (c *Client) cached(key string) ([]SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hit, ok := c.cache[key]
	return hit, ok
}

func (c *Client) store(key string, results []SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = results
}
