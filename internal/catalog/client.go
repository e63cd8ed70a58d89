package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Listing is one venue record from the external catalog feed.
type Listing struct {
	ExternalID string   `json:"external_id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"` // hotel, restaurant, activity
	City       string   `json:"city"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	PriceLevel *int     `json:"price_level,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
}

type Client interface {
	FetchListings(ctx context.Context, city string) ([]Listing, error)
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) doReq(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("catalog %s %s: %d %s", method, path, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *HTTPClient) FetchListings(ctx context.Context, city string) ([]Listing, error) {
	data, err := c.doReq(ctx, "GET", "/v1/listings?city="+url.QueryEscape(city))
	if err != nil {
		return nil, err
	}
	var listings []Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
