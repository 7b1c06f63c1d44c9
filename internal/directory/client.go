// Package directory is a read-only client for the location directory service.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client for the location directory REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a new directory client. timeout bounds every request.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("client", "directory").Logger(),
	}
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListCountries returns every country name known to the directory.
func (c *Client) ListCountries(ctx context.Context) ([]string, error) {
	return c.getNames(ctx, "/countries")
}

// ListStates returns the state names of country.
func (c *Client) ListStates(ctx context.Context, country string) ([]string, error) {
	return c.getNames(ctx, fmt.Sprintf("/country=%s/states", url.PathEscape(country)))
}

// ListCities returns the city names of state within country.
func (c *Client) ListCities(ctx context.Context, country, state string) ([]string, error) {
	return c.getNames(ctx, fmt.Sprintf("/country=%s/states=%s/cities",
		url.PathEscape(country), url.PathEscape(state)))
}

func (c *Client) getNames(ctx context.Context, path string) ([]string, error) {
	requestID := uuid.New().String()
	log := c.log.With().Str("path", path).Str("request_id", requestID).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	log.Debug().Msg("Fetching names")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Msg("Directory returned error status")
		return nil, &UpstreamError{Path: path, StatusCode: resp.StatusCode}
	}

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, &TransportError{Path: path, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if names == nil {
		names = []string{}
	}

	log.Debug().
		Int("count", len(names)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched names")

	return names, nil
}
