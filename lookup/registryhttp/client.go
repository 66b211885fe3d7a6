// Package registryhttp is the production Registry implementation, a thin
// JSON client over the national registry's HTTP API.
package registryhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/lookup"
)

const defaultTimeout = 10 * time.Second

var _ lookup.Registry = (*Client)(nil)

// Client calls the registry API at a configured base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client (primarily for testing)
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a registry client for the given base URL.
func New(baseURL string, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("[registryhttp.New] baseURL is required")
	}

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (c *Client) Search(ctx context.Context, query string, filters lookup.Filters) ([]lookup.CompanySummary, error) {
	params := url.Values{}
	params.Set("q", query)
	if filters.PostalCode != "" {
		params.Set("code_postal", filters.PostalCode)
	}
	if filters.NAFCode != "" {
		params.Set("code_naf", filters.NAFCode)
	}
	if filters.LegalForm != "" {
		params.Set("forme_juridique", filters.LegalForm)
	}

	var response struct {
		Results []lookup.CompanySummary `json:"results"`
	}
	if err := c.getJSON(ctx, "/companies/search?"+params.Encode(), &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

func (c *Client) Detail(ctx context.Context, id string) (*lookup.CompanyDetail, error) {
	var detail lookup.CompanyDetail
	if err := c.getJSON(ctx, "/companies/"+url.PathEscape(id), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) ValidateID(id string) bool {
	return lookup.ValidSIREN(id)
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling registry: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.ErrCompanyNotFound
	case resp.StatusCode != http.StatusOK:
		log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("registry returned non-OK status")
		return fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding registry response: %w", err)
	}
	return nil
}
