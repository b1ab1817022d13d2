package fixturesync

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	dashboard "github.com/qloax/niks-aqua/components/dashboard"
)

const defaultFixturesPath = "/fixtures"

// HTTPConfig configures the HTTP fixture client.
type HTTPConfig struct {
	BaseURL    string
	Path       string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient pulls fixture documents from a remote ERP export endpoint.
type HTTPClient struct {
	url    string
	apiKey string
	client *http.Client
}

// NewHTTPClient builds a client for the export endpoint.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("fixturesync: base url is required")
	}
	path := cfg.Path
	if path == "" {
		path = defaultFixturesPath
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		url:    strings.TrimRight(cfg.BaseURL, "/") + path,
		apiKey: cfg.APIKey,
		client: httpClient,
	}, nil
}

// FetchFixtures downloads and decodes the remote document.
func (c *HTTPClient) FetchFixtures(ctx context.Context) (*dashboard.FixtureDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fixturesync: build request: %w", err)
	}
	req.Header.Set("Accept", "application/yaml")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fixturesync: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return nil, fmt.Errorf("fixturesync: remote error %d: %s", resp.StatusCode, strings.TrimSpace(buf.String()))
	}
	doc, err := dashboard.DecodeFixtures(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fixturesync: decode response: %w", err)
	}
	return doc, nil
}
