// Package azure provides a SearchIndexClient adapter for the Azure AI
// Search REST API.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/indexgate/internal/core/domain"
	"github.com/custodia-labs/indexgate/internal/core/ports/driven"
	"github.com/custodia-labs/indexgate/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchIndexClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultAPIVersion = "2024-07-01"
	DefaultTimeout    = 60 * time.Second

	// DefaultRequestsPerSecond throttles outgoing calls below the
	// service's own limits, in the same proactive manner the connectors
	// throttle third-party APIs.
	DefaultRequestsPerSecond = 10
)

// Config holds configuration for the Azure AI Search client.
type Config struct {
	// APIKey is the admin API key (required). One key is shared by all
	// endpoints of the deployment.
	APIKey string

	// APIVersion is the REST api-version (default: 2024-07-01).
	APIVersion string

	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration

	// RequestsPerSecond caps the outgoing request rate (default: 10).
	RequestsPerSecond float64
}

// Client is an Azure AI Search REST client serving all configured
// endpoints; each call names the endpoint it targets.
type Client struct {
	client     *http.Client
	apiKey     string
	apiVersion string
	limiter    *rate.Limiter
}

// NewClient creates a new Azure AI Search client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("azure: API key is required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

// CreateIndex creates an index from the declarative schema.
func (c *Client) CreateIndex(ctx context.Context, endpoint domain.Endpoint, schema domain.IndexSchema) error {
	body := wireIndex(schema)
	_, err := c.do(ctx, http.MethodPost, c.indexesURL(endpoint, ""), body, nil)
	if err != nil {
		return fmt.Errorf("azure: create index %q: %w", schema.Name, err)
	}
	return nil
}

// DeleteIndex removes an index by name.
func (c *Client) DeleteIndex(ctx context.Context, endpoint domain.Endpoint, indexName string) error {
	_, err := c.do(ctx, http.MethodDelete, c.indexesURL(endpoint, indexName), nil, nil)
	if err != nil {
		return fmt.Errorf("azure: delete index %q: %w", indexName, err)
	}
	return nil
}

// GetIndex probes for an index by name.
func (c *Client) GetIndex(ctx context.Context, endpoint domain.Endpoint, indexName string) (*domain.IndexSchema, error) {
	var def struct {
		Name string `json:"name"`
	}
	_, err := c.do(ctx, http.MethodGet, c.indexesURL(endpoint, indexName), nil, &def)
	if err != nil {
		return nil, fmt.Errorf("azure: get index %q: %w", indexName, err)
	}
	return &domain.IndexSchema{Name: def.Name}, nil
}

// ListIndexNames returns the names of all indexes on the endpoint.
func (c *Client) ListIndexNames(ctx context.Context, endpoint domain.Endpoint) ([]string, error) {
	u := c.indexesURL(endpoint, "") + "&$select=name"
	var out struct {
		Value []struct {
			Name string `json:"name"`
		} `json:"value"`
	}
	if _, err := c.do(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, fmt.Errorf("azure: list indexes: %w", err)
	}
	names := make([]string, 0, len(out.Value))
	for _, v := range out.Value {
		names = append(names, v.Name)
	}
	return names, nil
}

// Search executes one search request against an index.
func (c *Client) Search(ctx context.Context, target domain.IndexTarget, req driven.SearchRequest) (*driven.SearchResponse, error) {
	u := c.docsURL(target, "search")

	var out struct {
		Count     *int64            `json:"@odata.count"`
		Documents []driven.Document `json:"value"`
	}
	if _, err := c.do(ctx, http.MethodPost, u, wireSearchRequest(req), &out); err != nil {
		return nil, fmt.Errorf("azure: search %q: %w", target.IndexName, err)
	}

	resp := &driven.SearchResponse{
		TotalCount: -1,
		Documents:  out.Documents,
	}
	if out.Count != nil {
		resp.TotalCount = *out.Count
	}
	return resp, nil
}

// UploadDocuments merges-or-uploads a batch of rows.
func (c *Client) UploadDocuments(ctx context.Context, target domain.IndexTarget, docs []driven.Document) ([]driven.IndexResult, error) {
	actions := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		action := map[string]any{"@search.action": "mergeOrUpload"}
		for k, v := range doc {
			action[k] = v
		}
		actions = append(actions, action)
	}
	return c.indexBatch(ctx, target, actions)
}

// DeleteDocuments deletes rows by key.
func (c *Client) DeleteDocuments(ctx context.Context, target domain.IndexTarget, keys []string) ([]driven.IndexResult, error) {
	actions := make([]map[string]any, 0, len(keys))
	for _, key := range keys {
		actions = append(actions, map[string]any{
			"@search.action": "delete",
			domain.FieldID:   key,
		})
	}
	return c.indexBatch(ctx, target, actions)
}

// indexBatch submits one batch of index actions and maps the per-row outcome.
func (c *Client) indexBatch(ctx context.Context, target domain.IndexTarget, actions []map[string]any) ([]driven.IndexResult, error) {
	body := map[string]any{"value": actions}

	var out struct {
		Value []struct {
			Key          string `json:"key"`
			Status       bool   `json:"status"`
			StatusCode   int    `json:"statusCode"`
			ErrorMessage string `json:"errorMessage"`
		} `json:"value"`
	}
	if _, err := c.do(ctx, http.MethodPost, c.docsURL(target, "index"), body, &out); err != nil {
		return nil, fmt.Errorf("azure: index batch on %q: %w", target.IndexName, err)
	}

	results := make([]driven.IndexResult, 0, len(out.Value))
	for _, v := range out.Value {
		results = append(results, driven.IndexResult{
			Key:        v.Key,
			Succeeded:  v.Status,
			StatusCode: v.StatusCode,
			Message:    v.ErrorMessage,
		})
	}
	return results, nil
}

// indexesURL builds the index-admin URL, optionally scoped to one index.
func (c *Client) indexesURL(endpoint domain.Endpoint, indexName string) string {
	base := strings.TrimRight(endpoint.String(), "/") + "/indexes"
	if indexName != "" {
		base += "/" + url.PathEscape(indexName)
	}
	return base + "?api-version=" + url.QueryEscape(c.apiVersion)
}

// docsURL builds a document-operation URL for one index.
func (c *Client) docsURL(target domain.IndexTarget, op string) string {
	return strings.TrimRight(target.Endpoint.String(), "/") +
		"/indexes/" + url.PathEscape(target.IndexName) +
		"/docs/" + op + "?api-version=" + url.QueryEscape(c.apiVersion)
}

// do issues one HTTP request and decodes the response into out (when
// non-nil). Service failures are mapped onto the domain error taxonomy so
// callers never see raw status codes.
func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: read response: %v", domain.ErrServiceUnavailable, err)
	}

	logger.Debug("Azure %s %s -> %d", method, rawURL, resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return resp.StatusCode, domain.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return resp.StatusCode, domain.ErrConflict
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return resp.StatusCode, fmt.Errorf("%w: status %d: %s", domain.ErrServiceUnavailable, resp.StatusCode, serviceMessage(data))
	case resp.StatusCode >= 400:
		return resp.StatusCode, fmt.Errorf("status %d: %s", resp.StatusCode, serviceMessage(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// serviceMessage extracts the error message from an Azure error body.
func serviceMessage(data []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return strings.TrimSpace(string(data))
}
