// Package memory provides an in-memory SearchIndexClient for testing and
// local development. It implements the filter subset this system generates
// ("and"-joined eq / ne null clauses) plus skip/top pagination.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/indexgate/internal/core/domain"
	"github.com/custodia-labs/indexgate/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.SearchIndexClient = (*Client)(nil)

// index is one in-memory index: its schema and its rows by key.
type index struct {
	schema domain.IndexSchema
	rows   map[string]driven.Document
}

// Client is an in-memory implementation of driven.SearchIndexClient.
type Client struct {
	mu        sync.RWMutex
	endpoints map[domain.Endpoint]map[string]*index
}

// NewClient creates an empty in-memory search client.
func NewClient() *Client {
	return &Client{
		endpoints: make(map[domain.Endpoint]map[string]*index),
	}
}

// CreateIndex creates an index from the declarative schema.
func (c *Client) CreateIndex(_ context.Context, endpoint domain.Endpoint, schema domain.IndexSchema) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	indexes := c.endpoints[endpoint]
	if indexes == nil {
		indexes = make(map[string]*index)
		c.endpoints[endpoint] = indexes
	}
	if _, ok := indexes[schema.Name]; ok {
		return fmt.Errorf("index %q: %w", schema.Name, domain.ErrConflict)
	}
	indexes[schema.Name] = &index{
		schema: schema,
		rows:   make(map[string]driven.Document),
	}
	return nil
}

// DeleteIndex removes an index by name.
func (c *Client) DeleteIndex(_ context.Context, endpoint domain.Endpoint, indexName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	indexes := c.endpoints[endpoint]
	if _, ok := indexes[indexName]; !ok {
		return fmt.Errorf("index %q: %w", indexName, domain.ErrNotFound)
	}
	delete(indexes, indexName)
	return nil
}

// GetIndex probes for an index by name.
func (c *Client) GetIndex(_ context.Context, endpoint domain.Endpoint, indexName string) (*domain.IndexSchema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, ok := c.endpoints[endpoint][indexName]
	if !ok {
		return nil, fmt.Errorf("index %q: %w", indexName, domain.ErrNotFound)
	}
	schema := idx.schema
	return &schema, nil
}

// ListIndexNames returns the names of all indexes on the endpoint, sorted.
func (c *Client) ListIndexNames(_ context.Context, endpoint domain.Endpoint) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.endpoints[endpoint]))
	for name := range c.endpoints[endpoint] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Search executes one search request against an index.
func (c *Client) Search(_ context.Context, target domain.IndexTarget, req driven.SearchRequest) (*driven.SearchResponse, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, ok := c.endpoints[target.Endpoint][target.IndexName]
	if !ok {
		return nil, fmt.Errorf("index %q: %w", target.IndexName, domain.ErrNotFound)
	}

	matched := make([]driven.Document, 0)
	for _, row := range idx.rows {
		if matchesFilter(row, req.Filter) && matchesSearchText(row, req.SearchText) {
			matched = append(matched, row)
		}
	}

	// Deterministic walk order: created_at, then key.
	sort.Slice(matched, func(i, j int) bool {
		ci := matched[i].String(domain.FieldCreatedAt)
		cj := matched[j].String(domain.FieldCreatedAt)
		if ci != cj {
			return ci < cj
		}
		return matched[i].Key() < matched[j].Key()
	})

	resp := &driven.SearchResponse{TotalCount: -1}
	if req.IncludeTotalCount {
		resp.TotalCount = int64(len(matched))
	}

	start := req.Skip
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if req.Top >= 0 && start+req.Top < end {
		end = start + req.Top
	}
	resp.Documents = append(resp.Documents, matched[start:end]...)
	return resp, nil
}

// UploadDocuments merges-or-uploads a batch of rows.
func (c *Client) UploadDocuments(_ context.Context, target domain.IndexTarget, docs []driven.Document) ([]driven.IndexResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.endpoints[target.Endpoint][target.IndexName]
	if !ok {
		return nil, fmt.Errorf("index %q: %w", target.IndexName, domain.ErrNotFound)
	}

	results := make([]driven.IndexResult, 0, len(docs))
	for _, doc := range docs {
		key := doc.Key()
		if key == "" {
			results = append(results, driven.IndexResult{Succeeded: false, StatusCode: 400, Message: "missing key"})
			continue
		}
		merged := idx.rows[key]
		if merged == nil {
			merged = make(driven.Document, len(doc))
		}
		for k, v := range doc {
			merged[k] = v
		}
		idx.rows[key] = merged
		results = append(results, driven.IndexResult{Key: key, Succeeded: true, StatusCode: 200})
	}
	return results, nil
}

// DeleteDocuments deletes rows by key. Deleting an absent key succeeds, as
// it does on the real service.
func (c *Client) DeleteDocuments(_ context.Context, target domain.IndexTarget, keys []string) ([]driven.IndexResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.endpoints[target.Endpoint][target.IndexName]
	if !ok {
		return nil, fmt.Errorf("index %q: %w", target.IndexName, domain.ErrNotFound)
	}

	results := make([]driven.IndexResult, 0, len(keys))
	for _, key := range keys {
		delete(idx.rows, key)
		results = append(results, driven.IndexResult{Key: key, Succeeded: true, StatusCode: 200})
	}
	return results, nil
}

// matchesSearchText is a crude full-text stand-in: empty or "*" matches
// everything, otherwise any string field must contain the text.
func matchesSearchText(row driven.Document, text string) bool {
	if text == "" || text == "*" {
		return true
	}
	for _, v := range row {
		if s, ok := v.(string); ok && strings.Contains(s, text) {
			return true
		}
	}
	return false
}

// matchesFilter evaluates the filter subset this system generates:
// clauses joined by " and ", each one of
//
//	field eq 'value'
//	field eq true|false
//	field ne null
//
// Clauses outside the subset match nothing, which surfaces unsupported
// filters in tests instead of silently passing rows through.
func matchesFilter(row driven.Document, filter string) bool {
	if filter == "" {
		return true
	}
	for _, clause := range strings.Split(filter, " and ") {
		if !matchesClause(row, strings.TrimSpace(clause)) {
			return false
		}
	}
	return true
}

func matchesClause(row driven.Document, clause string) bool {
	if field, ok := strings.CutSuffix(clause, " ne null"); ok {
		v, present := row[strings.TrimSpace(field)]
		return present && v != nil && v != ""
	}

	parts := strings.SplitN(clause, " eq ", 2)
	if len(parts) != 2 {
		return false
	}
	field, want := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	switch want {
	case "true":
		return row.Bool(field)
	case "false":
		v, present := row[field]
		if !present {
			return true
		}
		b, ok := v.(bool)
		return ok && !b
	}

	if strings.HasPrefix(want, "'") && strings.HasSuffix(want, "'") && len(want) >= 2 {
		value := strings.ReplaceAll(want[1:len(want)-1], "''", "'")
		return row.String(field) == value
	}
	return false
}
