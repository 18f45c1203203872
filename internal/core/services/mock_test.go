package services

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/custodia-labs/indexgate/internal/core/domain"
	"github.com/custodia-labs/indexgate/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockSearchClient implements driven.SearchIndexClient for testing.
type mockSearchClient struct {
	// Index admin behaviour.
	indexNames     map[domain.Endpoint][]string
	listErr        error
	existing       []string // index names GetIndex reports as present
	getIndexErr    error    // overrides the existence check when set
	createErr      error
	createCalls    int
	deleteIndexErr error

	// Document operation behaviour.
	searchFn      func(req driven.SearchRequest) (*driven.SearchResponse, error)
	searchCalls   int
	lastSearch    driven.SearchRequest
	uploadFn      func(docs []driven.Document) ([]driven.IndexResult, error)
	uploadCalls   int
	lastUpload    []driven.Document
	deleteFn      func(keys []string) ([]driven.IndexResult, error)
	deleteBatches [][]string
}

func (m *mockSearchClient) CreateIndex(_ context.Context, _ domain.Endpoint, _ domain.IndexSchema) error {
	m.createCalls++
	return m.createErr
}

func (m *mockSearchClient) DeleteIndex(_ context.Context, _ domain.Endpoint, _ string) error {
	return m.deleteIndexErr
}

func (m *mockSearchClient) GetIndex(_ context.Context, _ domain.Endpoint, indexName string) (*domain.IndexSchema, error) {
	if m.getIndexErr != nil {
		return nil, m.getIndexErr
	}
	for _, name := range m.existing {
		if name == indexName {
			return &domain.IndexSchema{Name: name}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSearchClient) ListIndexNames(_ context.Context, endpoint domain.Endpoint) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.indexNames[endpoint], nil
}

func (m *mockSearchClient) Search(_ context.Context, _ domain.IndexTarget, req driven.SearchRequest) (*driven.SearchResponse, error) {
	m.searchCalls++
	m.lastSearch = req
	if m.searchFn != nil {
		return m.searchFn(req)
	}
	return &driven.SearchResponse{TotalCount: -1}, nil
}

func (m *mockSearchClient) UploadDocuments(_ context.Context, _ domain.IndexTarget, docs []driven.Document) ([]driven.IndexResult, error) {
	m.uploadCalls++
	m.lastUpload = docs
	if m.uploadFn != nil {
		return m.uploadFn(docs)
	}
	results := make([]driven.IndexResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, driven.IndexResult{Key: doc.Key(), Succeeded: true, StatusCode: 200})
	}
	return results, nil
}

func (m *mockSearchClient) DeleteDocuments(_ context.Context, _ domain.IndexTarget, keys []string) ([]driven.IndexResult, error) {
	m.deleteBatches = append(m.deleteBatches, keys)
	if m.deleteFn != nil {
		return m.deleteFn(keys)
	}
	results := make([]driven.IndexResult, 0, len(keys))
	for _, key := range keys {
		results = append(results, driven.IndexResult{Key: key, Succeeded: true, StatusCode: 200})
	}
	return results, nil
}

// --- Test helpers ---

// Test endpoints, in the fixed slot priority order of the deployment.
const (
	endpointA = domain.Endpoint("https://search-a.example.net")
	endpointB = domain.Endpoint("https://search-b.example.net")
	endpointC = domain.Endpoint("https://search-c.example.net")
	endpointD = domain.Endpoint("https://search-d.example.net")
)

func testEndpointConfig() domain.EndpointConfig {
	return domain.EndpointConfig{
		Endpoints: []domain.EndpointWithPriority{
			{Endpoint: endpointA, Priority: 50},
			{Endpoint: endpointB, Priority: 100},
			{Endpoint: endpointC, Priority: 150},
			{Endpoint: endpointD, Priority: 200},
		},
	}
}

func testTarget() domain.IndexTarget {
	return domain.IndexTarget{Endpoint: endpointA, IndexName: "bot-42"}
}

// noBackOff retries without delay so tests run fast.
func noBackOff() backoff.BackOff {
	return &backoff.ZeroBackOff{}
}

// noSleep skips delete-loop pauses in tests.
func noSleep(_ context.Context, _ time.Duration) error {
	return nil
}
