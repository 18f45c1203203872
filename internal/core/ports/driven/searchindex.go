package driven

import (
	"context"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

// Document is one raw index row, as submitted to or returned by the search
// service. Rows are heterogeneous (document chunks and Q/A rows share an
// index), so the wire shape stays schemaless here.
type Document map[string]any

// String returns the named field as a string, or "" when absent or not a string.
func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}

// Int returns the named field as an int. JSON decoding yields float64, so
// both numeric representations are accepted.
func (d Document) Int(field string) int {
	switch v := d[field].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Bool returns the named field as a bool, or false when absent.
func (d Document) Bool(field string) bool {
	b, _ := d[field].(bool)
	return b
}

// Key returns the primary key of the row.
func (d Document) Key() string {
	return d.String(domain.FieldID)
}

// VectorQuery is one vector clause of a search request.
type VectorQuery struct {
	// Vector is the query embedding.
	Vector []float32

	// KNearestNeighbors is the k for the nearest-neighbour scan.
	KNearestNeighbors int

	// Fields are the vector fields to search against.
	Fields []string
}

// SemanticOptions enables semantic re-ranking on a search request.
type SemanticOptions struct {
	// ConfigurationName is the semantic configuration to apply.
	ConfigurationName string

	// Captions requests extractive captions when true.
	Captions bool

	// Answers requests extractive answers when true.
	Answers bool
}

// SearchRequest is the service-level request shape. The dispatcher builds
// one per logical query; the adapter translates it to the wire protocol.
type SearchRequest struct {
	// SearchText is the keyword query; empty for vector-only search.
	SearchText string

	// Filter is an OData-style filter expression; empty for none.
	Filter string

	// Top caps the number of returned rows. Must not exceed domain.MaxTop.
	Top int

	// Skip is the pagination offset.
	Skip int

	// IncludeTotalCount requests the total match count in the response.
	IncludeTotalCount bool

	// OrderBy lists order-by expressions, e.g. "created_at asc".
	OrderBy []string

	// Select projects the returned fields; empty returns all retrievable fields.
	Select []string

	// VectorQueries are the vector clauses; empty for keyword-only search.
	VectorQueries []VectorQuery

	// Semantic enables semantic re-ranking when non-nil.
	Semantic *SemanticOptions
}

// SearchResponse is the service-level response shape.
type SearchResponse struct {
	// TotalCount is the total match count, or -1 when not requested.
	TotalCount int64

	// Documents are the returned rows.
	Documents []Document
}

// IndexResult reports the outcome for one row of a batch mutation.
type IndexResult struct {
	// Key is the row's primary key.
	Key string

	// Succeeded reports whether the row was persisted.
	Succeeded bool

	// StatusCode is the per-row status from the service.
	StatusCode int

	// Message is the per-row error message, when failed.
	Message string
}

// SearchIndexClient is the outbound port to the external document-search
// service. One client serves all configured endpoints; each call names the
// endpoint it targets. Implementations map service failures onto the domain
// error taxonomy: absent index/row -> domain.ErrNotFound, duplicate index ->
// domain.ErrConflict, throttling/5xx/transport -> domain.ErrServiceUnavailable.
type SearchIndexClient interface {
	// CreateIndex creates an index from the declarative schema.
	CreateIndex(ctx context.Context, endpoint domain.Endpoint, schema domain.IndexSchema) error

	// DeleteIndex removes an index by name.
	DeleteIndex(ctx context.Context, endpoint domain.Endpoint, indexName string) error

	// GetIndex probes for an index by name. Returns domain.ErrNotFound when
	// the index does not exist.
	GetIndex(ctx context.Context, endpoint domain.Endpoint, indexName string) (*domain.IndexSchema, error)

	// ListIndexNames returns the names of all indexes on the endpoint.
	ListIndexNames(ctx context.Context, endpoint domain.Endpoint) ([]string, error)

	// Search executes one search request against an index.
	Search(ctx context.Context, target domain.IndexTarget, req SearchRequest) (*SearchResponse, error)

	// UploadDocuments merges-or-uploads a batch of rows and reports the
	// per-row outcome. A partial failure is data, not an error.
	UploadDocuments(ctx context.Context, target domain.IndexTarget, docs []Document) ([]IndexResult, error)

	// DeleteDocuments deletes rows by key and reports the per-row outcome.
	DeleteDocuments(ctx context.Context, target domain.IndexTarget, keys []string) ([]IndexResult, error)
}
