package driving

import (
	"context"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

// EndpointService manages the configured search endpoints and places new
// indexes on them.
type EndpointService interface {
	// ListEndpoints returns the configured endpoints ordered by ascending
	// priority (most preferred first).
	ListEndpoints() []domain.EndpointWithPriority

	// Validate checks the endpoint against the configured allow-list.
	// Returns domain.ErrUnknownEndpoint for an endpoint outside it.
	Validate(endpoint domain.Endpoint) error

	// Allocate picks the endpoint a new index should be created on.
	// An endpoint already hosting the name fails with domain.ErrConflict;
	// endpoints at capacity are skipped; when none remain the call fails
	// with domain.ErrNoAvailableEndpoint. Read-only, safe to retry.
	Allocate(ctx context.Context, desiredIndexName string) (domain.Endpoint, error)
}
