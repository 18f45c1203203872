package driving

import (
	"context"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

// IndexAdminService creates and removes physical indexes.
//
// Creation is check-then-create: the service probes for an existing index
// by name and only proceeds on a not-found probe. The probe/create pair is
// not atomic; two racing creators may both pass the probe. The race is
// accepted and isolated behind this port so a conditional-write primitive
// can replace it without touching callers.
type IndexAdminService interface {
	// CreateIndex builds the schema for the given kind and creates the
	// index on the endpoint. An existing index with the same name fails
	// with domain.ErrConflict before any create call is issued. The
	// search method selects the URSA schema generation; for kind ursa a
	// non-URSA method fails with domain.ErrInvalidArgument.
	CreateIndex(ctx context.Context, endpoint domain.Endpoint, indexName string, kind domain.IndexKind, method domain.SearchMethod) error

	// DeleteIndex removes an index.
	DeleteIndex(ctx context.Context, target domain.IndexTarget) error

	// ListIndexNames returns the names of all indexes on the endpoint.
	ListIndexNames(ctx context.Context, endpoint domain.Endpoint) ([]string, error)
}
