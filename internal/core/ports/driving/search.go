package driving

import (
	"context"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

// SearchService executes logical search requests against a physical index.
type SearchService interface {
	// SearchDocuments dispatches the query to the request shape of its
	// search method and normalizes the heterogeneous result rows into
	// uniform data points. Transient remote failures are retried up to
	// domain.MaxRetryAttempts times; caller errors are not.
	SearchDocuments(ctx context.Context, target domain.IndexTarget, query domain.SearchQuery) ([]domain.DataPoint, error)
}
