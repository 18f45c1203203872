package domain

import "time"

// Hard limits and tuning parameters of the external search service and the
// policies this layer adds on top of it.
const (
	// MaxTop is the maximum page size the search service accepts per
	// request. Any operation touching more rows must paginate or loop.
	MaxTop = 1000

	// MaxIndexesPerEndpoint is the capacity ceiling per search endpoint.
	// An endpoint hosting this many indexes is excluded from allocation.
	MaxIndexesPerEndpoint = 50

	// VectorDimensions is the embedding dimensionality of the deployed
	// embedding model. Vector fields in every schema use this size.
	VectorDimensions = 1536

	// HNSW parameters for the vector search profile.
	HNSWParameterM              = 4
	HNSWParameterEfConstruction = 400
	HNSWParameterEfSearch       = 500

	// KNearestVector is the k-nearest-neighbours count for vector-only search.
	KNearestVector = 5

	// KNearestHybrid is the k-nearest-neighbours count for hybrid and
	// semantic-hybrid search.
	KNearestHybrid = 3

	// MaxRetryAttempts bounds the retry loop around transient remote failures.
	MaxRetryAttempts = 3

	// DeleteLoopInterval is the pause between delete-by-filter iterations.
	// The service deletes rows eventually, not immediately, so the loop
	// waits before re-counting.
	DeleteLoopInterval = 2 * time.Second
)
