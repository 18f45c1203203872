// Package domain defines the core business entities for Indexgate.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Endpoint / EndpointWithPriority: A search service instance and its allocation priority
//   - IndexSchema: The declarative schema of one search index
//   - SearchMethod / SearchQuery: A logical search request
//   - DataPoint: The uniform representation of one search hit
//   - DocumentChunk / QuestionAnswer: Index row shapes
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
