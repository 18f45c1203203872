package domain

// SearchMethod defines how a logical search request is executed against the
// underlying index. The set is closed; a bot or tenant is bound to one
// method and never migrates online.
type SearchMethod string

// Available search methods.
const (
	// SearchMethodBM25 is plain keyword search (the default).
	SearchMethodBM25 SearchMethod = "bm25"

	// SearchMethodVector is vector-only similarity search.
	SearchMethodVector SearchMethod = "vector"

	// SearchMethodHybrid combines keyword and vector search.
	SearchMethodHybrid SearchMethod = "hybrid"

	// SearchMethodSemanticHybrid is hybrid search with semantic re-ranking.
	SearchMethodSemanticHybrid SearchMethod = "semantic_hybrid"

	// SearchMethodUrsa targets the legacy URSA index schema (pre-2024-08).
	SearchMethodUrsa SearchMethod = "ursa"

	// SearchMethodUrsaSemantic targets the extended URSA schema (2024-08+)
	// with semantic re-ranking and a scoring profile.
	SearchMethodUrsaSemantic SearchMethod = "ursa_semantic"
)

// IsValid returns true if the search method is recognised.
func (m SearchMethod) IsValid() bool {
	switch m {
	case SearchMethodBM25, SearchMethodVector, SearchMethodHybrid,
		SearchMethodSemanticHybrid, SearchMethodUrsa, SearchMethodUrsaSemantic:
		return true
	default:
		return false
	}
}

// RequiresEmbedding returns true if this method needs a query embedding.
func (m SearchMethod) RequiresEmbedding() bool {
	switch m {
	case SearchMethodVector, SearchMethodHybrid, SearchMethodSemanticHybrid:
		return true
	default:
		return false
	}
}

// IsUrsa returns true for the two legacy URSA methods.
func (m SearchMethod) IsUrsa() bool {
	return m == SearchMethodUrsa || m == SearchMethodUrsaSemantic
}

// String returns the string representation.
func (m SearchMethod) String() string {
	return string(m)
}

// AllSearchMethods returns all available search methods.
func AllSearchMethods() []SearchMethod {
	return []SearchMethod{
		SearchMethodBM25,
		SearchMethodVector,
		SearchMethodHybrid,
		SearchMethodSemanticHybrid,
		SearchMethodUrsa,
		SearchMethodUrsaSemantic,
	}
}

// SearchQuery is a logical search request before it is translated into the
// request shape of a concrete search method.
type SearchQuery struct {
	// Method selects the execution strategy.
	Method SearchMethod

	// Queries are the display query terms. Non-URSA methods use the first
	// entry as the search text; URSA methods join all entries with spaces.
	Queries []string

	// Embedding is the query vector for VECTOR/HYBRID/SEMANTIC_HYBRID.
	// Supplied by the caller; this layer never computes embeddings.
	Embedding []float32

	// Filter is an optional OData-style filter expression.
	Filter string

	// DocumentLimit caps the number of returned rows. Must not exceed MaxTop.
	DocumentLimit int

	// Options carries method-specific out-of-band parameters, such as the
	// additional URSA filter clause.
	Options map[string]string
}

// UrsaAdditionalFilterOption is the Options key holding an extra filter
// clause ANDed into the URSA filter string.
const UrsaAdditionalFilterOption = "additional_filter"
