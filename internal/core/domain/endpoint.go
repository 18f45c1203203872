package domain

// Endpoint identifies one physical instance of the external search service.
// The deployment shards index load across a small fixed set of endpoints;
// every index-bearing operation validates its endpoint against that set.
type Endpoint string

// String returns the string representation.
func (e Endpoint) String() string {
	return string(e)
}

// EndpointWithPriority pairs an endpoint with its allocation priority.
// A lower priority value means the endpoint is preferred earlier.
type EndpointWithPriority struct {
	// Endpoint is the search service instance.
	Endpoint Endpoint

	// Priority is a small positive integer; lower is more preferred.
	Priority int
}

// EndpointConfig is the immutable set of configured endpoints, ordered by
// ascending priority. It is built once at process start and passed to the
// registry at construction time.
type EndpointConfig struct {
	// Endpoints is the configured allow-list, ordered by ascending priority.
	Endpoints []EndpointWithPriority
}

// Contains reports whether the endpoint is part of the configured allow-list.
func (c EndpointConfig) Contains(endpoint Endpoint) bool {
	for _, e := range c.Endpoints {
		if e.Endpoint == endpoint {
			return true
		}
	}
	return false
}

// IndexTarget identifies a physical index: which endpoint hosts it and its
// name on that endpoint. Index names are unique within an endpoint only;
// callers resolve the pair from their own tenant/bot records.
type IndexTarget struct {
	// Endpoint is the search service instance hosting the index.
	Endpoint Endpoint

	// IndexName is the index name on that endpoint.
	IndexName string
}
