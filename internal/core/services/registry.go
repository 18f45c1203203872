package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/indexgate/internal/core/domain"
	"github.com/custodia-labs/indexgate/internal/core/ports/driven"
	"github.com/custodia-labs/indexgate/internal/core/ports/driving"
	"github.com/custodia-labs/indexgate/internal/logger"
)

// Ensure EndpointRegistry implements the interface.
var _ driving.EndpointService = (*EndpointRegistry)(nil)

// EndpointRegistry holds the configured search endpoints and places new
// indexes on them. The endpoint set is fixed at construction; the registry
// never mutates it.
type EndpointRegistry struct {
	config domain.EndpointConfig
	client driven.SearchIndexClient
}

// NewEndpointRegistry creates a registry over the configured endpoint set.
// The config is sorted by ascending priority once, up front.
func NewEndpointRegistry(config domain.EndpointConfig, client driven.SearchIndexClient) *EndpointRegistry {
	endpoints := make([]domain.EndpointWithPriority, len(config.Endpoints))
	copy(endpoints, config.Endpoints)
	sort.SliceStable(endpoints, func(i, j int) bool {
		return endpoints[i].Priority < endpoints[j].Priority
	})
	return &EndpointRegistry{
		config: domain.EndpointConfig{Endpoints: endpoints},
		client: client,
	}
}

// ListEndpoints returns the configured endpoints ordered by ascending
// priority, most preferred first.
func (r *EndpointRegistry) ListEndpoints() []domain.EndpointWithPriority {
	out := make([]domain.EndpointWithPriority, len(r.config.Endpoints))
	copy(out, r.config.Endpoints)
	return out
}

// Validate checks the endpoint against the configured allow-list. Accepting
// an endpoint outside it is a configuration error, so the check fails fast.
func (r *EndpointRegistry) Validate(endpoint domain.Endpoint) error {
	if !r.config.Contains(endpoint) {
		return fmt.Errorf("endpoint %q: %w", endpoint, domain.ErrUnknownEndpoint)
	}
	return nil
}

// MostPrioritized returns the candidate with the lowest priority value.
// Fails with domain.ErrEmptyCandidates when the input is empty.
func (r *EndpointRegistry) MostPrioritized(candidates []domain.EndpointWithPriority) (domain.Endpoint, error) {
	if len(candidates) == 0 {
		return "", domain.ErrEmptyCandidates
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Priority < best.Priority {
			best = c
		}
	}
	return best.Endpoint, nil
}

// Allocate picks the endpoint a new index should be created on.
//
// Endpoints are scanned in priority order. An endpoint already hosting the
// desired name fails the whole call with domain.ErrConflict; an endpoint at
// capacity is excluded without error. When no candidate survives the scan
// the call fails with domain.ErrNoAvailableEndpoint. The scan is read-only
// and safe to retry.
func (r *EndpointRegistry) Allocate(ctx context.Context, desiredIndexName string) (domain.Endpoint, error) {
	logger.Section("Endpoint Allocation")
	logger.Debug("Desired index name: %q", desiredIndexName)

	var candidates []domain.EndpointWithPriority
	for _, ep := range r.config.Endpoints {
		names, err := r.client.ListIndexNames(ctx, ep.Endpoint)
		if err != nil {
			return "", fmt.Errorf("list indexes on %s: %w", ep.Endpoint, err)
		}

		for _, name := range names {
			if name == desiredIndexName {
				logger.Warn("Index %q already exists on %s", desiredIndexName, ep.Endpoint)
				return "", fmt.Errorf("index %q on endpoint %s: %w", desiredIndexName, ep.Endpoint, domain.ErrConflict)
			}
		}

		if len(names) >= domain.MaxIndexesPerEndpoint {
			logger.Debug("Endpoint %s at capacity (%d indexes), skipping", ep.Endpoint, len(names))
			continue
		}

		candidates = append(candidates, ep)
	}

	if len(candidates) == 0 {
		logger.Warn("No endpoint can host %q: all at capacity", desiredIndexName)
		return "", domain.ErrNoAvailableEndpoint
	}

	endpoint, err := r.MostPrioritized(candidates)
	if err != nil {
		return "", err
	}
	logger.Info("Allocated endpoint %s for index %q", endpoint, desiredIndexName)
	return endpoint, nil
}
