package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/indexgate/internal/core/domain"
	"github.com/custodia-labs/indexgate/internal/core/ports/driven"
	"github.com/custodia-labs/indexgate/internal/core/ports/driving"
	"github.com/custodia-labs/indexgate/internal/logger"
)

// Ensure IndexAdminService implements the interface.
var _ driving.IndexAdminService = (*IndexAdminService)(nil)

// IndexAdminService creates and removes physical indexes. Creation is
// check-then-create; the probe/create pair is not atomic and the race is
// accepted (the underlying service exposes no cheap conditional create).
type IndexAdminService struct {
	client    driven.SearchIndexClient
	endpoints driving.EndpointService
	schemas   *SchemaBuilder
}

// NewIndexAdminService creates an index admin service.
func NewIndexAdminService(client driven.SearchIndexClient, endpoints driving.EndpointService, schemas *SchemaBuilder) *IndexAdminService {
	return &IndexAdminService{
		client:    client,
		endpoints: endpoints,
		schemas:   schemas,
	}
}

// CreateIndex builds the schema for the kind and creates the index on the
// endpoint. An existing index with the same name fails with
// domain.ErrConflict before any create call is issued; a not-found probe is
// the success path to proceed.
func (s *IndexAdminService) CreateIndex(
	ctx context.Context, endpoint domain.Endpoint, indexName string, kind domain.IndexKind, method domain.SearchMethod,
) error {
	logger.Section("Index Creation")
	logger.Debug("Endpoint: %s, index: %q, kind: %s, method: %s", endpoint, indexName, kind, method)

	if err := s.endpoints.Validate(endpoint); err != nil {
		return err
	}

	schema, err := s.schemas.Build(indexName, kind, method)
	if err != nil {
		return err
	}

	_, err = s.client.GetIndex(ctx, endpoint, indexName)
	if err == nil {
		return fmt.Errorf("index %q on endpoint %s: %w", indexName, endpoint, domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("probe index %q: %w", indexName, err)
	}

	if err := s.client.CreateIndex(ctx, endpoint, schema); err != nil {
		return fmt.Errorf("create index %q: %w", indexName, err)
	}
	logger.Info("Created index %q on %s", indexName, endpoint)
	return nil
}

// DeleteIndex removes an index.
func (s *IndexAdminService) DeleteIndex(ctx context.Context, target domain.IndexTarget) error {
	if err := s.endpoints.Validate(target.Endpoint); err != nil {
		return err
	}
	if err := s.client.DeleteIndex(ctx, target.Endpoint, target.IndexName); err != nil {
		return fmt.Errorf("delete index %q: %w", target.IndexName, err)
	}
	logger.Info("Deleted index %q on %s", target.IndexName, target.Endpoint)
	return nil
}

// ListIndexNames returns the names of all indexes on the endpoint.
func (s *IndexAdminService) ListIndexNames(ctx context.Context, endpoint domain.Endpoint) ([]string, error) {
	if err := s.endpoints.Validate(endpoint); err != nil {
		return nil, err
	}
	names, err := s.client.ListIndexNames(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("list indexes on %s: %w", endpoint, err)
	}
	return names, nil
}
