package cli

import (
	"context"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

// --- Mock service implementations ---

type mockEndpointService struct {
	endpoints   []domain.EndpointWithPriority
	allocated   domain.Endpoint
	allocateErr error
}

func (m *mockEndpointService) ListEndpoints() []domain.EndpointWithPriority {
	return m.endpoints
}

func (m *mockEndpointService) Validate(endpoint domain.Endpoint) error {
	for _, ep := range m.endpoints {
		if ep.Endpoint == endpoint {
			return nil
		}
	}
	return domain.ErrUnknownEndpoint
}

func (m *mockEndpointService) Allocate(_ context.Context, _ string) (domain.Endpoint, error) {
	if m.allocateErr != nil {
		return "", m.allocateErr
	}
	return m.allocated, nil
}

type mockAdminService struct {
	createErr  error
	deleteErr  error
	names      []string
	listErr    error
	lastCreate struct {
		endpoint domain.Endpoint
		name     string
		kind     domain.IndexKind
		method   domain.SearchMethod
	}
}

func (m *mockAdminService) CreateIndex(_ context.Context, endpoint domain.Endpoint, name string, kind domain.IndexKind, method domain.SearchMethod) error {
	m.lastCreate.endpoint = endpoint
	m.lastCreate.name = name
	m.lastCreate.kind = kind
	m.lastCreate.method = method
	return m.createErr
}

func (m *mockAdminService) DeleteIndex(_ context.Context, _ domain.IndexTarget) error {
	return m.deleteErr
}

func (m *mockAdminService) ListIndexNames(_ context.Context, _ domain.Endpoint) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.names, nil
}

type mockSearchService struct {
	points    []domain.DataPoint
	searchErr error
	lastQuery domain.SearchQuery
}

func (m *mockSearchService) SearchDocuments(_ context.Context, _ domain.IndexTarget, query domain.SearchQuery) ([]domain.DataPoint, error) {
	m.lastQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.points, nil
}

type mockChunkService struct {
	count     int64
	countErr  error
	deleteErr error
	moveErr   error
}

func (m *mockChunkService) UploadChunks(_ context.Context, _ domain.IndexTarget, chunks []domain.DocumentChunk) ([]string, error) {
	keys := make([]string, 0, len(chunks))
	for _, c := range chunks {
		keys = append(keys, c.ID)
	}
	return keys, nil
}

func (m *mockChunkService) UploadQuestionAnswers(_ context.Context, _ domain.IndexTarget, rows []domain.QuestionAnswer) ([]string, error) {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.QuestionAnswerID)
	}
	return ids, nil
}

func (m *mockChunkService) UpdateEmbeddings(_ context.Context, _ domain.IndexTarget, _ string, _, _ []float32) error {
	return nil
}

func (m *mockChunkService) CountUnvectorized(_ context.Context, _ domain.IndexTarget, _ string) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.count, nil
}

func (m *mockChunkService) FetchChunksByBot(_ context.Context, _ domain.IndexTarget, _ string) ([]domain.DocumentChunk, error) {
	return nil, nil
}

func (m *mockChunkService) DeleteByDocument(_ context.Context, _ domain.IndexTarget, _ string) error {
	return m.deleteErr
}

func (m *mockChunkService) DeleteByBot(_ context.Context, _ domain.IndexTarget, _ string) error {
	return m.deleteErr
}

func (m *mockChunkService) DeleteQuestionAnswer(_ context.Context, _ domain.IndexTarget, _ string) error {
	return m.deleteErr
}

func (m *mockChunkService) MoveDocument(_ context.Context, _ domain.IndexTarget, _, _, _ string) error {
	return m.moveErr
}

// setupTestServices wires mock services into the package-level slots and
// returns a cleanup that restores the previous state.
func setupTestServices() func() {
	oldEndpoints := endpointService
	oldAdmin := adminService
	oldSearch := searchService
	oldChunks := chunkService

	endpointService = &mockEndpointService{
		endpoints: []domain.EndpointWithPriority{
			{Endpoint: "https://search-a.example.net", Priority: 50},
			{Endpoint: "https://search-b.example.net", Priority: 100},
		},
		allocated: "https://search-a.example.net",
	}
	adminService = &mockAdminService{names: []string{"bot-1", "bot-2"}}
	searchService = &mockSearchService{
		points: []domain.DataPoint{
			{
				ChunkName:  "report_p3",
				BlobPath:   "tenant/docs/report.pdf",
				Content:    "matched content",
				PageNumber: 3,
				Type:       domain.DataPointTypeInternal,
				DocumentID: "doc-1",
			},
		},
	}
	chunkService = &mockChunkService{count: 7}

	return func() {
		endpointService = oldEndpoints
		adminService = oldAdmin
		searchService = oldSearch
		chunkService = oldChunks
	}
}
