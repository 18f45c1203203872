package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/indexgate/internal/core/domain"
	"github.com/custodia-labs/indexgate/internal/core/ports/driven"
	"github.com/custodia-labs/indexgate/internal/core/ports/driving"
	"github.com/custodia-labs/indexgate/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// defaultDocumentLimit applies when the caller does not cap the result set.
const defaultDocumentLimit = 10

// qaChunkNameRunes is how many leading runes of a Q/A row's content become
// its display name.
const qaChunkNameRunes = 20

// SearchService dispatches a logical query to the request shape of its
// search method and normalizes the heterogeneous result rows.
type SearchService struct {
	client     driven.SearchIndexClient
	endpoints  driving.EndpointService
	newBackOff newBackOffFunc
}

// NewSearchService creates a search service.
func NewSearchService(client driven.SearchIndexClient, endpoints driving.EndpointService) *SearchService {
	return &SearchService{
		client:     client,
		endpoints:  endpoints,
		newBackOff: defaultBackOff,
	}
}

// SearchDocuments executes one logical search. Caller errors (unknown
// method, missing embedding, oversized limit, unknown endpoint) fail before
// any network call; transient remote failures are retried up to
// domain.MaxRetryAttempts times with exponential backoff.
func (s *SearchService) SearchDocuments(
	ctx context.Context, target domain.IndexTarget, query domain.SearchQuery,
) ([]domain.DataPoint, error) {
	logger.Section("Search Execution")
	logger.Debug("Index: %s/%s, method: %s, queries: %v",
		target.Endpoint, target.IndexName, query.Method, query.Queries)

	if err := s.endpoints.Validate(target.Endpoint); err != nil {
		return nil, err
	}
	if !query.Method.IsValid() {
		return nil, fmt.Errorf("search method %q must be one of the known methods: %w",
			query.Method, domain.ErrInvalidArgument)
	}
	if query.DocumentLimit > domain.MaxTop {
		return nil, fmt.Errorf("document limit %d exceeds the maximum page size %d: %w",
			query.DocumentLimit, domain.MaxTop, domain.ErrInvalidArgument)
	}
	if query.Method.RequiresEmbedding() && len(query.Embedding) == 0 {
		return nil, fmt.Errorf("search method %q requires a query embedding: %w",
			query.Method, domain.ErrInvalidArgument)
	}

	req := s.buildRequest(query)

	var resp *driven.SearchResponse
	err := retryTransient(ctx, s.newBackOff, func() error {
		var searchErr error
		resp, searchErr = s.client.Search(ctx, target, req)
		return searchErr
	})
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search index %q: %w", target.IndexName, err)
	}

	logger.Debug("Raw results: %d rows", len(resp.Documents))

	var points []domain.DataPoint
	if query.Method.IsUrsa() {
		points = s.normalizeUrsaRows(resp.Documents, query, req.Filter)
	} else {
		points = s.normalizeRows(resp.Documents)
	}
	logger.Info("Normalized results: %d data points", len(points))
	return points, nil
}

// buildRequest translates the logical query into the request shape of its
// search method. Validation has already happened.
func (s *SearchService) buildRequest(query domain.SearchQuery) driven.SearchRequest {
	limit := query.DocumentLimit
	if limit <= 0 {
		limit = defaultDocumentLimit
	}

	switch query.Method {
	case domain.SearchMethodVector:
		return driven.SearchRequest{
			Top:           limit,
			Filter:        query.Filter,
			Select:        documentSelectFields(),
			VectorQueries: []driven.VectorQuery{vectorClause(query.Embedding, domain.KNearestVector)},
		}

	case domain.SearchMethodHybrid:
		return driven.SearchRequest{
			SearchText:    firstQuery(query.Queries),
			Top:           limit,
			Filter:        query.Filter,
			Select:        documentSelectFields(),
			VectorQueries: []driven.VectorQuery{vectorClause(query.Embedding, domain.KNearestHybrid)},
		}

	case domain.SearchMethodSemanticHybrid:
		return driven.SearchRequest{
			SearchText:    firstQuery(query.Queries),
			Top:           limit,
			Filter:        query.Filter,
			Select:        documentSelectFields(),
			VectorQueries: []driven.VectorQuery{vectorClause(query.Embedding, domain.KNearestHybrid)},
			Semantic: &driven.SemanticOptions{
				ConfigurationName: semanticConfigName,
				Captions:          true,
				Answers:           true,
			},
		}

	case domain.SearchMethodUrsa:
		return driven.SearchRequest{
			SearchText: strings.Join(query.Queries, " "),
			Top:        limit,
			Filter:     buildUrsaFilter(query),
		}

	case domain.SearchMethodUrsaSemantic:
		return driven.SearchRequest{
			SearchText: strings.Join(query.Queries, " "),
			Top:        limit,
			Filter:     buildUrsaFilter(query),
			Semantic: &driven.SemanticOptions{
				ConfigurationName: ursaSemanticConfigName,
			},
		}

	default: // BM25
		return driven.SearchRequest{
			SearchText: firstQuery(query.Queries),
			Top:        limit,
			Filter:     query.Filter,
		}
	}
}

// vectorClause builds the vector query over both vector fields.
func vectorClause(embedding []float32, k int) driven.VectorQuery {
	return driven.VectorQuery{
		Vector:            embedding,
		KNearestNeighbors: k,
		Fields:            []string{domain.FieldTitleVector, domain.FieldContentVector},
	}
}

// documentSelectFields projects the non-vector fields of the document schema.
func documentSelectFields() []string {
	return []string{
		domain.FieldID,
		domain.FieldContent,
		domain.FieldBotID,
		domain.FieldDocumentID,
		domain.FieldDocumentFolderID,
		domain.FieldBlobPath,
		domain.FieldFileName,
		domain.FieldFileExtension,
		domain.FieldPageNumber,
		domain.FieldQuestionAnswerID,
	}
}

func firstQuery(queries []string) string {
	if len(queries) == 0 {
		return ""
	}
	return queries[0]
}

// normalizeRows converts raw bot/tenant index rows into data points. A row
// with a populated question_answer_id is a Q/A hit; a row with a populated
// document_id is a document chunk; rows matching neither are dropped.
func (s *SearchService) normalizeRows(rows []driven.Document) []domain.DataPoint {
	points := make([]domain.DataPoint, 0, len(rows))
	for _, row := range rows {
		switch {
		case row.String(domain.FieldQuestionAnswerID) != "":
			points = append(points, domain.DataPoint{
				ChunkName: truncateRunes(row.String(domain.FieldContent), qaChunkNameRunes),
				BlobPath:  row.String(domain.FieldBlobPath),
				Content:   row.String(domain.FieldContent),
				Type:      domain.DataPointTypeQuestionAnswer,
				DocumentID: row.String(domain.FieldDocumentID),
			})

		case row.String(domain.FieldDocumentID) != "":
			points = append(points, domain.DataPoint{
				ChunkName: synthesizeChunkName(
					row.String(domain.FieldFileName),
					row.String(domain.FieldFileExtension),
					row.Int(domain.FieldPageNumber),
				),
				BlobPath:   row.String(domain.FieldBlobPath),
				Content:    row.String(domain.FieldContent),
				PageNumber: row.Int(domain.FieldPageNumber),
				Type:       domain.DataPointTypeInternal,
				DocumentID: row.String(domain.FieldDocumentID),
			})

		default:
			logger.Debug("Dropping row %q: neither document nor Q/A", row.Key())
		}
	}
	return points
}

// synthesizeChunkName builds the display name of a document chunk as
// "{file_name}_{suffix}{page}". The suffix names the unit the source format
// is paginated by.
func synthesizeChunkName(fileName, fileExtension string, pageNumber int) string {
	var suffix string
	switch strings.ToLower(fileExtension) {
	case "pdf":
		suffix = "p"
	case "pptx":
		suffix = "slide"
	case "xlsx":
		suffix = "sheetnumber"
	case "docx":
		suffix = "paragraph"
	default:
		suffix = "chunk"
	}
	return fmt.Sprintf("%s_%s%d", fileName, suffix, pageNumber)
}

// truncateRunes returns the first n runes of s. Content is Japanese text,
// so byte truncation would split characters.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
