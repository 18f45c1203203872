package services

import (
	"fmt"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

// Names referenced by schemas and search requests.
const (
	vectorProfileName      = "vector-profile"
	vectorAlgorithmName    = "hnsw-config"
	vectorMetricCosine     = "cosine"
	semanticConfigName     = "semantic-config"
	ursaSemanticConfigName = "ursa-semantic-config"
	ursaScoringProfileName = "ursa-scoring-profile"

	// japaneseAnalyzer is the full-text analyzer for content fields.
	japaneseAnalyzer = "ja.lucene"
)

// SchemaBuilder produces the declarative schema for each index kind. It is
// pure: it never talks to the network and has no state.
type SchemaBuilder struct{}

// NewSchemaBuilder creates a schema builder.
func NewSchemaBuilder() *SchemaBuilder {
	return &SchemaBuilder{}
}

// Build returns the schema for the given index kind. The search method is
// consulted only for kind ursa, where it selects the schema generation.
func (b *SchemaBuilder) Build(indexName string, kind domain.IndexKind, method domain.SearchMethod) (domain.IndexSchema, error) {
	switch kind {
	case domain.IndexKindBot:
		return b.BuildBotSchema(indexName), nil
	case domain.IndexKindTenant:
		return b.BuildTenantSchema(indexName), nil
	case domain.IndexKindUrsa:
		return b.BuildUrsaSchema(indexName, method)
	default:
		return domain.IndexSchema{}, fmt.Errorf("index kind %q: %w", kind, domain.ErrInvalidArgument)
	}
}

// BuildBotSchema returns the per-bot document index schema.
func (b *SchemaBuilder) BuildBotSchema(indexName string) domain.IndexSchema {
	return b.documentSchema(indexName)
}

// BuildTenantSchema returns the per-tenant index schema. Document chunks
// and Q/A rows share this index; a row's type is decided by which of the
// optional document_id / question_answer_id fields is populated.
func (b *SchemaBuilder) BuildTenantSchema(indexName string) domain.IndexSchema {
	return b.documentSchema(indexName)
}

// documentSchema is the shared bot/tenant field set: analyzed content, the
// chunk provenance fields, the co-located question_answer_id, the
// vectorized flag and two HNSW-bound vector fields.
func (b *SchemaBuilder) documentSchema(indexName string) domain.IndexSchema {
	return domain.IndexSchema{
		Name: indexName,
		Fields: []domain.IndexField{
			{Name: domain.FieldID, Type: domain.FieldTypeString, Key: true, Filterable: true},
			{Name: domain.FieldContent, Type: domain.FieldTypeString, Searchable: true, Analyzer: japaneseAnalyzer},
			{Name: domain.FieldBotID, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.FieldDocumentID, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.FieldDocumentFolderID, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.FieldBlobPath, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.FieldFileName, Type: domain.FieldTypeString, Searchable: true},
			{Name: domain.FieldFileExtension, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.FieldPageNumber, Type: domain.FieldTypeInt, Filterable: true, Sortable: true},
			{Name: domain.FieldQuestionAnswerID, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.FieldIsVectorized, Type: domain.FieldTypeBool, Filterable: true},
			{Name: domain.FieldCreatedAt, Type: domain.FieldTypeDateTime, Filterable: true, Sortable: true},
			{Name: domain.FieldTitleVector, Type: domain.FieldTypeVector, Dimensions: domain.VectorDimensions, VectorProfile: vectorProfileName},
			{Name: domain.FieldContentVector, Type: domain.FieldTypeVector, Dimensions: domain.VectorDimensions, VectorProfile: vectorProfileName},
		},
		VectorSearch: &domain.VectorSearchConfig{
			ProfileName:    vectorProfileName,
			AlgorithmName:  vectorAlgorithmName,
			Metric:         vectorMetricCosine,
			M:              domain.HNSWParameterM,
			EfConstruction: domain.HNSWParameterEfConstruction,
			EfSearch:       domain.HNSWParameterEfSearch,
		},
		Semantic: &domain.SemanticConfig{
			Name:          semanticConfigName,
			TitleField:    domain.FieldFileName,
			ContentFields: []string{domain.FieldContent},
		},
	}
}

// BuildUrsaSchema returns the legacy URSA schema generation selected by the
// search method. Any method outside {URSA, URSA_SEMANTIC} is a caller
// contract violation.
func (b *SchemaBuilder) BuildUrsaSchema(indexName string, method domain.SearchMethod) (domain.IndexSchema, error) {
	switch method {
	case domain.SearchMethodUrsa:
		return b.ursaSchema(indexName), nil
	case domain.SearchMethodUrsaSemantic:
		return b.ursaSemanticSchema(indexName), nil
	default:
		return domain.IndexSchema{}, fmt.Errorf("search method %q is not an URSA method: %w", method, domain.ErrInvalidArgument)
	}
}

// ursaSchema is the pre-2024-08 generation. The extension field keeps its
// historical "extention" spelling; the semantic configuration is bare, with
// no title field.
func (b *SchemaBuilder) ursaSchema(indexName string) domain.IndexSchema {
	return domain.IndexSchema{
		Name: indexName,
		Fields: []domain.IndexField{
			{Name: domain.FieldID, Type: domain.FieldTypeString, Key: true, Filterable: true},
			{Name: domain.FieldContent, Type: domain.FieldTypeString, Searchable: true, Analyzer: japaneseAnalyzer},
			{Name: domain.FieldDocumentID, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.FieldFileName, Type: domain.FieldTypeString, Searchable: true},
			{Name: domain.UrsaFieldBranch, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.UrsaFieldDocumentType, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.UrsaFieldYear, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.UrsaFieldConstructionName, Type: domain.FieldTypeString, Searchable: true},
			{Name: domain.UrsaFieldAuthor, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.UrsaFieldPath, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.UrsaFieldExtentionLegacy, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.FieldCreatedAt, Type: domain.FieldTypeDateTime, Filterable: true, Sortable: true},
		},
		Semantic: &domain.SemanticConfig{
			Name:          semanticConfigName,
			ContentFields: []string{domain.FieldContent},
		},
	}
}

// ursaSemanticSchema is the 2024-08+ generation: the typo is fixed, path
// and timestamp fields are added, and a scoring profile boosts the file
// name over the two path fields.
func (b *SchemaBuilder) ursaSemanticSchema(indexName string) domain.IndexSchema {
	return domain.IndexSchema{
		Name: indexName,
		Fields: []domain.IndexField{
			{Name: domain.FieldID, Type: domain.FieldTypeString, Key: true, Filterable: true},
			{Name: domain.FieldContent, Type: domain.FieldTypeString, Searchable: true, Analyzer: japaneseAnalyzer},
			{Name: domain.FieldDocumentID, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.FieldFileName, Type: domain.FieldTypeString, Searchable: true},
			{Name: domain.UrsaFieldBranch, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.UrsaFieldDocumentType, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.UrsaFieldYear, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.UrsaFieldConstructionName, Type: domain.FieldTypeString, Searchable: true},
			{Name: domain.UrsaFieldAuthor, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.UrsaFieldPath, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.UrsaFieldExtension, Type: domain.FieldTypeString, Filterable: true},
			{Name: domain.UrsaFieldFullPath, Type: domain.FieldTypeString, Searchable: true, Filterable: true},
			{Name: domain.UrsaFieldInterpolationPath, Type: domain.FieldTypeString, Searchable: true, Filterable: true},
			{Name: domain.FieldCreatedAt, Type: domain.FieldTypeDateTime, Filterable: true, Sortable: true},
			{Name: domain.UrsaFieldUpdatedAt, Type: domain.FieldTypeDateTime, Filterable: true, Sortable: true},
		},
		Semantic: &domain.SemanticConfig{
			Name:          ursaSemanticConfigName,
			TitleField:    domain.FieldFileName,
			ContentFields: []string{domain.FieldContent},
		},
		ScoringProfiles: []domain.ScoringProfile{
			{
				Name: ursaScoringProfileName,
				TextWeights: []domain.FieldWeight{
					{Field: domain.FieldFileName, Weight: 2},
					{Field: domain.UrsaFieldFullPath, Weight: 0.5},
					{Field: domain.UrsaFieldInterpolationPath, Weight: 0.5},
				},
			},
		},
		DefaultScoringProfile: ursaScoringProfileName,
	}
}
