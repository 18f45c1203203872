package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/indexgate/internal/core/domain"
	"github.com/custodia-labs/indexgate/internal/core/ports/driven"
)

func TestWireSearchRequest_OmitsEmptyClauses(t *testing.T) {
	body := wireSearchRequest(driven.SearchRequest{SearchText: "q", Top: 10})

	assert.Equal(t, "q", body["search"])
	assert.Equal(t, 10, body["top"])
	assert.Equal(t, false, body["count"])

	_, hasFilter := body["filter"]
	assert.False(t, hasFilter)
	_, hasSkip := body["skip"]
	assert.False(t, hasSkip)
	_, hasSemantic := body["queryType"]
	assert.False(t, hasSemantic)
	_, hasVector := body["vectorQueries"]
	assert.False(t, hasVector)
}

func TestWireSearchRequest_SemanticWithoutExtractions(t *testing.T) {
	body := wireSearchRequest(driven.SearchRequest{
		Semantic: &driven.SemanticOptions{ConfigurationName: "ursa-semantic-config"},
	})

	assert.Equal(t, "semantic", body["queryType"])
	assert.Equal(t, "ursa-semantic-config", body["semanticConfiguration"])
	_, hasCaptions := body["captions"]
	assert.False(t, hasCaptions)
	_, hasAnswers := body["answers"]
	assert.False(t, hasAnswers)
}

func TestWireField_Types(t *testing.T) {
	tests := []struct {
		field    domain.IndexField
		wantType string
	}{
		{domain.IndexField{Name: "id", Type: domain.FieldTypeString, Key: true}, edmString},
		{domain.IndexField{Name: "page_number", Type: domain.FieldTypeInt}, edmInt32},
		{domain.IndexField{Name: "is_vectorized", Type: domain.FieldTypeBool}, edmBoolean},
		{domain.IndexField{Name: "created_at", Type: domain.FieldTypeDateTime}, edmDateTimeOffset},
	}
	for _, tt := range tests {
		got := wireField(tt.field)
		assert.Equal(t, tt.wantType, got["type"], "field %s", tt.field.Name)
	}
}

func TestWireField_Vector(t *testing.T) {
	got := wireField(domain.IndexField{
		Name:          "content_vector",
		Type:          domain.FieldTypeVector,
		Dimensions:    domain.VectorDimensions,
		VectorProfile: "vector-profile",
	})

	assert.Equal(t, edmSingleVector, got["type"])
	assert.Equal(t, domain.VectorDimensions, got["dimensions"])
	assert.Equal(t, "vector-profile", got["vectorSearchProfile"])
	assert.Equal(t, true, got["searchable"])
	_, hasKey := got["key"]
	assert.False(t, hasKey, "vector fields carry no scalar attributes")
}

func TestWireField_Analyzer(t *testing.T) {
	got := wireField(domain.IndexField{
		Name:       "content",
		Type:       domain.FieldTypeString,
		Searchable: true,
		Analyzer:   "ja.lucene",
	})

	assert.Equal(t, "ja.lucene", got["analyzer"])
	assert.Equal(t, true, got["searchable"])
}

func TestWireIndex_VectorSearch(t *testing.T) {
	body := wireIndex(domain.IndexSchema{
		Name: "bot-42",
		VectorSearch: &domain.VectorSearchConfig{
			ProfileName:    "vector-profile",
			AlgorithmName:  "hnsw-config",
			Metric:         "cosine",
			M:              domain.HNSWParameterM,
			EfConstruction: domain.HNSWParameterEfConstruction,
			EfSearch:       domain.HNSWParameterEfSearch,
		},
	})

	vs, ok := body["vectorSearch"].(map[string]any)
	require.True(t, ok)

	algorithms := vs["algorithms"].([]map[string]any)
	require.Len(t, algorithms, 1)
	assert.Equal(t, "hnsw", algorithms[0]["kind"])
	params := algorithms[0]["hnswParameters"].(map[string]any)
	assert.Equal(t, domain.HNSWParameterM, params["m"])
	assert.Equal(t, domain.HNSWParameterEfConstruction, params["efConstruction"])
	assert.Equal(t, domain.HNSWParameterEfSearch, params["efSearch"])
	assert.Equal(t, "cosine", params["metric"])

	profiles := vs["profiles"].([]map[string]any)
	require.Len(t, profiles, 1)
	assert.Equal(t, "vector-profile", profiles[0]["name"])
	assert.Equal(t, "hnsw-config", profiles[0]["algorithm"])
}

func TestWireIndex_SemanticWithoutTitle(t *testing.T) {
	body := wireIndex(domain.IndexSchema{
		Name: "ursa-1",
		Semantic: &domain.SemanticConfig{
			Name:          "semantic-config",
			ContentFields: []string{"content"},
		},
	})

	semantic := body["semantic"].(map[string]any)
	configs := semantic["configurations"].([]map[string]any)
	require.Len(t, configs, 1)
	prioritized := configs[0]["prioritizedFields"].(map[string]any)
	_, hasTitle := prioritized["titleField"]
	assert.False(t, hasTitle)
}

func TestWireIndex_ScoringProfiles(t *testing.T) {
	body := wireIndex(domain.IndexSchema{
		Name: "ursa-2",
		ScoringProfiles: []domain.ScoringProfile{{
			Name: "ursa-scoring-profile",
			TextWeights: []domain.FieldWeight{
				{Field: "file_name", Weight: 2},
				{Field: "full_path", Weight: 0.5},
			},
		}},
		DefaultScoringProfile: "ursa-scoring-profile",
	})

	profiles := body["scoringProfiles"].([]map[string]any)
	require.Len(t, profiles, 1)
	text := profiles[0]["text"].(map[string]any)
	weights := text["weights"].(map[string]float64)
	assert.Equal(t, 2.0, weights["file_name"])
	assert.Equal(t, 0.5, weights["full_path"])
	assert.Equal(t, "ursa-scoring-profile", body["defaultScoringProfile"])
}
