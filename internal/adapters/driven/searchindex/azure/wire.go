package azure

import (
	"strings"

	"github.com/custodia-labs/indexgate/internal/core/domain"
	"github.com/custodia-labs/indexgate/internal/core/ports/driven"
)

// Edm wire types of the Azure AI Search field model.
const (
	edmString         = "Edm.String"
	edmInt32          = "Edm.Int32"
	edmBoolean        = "Edm.Boolean"
	edmDateTimeOffset = "Edm.DateTimeOffset"
	edmSingleVector   = "Collection(Edm.Single)"
)

// wireSearchRequest translates the port-level request into the REST body.
func wireSearchRequest(req driven.SearchRequest) map[string]any {
	body := map[string]any{
		"search": req.SearchText,
		"top":    req.Top,
		"count":  req.IncludeTotalCount,
	}
	if req.Filter != "" {
		body["filter"] = req.Filter
	}
	if req.Skip > 0 {
		body["skip"] = req.Skip
	}
	if len(req.OrderBy) > 0 {
		body["orderby"] = strings.Join(req.OrderBy, ",")
	}
	if len(req.Select) > 0 {
		body["select"] = strings.Join(req.Select, ",")
	}
	if len(req.VectorQueries) > 0 {
		queries := make([]map[string]any, 0, len(req.VectorQueries))
		for _, vq := range req.VectorQueries {
			queries = append(queries, map[string]any{
				"kind":   "vector",
				"vector": vq.Vector,
				"k":      vq.KNearestNeighbors,
				"fields": strings.Join(vq.Fields, ","),
			})
		}
		body["vectorQueries"] = queries
	}
	if req.Semantic != nil {
		body["queryType"] = "semantic"
		body["semanticConfiguration"] = req.Semantic.ConfigurationName
		if req.Semantic.Captions {
			body["captions"] = "extractive"
		}
		if req.Semantic.Answers {
			body["answers"] = "extractive"
		}
	}
	return body
}

// wireIndex translates the declarative schema into the REST index definition.
func wireIndex(schema domain.IndexSchema) map[string]any {
	fields := make([]map[string]any, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		fields = append(fields, wireField(f))
	}

	body := map[string]any{
		"name":   schema.Name,
		"fields": fields,
	}

	if schema.VectorSearch != nil {
		vs := schema.VectorSearch
		body["vectorSearch"] = map[string]any{
			"algorithms": []map[string]any{{
				"name": vs.AlgorithmName,
				"kind": "hnsw",
				"hnswParameters": map[string]any{
					"m":              vs.M,
					"efConstruction": vs.EfConstruction,
					"efSearch":       vs.EfSearch,
					"metric":         vs.Metric,
				},
			}},
			"profiles": []map[string]any{{
				"name":      vs.ProfileName,
				"algorithm": vs.AlgorithmName,
			}},
		}
	}

	if schema.Semantic != nil {
		prioritized := map[string]any{}
		if schema.Semantic.TitleField != "" {
			prioritized["titleField"] = map[string]any{"fieldName": schema.Semantic.TitleField}
		}
		content := make([]map[string]any, 0, len(schema.Semantic.ContentFields))
		for _, f := range schema.Semantic.ContentFields {
			content = append(content, map[string]any{"fieldName": f})
		}
		prioritized["prioritizedContentFields"] = content

		body["semantic"] = map[string]any{
			"configurations": []map[string]any{{
				"name":              schema.Semantic.Name,
				"prioritizedFields": prioritized,
			}},
		}
	}

	if len(schema.ScoringProfiles) > 0 {
		profiles := make([]map[string]any, 0, len(schema.ScoringProfiles))
		for _, p := range schema.ScoringProfiles {
			weights := make(map[string]float64, len(p.TextWeights))
			for _, w := range p.TextWeights {
				weights[w.Field] = w.Weight
			}
			profiles = append(profiles, map[string]any{
				"name": p.Name,
				"text": map[string]any{"weights": weights},
			})
		}
		body["scoringProfiles"] = profiles
		if schema.DefaultScoringProfile != "" {
			body["defaultScoringProfile"] = schema.DefaultScoringProfile
		}
	}

	return body
}

// wireField translates one declarative field.
func wireField(f domain.IndexField) map[string]any {
	field := map[string]any{
		"name": f.Name,
	}

	switch f.Type {
	case domain.FieldTypeInt:
		field["type"] = edmInt32
	case domain.FieldTypeBool:
		field["type"] = edmBoolean
	case domain.FieldTypeDateTime:
		field["type"] = edmDateTimeOffset
	case domain.FieldTypeVector:
		field["type"] = edmSingleVector
		field["dimensions"] = f.Dimensions
		field["vectorSearchProfile"] = f.VectorProfile
		field["searchable"] = true
		return field
	default:
		field["type"] = edmString
	}

	field["key"] = f.Key
	field["searchable"] = f.Searchable
	field["filterable"] = f.Filterable
	field["sortable"] = f.Sortable
	if f.Analyzer != "" {
		field["analyzer"] = f.Analyzer
	}
	return field
}
