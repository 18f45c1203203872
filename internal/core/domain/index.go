package domain

// IndexKind identifies which of the three index schemas an index uses.
type IndexKind string

// Available index kinds.
const (
	// IndexKindBot is a per-bot document index.
	IndexKindBot IndexKind = "bot"

	// IndexKindTenant is a per-tenant index holding document chunks and
	// Q/A rows side by side.
	IndexKindTenant IndexKind = "tenant"

	// IndexKindUrsa is a legacy URSA index; the concrete schema generation
	// is selected by SearchMethod (URSA or URSA_SEMANTIC).
	IndexKindUrsa IndexKind = "ursa"
)

// IsValid returns true if the index kind is recognised.
func (k IndexKind) IsValid() bool {
	switch k {
	case IndexKindBot, IndexKindTenant, IndexKindUrsa:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k IndexKind) String() string {
	return string(k)
}

// Declarative field types, mapped to the service's wire types by the adapter.
const (
	FieldTypeString   = "string"
	FieldTypeInt      = "int"
	FieldTypeBool     = "bool"
	FieldTypeDateTime = "datetime"
	FieldTypeVector   = "vector"
)

// IndexField declares one field of an index schema.
type IndexField struct {
	// Name is the field name.
	Name string

	// Type is one of the FieldType constants.
	Type string

	// Key marks the primary key field.
	Key bool

	// Searchable enables full-text search on the field.
	Searchable bool

	// Filterable enables filter expressions on the field.
	Filterable bool

	// Sortable enables order-by on the field.
	Sortable bool

	// Analyzer names the full-text analyzer, when Searchable.
	Analyzer string

	// Dimensions is the vector size, for FieldTypeVector.
	Dimensions int

	// VectorProfile names the vector search profile, for FieldTypeVector.
	VectorProfile string
}

// VectorSearchConfig declares the HNSW vector search profile of an index.
type VectorSearchConfig struct {
	// ProfileName is referenced by vector fields.
	ProfileName string

	// AlgorithmName names the HNSW algorithm configuration.
	AlgorithmName string

	// Metric is the similarity metric.
	Metric string

	// M is the HNSW bidirectional link count.
	M int

	// EfConstruction is the HNSW construction-time candidate list size.
	EfConstruction int

	// EfSearch is the HNSW query-time candidate list size.
	EfSearch int
}

// SemanticConfig declares a named semantic re-ranking configuration.
type SemanticConfig struct {
	// Name is the configuration name referenced by semantic queries.
	Name string

	// TitleField is the field treated as the title; may be empty.
	TitleField string

	// ContentFields are the fields treated as body content.
	ContentFields []string
}

// FieldWeight is one weighted field of a scoring profile.
type FieldWeight struct {
	// Field is the field name.
	Field string

	// Weight is the boost factor.
	Weight float64
}

// ScoringProfile declares a named text-weight scoring profile.
type ScoringProfile struct {
	// Name is the profile name.
	Name string

	// TextWeights are the boosted fields in declaration order.
	TextWeights []FieldWeight
}

// IndexSchema is the declarative schema for one index. It is produced by
// the schema builder and consumed by the index-creation call; it never
// reaches the network by itself.
type IndexSchema struct {
	// Name is the index name.
	Name string

	// Fields are the index fields in declaration order.
	Fields []IndexField

	// VectorSearch is the vector profile, when the schema has vector fields.
	VectorSearch *VectorSearchConfig

	// Semantic is the semantic re-ranking configuration, when present.
	Semantic *SemanticConfig

	// ScoringProfiles are named scoring profiles, when present.
	ScoringProfiles []ScoringProfile

	// DefaultScoringProfile names the profile applied when none is given.
	DefaultScoringProfile string
}

// Field returns the field with the given name and whether it exists.
func (s IndexSchema) Field(name string) (IndexField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return IndexField{}, false
}
