package domain

import (
	"bytes"
	"encoding/json"
)

// DataPointType classifies a normalized search result row.
type DataPointType string

// Available data point types.
const (
	// DataPointTypeInternal is a chunk of an internal document.
	DataPointTypeInternal DataPointType = "internal"

	// DataPointTypeQuestionAnswer is a curated Q/A row that coexists with
	// document chunks in the tenant index.
	DataPointTypeQuestionAnswer DataPointType = "question_answer"

	// DataPointTypeUrsaInternal is a document row from a legacy URSA index.
	DataPointTypeUrsaInternal DataPointType = "ursa_internal"
)

// DataPoint is the uniform representation of one search hit, regardless of
// which search method produced it. It lives only for the duration of a
// search call and is never persisted.
type DataPoint struct {
	// ChunkName is the display name of the matched chunk.
	ChunkName string

	// BlobPath locates the source blob, or the reconstructed folder path
	// for URSA results.
	BlobPath string

	// Content is the matched text content.
	Content string

	// PageNumber is the page within the source document, when known.
	PageNumber int

	// Type classifies the row.
	Type DataPointType

	// URL is an optional link to the source.
	URL string

	// DocumentID is the parent document id, when the row has one.
	DocumentID string

	// AdditionalInfo holds display fields for URSA results: provenance
	// labels and per-query word-occurrence counts.
	AdditionalInfo *AdditionalInfo
}

// AdditionalInfo is an ordered string-to-string mapping. Display order is
// part of the contract, so a plain map does not fit.
type AdditionalInfo struct {
	keys   []string
	values map[string]string
}

// NewAdditionalInfo creates an empty ordered mapping.
func NewAdditionalInfo() *AdditionalInfo {
	return &AdditionalInfo{values: make(map[string]string)}
}

// Set adds or replaces a key. Insertion order of first appearance is kept.
func (a *AdditionalInfo) Set(key, value string) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value for key and whether it is present.
func (a *AdditionalInfo) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (a *AdditionalInfo) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len returns the number of entries.
func (a *AdditionalInfo) Len() int {
	return len(a.keys)
}

// MarshalJSON renders the mapping as a JSON object in insertion order.
func (a *AdditionalInfo) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(a.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
