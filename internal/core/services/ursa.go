package services

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/indexgate/internal/core/domain"
	"github.com/custodia-labs/indexgate/internal/core/ports/driven"
)

// URSA display labels. The consumers of URSA results render these keys
// verbatim, so they are part of the contract.
const (
	ursaLabelBranch           = "支店"
	ursaLabelYear             = "年度"
	ursaLabelConstructionName = "工事名"
	ursaLabelAuthor           = "作成者"
	ursaLabelFolder           = "フォルダ"
)

// safetyDocumentTypeClause marks a safety-related document-type filter.
// When it is active, per-document detail is withheld from the display
// mapping.
const safetyDocumentTypeClause = "document_type eq '安全関連'"

// ursaMandatoryClause excludes rows without a parent document.
const ursaMandatoryClause = "document_id ne null"

// buildUrsaFilter composes the URSA filter string: the mandatory
// document-id clause, the caller-supplied filter and any additional clause
// passed through the options map, ANDed in that order. For URSA_SEMANTIC
// the legacy "extention" field name is rewritten before sending.
func buildUrsaFilter(query domain.SearchQuery) string {
	clauses := []string{ursaMandatoryClause}
	if query.Filter != "" {
		clauses = append(clauses, query.Filter)
	}
	if extra := query.Options[domain.UrsaAdditionalFilterOption]; extra != "" {
		clauses = append(clauses, extra)
	}

	filter := strings.Join(clauses, " and ")
	if query.Method == domain.SearchMethodUrsaSemantic {
		filter = rewriteLegacyExtensionField(filter)
	}
	return filter
}

// rewriteLegacyExtensionField rewrites the historical "extention" schema
// typo to "extension" inside a filter string. The pre-2024-08 URSA schema
// shipped with the misspelled field; callers still build filters against
// it. Compatibility shim, keep until the legacy indexes are retired.
func rewriteLegacyExtensionField(filter string) string {
	return strings.ReplaceAll(filter, domain.UrsaFieldExtentionLegacy, domain.UrsaFieldExtension)
}

// normalizeUrsaRows converts raw URSA rows into data points: reconstructed
// path split into folder and chunk name, per-term occurrence counts, and
// the Japanese-labelled display mapping.
func (s *SearchService) normalizeUrsaRows(
	rows []driven.Document, query domain.SearchQuery, activeFilter string,
) []domain.DataPoint {
	redacted := strings.Contains(activeFilter, safetyDocumentTypeClause)

	points := make([]domain.DataPoint, 0, len(rows))
	for _, row := range rows {
		path := ursaRowPath(row, query.Method)
		folder, chunkName := splitUrsaPath(path)
		counts := countTermOccurrences(query.Queries, ursaCountableText(row))

		points = append(points, domain.DataPoint{
			ChunkName:      chunkName,
			BlobPath:       folder,
			Content:        row.String(domain.FieldContent),
			Type:           domain.DataPointTypeUrsaInternal,
			DocumentID:     row.String(domain.FieldDocumentID),
			AdditionalInfo: formatUrsaAdditionalInfo(row, folder, counts, redacted),
		})
	}
	return points
}

// ursaRowPath reconstructs the filesystem-style path of a row. The older
// generation has no stored path, so it is rebuilt from the provenance
// fields; the newer generation stores it verbatim.
func ursaRowPath(row driven.Document, method domain.SearchMethod) string {
	if method == domain.SearchMethodUrsaSemantic {
		return row.String(domain.UrsaFieldFullPath)
	}
	return fmt.Sprintf(`Z:\%s\%s\%s年度\%s\%s`,
		row.String(domain.UrsaFieldBranch),
		row.String(domain.UrsaFieldDocumentType),
		row.String(domain.UrsaFieldYear),
		row.String(domain.UrsaFieldConstructionName),
		row.String(domain.UrsaFieldPath),
	)
}

// splitUrsaPath splits a path into its folder part and file/chunk name.
// The separator convention is detected by the presence of a backslash.
func splitUrsaPath(path string) (folderPath, chunkName string) {
	sep := "/"
	if strings.Contains(path, `\`) {
		sep = `\`
	}
	idx := strings.LastIndex(path, sep)
	if idx < 0 {
		return "", path
	}
	return path[:idx], path[idx+len(sep):]
}

// ursaCountableText concatenates the row fields the term counts run over.
func ursaCountableText(row driven.Document) string {
	return row.String(domain.FieldContent) +
		row.String(domain.FieldFileName) +
		row.String(domain.UrsaFieldConstructionName)
}

// countTermOccurrences counts literal occurrences of each display query
// term inside the text. Both sides are NFKC-normalized first so full-width
// and half-width spellings match.
func countTermOccurrences(terms []string, text string) []termCount {
	haystack := norm.NFKC.String(text)
	counts := make([]termCount, 0, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		counts = append(counts, termCount{
			term:  term,
			count: strings.Count(haystack, norm.NFKC.String(term)),
		})
	}
	return counts
}

// termCount is the occurrence count of one display query term.
type termCount struct {
	term  string
	count int
}

// formatUrsaAdditionalInfo builds the ordered display mapping of an URSA
// result. The normal form carries the full provenance detail; when a
// safety-related document-type filter is active the mapping is reduced to
// branch, year and the term counts.
func formatUrsaAdditionalInfo(row driven.Document, folderPath string, counts []termCount, redacted bool) *domain.AdditionalInfo {
	info := domain.NewAdditionalInfo()
	info.Set(ursaLabelBranch, row.String(domain.UrsaFieldBranch))
	info.Set(ursaLabelYear, row.String(domain.UrsaFieldYear)+"年度")
	if !redacted {
		info.Set(ursaLabelConstructionName, row.String(domain.UrsaFieldConstructionName))
		info.Set(ursaLabelAuthor, row.String(domain.UrsaFieldAuthor))
		info.Set(ursaLabelFolder, folderPath)
	}
	for _, c := range counts {
		info.Set(c.term, strconv.Itoa(c.count))
	}
	return info
}
