package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

var (
	searchEndpoint string
	searchIndex    string
	searchMethod   string
	searchFilter   string
	searchLimit    int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]...",
	Short: "Search an index",
	Long: `Executes a search against one index using the given search method.
Vector-based methods (vector, hybrid, semantic_hybrid) need a query
embedding and are only reachable through the job workers, not this command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchEndpoint, "endpoint", "", "endpoint URL (required)")
	searchCmd.Flags().StringVar(&searchIndex, "index", "", "index name (required)")
	searchCmd.Flags().StringVar(&searchMethod, "method", string(domain.SearchMethodBM25), "search method")
	searchCmd.Flags().StringVar(&searchFilter, "filter", "", "filter expression")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}
	if searchEndpoint == "" || searchIndex == "" {
		return errors.New("--endpoint and --index are required")
	}

	target := domain.IndexTarget{
		Endpoint:  domain.Endpoint(searchEndpoint),
		IndexName: searchIndex,
	}
	query := domain.SearchQuery{
		Method:        domain.SearchMethod(searchMethod),
		Queries:       args,
		Filter:        searchFilter,
		DocumentLimit: searchLimit,
	}

	points, err := searchService.SearchDocuments(context.Background(), target, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, points)
	}
	return outputSearchTable(cmd, points)
}

func outputSearchJSON(cmd *cobra.Command, points []domain.DataPoint) error {
	data, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, points []domain.DataPoint) error {
	if len(points) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println(headerStyle.Render("Results:"))
	cmd.Println()
	for i, p := range points {
		cmd.Printf("  [%d] %s %s\n", i+1, p.ChunkName, scoreStyle.Render(string(p.Type)))
		if p.BlobPath != "" {
			cmd.Printf("      %s %s\n", labelStyle.Render("path:"), p.BlobPath)
		}
		if p.AdditionalInfo != nil {
			for _, key := range p.AdditionalInfo.Keys() {
				value, _ := p.AdditionalInfo.Get(key)
				cmd.Printf("      %s %s\n", labelStyle.Render(key+":"), value)
			}
		}
		snippet := p.Content
		if len([]rune(snippet)) > 100 {
			snippet = string([]rune(snippet)[:100]) + "..."
		}
		if snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}
	return nil
}
