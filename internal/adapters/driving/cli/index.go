package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

var (
	indexEndpoint string
	indexKind     string
	indexMethod   string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage physical search indexes",
}

var indexCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an index on an endpoint",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexCreate,
}

var indexDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete an index from an endpoint",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexDelete,
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the indexes on an endpoint",
	RunE:  runIndexList,
}

func init() {
	indexCreateCmd.Flags().StringVar(&indexEndpoint, "endpoint", "", "endpoint URL (empty allocates one by priority)")
	indexCreateCmd.Flags().StringVar(&indexKind, "kind", string(domain.IndexKindBot), "index kind (bot, tenant, ursa)")
	indexCreateCmd.Flags().StringVar(&indexMethod, "method", string(domain.SearchMethodBM25), "search method (selects the ursa schema generation)")

	indexDeleteCmd.Flags().StringVar(&indexEndpoint, "endpoint", "", "endpoint URL (required)")
	indexListCmd.Flags().StringVar(&indexEndpoint, "endpoint", "", "endpoint URL (required)")

	indexCmd.AddCommand(indexCreateCmd, indexDeleteCmd, indexListCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexCreate(cmd *cobra.Command, args []string) error {
	if adminService == nil || endpointService == nil {
		return errors.New("index admin service not configured")
	}

	ctx := context.Background()
	name := args[0]

	endpoint := domain.Endpoint(indexEndpoint)
	if endpoint == "" {
		allocated, err := endpointService.Allocate(ctx, name)
		if err != nil {
			return err
		}
		endpoint = allocated
	}

	err := adminService.CreateIndex(ctx, endpoint, name, domain.IndexKind(indexKind), domain.SearchMethod(indexMethod))
	if err != nil {
		return err
	}
	cmd.Printf("Created index %q on %s\n", name, endpoint)
	return nil
}

func runIndexDelete(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errors.New("index admin service not configured")
	}
	if indexEndpoint == "" {
		return errors.New("--endpoint is required")
	}

	target := domain.IndexTarget{Endpoint: domain.Endpoint(indexEndpoint), IndexName: args[0]}
	if err := adminService.DeleteIndex(context.Background(), target); err != nil {
		return err
	}
	cmd.Printf("Deleted index %q\n", args[0])
	return nil
}

func runIndexList(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("index admin service not configured")
	}
	if indexEndpoint == "" {
		return errors.New("--endpoint is required")
	}

	names, err := adminService.ListIndexNames(context.Background(), domain.Endpoint(indexEndpoint))
	if err != nil {
		return err
	}

	cmd.Println(headerStyle.Render("Indexes on " + indexEndpoint + ":"))
	for _, name := range names {
		cmd.Printf("  %s\n", name)
	}
	return nil
}
