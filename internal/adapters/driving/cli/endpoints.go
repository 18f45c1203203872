package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "Inspect the configured search endpoints",
	RunE:  runEndpoints,
}

var endpointsAllocateCmd = &cobra.Command{
	Use:   "allocate [index-name]",
	Short: "Show which endpoint a new index would be placed on",
	Args:  cobra.ExactArgs(1),
	RunE:  runEndpointsAllocate,
}

func init() {
	endpointsCmd.AddCommand(endpointsAllocateCmd)
	rootCmd.AddCommand(endpointsCmd)
}

func runEndpoints(cmd *cobra.Command, _ []string) error {
	if endpointService == nil {
		return errors.New("endpoint service not configured")
	}

	cmd.Println(headerStyle.Render("Configured endpoints (by priority):"))
	for _, ep := range endpointService.ListEndpoints() {
		cmd.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%3d", ep.Priority)), ep.Endpoint)
	}
	return nil
}

func runEndpointsAllocate(cmd *cobra.Command, args []string) error {
	if endpointService == nil {
		return errors.New("endpoint service not configured")
	}

	endpoint, err := endpointService.Allocate(context.Background(), args[0])
	if err != nil {
		return err
	}
	cmd.Printf("Index %q would be created on %s\n", args[0], endpoint)
	return nil
}
