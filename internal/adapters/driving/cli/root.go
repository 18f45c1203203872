// Package cli provides the cobra-based admin command line interface.
package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/indexgate/internal/core/ports/driving"
	"github.com/custodia-labs/indexgate/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services the commands operate on, injected by the composition root.
var (
	endpointService driving.EndpointService
	adminService    driving.IndexAdminService
	searchService   driving.SearchService
	chunkService    driving.ChunkService
)

// Output styles for human-readable rendering.
var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Faint(true)
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "indexgate",
	Short: "Administer the search-index layer of the RAG platform",
	Long: `Indexgate administers the sharded search-index layer:
endpoint allocation, index creation, search and bulk chunk mutation.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Services bundles the driving ports the CLI needs.
type Services struct {
	Endpoints driving.EndpointService
	Admin     driving.IndexAdminService
	Search    driving.SearchService
	Chunks    driving.ChunkService
}

// SetServices injects the service implementations. Must be called before Execute.
func SetServices(s Services) {
	endpointService = s.Endpoints
	adminService = s.Admin
	searchService = s.Search
	chunkService = s.Chunks
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
