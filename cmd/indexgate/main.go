// Command indexgate is the admin CLI for the search-index layer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/indexgate/internal/adapters/driven/config/file"
	"github.com/custodia-labs/indexgate/internal/adapters/driven/searchindex/azure"
	"github.com/custodia-labs/indexgate/internal/adapters/driving/cli"
	"github.com/custodia-labs/indexgate/internal/core/services"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "indexgate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env is optional; real deployments configure the process
	// environment directly.
	_ = godotenv.Load()

	cfg, err := file.Load(configPath())
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	client, err := azure.NewClient(azure.Config{
		APIKey:     cfg.APIKey,
		APIVersion: cfg.APIVersion,
	})
	if err != nil {
		return fmt.Errorf("build search client: %w", err)
	}

	registry := services.NewEndpointRegistry(cfg.Endpoints, client)
	indexer := services.NewIndexerService(client, registry)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Endpoints: registry,
		Admin:     services.NewIndexAdminService(client, registry, services.NewSchemaBuilder()),
		Search:    services.NewSearchService(client, registry),
		Chunks:    services.NewChunkService(indexer),
	})
	return cli.Execute()
}

// configPath resolves the configuration file location.
func configPath() string {
	if p := os.Getenv("INDEXGATE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.indexgate/config.toml"
}
