// Package file loads Indexgate configuration from a TOML file with
// environment variable overrides. Configuration is read once at process
// start; the resulting value is immutable.
package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

// Environment variable overrides.
const (
	EnvAPIKey             = "INDEXGATE_SEARCH_API_KEY"
	EnvAPIVersion         = "INDEXGATE_SEARCH_API_VERSION"
	EnvEndpointPrimary    = "INDEXGATE_ENDPOINT_PRIMARY"
	EnvEndpointSecondary  = "INDEXGATE_ENDPOINT_SECONDARY"
	EnvEndpointTertiary   = "INDEXGATE_ENDPOINT_TERTIARY"
	EnvEndpointQuaternary = "INDEXGATE_ENDPOINT_QUATERNARY"
)

// Slot priorities. The four endpoint slots are named, not a list; their
// priorities are fixed by position.
const (
	priorityPrimary    = 50
	prioritySecondary  = 100
	priorityTertiary   = 150
	priorityQuaternary = 200
)

// Config is the process-wide configuration value.
type Config struct {
	// APIKey is the shared admin key for all search endpoints.
	APIKey string

	// APIVersion is the REST api-version; empty selects the client default.
	APIVersion string

	// Endpoints is the configured endpoint allow-list, ordered by
	// ascending priority. Empty slots are omitted.
	Endpoints domain.EndpointConfig
}

// fileConfig mirrors the TOML layout.
type fileConfig struct {
	Search struct {
		APIKey     string `toml:"api_key"`
		APIVersion string `toml:"api_version"`
	} `toml:"search"`
	Endpoints struct {
		Primary    string `toml:"primary"`
		Secondary  string `toml:"secondary"`
		Tertiary   string `toml:"tertiary"`
		Quaternary string `toml:"quaternary"`
	} `toml:"endpoints"`
}

// Load reads the configuration file (optional) and applies environment
// overrides. A missing required value fails here, immediately, rather than
// at first use.
func Load(path string) (*Config, error) {
	var fc fileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Environment-only configuration is fine.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &fc); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		APIKey:     override(fc.Search.APIKey, EnvAPIKey),
		APIVersion: override(fc.Search.APIVersion, EnvAPIVersion),
	}

	slots := []struct {
		url      string
		env      string
		priority int
	}{
		{fc.Endpoints.Primary, EnvEndpointPrimary, priorityPrimary},
		{fc.Endpoints.Secondary, EnvEndpointSecondary, prioritySecondary},
		{fc.Endpoints.Tertiary, EnvEndpointTertiary, priorityTertiary},
		{fc.Endpoints.Quaternary, EnvEndpointQuaternary, priorityQuaternary},
	}
	for _, slot := range slots {
		url := override(slot.url, slot.env)
		if url == "" {
			continue
		}
		cfg.Endpoints.Endpoints = append(cfg.Endpoints.Endpoints, domain.EndpointWithPriority{
			Endpoint: domain.Endpoint(url),
			Priority: slot.priority,
		})
	}

	if len(cfg.Endpoints.Endpoints) == 0 {
		return nil, fmt.Errorf("no search endpoints configured")
	}
	return cfg, nil
}

// override returns the environment value when set, the file value otherwise.
func override(fileValue, envName string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return fileValue
}
