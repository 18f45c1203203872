package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointConfig_Contains(t *testing.T) {
	cfg := EndpointConfig{
		Endpoints: []EndpointWithPriority{
			{Endpoint: "https://search-a.example.net", Priority: 50},
			{Endpoint: "https://search-b.example.net", Priority: 100},
		},
	}

	assert.True(t, cfg.Contains("https://search-a.example.net"))
	assert.True(t, cfg.Contains("https://search-b.example.net"))
	assert.False(t, cfg.Contains("https://search-c.example.net"))
	assert.False(t, cfg.Contains(""))
}

func TestEndpointConfig_Contains_Empty(t *testing.T) {
	assert.False(t, EndpointConfig{}.Contains("https://search-a.example.net"))
}
