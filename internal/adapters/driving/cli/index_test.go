package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

func resetIndexFlags() {
	indexEndpoint = ""
	indexKind = string(domain.IndexKindBot)
	indexMethod = string(domain.SearchMethodBM25)
}

func TestIndexCreateCmd_ExplicitEndpoint(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetIndexFlags()

	mock := adminService.(*mockAdminService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "create", "bot-42",
		"--endpoint", "https://search-b.example.net",
		"--kind", "bot",
		"--method", "hybrid"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, domain.Endpoint("https://search-b.example.net"), mock.lastCreate.endpoint)
	assert.Equal(t, "bot-42", mock.lastCreate.name)
	assert.Equal(t, domain.IndexKindBot, mock.lastCreate.kind)
	assert.Equal(t, domain.SearchMethodHybrid, mock.lastCreate.method)
	assert.Contains(t, buf.String(), "Created index")
}

func TestIndexCreateCmd_AllocatesWhenNoEndpoint(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetIndexFlags()

	mock := adminService.(*mockAdminService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "create", "bot-99"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, domain.Endpoint("https://search-a.example.net"), mock.lastCreate.endpoint,
		"an empty --endpoint allocates one by priority")
}

func TestIndexCreateCmd_AllocationFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetIndexFlags()

	endpointService.(*mockEndpointService).allocateErr = domain.ErrNoAvailableEndpoint

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index", "create", "bot-99"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoAvailableEndpoint)
}

func TestIndexCreateCmd_CreateFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetIndexFlags()

	adminService.(*mockAdminService).createErr = domain.ErrConflict

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index", "create", "bot-42",
		"--endpoint", "https://search-a.example.net"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestIndexDeleteCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetIndexFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "delete", "bot-42",
		"--endpoint", "https://search-a.example.net"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Deleted index")
}

func TestIndexDeleteCmd_RequiresEndpoint(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetIndexFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index", "delete", "bot-42"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--endpoint is required")
}

func TestIndexListCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetIndexFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "list",
		"--endpoint", "https://search-a.example.net"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "bot-1")
	assert.Contains(t, out, "bot-2")
}

func TestIndexListCmd_ServiceNotConfigured(t *testing.T) {
	oldService := adminService
	adminService = nil
	defer func() { adminService = oldService }()
	defer resetIndexFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index", "list"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "index admin service not configured")
}
