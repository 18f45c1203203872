package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

func resetSearchFlags() {
	searchEndpoint = ""
	searchIndex = ""
	searchMethod = string(domain.SearchMethodBM25)
	searchFilter = ""
	searchLimit = 10
	searchJSON = false
}

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]...", searchCmd.Use)
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestSearchCmd_RequiresEndpointAndIndex(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "query"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--endpoint and --index are required")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestSearchCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search",
		"--endpoint", "https://search-a.example.net",
		"--index", "bot-42",
		"施工計画"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Results:")
	assert.Contains(t, buf.String(), "report_p3")
}

func TestSearchCmd_PassesMethodAndQueries(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	mock := searchService.(*mockSearchService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search",
		"--endpoint", "https://search-a.example.net",
		"--index", "ursa-1",
		"--method", "ursa",
		"--filter", "branch eq '東京'",
		"-n", "25",
		"橋梁", "補修"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, domain.SearchMethodUrsa, mock.lastQuery.Method)
	assert.Equal(t, []string{"橋梁", "補修"}, mock.lastQuery.Queries)
	assert.Equal(t, "branch eq '東京'", mock.lastQuery.Filter)
	assert.Equal(t, 25, mock.lastQuery.DocumentLimit)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search",
		"--endpoint", "https://search-a.example.net",
		"--index", "bot-42",
		"--json",
		"query"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"ChunkName\"")
	assert.Contains(t, buf.String(), "report_p3")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	oldService := searchService
	searchService = nil
	defer func() { searchService = oldService }()
	defer resetSearchFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "query"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestSearchCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	searchService.(*mockSearchService).searchErr = domain.ErrServiceUnavailable

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search",
		"--endpoint", "https://search-a.example.net",
		"--index", "bot-42",
		"query"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestOutputSearchTable_EmptyResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputSearchTable(rootCmd, nil)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found")
}

func TestOutputSearchTable_AdditionalInfo(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	info := domain.NewAdditionalInfo()
	info.Set("支店", "東京支店")
	info.Set("橋梁", "2")

	err := outputSearchTable(rootCmd, []domain.DataPoint{{
		ChunkName:      "補修計画書.pdf",
		BlobPath:       `Z:\東京支店\工事書類\2021年度\橋梁補修工事`,
		Content:        "本文",
		Type:           domain.DataPointTypeUrsaInternal,
		AdditionalInfo: info,
	}})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "補修計画書.pdf")
	assert.Contains(t, out, "東京支店")
	assert.Contains(t, out, "橋梁")
}

func TestOutputSearchJSON_EmptyResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputSearchJSON(rootCmd, []domain.DataPoint{})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[]")
}
