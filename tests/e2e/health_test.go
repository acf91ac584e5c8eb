package e2e_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getBaseURL(t *testing.T) string {
	baseURL := os.Getenv("TEST_BASE_URL")
	if baseURL == "" {
		t.Skip("TEST_BASE_URL not set, skipping E2E test")
	}
	return baseURL
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

func TestHealthEndpoint(t *testing.T) {
	baseURL := getBaseURL(t)

	resp, err := httpClient().Get(fmt.Sprintf("%s/health", baseURL))
	require.NoError(t, err, "Health check request failed")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode, "Health check should return 200")

	var health map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	baseURL := getBaseURL(t)

	// metrics is served at the server root, not under the API prefix
	resp, err := httpClient().Get(fmt.Sprintf("%s/../metrics", baseURL))
	require.NoError(t, err, "Metrics request failed")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
