package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	resp, err := httpClient().Post(url, "application/json", &body)
	require.NoError(t, err, "POST %s failed", url)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func putJSON(t *testing.T, url string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(payload))
	req, err := http.NewRequest(http.MethodPut, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpClient().Do(req)
	require.NoError(t, err, "PUT %s failed", url)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestQuestionnaireWizardFlow(t *testing.T) {
	baseURL := getBaseURL(t)

	resp, session := postJSON(t, fmt.Sprintf("%s/sessions", baseURL), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "Session creation should return 201")
	sessionID, ok := session["session_id"].(string)
	require.True(t, ok, "Response should carry a session_id")
	require.NotEmpty(t, sessionID)
	assert.Equal(t, float64(1), session["step"])

	// an unanswered step must not advance
	resp, _ = postJSON(t, fmt.Sprintf("%s/sessions/%s/next", baseURL, sessionID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	answers := map[string]interface{}{
		"budget":              3500,
		"hospital_network":    "any",
		"chronic_cover":       false,
		"dependants":          map[string]int{"adults": 1, "children": 0},
		"day_to_day_benefits": "basic",
		"province":            "western-cape",
		"lifestyle":           map[string]string{"area": "urban"},
		"dsp_comfort":         "medium",
	}
	resp, state := putJSON(t, fmt.Sprintf("%s/sessions/%s/answers", baseURL, sessionID), answers)
	require.Equal(t, http.StatusOK, resp.StatusCode, "Answer update should return 200")

	for i := 0; i < 8; i++ {
		resp, state = postJSON(t, fmt.Sprintf("%s/sessions/%s/next", baseURL, sessionID), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, "Step %d should advance", i+1)
	}

	complete, _ := state["is_complete"].(bool)
	assert.True(t, complete, "Wizard should be complete after the final step")
	if results, ok := state["results"].([]interface{}); ok {
		assert.LessOrEqual(t, len(results), 3, "At most three schemes should be recommended")
	}

	// stepping back from the completed wizard still works
	resp, state = postJSON(t, fmt.Sprintf("%s/sessions/%s/prev", baseURL, sessionID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, state = postJSON(t, fmt.Sprintf("%s/sessions/%s/reset", baseURL, sessionID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), state["step"])
}

func TestSchemeCatalogue(t *testing.T) {
	baseURL := getBaseURL(t)

	resp, err := httpClient().Get(fmt.Sprintf("%s/schemes", baseURL))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var schemes []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&schemes))
	for _, scheme := range schemes {
		active, _ := scheme["active"].(bool)
		assert.True(t, active, "Public catalogue should only list active schemes")
	}
}

func TestUnknownSessionReturns404(t *testing.T) {
	baseURL := getBaseURL(t)

	resp, err := httpClient().Get(fmt.Sprintf("%s/sessions/nonexistent-session", baseURL))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
