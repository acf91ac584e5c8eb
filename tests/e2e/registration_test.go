package e2e_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationWizardFlow(t *testing.T) {
	baseURL := getBaseURL(t)

	resp, reg := postJSON(t, fmt.Sprintf("%s/registrations", baseURL), map[string]string{})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "Registration start should return 201")
	registrationID, ok := reg["registration_id"].(string)
	require.True(t, ok, "Response should carry a registration_id")
	require.NotEmpty(t, registrationID)

	email := fmt.Sprintf("e2e-%s@example.com", registrationID[:8])
	resp, reg = putJSON(t, fmt.Sprintf("%s/registrations/%s/account", baseURL, registrationID), map[string]string{
		"email":            email,
		"phone":            "0712345678",
		"password":         "e2eTestPassword1",
		"confirm_password": "e2eTestPassword1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "Account step should return 200")

	// the account step cannot be left without phone verification
	resp, _ = postJSON(t, fmt.Sprintf("%s/registrations/%s/next", baseURL, registrationID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = postJSON(t, fmt.Sprintf("%s/registrations/%s/otp/bypass", baseURL, registrationID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Skipf("OTP bypass not allowed in this environment (status %d), skipping rest of flow", resp.StatusCode)
	}

	resp, reg = postJSON(t, fmt.Sprintf("%s/registrations/%s/next", baseURL, registrationID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), reg["step"])

	resp, _ = putJSON(t, fmt.Sprintf("%s/registrations/%s/personal", baseURL, registrationID), map[string]string{
		"first_name":  "End",
		"last_name":   "ToEnd",
		"id_number":   "8001015009087",
		"address":     "1 Test Street",
		"city":        "Cape Town",
		"postal_code": "8001",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "Personal step should return 200")

	resp, _ = postJSON(t, fmt.Sprintf("%s/registrations/%s/next", baseURL, registrationID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = postJSON(t, fmt.Sprintf("%s/registrations/%s/documents", baseURL, registrationID), map[string]string{
		"type": "id_document",
		"path": "uploads/e2e-id.pdf",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "Document attach should return 200")

	resp, _ = postJSON(t, fmt.Sprintf("%s/registrations/%s/next", baseURL, registrationID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// finalizing without consent is rejected
	resp, _ = postJSON(t, fmt.Sprintf("%s/registrations/%s/finalize", baseURL, registrationID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = putJSON(t, fmt.Sprintf("%s/registrations/%s/consents", baseURL, registrationID), map[string]bool{
		"popia":      true,
		"disclosure": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "Consent step should return 200")

	resp, reg = postJSON(t, fmt.Sprintf("%s/registrations/%s/finalize", baseURL, registrationID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "Finalize should return 200")
	assert.Equal(t, float64(5), reg["step"])
	assert.NotEmpty(t, reg["account_id"])

	// a completed registration cannot be finalized again
	resp, _ = postJSON(t, fmt.Sprintf("%s/registrations/%s/finalize", baseURL, registrationID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestContactFormSubmission(t *testing.T) {
	baseURL := getBaseURL(t)

	resp, _ := postJSON(t, fmt.Sprintf("%s/contact", baseURL), map[string]string{
		"name":    "E2E Tester",
		"email":   "contact-e2e@example.com",
		"message": "Testing the contact form",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "Contact submission should return 201")
}
