package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "********5678", MaskPhone("+27712345678"))
	assert.Equal(t, "****", MaskPhone("123"))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j****@example.com", MaskEmail("john@example.com"))
	assert.Equal(t, "****", MaskEmail("no-at-sign"))
	assert.Equal(t, "****", MaskEmail("@example.com"))
}

func TestMaskIDNumber(t *testing.T) {
	assert.Equal(t, "800101*******", MaskIDNumber("8001015009087"))
	assert.Equal(t, "*************", MaskIDNumber("12345"))
}

func TestMaskSensitiveData(t *testing.T) {
	data := map[string]interface{}{
		"email":      "john@example.com",
		"phone":      "0712345678",
		"event_type": "page_view",
	}

	masked := MaskSensitiveData(data)

	assert.Equal(t, "********", masked["email"])
	assert.Equal(t, "********", masked["phone"])
	assert.Equal(t, "page_view", masked["event_type"])
}
