package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"local with spaces", "071 234 5678", "+27712345678", false},
		{"local compact", "0712345678", "+27712345678", false},
		{"country code no plus", "27712345678", "+27712345678", false},
		{"e164", "+27712345678", "+27712345678", false},
		{"too short", "071", "", true},
		{"garbage", "hello", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhoneNumber(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsMobileNumber(t *testing.T) {
	assert.True(t, IsMobileNumber("+27712345678"))
	assert.False(t, IsMobileNumber("not-a-number"))
}
