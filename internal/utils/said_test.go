package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSAID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"valid id", "8001015009087", true},
		{"valid with spaces", "800101 5009 087", true},
		{"too short", "80010150090", false},
		{"too long", "80010150090871", false},
		{"bad check digit", "8001015009086", false},
		{"bad month", "8013015009087", false},
		{"bad day", "8001325009087", false},
		{"bad citizenship digit", "8001015009287", false},
		{"letters", "80010150090ab", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSAID(tt.id))
		})
	}
}

func TestLuhnValid(t *testing.T) {
	assert.True(t, luhnValid("79927398713"))
	assert.False(t, luhnValid("79927398714"))
}
