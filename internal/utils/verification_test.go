package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateVerificationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := GenerateVerificationCode()
		assert.Len(t, code, VerificationCodeLength)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
		seen[code] = true
	}
	// 50 draws from a million values collide essentially never
	assert.Greater(t, len(seen), 1)
}
