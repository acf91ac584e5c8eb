package logging

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	err := InitLogger()
	require.NoError(t, err)
	assert.NotNil(t, Logger)
}

func TestInitLogger_WithLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	err := InitLogger()
	require.NoError(t, err)
	assert.True(t, Logger.Core().Enabled(-1)) // -1 is zapcore.DebugLevel
}

func TestInitLogger_InvalidLogLevelFallsBack(t *testing.T) {
	t.Setenv("LOG_LEVEL", "not-a-level")

	err := InitLogger()
	require.NoError(t, err)
	assert.NotNil(t, Logger)

	_ = os.Unsetenv("LOG_LEVEL")
}
