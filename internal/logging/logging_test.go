package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New("warn", "json", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = New("error", "console", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel), "verbose forces debug")
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("loud", "json", false)
	assert.Error(t, err)

	_, err = New("info", "xml", false)
	assert.Error(t, err)
}

func TestInstall(t *testing.T) {
	logger := zap.NewNop()
	restore := Install(logger)
	assert.Same(t, logger, zap.L())
	restore()
	assert.NotSame(t, logger, zap.L())
}
