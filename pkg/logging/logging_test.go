package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := New(zap.New(core))

	logger.Debug("relationship resolved", "people", 3)
	logger.Info("store seeded", "activities", 4)
	logger.Error("app data update failed", errors.New("disk full"), "person", "john.doe")

	entries := logs.All()
	require.Len(t, entries, 3)

	require.Equal(t, zapcore.DebugLevel, entries[0].Level)
	require.Equal(t, int64(3), entries[0].ContextMap()["people"])

	require.Equal(t, "store seeded", entries[1].Message)

	require.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	require.Equal(t, "john.doe", entries[2].ContextMap()["person"])
	require.Equal(t, "disk full", entries[2].ContextMap()["error"])
}

func TestNewNilLoggerIsSafe(t *testing.T) {
	logger := New(nil)
	logger.Info("discarded")
	logger.Error("discarded", nil)
}

func TestNewForEnv(t *testing.T) {
	prod, err := NewForEnv("production")
	require.NoError(t, err)
	require.False(t, prod.Core().Enabled(zapcore.DebugLevel))

	dev, err := NewForEnv("development")
	require.NoError(t, err)
	require.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}
