package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxtraditionis/vox/pkg/logger"
)

func newTestLogger(t *testing.T, level logger.Level) (*logger.Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := logger.New(level, path, true)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l, path
}

func TestLevelFiltering(t *testing.T) {
	l, path := newTestLogger(t, logger.LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "debug message")
	assert.NotContains(t, string(data), "info message")
	assert.Contains(t, string(data), "[WARN] warn message")
}

func TestFormatArgs(t *testing.T) {
	l, path := newTestLogger(t, logger.LevelDebug)

	l.Info("loaded %d sessions from %s", 3, "store")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] loaded 3 sessions from store")
}

func TestTruncateWhenNotPersisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	l, err := logger.New(logger.LevelInfo, path, true)
	require.NoError(t, err)
	l.Info("first run")
	require.NoError(t, l.Close())

	l, err = logger.New(logger.LevelInfo, path, false)
	require.NoError(t, err)
	l.Info("second run")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}

func TestPackageFunctionsSafeWithoutInit(t *testing.T) {
	// Must not panic before Init.
	logger.Debug("no default logger yet")
	logger.Error("still fine")
}
