package logger

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerForwardsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := Wrap(zap.New(core))

	log.Warn("settings corrupt", map[string]interface{}{"key": "hs_settings"})
	log.Error("save failed", errors.New("disk full"), nil)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "settings corrupt", entries[0].Message)
		assert.Equal(t, "hs_settings", entries[0].ContextMap()["key"])
		assert.Equal(t, "disk full", entries[1].ContextMap()["error"])
	}
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	log := NewNop()
	log.Debug("ignored", nil)
	log.Info("ignored", map[string]interface{}{"a": 1})
}

// captureStderr runs fn with os.Stderr redirected and returns what was written.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestNewQuietLoggerWritesNothing(t *testing.T) {
	out := captureStderr(t, func() {
		log, err := New(false)
		require.NoError(t, err)
		log.Warn("settings corrupt", map[string]interface{}{"key": "hs_settings"})
		log.Error("save failed", errors.New("disk full"), nil)
		_ = log.Sync()
	})
	assert.Empty(t, out)
}

func TestNewVerboseLoggerWritesDebug(t *testing.T) {
	out := captureStderr(t, func() {
		log, err := New(true)
		require.NoError(t, err)
		log.Debug("request sent", map[string]interface{}{"backend": "local"})
		_ = log.Sync()
	})
	assert.Contains(t, out, `"msg":"request sent"`)
	assert.Contains(t, out, `"backend":"local"`)
}
