package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 750*time.Millisecond, cfg.Tracker.Debounce)
	assert.Equal(t, 64, cfg.Tracker.QueueSize)
	assert.Equal(t, 0.25, cfg.Restore.MinOverlap)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WINSTATE_DEBOUNCE", "2s")
	t.Setenv("WINSTATE_MIN_OVERLAP", "0.5")
	t.Setenv("WINSTATE_FILENAME", "state.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Tracker.Debounce)
	assert.Equal(t, 0.5, cfg.Restore.MinOverlap)
	assert.Equal(t, "state.json", cfg.Store.Filename)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winstate.yaml")
	content := []byte("tracker:\n  debounce: 1s\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Tracker.Debounce)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Sections the file omits keep their defaults.
	assert.Equal(t, 0.25, cfg.Restore.MinOverlap)
	assert.Equal(t, 64, cfg.Tracker.QueueSize)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
