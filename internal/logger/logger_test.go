package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/config"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LoggerConfig{Level: "info", Env: "production"}, &buf)
	require.NoError(t, err)

	log.Info("stage changed", zap.String("stage", "transition"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "stage changed", entry["msg"])
	assert.Equal(t, "transition", entry["stage"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LoggerConfig{Level: "warn"}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LoggerConfig{Level: "chatty"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestForTUI(t *testing.T) {
	log, closeFn, err := ForTUI(config.LoggerConfig{Level: "info"})
	require.NoError(t, err)
	closeFn()
	assert.NotNil(t, log)

	path := filepath.Join(t.TempDir(), "pathwise.log")
	log, closeFn, err = ForTUI(config.LoggerConfig{Level: "debug", File: path})
	require.NoError(t, err)
	log.Debug("to file")
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "to file"))
}
