package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tmsim/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo)

	logger.Error("load failed", "error", errors.New("boom"))
	logger.Debug("hidden")

	assert.Contains(t, buf.String(), "err=boom")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestFileHandler_Fanout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmsim.log")
	h, closer, err := logging.FileHandler(path, slog.LevelDebug)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo, h)
	logger.Debug("simulation halted", "verdict", "accept")
	logger.Info("evaluation finished", "inputs", 3)
	require.NoError(t, closer.Close())

	// Text handler honours its own level; the file handler receives both records.
	assert.NotContains(t, buf.String(), "simulation halted")
	assert.Contains(t, buf.String(), "evaluation finished")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "simulation halted", rec["msg"])
	assert.Equal(t, "accept", rec["verdict"])
}

func TestParseLevel(t *testing.T) {
	level, err := logging.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = logging.ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = logging.ParseLevel("loud")
	assert.Error(t, err)
}
