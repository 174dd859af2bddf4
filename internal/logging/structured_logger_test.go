package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(&Config{Level: "debug", Output: "buffer", Buffer: buf})
	require.NoError(t, err)

	ctx := context.Background()
	logger.Info(ctx, "analysis completed", Fields{"project_id": "p-1", "iterations": 10000})

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "analysis completed", entries[0]["message"])
	assert.NotEmpty(t, entries[0]["timestamp"])

	fields, ok := entries[0]["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "p-1", fields["project_id"])
	assert.Equal(t, float64(10000), fields["iterations"])
}

func TestLogger_ErrorIncluded(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(&Config{Level: "info", Output: "buffer", Buffer: buf})
	require.NoError(t, err)

	logger.Error(context.Background(), "simulation failed", errors.New("matrix not positive definite"), nil)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0]["level"])
	assert.Equal(t, "matrix not positive definite", entries[0]["error"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(&Config{Level: "warn", Output: "buffer", Buffer: buf})
	require.NoError(t, err)

	ctx := context.Background()
	logger.Debug(ctx, "dropped", nil)
	logger.Info(ctx, "dropped", nil)
	logger.Warn(ctx, "kept", nil)
	logger.Error(ctx, "kept", errors.New("boom"), nil)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "error", entries[1]["level"])
}

func TestLogger_ParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, parseLevel("debug"))
	assert.Equal(t, InfoLevel, parseLevel("INFO"))
	assert.Equal(t, WarnLevel, parseLevel("warning"))
	assert.Equal(t, ErrorLevel, parseLevel("error"))
	// Unknown levels default to info.
	assert.Equal(t, InfoLevel, parseLevel("verbose"))
}

func TestLogger_Async(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(&Config{Level: "info", Output: "buffer", Buffer: buf, Async: true, BufferSize: 100})
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		logger.Info(ctx, "async entry", nil)
	}
	logger.Flush()

	entries := decodeLines(t, buf)
	assert.Len(t, entries, 10)

	stats := logger.GetStats()
	assert.Equal(t, int64(10), stats.TotalLogs)
	assert.Equal(t, int64(0), stats.Dropped)
}

func TestLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "risksim.log")
	logger, err := New(&Config{Level: "info", Output: "file", FilePath: path, MaxSize: 1})
	require.NoError(t, err)

	logger.Info(context.Background(), "file entry", nil)
	assert.FileExists(t, path)
}

func TestLogger_FileOutputRequiresPath(t *testing.T) {
	_, err := New(&Config{Level: "info", Output: "file"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file path required")
}
