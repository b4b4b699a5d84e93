package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStructuredLoggerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	logger.Info("hello", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestLogErrorIncludesError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogError(logger, "boom", errors.New("broken pipe"), slog.String("component", "test"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "broken pipe", entry["error"])
	assert.Equal(t, "test", entry["component"])
}

func TestLogTap(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogTap(logger, "000011112222", "StationA", "Red", "in", "entered", 0)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tap", entry["msg"])
	assert.Equal(t, "StationA", entry["station"])
	assert.Equal(t, "entered", entry["outcome"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	LogError(nil, "ignored", errors.New("x"))
	LogTap(nil, "", "", "", "", "", 0)
	LogHTTPRequest(nil, "GET", "/", 200, 1.0)
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := NewStructuredLogger(&bytes.Buffer{}, slog.LevelInfo)

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	assert.NotNil(t, FromContext(context.Background()))
}
