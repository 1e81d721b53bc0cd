package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf))

	log.Info(context.Background(), "request done", "status", 200, "path", "/user")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "request done", entry["message"])
	require.EqualValues(t, 200, entry["status"])
	require.Equal(t, "/user", entry["path"])
}

func TestZerologLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf)).With("component", "storage")

	log.Warn(context.Background(), "slow response")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "storage", entry["component"])
	require.Equal(t, "warn", entry["level"])
}

func TestZerologLoggerOddArgs(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf))

	// A dangling key must not panic or be dropped silently.
	log.Error(context.Background(), "oops", "dangling")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Contains(t, entry, "dangling")
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	log.With("component", "auth").Info(context.Background(), "signed in", "user", "user-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "signed in", entry["msg"])
	require.Equal(t, "auth", entry["component"])
	require.Equal(t, "user-1", entry["user"])
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	// Must be callable and chainable without output or panic.
	log.With("a", 1).Debug(context.Background(), "ignored")
	log.Error(context.Background(), "ignored")
}
