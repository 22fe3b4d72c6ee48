package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}

func TestInitializeWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter("debug", "json", &buf)
	t.Cleanup(func() { defaultLogger = nil })

	ExitMethodWithError("Cancel", errors.New("reservation already paid"), "reservation_id", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "Cancel", entry["method"])
	assert.Equal(t, "abc", entry["reservation_id"])
}

func TestInitializeWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter("warn", "text", &buf)
	t.Cleanup(func() { defaultLogger = nil })

	Info("hidden")
	assert.Empty(t, buf.String())
	Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
