package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel(" warn "))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel(""))
	require.Equal(t, slog.LevelInfo, parseLevel("verbose"))
	require.Equal(t, slog.LevelDebug+2, parseLevel("debug+2"))
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "web", "info", "json")

	log.Debug("hidden")
	log.Info("served", slog.String("path", "/"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "web", rec["service"])
	require.Equal(t, "served", rec["msg"])
	require.Equal(t, "/", rec["path"])
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "web", "warn", "")

	log.Info("hidden")
	require.Zero(t, buf.Len())

	log.Warn("upstream slow")
	require.Contains(t, buf.String(), "service=web")
	require.Contains(t, buf.String(), `msg="upstream slow"`)
}
