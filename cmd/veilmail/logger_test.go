package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(LoggingConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("op", "send").Msg("Retrying")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "send", entry["op"])
	assert.Contains(t, entry, "time")
}

func TestSetupLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(LoggingConfig{Level: "debug", Format: "console", Color: false}, &buf)

	logger.Debug().Msg("Validated batch")

	assert.Contains(t, buf.String(), "DBG")
	assert.Contains(t, buf.String(), "Validated batch")
	assert.NotContains(t, buf.String(), "\x1b[")
}
