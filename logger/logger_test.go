package logger

import (
	"bytes"
	"encoding/json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(LOG_LEVEL_DEBUG))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(LOG_LEVEL_WARN))
	assert.Equal(t, zerolog.PanicLevel, ParseLevel(LOG_LEVEL_PANIC))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewLoggerFields(t *testing.T) {
	t.Setenv(levelEnvName, LOG_LEVEL_WARN)
	SetupLogging()

	var buf bytes.Buffer
	prev := Output
	Output = &buf
	defer func() { Output = prev }()

	l := NewLogger("Tagger")
	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "Tagger", entry["component"])
	assert.Equal(t, "warn", entry["level_name"])
	assert.Equal(t, "kept", entry["message"])
	assert.Contains(t, entry, "timestamp")
}
