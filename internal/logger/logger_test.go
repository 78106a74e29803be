package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujalbistaa/campus-confessions/internal/logger"
)

func TestNewJSONWritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: "info", Format: "json", Service: "confessions", Writer: &buf})

	log.Info().Str("k", "v").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "confessions", line["service"])
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "v", line["k"])
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: "warn", Format: "json", Writer: &buf})

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel("warning"))
	assert.Equal(t, zerolog.Disabled, logger.ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("nonsense"))
}
