package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
}

func TestNew_CreatesTimestampedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	lg, err := New(Config{Dir: dir, Now: fixedNow})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "log_2026-03-14_09-26-53.log"), lg.Path())

	log := lg.Named("pipeline")
	log.Info().Msg("Starting to build pipeline")
	require.NoError(t, lg.Close())

	data, err := os.ReadFile(lg.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "- INFO -")
	assert.Contains(t, string(data), "Starting to build pipeline")
	assert.Contains(t, string(data), "logger=pipeline")
}

func TestNew_JSONFormatAndConsole(t *testing.T) {
	var console bytes.Buffer

	lg, err := New(Config{Dir: t.TempDir(), Format: "json", Console: &console, Now: fixedNow})
	require.NoError(t, err)
	defer lg.Close()

	log := lg.Named("loader")
	log.Warn().Int("rows_dropped", 3).Msg("dropped rows")

	assert.Contains(t, console.String(), `"level":"warn"`)
	assert.Contains(t, console.String(), `"logger":"loader"`)
	assert.Contains(t, console.String(), `"rows_dropped":3`)
}

func TestNew_LevelFilters(t *testing.T) {
	var console bytes.Buffer

	lg, err := New(Config{Dir: t.TempDir(), Level: "error", Format: "json", Console: &console})
	require.NoError(t, err)
	defer lg.Close()

	log := lg.Named("x")
	log.Info().Msg("hidden")
	log.Error().Msg("shown")

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}
