package log_test

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/classwrap/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil)
	defer log.SetLevel(log.LevelInfo)

	t.Run("Info level logs Info, Warn, Error but not Debug", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelInfo)

		log.Debug("debug message")
		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.Contains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("Error level only logs Error", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelError)

		log.Debug("debug message")
		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "info message")
		assert.NotContains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("lines carry prefix and level", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelDebug)

		log.Debug("pass %d rewrote %d occurrences\n", 1, 3)

		assert.Equal(t, "[classwrap] DEBUG pass 1 rewrote 3 occurrences\n", buf.String())
	})
}

func TestNilOutputIsSilent(t *testing.T) {
	log.SetOutput(nil)
	assert.False(t, log.Enabled(log.LevelError))
	assert.NotPanics(t, func() { log.Error("dropped") })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.LevelDebug},
		{"INFO", log.LevelInfo},
		{"warn", log.LevelWarn},
		{"warning", log.LevelWarn},
		{"error", log.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := log.ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ToLower(strings.TrimSuffix(tt.in, "ing")), got.String())
		})
	}

	_, err := log.ParseLevel("loud")
	assert.Error(t, err)
}
