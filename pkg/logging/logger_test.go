package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{
		Level:      LevelInfo,
		Component:  "test",
		JSONFormat: true,
		Output:     &buf,
	})

	log.Info("hello", F("count", 3))

	out := buf.String()
	assert.Contains(t, out, `"message":"hello"`)
	assert.Contains(t, out, `"component":"test"`)
	assert.Contains(t, out, `"count":3`)
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{
		Level:      LevelWarn,
		Component:  "test",
		JSONFormat: true,
		Output:     &buf,
	})

	log.Debug("too quiet")
	log.Info("still too quiet")
	log.Warn("loud enough")

	out := buf.String()
	assert.NotContains(t, out, "too quiet")
	assert.Contains(t, out, "loud enough")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{
		Level:      LevelDebug,
		Component:  "test",
		JSONFormat: true,
		Output:     &buf,
	})

	scoped := log.With(F("placement_id", "PLC-1"))
	scoped.Info("scored")

	assert.Contains(t, buf.String(), `"placement_id":"PLC-1"`)
}

func TestErrField(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{
		Level:      LevelDebug,
		Component:  "test",
		JSONFormat: true,
		Output:     &buf,
	})

	log.Error("failed", Err(errors.New("boom")))
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	require.NotNil(t, log)

	// Must not panic, must return a usable logger from With.
	log.Debug("a")
	log.Info("b")
	log.Warn("c")
	log.Error("d")
	assert.NotNil(t, log.With(F("k", "v")))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, LevelInfo, cfg.Level)
	assert.False(t, cfg.JSONFormat)
}
