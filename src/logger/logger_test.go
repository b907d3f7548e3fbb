package logger

import (
	"bytes"
	"testing"

	"stock-watch/src/models"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarning, ParseLevel("WARN"))
	assert.Equal(t, LevelError, ParseLevel(" ERROR "))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&models.MConfig{LogLevel: "WARNING"}, "Poller", &buf)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warning("shown %s", "warn")
	l.Error("shown %s", "err")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[Poller] WARNING: shown warn")
	assert.Contains(t, out, "[Poller] ERROR: shown err")
}

func TestNamedKeepsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&models.MConfig{LogLevel: "ERROR"}, "root", &buf).Named("Hub")

	l.Info("dropped")
	l.Error("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "[Hub] ERROR: kept")
}
