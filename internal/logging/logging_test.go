package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupWriter_Info(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, LevelInfo)
	t.Cleanup(func() { Setup(LevelInfo) })

	slog.Debug("hidden")
	slog.Warn("Failed to read interface counter", "interface", "eth0")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "interface=eth0")
}

func TestSetupWriter_Debug(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, LevelDebug)
	t.Cleanup(func() { Setup(LevelInfo) })

	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
	slog.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestSetupFromEnv_Default(t *testing.T) {
	t.Setenv(DebugEnv, "")
	SetupFromEnv()

	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}

func TestSetupFromEnv_Debug(t *testing.T) {
	t.Setenv(DebugEnv, "1")
	SetupFromEnv()
	t.Cleanup(func() { Setup(LevelInfo) })

	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}

func TestLevel_Values(t *testing.T) {
	assert.Equal(t, Level(0), LevelInfo)
	assert.Equal(t, Level(1), LevelDebug)
}
