package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerLevelGate(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(core, LevelInfo)

	l.Debug("hidden")
	l.Info("shown", zap.Int("n", 1))
	l.Warn("warned")
	require.Equal(t, 2, logs.Len())

	l.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, l.GetLevel())
	l.Debug("now shown")
	assert.Equal(t, 1, logs.FilterMessage("now shown").Len())
}

func TestLoggerWithSharesLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	parent := NewWithCore(core, LevelWarn)
	child := parent.With(zap.String("session", "abc")).Named("craft")

	child.Info("dropped")
	parent.SetLevel(LevelInfo)
	child.Info("kept")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Message)
	assert.Equal(t, "craft", entries[0].LoggerName)
	assert.Equal(t, "abc", entries[0].ContextMap()["session"])
}

func TestNopLogger(t *testing.T) {
	l := Nop()
	l.Debug("x")
	l.Error("y")
	assert.Equal(t, LevelError, l.GetLevel())
}
