package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAdapterFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).With(map[string]interface{}{"taskType": "resolve-style"})

	log.WithError(errors.New("boom")).Warn("degraded", map[string]interface{}{
		"provenance": "api_error_fallback",
		"cause":      errors.New("status 500"),
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "degraded", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "resolve-style", ctx["taskType"])
	assert.Equal(t, "api_error_fallback", ctx["provenance"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "status 500", ctx["cause"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestNewFallsBackToNop(t *testing.T) {
	l := New("info", "json", "/nonexistent-dir/for/sure/app.log")
	require.NotNil(t, l)
	l.Info("dropped")
}

func TestMapToZapFieldsEmpty(t *testing.T) {
	assert.Nil(t, mapToZapFields(nil))
}
