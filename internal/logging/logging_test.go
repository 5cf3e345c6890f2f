package logging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	SetBase(zap.New(core))
	t.Cleanup(func() { SetBase(nil) })
	return logs
}

func TestNew(t *testing.T) {
	t.Run("accepts known levels", func(t *testing.T) {
		l, err := New("production", "warn")
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := New("development", "loud")
		assert.Error(t, err)
	})
}

func TestFromContext_AttachesRequestID(t *testing.T) {
	logs := observe(t)

	ctx := WithRequestID(context.Background(), "rid-1")
	FromContext(ctx).Info("hello")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "rid-1", entry.ContextMap()["request_id"])
}

func TestRequestID_Missing(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
}

func TestLogger_Operation(t *testing.T) {
	logs := observe(t)

	ctx := WithRequestID(context.Background(), "rid-2")
	lg := NewLogger(ctx)
	lg.LogError("forward", errors.New("timeout"))
	lg.LogWarnf("forward", "status %d", 503)

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0].ContextMap()
	assert.Equal(t, "forward", first["operation"])
	assert.Equal(t, "rid-2", first["request_id"])
	assert.Equal(t, "status 503", logs.All()[1].Message)
}
