package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedContextLogger() (*ContextLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewContextLogger(slog.New(slog.NewJSONHandler(&buf, nil))), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestContextLogger_WithContext_BusinessKeys(t *testing.T) {
	cl, buf := newBufferedContextLogger()

	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithEntryUID(ctx, "blt123")
	ctx = WithContentType(ctx, "product")
	ctx = WithEvent(ctx, "entry.published")
	ctx = WithPayloadShape(ctx, "cms_webhook")

	cl.WithContext(ctx).Info("test message")
	entry := decodeLine(t, buf)

	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "blt123", entry["cms.entry.uid"])
	assert.Equal(t, "product", entry["cms.content_type"])
	assert.Equal(t, "entry.published", entry["cms.event"])
	assert.Equal(t, "cms_webhook", entry["cms.payload_shape"])
}

func TestContextLogger_WithContext_PartialKeys(t *testing.T) {
	cl, buf := newBufferedContextLogger()

	ctx := WithEntryUID(context.Background(), "only-uid")
	cl.WithContext(ctx).Info("test message")
	entry := decodeLine(t, buf)

	assert.Equal(t, "only-uid", entry["cms.entry.uid"])
	for _, key := range []string{"request_id", "cms.content_type", "cms.event", "operation"} {
		assert.NotContains(t, entry, key)
	}
}

func TestContextLogger_LogDurationAndError(t *testing.T) {
	cl, buf := newBufferedContextLogger()
	ctx := WithOperation(context.Background(), "search")

	cl.LogDuration(ctx, "search", 1500*time.Millisecond)
	entry := decodeLine(t, buf)
	assert.Equal(t, "operation completed", entry["msg"])
	assert.EqualValues(t, 1500, entry["duration_ms"])

	buf.Reset()
	cl.LogError(ctx, "search", errors.New("boom"))
	entry = decodeLine(t, buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
}
