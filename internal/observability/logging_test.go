package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_AddsContextValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("production", &buf)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUsername(ctx, "alice")
	ctx = WithTraceID(ctx, "trace-1")
	logger.InfoContext(ctx, "hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, "alice", record["username"])
	assert.Equal(t, "trace-1", record["trace_id"])
}

func TestNewLogger_WithAttrsKeepsContextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("production", &buf).With("component", "test")

	logger.InfoContext(WithUsername(context.Background(), "bob"), "hi")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "test", record["component"])
	assert.Equal(t, "bob", record["username"])
}

func TestExtractRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", ExtractRequestID(context.Background()))
}
