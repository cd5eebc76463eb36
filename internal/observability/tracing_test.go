package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "foilctf-test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartSpan_FinishRecordsError(t *testing.T) {
	span, ctx := StartSpan(context.Background(), "test.op", attribute.String("k", "v"))
	require.NotNil(t, ctx)

	err := errors.New("boom")
	assert.NotPanics(t, func() { span.Finish(&err) })
}
