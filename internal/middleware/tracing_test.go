package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"

	"foilctf/internal/models"
	"foilctf/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := observability.Tracer
	observability.Tracer = tp.Tracer("test")
	t.Cleanup(func() { observability.Tracer = prev })
	return sr
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestTracingMiddleware_NamesSpanByRoute(t *testing.T) {
	sr := recordSpans(t)

	app := fiber.New()
	app.Use(TracingMiddleware())
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("principal", &models.Principal{ID: 1, Username: "alice"})
		return c.Next()
	})
	app.Delete("/teams/:teamName/members/:username", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/teams/Foxes/members/bob", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "DELETE /teams/:teamName/members/:username", spans[0].Name())

	attrs := spanAttrs(spans[0])
	assert.Equal(t, "/teams/:teamName/members/:username", attrs["http.route"].AsString())
	assert.Equal(t, "Foxes", attrs["team.name"].AsString())
	assert.Equal(t, "bob", attrs["target.name"].AsString())
	assert.Equal(t, "alice", attrs["user.name"].AsString())
	assert.EqualValues(t, fiber.StatusNoContent, attrs["http.status_code"].AsInt64())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestTracingMiddleware_ClientErrorsAreNotSpanErrors(t *testing.T) {
	sr := recordSpans(t)

	app := fiber.New()
	app.Use(TracingMiddleware())
	app.Get("/teams/:teamName", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Team not found")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/teams/Ghosts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.EqualValues(t, fiber.StatusNotFound, spanAttrs(spans[0])["http.status_code"].AsInt64())
	assert.Equal(t, "Ghosts", spanAttrs(spans[0])["team.name"].AsString())
}

func TestTracingMiddleware_MarksServerErrors(t *testing.T) {
	sr := recordSpans(t)

	app := fiber.New()
	app.Use(TracingMiddleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("database unavailable")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /boom", spans[0].Name())
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.EqualValues(t, fiber.StatusInternalServerError, spanAttrs(spans[0])["http.status_code"].AsInt64())
	_, hasTeam := spanAttrs(spans[0])["team.name"]
	assert.False(t, hasTeam)
}
