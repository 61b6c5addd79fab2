package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"content-indexer/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func runWithSpan(t *testing.T, handler echo.HandlerFunc) (sdktrace.ReadOnlySpan, error) {
	t.Helper()

	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ctx, span := tp.Tracer("test").Start(req.Context(), "test-span")
	c.SetRequest(req.WithContext(ctx))

	err := OTelStatusMiddleware()(handler)(c)
	span.End()

	spans := spanRecorder.Ended()
	require.Len(t, spans, 1)
	return spans[0], err
}

func statusAttr(span sdktrace.ReadOnlySpan) (int64, bool) {
	for _, attr := range span.Attributes() {
		if string(attr.Key) == "http.response.status_code" {
			return attr.Value.AsInt64(), true
		}
	}
	return 0, false
}

func TestOTelStatusMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		handler    echo.HandlerFunc
		wantStatus int64
		wantCode   codes.Code
		wantErr    bool
	}{
		{
			name:       "2xx unset",
			handler:    func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
			wantStatus: 200,
			wantCode:   codes.Unset,
		},
		{
			name:       "4xx from domain error stays unset",
			handler:    func(c echo.Context) error { return fmt.Errorf("normalize: %w", domain.ErrMalformedPayload) },
			wantStatus: 400,
			wantCode:   codes.Unset,
			wantErr:    true,
		},
		{
			name:       "5xx written",
			handler:    func(c echo.Context) error { return c.String(http.StatusInternalServerError, "x") },
			wantStatus: 500,
			wantCode:   codes.Error,
		},
		{
			name:       "search failure returned",
			handler:    func(c echo.Context) error { return domain.ErrSearchFailed },
			wantStatus: 500,
			wantCode:   codes.Error,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := runWithSpan(t, tt.handler)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCode, span.Status().Code)
			status, ok := statusAttr(span)
			assert.True(t, ok, "http.response.status_code attribute not found")
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestOTelStatusMiddleware_5xxWithError_RecordsError(t *testing.T) {
	span, err := runWithSpan(t, func(c echo.Context) error {
		return domain.ErrSearchFailed
	})
	assert.ErrorIs(t, err, domain.ErrSearchFailed)

	var found bool
	for _, event := range span.Events() {
		if event.Name == "exception" {
			found = true
		}
	}
	assert.True(t, found, "exception event not found in span")
}

func TestOTelStatusMiddleware_ErrorCodeAttribute(t *testing.T) {
	span, _ := runWithSpan(t, func(c echo.Context) error {
		return fmt.Errorf("normalize: %w", domain.ErrMalformedPayload)
	})

	var code string
	for _, attr := range span.Attributes() {
		if string(attr.Key) == "error.code" {
			code = attr.Value.AsString()
		}
	}
	assert.Equal(t, "MALFORMED_PAYLOAD", code)
	assert.Equal(t, codes.Unset, span.Status().Code)
}
