// ABOUTME: This file provides OpenTelemetry span status middleware
// ABOUTME: Sets span status based on HTTP response codes per OTel semantic conventions
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// OTelStatusMiddleware marks the request span as failed on 5xx responses.
// 4xx stays Unset since a rejected webhook is a client problem. Must run
// after otelecho.Middleware, which creates the span.
func OTelStatusMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			span := trace.SpanFromContext(c.Request().Context())
			if !span.SpanContext().IsValid() {
				return err
			}

			// The error handler has not written yet, so derive the status
			// the same way it will.
			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				status = StatusForError(err)
			}

			span.SetAttributes(semconv.HTTPResponseStatusCode(status))
			if id := c.Response().Header().Get(RequestIDHeader); id != "" {
				span.SetAttributes(attribute.String("http.request_id", id))
			}
			// 4xx stays Unset but the error code is still searchable.
			if err != nil {
				_, code, _ := classify(err)
				span.SetAttributes(attribute.String("error.code", code))
			}
			if status >= 500 {
				span.SetStatus(codes.Error, http.StatusText(status))
				if err != nil {
					span.RecordError(err)
				}
			}

			return err
		}
	}
}
