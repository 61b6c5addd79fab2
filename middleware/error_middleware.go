// ABOUTME: Centralized error handling middleware for Echo framework
// ABOUTME: Maps domain errors to stable error codes, hides internal details
package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"content-indexer/domain"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const internalErrorMessage = "An unexpected error occurred. Please try again later."

// classify maps err to a status, a stable code and a client-safe message.
func classify(err error) (int, string, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, domain.ErrUnknownPayloadShape):
		return http.StatusBadRequest, "UNKNOWN_PAYLOAD_SHAPE", err.Error()
	case errors.Is(err, domain.ErrMalformedPayload):
		return http.StatusBadRequest, "MALFORMED_PAYLOAD", err.Error()
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "INVALID_REQUEST", err.Error()
	case errors.Is(err, domain.ErrSearchFailed):
		return http.StatusInternalServerError, "SEARCH_FAILED", "search failed"
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok && m != "" {
			msg = m
		} else if httpErr.Message != nil {
			msg = fmt.Sprint(httpErr.Message)
		}
		return httpErr.Code, httpErrorCode(httpErr.Code), msg
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", internalErrorMessage
	}
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return "HTTP_ERROR"
	}
}

// StatusForError returns the status CustomHTTPErrorHandler answers err with.
func StatusForError(err error) int {
	status, _, _ := classify(err)
	return status
}

// CustomHTTPErrorHandler creates the centralized HTTP error handler for Echo.
// 5xx messages are replaced by a generic text; the cause is only logged.
func CustomHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		// Don't write to already committed responses
		if c.Response().Committed {
			return
		}

		status, code, msg := classify(err)
		if status >= 500 {
			msg = internalErrorMessage
			if code == "SEARCH_FAILED" {
				msg = "search failed"
			}
		}

		log := logger.With(
			"request_id", c.Response().Header().Get(RequestIDHeader),
			"method", c.Request().Method,
			"path", c.Path(),
			"status", status,
			"code", code,
		)
		if status >= 500 {
			log.Error("request failed", "error", err)
		} else {
			log.Warn("request rejected", "error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ErrorResponse{
				Success: false,
				Error:   ErrorDetail{Code: code, Message: msg},
			})
		}
		if writeErr != nil {
			logger.Error("failed to send error response", "error", writeErr)
		}
	}
}
