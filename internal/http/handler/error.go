package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shelterapi/internal/http/middleware"
	"shelterapi/internal/service"
)

// errorPayload is the standardized error response body: the same
// statusCode/message envelope successful responses use, plus the collected
// field messages for validation failures.
type errorPayload struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
	RequestID  string   `json:"request_id,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking
// internal errors.
func writeError(c *fiber.Ctx, status int, message string, fieldErrors []string) error {
	return c.Status(status).JSON(errorPayload{
		StatusCode: status,
		Message:    message,
		Errors:     fieldErrors,
		RequestID:  requestIDFromCtx(c),
	})
}

// respondServiceError translates the service error taxonomy into HTTP
// responses. Unknown errors become an opaque 500; raw storage errors never
// reach the client.
func respondServiceError(c *fiber.Ctx, err error) error {
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		return writeError(c, fiber.StatusNotFound, nf.Error(), nil)
	}

	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return writeError(c, fiber.StatusBadRequest, "validation failed.", ve.Messages)
	}

	var ce *service.ConflictError
	if errors.As(err, &ce) {
		return writeError(c, fiber.StatusConflict, ce.Error(), nil)
	}

	var pe *service.PersistenceError
	if errors.As(err, &pe) {
		return writeError(c, fiber.StatusBadRequest, pe.Err.Error(), nil)
	}

	if errors.Is(err, service.ErrInvalidCredentials) {
		return writeError(c, fiber.StatusUnauthorized, "invalid credentials.", nil)
	}

	return writeError(c, fiber.StatusInternalServerError, "internal server error", nil)
}

// ErrorHandler returns a Fiber global error handler that standardizes
// responses for errors escaping the handlers (bad routes, method mismatch).
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "bad request", nil)
		case fiber.StatusNotFound:
			return writeError(c, status, "resource not found", nil)
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "method not allowed", nil)
		default:
			return writeError(c, status, "internal server error", nil)
		}
	}
}
