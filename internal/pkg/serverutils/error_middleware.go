package serverutils

import (
	"errors"

	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/pkg/audio"
	"ai-lecture-notes-be/pkg/session"
	"ai-lecture-notes-be/pkg/synthesis"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by controllers into the
// standard response envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := classify(err)
		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func classify(err error) (int, string) {
	var fiberErr *fiber.Error
	var validationErr *ValidationError
	var sessionValidationErr *session.ValidationError
	var synthesisErr *synthesis.RequestError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Error()
	case errors.As(err, &sessionValidationErr):
		return fiber.StatusBadRequest, sessionValidationErr.Error()
	case errors.Is(err, session.ErrSessionNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, session.ErrNoNotes),
		errors.Is(err, session.ErrQuestionInFlight),
		errors.Is(err, session.ErrCaptureBusy):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, audio.ErrDeviceUnavailable):
		return fiber.StatusServiceUnavailable, err.Error()
	case errors.As(err, &synthesisErr):
		return fiber.StatusBadGateway, synthesisErr.UserMessage()
	default:
		return fiber.StatusInternalServerError, "Internal Error"
	}
}
