package serverutils

import (
	"errors"

	"namdo-bot-be/internal/service"
	"namdo-bot-be/pkg/conversation"
	"namdo-bot-be/pkg/tourapi"

	"github.com/gofiber/fiber/v2"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{service.ErrInactiveUser, fiber.StatusBadRequest},
	{service.ErrUsernameTaken, fiber.StatusBadRequest},
	{service.ErrEmailTaken, fiber.StatusBadRequest},
	{service.ErrUserNotFound, fiber.StatusNotFound},
	{service.ErrSessionNotFound, fiber.StatusNotFound},
	{service.ErrFestivalNotFound, fiber.StatusNotFound},
	{service.ErrSessionForbidden, fiber.StatusForbidden},
	{service.ErrConversationNotCompleted, fiber.StatusBadRequest},
	{conversation.ErrConversationCompleted, fiber.StatusConflict},
	{conversation.ErrEmptyAnswer, fiber.StatusBadRequest},
	{conversation.ErrInvalidOption, fiber.StatusBadRequest},
	{conversation.ErrUnknownPhase, fiber.StatusInternalServerError},
	{tourapi.ErrUnavailable, fiber.StatusServiceUnavailable},
	{tourapi.ErrMissingServiceKey, fiber.StatusServiceUnavailable},
	{tourapi.ErrUnknownArea, fiber.StatusBadRequest},
}

// StatusFromError maps domain errors to an HTTP status, defaulting to 500.
func StatusFromError(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest
	}
	for _, s := range errorStatuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return fiber.StatusInternalServerError
}

// ErrorHandlerMiddleware renders errors returned by downstream handlers in
// the standard response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := StatusFromError(err)
		var ve *ValidationError
		if errors.As(err, &ve) {
			return ctx.Status(status).JSON(ErrorResponseWithData(status, "Validation failed", ve.Fields))
		}

		message := err.Error()
		if status == fiber.StatusInternalServerError {
			message = "Internal server error"
		}
		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}
