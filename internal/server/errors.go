package server

import (
	"errors"
	"log/slog"

	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// mapServiceError returns the HTTP status for a typed service error. ok is
// false for anything that is not a business result.
func mapServiceError(err error) (status int, ok bool) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return 0, false
	}
	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound, true
	case models.CodeConflict:
		return fiber.StatusConflict, true
	case models.CodeValidation:
		return fiber.StatusBadRequest, true
	}
	return 0, false
}

// respondServiceError renders err. Business errors keep their message;
// everything else is logged and answered with fallbackStatus and the
// operation's fallback message so storage details never leak.
func respondServiceError(c *fiber.Ctx, err error, fallbackStatus int, fallback string) error {
	if status, ok := mapServiceError(err); ok {
		return models.RespondWithError(c, status, err)
	}

	middleware.Logger.ErrorContext(c.UserContext(), fallback,
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return c.Status(fallbackStatus).JSON(models.ErrorResponse{Error: fallback, Code: models.CodeInternal})
}
