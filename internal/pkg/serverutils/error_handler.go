package serverutils

import (
	"errors"

	"subcontrol-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case apperror.IsValidation(err):
		return fiber.StatusBadRequest
	case apperror.IsNotFound(err):
		return fiber.StatusNotFound
	case apperror.IsConflict(err):
		return fiber.StatusConflict
	case apperror.IsUnavailable(err):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON error envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, err)
	}
}

func WriteError(ctx *fiber.Ctx, err error) error {
	code := StatusFor(err)

	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		return ctx.Status(code).JSON(ValidationErrorResponse(verr.Field, verr.Error()))
	}

	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "Internal server error"
	}
	return ctx.Status(code).JSON(ErrorResponse(code, message))
}
