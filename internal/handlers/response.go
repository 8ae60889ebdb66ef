package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/pet-adoption-jtn/pet-adoption/internal/apperror"
)

// writeError converts a service error into the uniform {message} JSON shape
// with the status code of its error kind. Unexpected errors become a 500 with
// the raw message.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrValidation),
		errors.Is(err, apperror.ErrConflict),
		errors.Is(err, apperror.ErrInsertFailed):
		status = fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrAuthentication):
		status = fiber.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// writeValidationErrors converts validator failures into a 400 response
// listing the offending fields.
func writeValidationErrors(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return writeError(c, err)
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
