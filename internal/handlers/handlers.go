package handlers

import (
	"errors"
	"fmt"

	"watchlog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// callerIdentity reads the principal the identity middleware resolved for
// this request.
func callerIdentity(c *fiber.Ctx) string {
	identity, _ := c.Locals("identity").(string)
	return identity
}

// errorStatus maps a service error kind to an HTTP status.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrAlreadyRegistered):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrNotRegistered):
		return fiber.StatusPreconditionFailed
	default:
		return fiber.StatusInternalServerError
	}
}

// validationMessages flattens validator errors into a field -> message map.
func validationMessages(err error) map[string]string {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}
