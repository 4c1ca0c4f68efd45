package handler

import (
	"errors"

	"kasir-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFromCtx assembles the acting user from the JWT context set by the
// RequireAuth middleware.
func actorFromCtx(c *fiber.Ctx) service.Actor {
	actor := service.Actor{ID: "system", Name: "Unknown"}
	if v, ok := c.Locals("user_id").(string); ok {
		actor.ID = v
	}
	if v, ok := c.Locals("user_name").(string); ok {
		actor.Name = v
	}
	if v, ok := c.Locals("user_email").(string); ok {
		actor.Email = v
	}
	if v, ok := c.Locals("user_role").(string); ok {
		actor.RoleCode = v
	}
	return actor
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// statusFor maps the service error taxonomy onto HTTP statuses. Everything
// here is recoverable at the request boundary.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrNegativeBalance),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrNegativeDiscount):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrSessionAlreadyOpen),
		errors.Is(err, service.ErrSessionAlreadyClosed),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrBarcodeExists):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrBarcodeNotFound),
		errors.Is(err, service.ErrMovementNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrNoOpenSession),
		errors.Is(err, service.ErrShiftNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrSessionRequired):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}

// fail renders a service error as a JSON error response.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}
