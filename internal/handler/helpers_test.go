package handler

import (
	"errors"
	"fmt"
	"testing"

	"kasir-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidInput, fiber.StatusUnprocessableEntity},
		{service.ErrNegativeBalance, fiber.StatusUnprocessableEntity},
		{service.ErrEmptyCart, fiber.StatusUnprocessableEntity},
		{service.ErrInvalidQuantity, fiber.StatusUnprocessableEntity},
		{service.ErrNegativeDiscount, fiber.StatusUnprocessableEntity},
		{service.ErrSessionAlreadyOpen, fiber.StatusConflict},
		{service.ErrSessionAlreadyClosed, fiber.StatusConflict},
		{service.ErrInsufficientStock, fiber.StatusConflict},
		{service.ErrBarcodeExists, fiber.StatusConflict},
		{service.ErrProductNotFound, fiber.StatusNotFound},
		{service.ErrBarcodeNotFound, fiber.StatusNotFound},
		{service.ErrMovementNotFound, fiber.StatusNotFound},
		{service.ErrSessionNotFound, fiber.StatusNotFound},
		{service.ErrNoOpenSession, fiber.StatusNotFound},
		{service.ErrShiftNotFound, fiber.StatusNotFound},
		{service.ErrSessionRequired, fiber.StatusForbidden},
		{errors.New("anything else"), fiber.StatusBadRequest},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), "error: %v", tc.err)
	}
}

func TestStatusForWrappedErrors(t *testing.T) {
	// Services wrap sentinels with context; mapping must survive wrapping.
	wrapped := fmt.Errorf("%w for product 'Kopi Sachet' (have 2, need 5)", service.ErrInsufficientStock)
	assert.Equal(t, fiber.StatusConflict, statusFor(wrapped))

	wrapped = fmt.Errorf("%w: opening balance", service.ErrNegativeBalance)
	assert.Equal(t, fiber.StatusUnprocessableEntity, statusFor(wrapped))
}
