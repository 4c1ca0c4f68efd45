package handler

import (
	"kasir-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ShiftHandler struct {
	service service.ShiftService
}

func NewShiftHandler(s service.ShiftService) *ShiftHandler {
	return &ShiftHandler{service: s}
}

func (h *ShiftHandler) CreateShift(c *fiber.Ctx) error {
	var req service.ShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	shift, err := h.service.Create(&req, actorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Shift created", "data": shift})
}

func (h *ShiftHandler) UpdateShift(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shift ID"})
	}

	var req service.ShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	shift, err := h.service.Update(id, &req, actorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Shift updated", "data": shift})
}

func (h *ShiftHandler) DeleteShift(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shift ID"})
	}

	if err := h.service.Delete(id, actorFromCtx(c)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Shift deleted"})
}

func (h *ShiftHandler) GetShifts(c *fiber.Ctx) error {
	shifts, err := h.service.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(shifts)
}

func (h *ShiftHandler) GetShift(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shift ID"})
	}

	shift, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(shift)
}
