package handler

import (
	"kasir-backend/internal/model"
	"kasir-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// MovementHandler serves the stock-in (receiving) and stock-out (non-POS
// adjustment) ledgers.
type MovementHandler struct {
	service service.MovementService
}

func NewMovementHandler(s service.MovementService) *MovementHandler {
	return &MovementHandler{service: s}
}

func (h *MovementHandler) CreateStockIn(c *fiber.Ctx) error {
	return h.create(c, model.MovementIn)
}

func (h *MovementHandler) CreateStockOut(c *fiber.Ctx) error {
	return h.create(c, model.MovementOut)
}

func (h *MovementHandler) create(c *fiber.Ctx, direction model.MovementDirection) error {
	var req service.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := actorFromCtx(c)

	var (
		movement *model.StockMovement
		err      error
	)
	if direction == model.MovementIn {
		movement, err = h.service.ApplyStockIn(&req, actor)
	} else {
		movement, err = h.service.ApplyStockOut(&req, actor)
	}
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Movement recorded", "data": movement})
}

func (h *MovementHandler) ListStockIns(c *fiber.Ctx) error {
	return h.list(c, model.MovementIn)
}

func (h *MovementHandler) ListStockOuts(c *fiber.Ctx) error {
	return h.list(c, model.MovementOut)
}

func (h *MovementHandler) list(c *fiber.Ctx, direction model.MovementDirection) error {
	movements, err := h.service.List(direction)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(movements)
}

func (h *MovementHandler) GetMovement(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid movement ID"})
	}

	movement, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(movement)
}

// UpdateMovement reverses the stored stock delta and applies the edited one
// atomically; on any stock violation the original record stands.
func (h *MovementHandler) UpdateMovement(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid movement ID"})
	}

	var req service.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	movement, err := h.service.Update(id, &req, actorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Movement updated", "data": movement})
}

func (h *MovementHandler) DeleteMovement(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid movement ID"})
	}

	if err := h.service.Delete(id, actorFromCtx(c)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Movement deleted"})
}
