package handler

import (
	"kasir-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// CommitSale commits a cart as a sale transaction and returns the persisted
// record for receipt printing.
func (h *SaleHandler) CommitSale(c *fiber.Ctx) error {
	var req service.CommitSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.Commit(&req, actorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale committed", "data": sale})
}

// PriceCheck computes totals for the in-progress cart without committing.
func (h *SaleHandler) PriceCheck(c *fiber.Ctx) error {
	var req service.CommitSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	totals, err := h.service.Quote(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(totals)
}

// PriceItem resolves one scanned barcode for the register screen.
func (h *SaleHandler) PriceItem(c *fiber.Ctx) error {
	item, err := h.service.PriceItem(c.Params("barcode"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
	}
	return c.JSON(sale)
}
