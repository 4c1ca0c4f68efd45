package handler

import (
	"kasir-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) GetDailySales(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 || days > 366 {
		days = 7
	}

	buckets, err := h.service.GetDailySales(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(buckets)
}

func (h *ReportHandler) GetMonthlySales(c *fiber.Ctx) error {
	months := c.QueryInt("months", 12)
	if months < 1 || months > 60 {
		months = 12
	}

	buckets, err := h.service.GetMonthlySales(months)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(buckets)
}

func (h *ReportHandler) GetShiftSales(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	if days < 1 || days > 366 {
		days = 30
	}

	totals, err := h.service.GetShiftSales(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(totals)
}

func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stats)
}

func (h *ReportHandler) GetStockMovement(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	if days < 1 || days > 366 {
		days = 30
	}

	flow, err := h.service.GetStockFlow(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(flow)
}
