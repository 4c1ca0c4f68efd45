package handler

import (
	"kasir-backend/internal/model"
	"kasir-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	service service.SessionService
}

func NewSessionHandler(s service.SessionService) *SessionHandler {
	return &SessionHandler{service: s}
}

// OpenSession opens a cashier session. 409 when the user already has one
// open, 422 on a negative opening balance.
func (h *SessionHandler) OpenSession(c *fiber.Ctx) error {
	var req service.OpenSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := actorFromCtx(c)
	// A cashier opens their own session; the user_id in the body is only
	// honored for admin actors opening on someone's behalf.
	if req.UserID == "" || actor.RoleCode == model.RoleCashier {
		req.UserID = actor.ID
	}

	session, err := h.service.Open(&req, actor)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Session opened", "data": session})
}

// GetCurrentSession returns the authenticated user's open session, or 404.
// The front end gates the register screen on this endpoint.
func (h *SessionHandler) GetCurrentSession(c *fiber.Ctx) error {
	actor := actorFromCtx(c)
	userID, err := parseUUID(actor.ID)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	session, err := h.service.Current(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(session)
}

// CloseSession closes a session and reports the expected balance and
// discrepancy. A drawer variance is recorded, never rejected.
func (h *SessionHandler) CloseSession(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	var req service.CloseSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	session, err := h.service.Close(id, &req, actorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Session closed", "data": session})
}

func (h *SessionHandler) GetSessions(c *fiber.Ctx) error {
	sessions, err := h.service.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sessions)
}

func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	session, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(session)
}

// GetSessionSalesTotal sums sales attributed to a session so far; the active
// session screen polls this to preview the expected balance.
func (h *SessionHandler) GetSessionSalesTotal(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	total, err := h.service.SalesTotal(id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"total": total})
}
