package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/application/usecase"
)

// PartyHandler handles customer/supplier requests.
type PartyHandler struct {
	uc *usecase.PartyUseCase
}

// NewPartyHandler builds the handler.
func NewPartyHandler(uc *usecase.PartyUseCase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

// Create POST /api/parties
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	party, err := h.uc.CreateParty(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(party)
}

// Update PUT /api/parties/:id
func (h *PartyHandler) Update(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	party, err := h.uc.UpdateParty(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(party)
}

// Delete DELETE /api/parties/:id
func (h *PartyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteParty(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID GET /api/parties/:id
func (h *PartyHandler) GetByID(c *fiber.Ctx) error {
	party, err := h.uc.GetParty(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(party)
}

// List GET /api/parties
func (h *PartyHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListParties(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
