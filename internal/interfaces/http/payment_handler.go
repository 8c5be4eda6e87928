package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ssilapps/billbook-api/internal/application/billing"
	"github.com/ssilapps/billbook-api/internal/application/dto"
)

// PaymentHandler handles payment requests.
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

// NewPaymentHandler builds the handler.
func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Create POST /api/payments
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	payment, err := h.uc.CreatePayment(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// Update PUT /api/payments/:id
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	payment, err := h.uc.UpdatePayment(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payment)
}

// Delete DELETE /api/payments/:id
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeletePayment(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID GET /api/payments/:id
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	payment, err := h.uc.GetPayment(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payment)
}

// List GET /api/payments?partyId=...
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListPayments(c.UserContext(), c.Query("partyId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
