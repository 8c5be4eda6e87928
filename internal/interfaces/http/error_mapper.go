package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// respondError translates domain errors into the HTTP envelope. Use cases
// wrap sentinels with context, so matching goes through errors.Is/As rather
// than equality.
func respondError(c *fiber.Ctx, err error) error {
	var overpay *domain.OverpaymentError
	switch {
	case errors.As(err, &overpay):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "OVERPAYMENT",
			Message: overpay.Error(),
		})
	case errors.Is(err, domain.ErrUnknownRef):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "UNKNOWN_REF",
			Message: "referenced record does not exist",
		})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "record not found",
		})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "EMAIL_EXISTS",
			Message: "email is already registered",
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "DUPLICATE",
			Message: "a record with the same unique key already exists",
		})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "invalid credentials",
		})
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrEmptyInvoice),
		errors.Is(err, domain.ErrInvalidLineItem),
		errors.Is(err, domain.ErrInvalidTaxConfig),
		errors.Is(err, money.ErrInvalidAmount):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL",
			Message: err.Error(),
		})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "INVALID_BODY",
		Message: "malformed request body",
	})
}
