package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/application/statement"
)

// StatementHandler serves party ledger statements in the formats the client
// asks for: JSON (default), CSV, PDF or Tally voucher XML.
type StatementHandler struct {
	uc *statement.UseCase
}

// NewStatementHandler builds the handler.
func NewStatementHandler(uc *statement.UseCase) *StatementHandler {
	return &StatementHandler{uc: uc}
}

// Get GET /api/statements?partyId=&from=&to=&format=
func (h *StatementHandler) Get(c *fiber.Ctx) error {
	var req dto.StatementRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_QUERY",
			Message: "malformed query parameters",
		})
	}

	st, err := h.uc.Build(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	switch req.Format {
	case "", "json":
		return c.JSON(st)
	case "csv":
		out, err := h.uc.ExportCSV(st)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="statement.csv"`)
		return c.Send(out)
	case "pdf":
		out, err := h.uc.ExportPDF(st)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="statement.pdf"`)
		return c.Send(out)
	case "tally":
		out, err := h.uc.ExportTally(st)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="vouchers.xml"`)
		return c.Send(out)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "format must be json, csv, pdf or tally",
		})
	}
}
