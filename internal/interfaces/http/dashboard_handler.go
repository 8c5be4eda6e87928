package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ssilapps/billbook-api/internal/application/analytics"
)

// DashboardHandler serves the home-screen KPIs.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get GET /api/dashboard
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
