package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ssilapps/billbook-api/internal/application/analytics"
	"github.com/ssilapps/billbook-api/internal/application/auth"
	"github.com/ssilapps/billbook-api/internal/application/billing"
	"github.com/ssilapps/billbook-api/internal/application/statement"
	"github.com/ssilapps/billbook-api/internal/application/usecase"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/pkg/jwt"
)

// RouterDeps carries the wired use cases for the router.
type RouterDeps struct {
	PartyUC     *usecase.PartyUseCase
	ItemUC      *usecase.ItemUseCase
	InvoiceUC   *billing.InvoiceUseCase
	InvoicePDF  *billing.PDFUseCase
	PaymentUC   *billing.PaymentUseCase
	StatementUC *statement.UseCase
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.UseCase
	Tokens      *jwt.Manager
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token. Destructive operations are
	// additionally restricted to admins.
	protected := api.Group("/", AuthMiddleware(deps.Tokens))
	adminOnly := RequireRole(entity.RoleAdmin)

	parties := protected.Group("/parties")
	partyHandler := NewPartyHandler(deps.PartyUC)
	parties.Post("/", partyHandler.Create)
	parties.Get("/", partyHandler.List)
	parties.Get("/:id", partyHandler.GetByID)
	parties.Put("/:id", partyHandler.Update)
	parties.Delete("/:id", adminOnly, partyHandler.Delete)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Delete)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Put("/:id", invoiceHandler.Update)
	// The mobile client sends PATCH for invoice edits.
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", adminOnly, invoiceHandler.Delete)

	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Put("/:id", paymentHandler.Update)
	payments.Delete("/:id", adminOnly, paymentHandler.Delete)

	statementHandler := NewStatementHandler(deps.StatementUC)
	protected.Get("/statements", statementHandler.Get)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)
}
