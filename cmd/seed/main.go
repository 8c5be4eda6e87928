// seed populates a development database with a demo admin user, a small
// catalogue, two parties and a sale with a part payment, so the API has
// data to serve right after `go run ./cmd/seed`.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/ssilapps/billbook-api/internal/application/auth"
	"github.com/ssilapps/billbook-api/internal/application/billing"
	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/application/usecase"
	"github.com/ssilapps/billbook-api/internal/infrastructure/postgres"
	"github.com/ssilapps/billbook-api/pkg/config"
	"github.com/ssilapps/billbook-api/pkg/jwt"
	"github.com/ssilapps/billbook-api/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("load configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("connect to PostgreSQL: %v", err)
	}
	defer pool.Close()

	tokens, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fail("configure JWT: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	partyRepo := postgres.NewPartyRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, tokens)
	partyUC := usecase.NewPartyUseCase(partyRepo, invoiceRepo, paymentRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, partyRepo, invoiceRepo, paymentRepo)
	paymentUC := billing.NewPaymentUseCase(txRunner, partyRepo, invoiceRepo, paymentRepo)

	if _, err := authUC.Register(ctx, dto.RegisterRequest{
		Name:     "Admin",
		Email:    "admin@billbook.local",
		Password: "admin12345",
		Role:     "admin",
	}); err != nil {
		fmt.Println("admin user:", err, "(continuing)")
	}

	customer, err := partyUC.CreateParty(ctx, dto.PartyRequest{
		Name:    "Sharma Constructions",
		Kind:    "customer",
		GSTIN:   "27AABCS1234A1Z5",
		Contact: "9876543210",
		Address: "Plot 14, MIDC, Pune",
	})
	if err != nil {
		fail("seed customer: %v", err)
	}
	if _, err := partyUC.CreateParty(ctx, dto.PartyRequest{
		Name:    "Patel Diesel Supplies",
		Kind:    "supplier",
		Contact: "9822001100",
	}); err != nil {
		fail("seed supplier: %v", err)
	}

	if _, err := itemUC.CreateItem(ctx, dto.ItemRequest{
		Name:     "JCB 3DX",
		HSNCode:  "997313",
		Unit:     "Month",
		SaleRate: money.MustParse("85000"),
		GSTRate:  decimal.NewFromInt(18),
	}); err != nil {
		fail("seed item: %v", err)
	}

	invoice, err := invoiceUC.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		Kind:       "sale",
		PartyID:    customer.ID,
		SiteName:   "Hinjewadi Phase 2",
		Particular: "JCB Rent - August 2026",
		Lines: []dto.InvoiceLineRequest{{
			Particular: "JCB 3DX",
			HSNCode:    "997313",
			Quantity:   decimal.NewFromInt(1),
			Unit:       "Month",
			Rate:       money.MustParse("85000"),
		}},
		CGSTRate: decimal.NewFromInt(9),
		SGSTRate: decimal.NewFromInt(9),
	})
	if err != nil {
		fail("seed invoice: %v", err)
	}

	if _, err := paymentUC.CreatePayment(ctx, dto.PaymentRequest{
		Direction: "in",
		PartyID:   customer.ID,
		Amount:    money.MustParse("50000"),
		Mode:      "upi",
		Note:      "advance",
		InvoiceID: invoice.ID,
	}); err != nil {
		fail("seed payment: %v", err)
	}

	fmt.Println("seeded demo data:")
	fmt.Printf("  invoice %s, grand total %s, balance %s\n",
		invoice.Number, invoice.GrandTotal, invoice.Balance)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
