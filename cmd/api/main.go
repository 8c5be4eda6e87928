package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ssilapps/billbook-api/internal/application/analytics"
	"github.com/ssilapps/billbook-api/internal/application/auth"
	"github.com/ssilapps/billbook-api/internal/application/billing"
	"github.com/ssilapps/billbook-api/internal/application/statement"
	"github.com/ssilapps/billbook-api/internal/application/usecase"
	infrapdf "github.com/ssilapps/billbook-api/internal/infrastructure/pdf"
	"github.com/ssilapps/billbook-api/internal/infrastructure/postgres"
	infratally "github.com/ssilapps/billbook-api/internal/infrastructure/tally"
	httpRouter "github.com/ssilapps/billbook-api/internal/interfaces/http"
	"github.com/ssilapps/billbook-api/pkg/config"
	"github.com/ssilapps/billbook-api/pkg/jwt"
	"github.com/ssilapps/billbook-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	tokens, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("configure JWT")
	}

	userRepo := postgres.NewUserRepository(pool)
	partyRepo := postgres.NewPartyRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	partyUC := usecase.NewPartyUseCase(partyRepo, invoiceRepo, paymentRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, partyRepo, invoiceRepo, paymentRepo)
	invoicePDF := billing.NewPDFUseCase(invoiceRepo, partyRepo, infrapdf.NewMarotoInvoiceRenderer())
	paymentUC := billing.NewPaymentUseCase(txRunner, partyRepo, invoiceRepo, paymentRepo)
	statementUC := statement.NewUseCase(
		partyRepo, invoiceRepo, paymentRepo,
		infrapdf.NewMarotoStatementRenderer(),
		infratally.NewExporter("Sales Account"),
	)
	dashboardUC := analytics.NewDashboardUseCase(partyRepo, invoiceRepo, paymentRepo)
	authUC := auth.NewUseCase(userRepo, tokens)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Billbook API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		PartyUC:     partyUC,
		ItemUC:      itemUC,
		InvoiceUC:   invoiceUC,
		InvoicePDF:  invoicePDF,
		PaymentUC:   paymentUC,
		StatementUC: statementUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		Tokens:      tokens,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
