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

	_ "github.com/threadkeep/threadstock-api/docs"
	"github.com/threadkeep/threadstock-api/internal/application/auth"
	"github.com/threadkeep/threadstock-api/internal/application/catalog"
	"github.com/threadkeep/threadstock-api/internal/application/issuance"
	"github.com/threadkeep/threadstock-api/internal/application/stock"
	infrapdf "github.com/threadkeep/threadstock-api/internal/infrastructure/pdf"
	"github.com/threadkeep/threadstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/threadkeep/threadstock-api/internal/interfaces/http"
	"github.com/threadkeep/threadstock-api/pkg/config"
	"github.com/threadkeep/threadstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	lineRepo := postgres.NewStockLineRepository(pool)
	issuanceRepo := postgres.NewIssuanceRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registrationUC := stock.NewRegistrationUseCase(txRunner)
	workflowUC := issuance.NewWorkflowUseCase(txRunner)
	catalogUC := catalog.NewUseCase(catalogRepo, lineRepo, issuanceRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: recibo imprimible de las emisiones aprobadas
	receiptPDF := infrapdf.NewMarotoReceiptGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ThreadStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegistrationUC: registrationUC,
		WorkflowUC:     workflowUC,
		CatalogUC:      catalogUC,
		AuthUC:         authUC,
		IssuanceRepo:   issuanceRepo,
		ReceiptPDF:     receiptPDF,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
