package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/threadkeep/threadstock-api/internal/application/auth"
	"github.com/threadkeep/threadstock-api/internal/application/catalog"
	"github.com/threadkeep/threadstock-api/internal/application/issuance"
	"github.com/threadkeep/threadstock-api/internal/application/stock"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegistrationUC *stock.RegistrationUseCase
	WorkflowUC     *issuance.WorkflowUseCase
	CatalogUC      *catalog.UseCase
	AuthUC         *auth.UseCase
	IssuanceRepo   repository.IssuanceRepository
	ReceiptPDF     issuance.ReceiptPDFGenerator
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios (solo ADMIN)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)

	// Vistas de lectura (cualquier rol autenticado, VIEWER incluido)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	protected.Get("/columns", catalogHandler.Columns)
	protected.Get("/columns/:name", catalogHandler.ColumnDetail)
	protected.Get("/stock/lines", catalogHandler.Dashboard)
	protected.Get("/stock/lines/:id", catalogHandler.GetLine)
	protected.Get("/stock/registrations", catalogHandler.RegistrationHistory)

	// Registro de stock y reversiones (ADMIN/POWER)
	stockHandler := NewStockHandler(deps.RegistrationUC)
	registrations := protected.Group("/stock/registrations", RequireRole(entity.RoleAdmin, entity.RolePower))
	registrations.Post("/", stockHandler.Register)
	registrations.Post("/:id/revert", stockHandler.Revert)

	// Solicitudes de emisión
	issuanceHandler := NewIssuanceHandler(deps.WorkflowUC, deps.CatalogUC, deps.IssuanceRepo, deps.ReceiptPDF)
	issuances := protected.Group("/issuances")
	issuances.Get("/", issuanceHandler.List)
	issuances.Get("/pending", RequireRole(entity.RoleAdmin, entity.RolePower), issuanceHandler.Pending)
	issuances.Post("/", RequireRole(entity.RoleAdmin, entity.RolePower, entity.RoleUser), issuanceHandler.Create)
	issuances.Get("/:id", issuanceHandler.GetByID)
	issuances.Get("/:id/receipt.pdf", issuanceHandler.ReceiptPDF)
	issuances.Post("/:id/approve", issuanceHandler.Approve)
	issuances.Post("/:id/reject", issuanceHandler.Reject)
}
