package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/threadkeep/threadstock-api/internal/application/dto"
	"github.com/threadkeep/threadstock-api/internal/application/stock"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
)

// StockHandler maneja registros de stock y sus reversiones (protegido,
// ADMIN/POWER).
type StockHandler struct {
	uc *stock.RegistrationUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.RegistrationUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar entrada de stock
// @Description  Fusiona por clave SKU (shade, tkt, bin_no, column_name): si la
//
//	línea existe suma la cantidad, si no la crea. Siempre agrega un
//	evento al historial.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterStockRequest  true  "clave SKU, category, brand, quantity"
// @Success      201   {object}  dto.RegisterStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/stock/registrations [post]
func (h *StockHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	line, event, err := h.uc.RegisterStock(c.Context(), stock.RegisterStockInput{
		Key: entity.SKUKey{
			Shade:      in.Shade,
			Tkt:        in.Tkt,
			BinNo:      in.BinNo,
			ColumnName: in.ColumnName,
		},
		Category: in.Category,
		Brand:    in.Brand,
		Quantity: in.Quantity,
		Actor:    GetActor(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterStockResponse{
		Line:  dto.FromStockLine(line),
		Event: dto.FromRegistrationEvent(event),
	})
}

// Revert godoc
// @Summary      Revertir un evento de registro
// @Description  Resta el qty_change del evento de la línea, marca el evento
//
//	como revertido y agrega un evento REVERT al historial. Un evento
//	solo se revierte una vez; un REVERT no es revertible.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del evento de registro"
// @Success      200  {object}  dto.RegisterStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/registrations/{id}/revert [post]
func (h *StockHandler) Revert(c *fiber.Ctx) error {
	eventID := c.Params("id")
	line, revert, err := h.uc.RevertRegistration(c.Context(), eventID, GetActor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.RegisterStockResponse{
		Line:  dto.FromStockLine(line),
		Event: dto.FromRegistrationEvent(revert),
	})
}
