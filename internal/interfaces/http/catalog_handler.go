package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/threadkeep/threadstock-api/internal/application/catalog"
	"github.com/threadkeep/threadstock-api/internal/application/dto"
)

// CatalogHandler maneja las vistas de lectura: tablero, líneas, historial de
// registros y columnas (protegido, cualquier rol).
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Tablero de inventario
// @Description  Líneas ordenadas por cantidad ascendente (las más escasas
//
//	primero), con el tamaño de la cola pendiente si el actor puede
//	aprobar.
//
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/stock/lines [get]
func (h *CatalogHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetActor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetLine godoc
// @Summary      Detalle de una línea de stock
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.StockLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/lines/{id} [get]
func (h *CatalogHandler) GetLine(c *fiber.Ctx) error {
	out, err := h.uc.GetLine(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// RegistrationHistory godoc
// @Summary      Historial de registros
// @Description  Eventos del más reciente al más antiguo. q filtra por
//
//	subcadena sobre shade, tkt, bin, columna y marca.
//
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "filtro por subcadena"
// @Param        limit   query  int     false  "máximo de filas (default 50)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.RegistrationEventResponse
// @Router       /api/stock/registrations [get]
func (h *CatalogHandler) RegistrationHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.RegistrationHistory(c.Context(), c.Query("q"), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Columns godoc
// @Summary      Resumen por columna física
// @Description  Cada resumen trae detail_path, la ruta que se codifica como QR
//
//	pegado en la columna del almacén.
//
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ColumnSummaryDTO
// @Router       /api/columns [get]
func (h *CatalogHandler) Columns(c *fiber.Ctx) error {
	out, err := h.uc.Columns(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ColumnDetail godoc
// @Summary      Detalle de una columna
// @Description  Líneas de la columna ordenadas por bin, shade, tkt, con el
//
//	total disponible.
//
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "nombre de la columna"
// @Success      200   {object}  dto.ColumnDetailResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/columns/{name} [get]
func (h *CatalogHandler) ColumnDetail(c *fiber.Ctx) error {
	out, err := h.uc.ColumnDetail(c.Context(), c.Params("name"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
