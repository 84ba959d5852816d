package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/threadkeep/threadstock-api/internal/application/catalog"
	"github.com/threadkeep/threadstock-api/internal/application/dto"
	"github.com/threadkeep/threadstock-api/internal/application/issuance"
	"github.com/threadkeep/threadstock-api/internal/domain"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

// IssuanceHandler maneja el ciclo de vida de las solicitudes de emisión y
// el recibo imprimible (protegido).
type IssuanceHandler struct {
	workflow     *issuance.WorkflowUseCase
	catalogUC    *catalog.UseCase
	issuanceRepo repository.IssuanceRepository
	receiptPDF   issuance.ReceiptPDFGenerator
}

// NewIssuanceHandler construye el handler.
func NewIssuanceHandler(
	workflow *issuance.WorkflowUseCase,
	catalogUC *catalog.UseCase,
	issuanceRepo repository.IssuanceRepository,
	receiptPDF issuance.ReceiptPDFGenerator,
) *IssuanceHandler {
	return &IssuanceHandler{
		workflow:     workflow,
		catalogUC:    catalogUC,
		issuanceRepo: issuanceRepo,
		receiptPDF:   receiptPDF,
	}
}

// Create godoc
// @Summary      Solicitar emisión de stock
// @Description  Crea una solicitud de retiro sobre una línea. ADMIN y POWER la
//
//	auto-aprueban en el acto (reserva stock y asigna recibo); los
//	demás roles la dejan PENDING sin tocar stock.
//
// @Tags         issuances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIssuanceRequest  true  "stock_line_id, quantity"
// @Success      201   {object}  dto.IssuanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/issuances [post]
func (h *IssuanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIssuanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	iss, err := h.workflow.RequestIssuance(c.Context(), in.StockLineID, in.Quantity, GetActor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromIssuance(iss))
}

// Approve godoc
// @Summary      Aprobar una solicitud PENDING
// @Description  Reserva el stock con un decremento atómico y asigna el número
//
//	de recibo. Solo ADMIN y POWER.
//
// @Tags         issuances
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.IssuanceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/issuances/{id}/approve [post]
func (h *IssuanceHandler) Approve(c *fiber.Ctx) error {
	iss, err := h.workflow.ApproveIssuance(c.Context(), c.Params("id"), GetActor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromIssuance(iss))
}

// Reject godoc
// @Summary      Rechazar una solicitud PENDING
// @Description  El motivo OTHER exige comentario. No muta stock. Solo ADMIN y
//
//	POWER.
//
// @Tags         issuances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.RejectIssuanceRequest  true  "reason, comment"
// @Success      200   {object}  dto.IssuanceResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/issuances/{id}/reject [post]
func (h *IssuanceHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectIssuanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	iss, err := h.workflow.RejectIssuance(c.Context(), c.Params("id"), GetActor(c), in.Reason, in.Comment)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromIssuance(iss))
}

// GetByID godoc
// @Summary      Detalle de una solicitud
// @Tags         issuances
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.IssuanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/issuances/{id} [get]
func (h *IssuanceHandler) GetByID(c *fiber.Ctx) error {
	iss, err := h.catalogUC.GetIssuance(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(iss)
}

// List godoc
// @Summary      Historial de solicitudes
// @Description  De la más reciente a la más antigua. q filtra por shade/tkt,
//
//	solicitante, aprobador y estado.
//
// @Tags         issuances
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "filtro por subcadena"
// @Param        limit   query  int     false  "máximo de filas (default 50)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.IssuanceResponse
// @Router       /api/issuances [get]
func (h *IssuanceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.catalogUC.IssuanceHistory(c.Context(), c.Query("q"), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Pending godoc
// @Summary      Cola de aprobación
// @Description  Solicitudes PENDING de la más reciente a la más antigua. Solo
//
//	ADMIN y POWER.
//
// @Tags         issuances
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.IssuanceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/issuances/pending [get]
func (h *IssuanceHandler) Pending(c *fiber.Ctx) error {
	out, err := h.catalogUC.PendingIssuances(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ReceiptPDF godoc
// @Summary      Recibo imprimible de una emisión aprobada
// @Tags         issuances
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/issuances/{id}/receipt.pdf [get]
func (h *IssuanceHandler) ReceiptPDF(c *fiber.Ctx) error {
	iss, err := h.issuanceRepo.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if iss == nil {
		return domainError(c, domain.ErrNotFound)
	}
	// Solo las emisiones aprobadas tienen recibo
	if iss.Status != entity.IssuanceStatusApproved {
		return domainError(c, domain.ErrWrongState)
	}
	pdfBytes, err := h.receiptPDF.GenerateReceiptPDF(c.Context(), iss)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+iss.ReceiptNumber+`.pdf"`)
	return c.Send(pdfBytes)
}
