package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/threadkeep/threadstock-api/internal/application/dto"
	"github.com/threadkeep/threadstock-api/internal/domain"
)

// domainError mapea los errores del dominio a respuestas HTTP. Conflictos de
// estado (transición inválida, doble reversión, stock insuficiente) van como
// 409; el comentario faltante del rechazo OTHER como 422.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrWrongState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "WRONG_STATE", Message: "la solicitud ya fue decidida"})
	case errors.Is(err, domain.ErrAlreadyReverted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_REVERTED", Message: "el evento ya fue revertido"})
	case errors.Is(err, domain.ErrRevertNotRevertible):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_REVERTIBLE", Message: "una reversión no se puede revertir"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrMissingComment):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_COMMENT", Message: "el motivo OTHER exige comentario"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
