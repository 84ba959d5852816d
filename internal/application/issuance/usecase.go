package issuance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/threadkeep/threadstock-api/internal/domain"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

// WorkflowUseCase gobierna el ciclo de vida de una solicitud de emisión:
// creación (con auto-aprobación para ADMIN/POWER), aprobación y rechazo.
// Transiciones en un solo sentido: PENDING -> APPROVED | REJECTED.
type WorkflowUseCase struct {
	txRunner TxRunner
}

// NewWorkflowUseCase construye el caso de uso.
func NewWorkflowUseCase(txRunner TxRunner) *WorkflowUseCase {
	return &WorkflowUseCase{txRunner: txRunner}
}

// RequestIssuance crea una solicitud de retiro sobre una línea. Congela
// bin/columna al momento de la solicitud. Si el solicitante puede aprobar
// (ADMIN/POWER) reserva el stock de inmediato y la solicitud nace APPROVED
// con su número de recibo; si la reserva falla por stock insuficiente no se
// persiste nada. Para los demás roles la solicitud queda PENDING sin tocar
// el stock (la verificación de cantidad ocurre recién al aprobar).
func (uc *WorkflowUseCase) RequestIssuance(ctx context.Context, stockLineID string, qty int64, requester entity.Actor) (*entity.Issuance, error) {
	if stockLineID == "" || qty <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var iss *entity.Issuance
	err := uc.txRunner.RunIssuance(ctx, func(
		lineRepo repository.StockLineRepository,
		issuanceRepo repository.IssuanceRepository,
		receipts ReceiptSource,
	) error {
		line, err := lineRepo.GetByID(stockLineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}

		iss = &entity.Issuance{
			ID:                uuid.New().String(),
			StockLineID:       line.ID,
			RequestedQuantity: qty,
			RequestedBy:       requester.ID,
			RequestedAt:       now,
			Status:            entity.IssuanceStatusPending,
			BinSnapshot:       line.Key.BinNo,
			ColumnSnapshot:    line.Key.ColumnName,
		}

		if requester.CanApprove() {
			// Reserva inmediata: si falla, el rollback descarta la solicitud
			// y el caller solo ve el error de stock
			if err := lineRepo.Reserve(line.ID, qty); err != nil {
				return err
			}
			number, err := receipts.Next()
			if err != nil {
				return err
			}
			iss.Status = entity.IssuanceStatusApproved
			iss.ApprovedBy = requester.ID
			iss.ApprovedAt = &now
			iss.ReceiptNumber = number
		}

		return issuanceRepo.Create(iss)
	})
	if err != nil {
		return nil, err
	}
	return iss, nil
}

// ApproveIssuance aprueba una solicitud PENDING. Re-verifica el stock al
// momento de aprobar (pudo haber cambiado desde la solicitud) vía el mismo
// decremento atómico que usa la auto-aprobación.
func (uc *WorkflowUseCase) ApproveIssuance(ctx context.Context, issuanceID string, approver entity.Actor) (*entity.Issuance, error) {
	if !approver.CanApprove() {
		return nil, domain.ErrForbidden
	}
	if issuanceID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var iss *entity.Issuance
	err := uc.txRunner.RunIssuance(ctx, func(
		lineRepo repository.StockLineRepository,
		issuanceRepo repository.IssuanceRepository,
		receipts ReceiptSource,
	) error {
		var err error
		// Bloquea la solicitud: dos aprobadores concurrentes no la resuelven dos veces
		iss, err = issuanceRepo.GetForUpdate(issuanceID)
		if err != nil {
			return err
		}
		if iss == nil {
			return domain.ErrNotFound
		}
		if iss.Status != entity.IssuanceStatusPending {
			return domain.ErrWrongState
		}

		if err := lineRepo.Reserve(iss.StockLineID, iss.RequestedQuantity); err != nil {
			return err
		}
		number, err := receipts.Next()
		if err != nil {
			return err
		}

		iss.Status = entity.IssuanceStatusApproved
		iss.ApprovedBy = approver.ID
		iss.ApprovedAt = &now
		iss.ReceiptNumber = number
		return issuanceRepo.Update(iss)
	})
	if err != nil {
		return nil, err
	}
	return iss, nil
}

// RejectIssuance rechaza una solicitud PENDING con un código de motivo y
// comentario opcional (obligatorio si el motivo es OTHER). No muta stock.
func (uc *WorkflowUseCase) RejectIssuance(ctx context.Context, issuanceID string, approver entity.Actor, reason, comment string) (*entity.Issuance, error) {
	if !approver.CanApprove() {
		return nil, domain.ErrForbidden
	}
	if issuanceID == "" || !entity.ValidRejectionReason(reason) {
		return nil, domain.ErrInvalidInput
	}
	comment = strings.TrimSpace(comment)
	if reason == entity.RejectionOther && comment == "" {
		return nil, domain.ErrMissingComment
	}

	now := time.Now()
	var iss *entity.Issuance
	err := uc.txRunner.RunIssuance(ctx, func(
		_ repository.StockLineRepository,
		issuanceRepo repository.IssuanceRepository,
		_ ReceiptSource,
	) error {
		var err error
		iss, err = issuanceRepo.GetForUpdate(issuanceID)
		if err != nil {
			return err
		}
		if iss == nil {
			return domain.ErrNotFound
		}
		if iss.Status != entity.IssuanceStatusPending {
			return domain.ErrWrongState
		}

		iss.Status = entity.IssuanceStatusRejected
		iss.ApprovedBy = approver.ID
		iss.ApprovedAt = &now
		iss.RejectionReason = reason
		iss.RejectionComment = comment
		return issuanceRepo.Update(iss)
	})
	if err != nil {
		return nil, err
	}
	return iss, nil
}
