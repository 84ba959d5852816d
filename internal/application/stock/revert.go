package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/threadkeep/threadstock-api/internal/domain"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

// RevertRegistration deshace un evento CREATE/UPDATE: resta su qty_change de
// la línea, marca el evento original como revertido y agrega un evento
// REVERT con qty_change negado y referencia al original. Un evento solo se
// revierte una vez y un REVERT nunca es revertible (sin cadenas de deshacer).
func (uc *RegistrationUseCase) RevertRegistration(ctx context.Context, eventID string, actor entity.Actor) (*entity.StockLine, *entity.RegistrationEvent, error) {
	if eventID == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var (
		line   *entity.StockLine
		revert *entity.RegistrationEvent
	)
	err := uc.txRunner.Run(ctx, func(
		lineRepo repository.StockLineRepository,
		eventRepo repository.RegistrationEventRepository,
	) error {
		orig, err := eventRepo.GetByID(eventID)
		if err != nil {
			return err
		}
		if orig == nil {
			return domain.ErrNotFound
		}
		if orig.Action == entity.ActionRevert {
			return domain.ErrRevertNotRevertible
		}
		if orig.IsReverted {
			return domain.ErrAlreadyReverted
		}

		line, err = lineRepo.GetForUpdate(orig.StockLineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		// No se puede revertir más de lo que hay disponible ahora
		if line.Quantity < orig.QtyChange {
			return domain.ErrInsufficientStock
		}

		// Guardado contra la reversión concurrente del mismo evento:
		// solo una transacción consigue voltear el flag
		ok, err := eventRepo.MarkReverted(orig.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyReverted
		}

		oldQty := line.Quantity
		line.Quantity = oldQty - orig.QtyChange
		line.UpdatedAt = now
		if err := lineRepo.Update(line); err != nil {
			return err
		}

		revert = &entity.RegistrationEvent{
			ID:           uuid.New().String(),
			StockLineID:  line.ID,
			Key:          orig.Key,
			Category:     orig.Category,
			Brand:        orig.Brand,
			QtyChange:    -orig.QtyChange,
			OldQuantity:  oldQty,
			NewQuantity:  oldQty - orig.QtyChange,
			Action:       entity.ActionRevert,
			RevertedFrom: orig.ID,
			CreatedBy:    actor.ID,
			CreatedAt:    now,
		}
		return eventRepo.Create(revert)
	})
	if err != nil {
		return nil, nil, err
	}
	return line, revert, nil
}
