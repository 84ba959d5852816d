package stock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/threadkeep/threadstock-api/internal/domain"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

// RegistrationUseCase registra entradas de stock y sus reversiones de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Cada mutación produce exactamente un RegistrationEvent.
type RegistrationUseCase struct {
	txRunner TxRunner
}

// NewRegistrationUseCase construye el caso de uso.
func NewRegistrationUseCase(txRunner TxRunner) *RegistrationUseCase {
	return &RegistrationUseCase{txRunner: txRunner}
}

// RegisterStockInput entrada para registrar stock. Quantity debe ser > 0.
type RegisterStockInput struct {
	Key      entity.SKUKey
	Category string
	Brand    string
	Quantity int64
	Actor    entity.Actor
}

var upper = cases.Upper(language.Und)

// NormalizeKey recorta espacios y pasa a mayúsculas los cuatro campos de la
// clave SKU, para que "red"/"Red "/"RED" refieran a la misma línea.
func NormalizeKey(k entity.SKUKey) entity.SKUKey {
	return entity.SKUKey{
		Shade:      upper.String(strings.TrimSpace(k.Shade)),
		Tkt:        upper.String(strings.TrimSpace(k.Tkt)),
		BinNo:      upper.String(strings.TrimSpace(k.BinNo)),
		ColumnName: upper.String(strings.TrimSpace(k.ColumnName)),
	}
}

// RegisterStock fusiona por clave SKU: si la línea existe, suma la cantidad y
// sobreescribe categoría/marca (last-write-wins); si no, la crea con la
// cantidad inicial. Siempre agrega un evento CREATE o UPDATE al libro, con el
// snapshot de la clave y old/new quantity de la transición.
func (uc *RegistrationUseCase) RegisterStock(ctx context.Context, input RegisterStockInput) (*entity.StockLine, *entity.RegistrationEvent, error) {
	if input.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	key := NormalizeKey(input.Key)
	if key.Shade == "" || key.Tkt == "" || key.BinNo == "" || key.ColumnName == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	category := upper.String(strings.TrimSpace(input.Category))
	if !entity.ValidCategory(category) {
		return nil, nil, domain.ErrInvalidInput
	}
	brand := strings.TrimSpace(input.Brand)
	if brand == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var (
		line  *entity.StockLine
		event *entity.RegistrationEvent
	)
	err := uc.txRunner.Run(ctx, func(
		lineRepo repository.StockLineRepository,
		eventRepo repository.RegistrationEventRepository,
	) error {
		// Bloquea la fila por clave SKU para que dos registros concurrentes
		// de la misma clave no pierdan actualizaciones
		existing, err := lineRepo.GetByKeyForUpdate(key)
		if err != nil {
			return err
		}

		var oldQty int64
		action := entity.ActionCreate
		if existing == nil {
			line = &entity.StockLine{
				ID:        uuid.New().String(),
				Key:       key,
				Quantity:  input.Quantity,
				Category:  category,
				Brand:     brand,
				CreatedBy: input.Actor.ID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			switch err := lineRepo.Create(line); {
			case err == nil:
			case errors.Is(err, domain.ErrDuplicateKey):
				// Dos primeros registros de la misma clave corrieron a la
				// vez: el perdedor relee la fila ya confirmada (ahora sí hay
				// fila que bloquear) y fusiona como actualización
				existing, err = lineRepo.GetByKeyForUpdate(key)
				if err != nil {
					return err
				}
				if existing == nil {
					return domain.ErrDuplicateKey
				}
			default:
				return err
			}
		}
		if existing != nil {
			oldQty = existing.Quantity
			existing.Quantity = oldQty + input.Quantity
			// Last-write-wins: el registro más reciente manda en categoría y marca
			existing.Category = category
			existing.Brand = brand
			existing.UpdatedAt = now
			if err := lineRepo.Update(existing); err != nil {
				return err
			}
			line = existing
			action = entity.ActionUpdate
		}

		event = &entity.RegistrationEvent{
			ID:          uuid.New().String(),
			StockLineID: line.ID,
			Key:         key,
			Category:    category,
			Brand:       brand,
			QtyChange:   input.Quantity,
			OldQuantity: oldQty,
			NewQuantity: oldQty + input.Quantity,
			Action:      action,
			CreatedBy:   input.Actor.ID,
			CreatedAt:   now,
		}
		return eventRepo.Create(event)
	})
	if err != nil {
		return nil, nil, err
	}
	return line, event, nil
}
