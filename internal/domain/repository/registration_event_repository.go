package repository

import "github.com/threadkeep/threadstock-api/internal/domain/entity"

// RegistrationEventRepository define el puerto del libro de registros:
// append-only salvo el flag is_reverted.
type RegistrationEventRepository interface {
	Create(event *entity.RegistrationEvent) error
	// GetByID devuelve nil (sin error) si no existe.
	GetByID(id string) (*entity.RegistrationEvent, error)
	// MarkReverted marca el evento como revertido solo si aún no lo estaba
	// (UPDATE ... WHERE is_reverted = false). Devuelve false si otra
	// transacción lo revirtió primero.
	MarkReverted(id string) (bool, error)
}
