package repository

import "github.com/threadkeep/threadstock-api/internal/domain/entity"

// IssuanceRepository define el puerto para solicitudes de emisión.
type IssuanceRepository interface {
	Create(issuance *entity.Issuance) error
	// GetByID devuelve nil (sin error) si no existe.
	GetByID(id string) (*entity.Issuance, error)
	// GetForUpdate bloquea la fila de la solicitud (SELECT FOR UPDATE) para
	// que dos aprobaciones concurrentes no la resuelvan dos veces.
	GetForUpdate(id string) (*entity.Issuance, error)
	// Update persiste la decisión: status, approved_by, approved_at,
	// receipt_number, rejection_reason y rejection_comment.
	Update(issuance *entity.Issuance) error
}
