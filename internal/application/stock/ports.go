package stock

import (
	"context"

	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que registro y evento de auditoría
// se persistan atómicamente (o ninguno).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lineRepo repository.StockLineRepository,
		eventRepo repository.RegistrationEventRepository,
	) error) error
}
