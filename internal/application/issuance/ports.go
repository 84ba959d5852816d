package issuance

import (
	"context"

	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

// ReceiptSource entrega números de recibo únicos y monotónicos. La
// implementación PostgreSQL consume una secuencia dentro de la transacción
// de aprobación, así dos aprobaciones concurrentes nunca colisionan.
type ReceiptSource interface {
	Next() (string, error)
}

// ReceiptPDFGenerator produce la representación imprimible de un recibo de
// emisión aprobada.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, is *entity.Issuance) ([]byte, error)
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios y la fuente de recibos atados a esa tx. Reservar stock,
// decidir la solicitud y numerar el recibo ocurren atómicamente.
type TxRunner interface {
	RunIssuance(ctx context.Context, fn func(
		lineRepo repository.StockLineRepository,
		issuanceRepo repository.IssuanceRepository,
		receipts ReceiptSource,
	) error) error
}
