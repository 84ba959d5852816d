package postgres

import (
	"context"
	"fmt"

	"github.com/threadkeep/threadstock-api/internal/application/issuance"
)

var _ issuance.ReceiptSource = (*ReceiptSource)(nil)

// ReceiptSource asigna números de recibo desde una secuencia de PostgreSQL.
// La secuencia es monótona entre procesos y sobrevive reinicios, y como se
// consume dentro de la transacción de aprobación, una aprobación que falla
// a lo sumo deja un hueco en la numeración, nunca un duplicado.
type ReceiptSource struct {
	q Querier
}

// NewReceiptSource construye la fuente de recibos sobre pool o tx.
func NewReceiptSource(q Querier) *ReceiptSource {
	return &ReceiptSource{q: q}
}

// Next devuelve el siguiente número de recibo con formato R%06d.
func (s *ReceiptSource) Next() (string, error) {
	var n int64
	err := s.q.QueryRow(context.Background(), `SELECT nextval('issuance_receipt_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next receipt number: %w", err)
	}
	return fmt.Sprintf("R%06d", n), nil
}
