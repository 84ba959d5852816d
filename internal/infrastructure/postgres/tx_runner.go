package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/threadkeep/threadstock-api/internal/application/issuance"
	"github.com/threadkeep/threadstock-api/internal/application/stock"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner and issuance.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ issuance.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es la frontera de atomicidad de registro/reversión.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lineRepo repository.StockLineRepository,
	eventRepo repository.RegistrationEventRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lineRepo := NewStockLineRepository(tx)
	eventRepo := NewRegistrationEventRepository(tx)

	if err := fn(lineRepo, eventRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunIssuance inicia una transacción con los repos del flujo de emisión y la
// fuente de recibos atada a la misma tx (reserva, decisión y numeración
// atómicas).
func (r *TxRunner) RunIssuance(ctx context.Context, fn func(
	lineRepo repository.StockLineRepository,
	issuanceRepo repository.IssuanceRepository,
	receipts issuance.ReceiptSource,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lineRepo := NewStockLineRepository(tx)
	issuanceRepo := NewIssuanceRepository(tx)
	receipts := NewReceiptSource(tx)

	if err := fn(lineRepo, issuanceRepo, receipts); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
