package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

var _ repository.RegistrationEventRepository = (*RegistrationEventRepo)(nil)

// RegistrationEventRepo implementación de RegistrationEventRepository sobre
// PostgreSQL.
type RegistrationEventRepo struct {
	q Querier
}

// NewRegistrationEventRepository construye el adaptador.
func NewRegistrationEventRepository(q Querier) *RegistrationEventRepo {
	return &RegistrationEventRepo{q: q}
}

const registrationEventColumns = `id, stock_line_id, shade, tkt, bin_no, column_name, category, brand,
	qty_change, old_quantity, new_quantity, action, is_reverted, reverted_from, created_by, created_at`

func scanRegistrationEvent(row pgx.Row) (*entity.RegistrationEvent, error) {
	var e entity.RegistrationEvent
	var revertedFrom, createdBy *string
	err := row.Scan(
		&e.ID, &e.StockLineID, &e.Key.Shade, &e.Key.Tkt, &e.Key.BinNo, &e.Key.ColumnName,
		&e.Category, &e.Brand, &e.QtyChange, &e.OldQuantity, &e.NewQuantity,
		&e.Action, &e.IsReverted, &revertedFrom, &createdBy, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if revertedFrom != nil {
		e.RevertedFrom = *revertedFrom
	}
	if createdBy != nil {
		e.CreatedBy = *createdBy
	}
	return &e, nil
}

// Create inserta un evento de auditoría. Los eventos nunca se actualizan
// salvo por MarkReverted.
func (r *RegistrationEventRepo) Create(event *entity.RegistrationEvent) error {
	query := `
		INSERT INTO registration_events (id, stock_line_id, shade, tkt, bin_no, column_name,
			category, brand, qty_change, old_quantity, new_quantity, action,
			is_reverted, reverted_from, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	revertedFrom := (*string)(nil)
	if event.RevertedFrom != "" {
		revertedFrom = &event.RevertedFrom
	}
	createdBy := (*string)(nil)
	if event.CreatedBy != "" {
		createdBy = &event.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.StockLineID, event.Key.Shade, event.Key.Tkt, event.Key.BinNo, event.Key.ColumnName,
		event.Category, event.Brand, event.QtyChange, event.OldQuantity, event.NewQuantity,
		event.Action, event.IsReverted, revertedFrom, createdBy, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create registration event: %w", err)
	}
	return nil
}

// GetByID obtiene un evento por ID. Devuelve nil si no existe.
func (r *RegistrationEventRepo) GetByID(id string) (*entity.RegistrationEvent, error) {
	query := `SELECT ` + registrationEventColumns + ` FROM registration_events WHERE id = $1`
	event, err := scanRegistrationEvent(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get registration event: %w", err)
	}
	return event, nil
}

// MarkReverted marca el evento como revertido solo si todavía no lo estaba.
// El WHERE con is_reverted = FALSE hace que dos reversiones concurrentes del
// mismo evento no puedan ganar ambas: la segunda obtiene cero filas.
func (r *RegistrationEventRepo) MarkReverted(id string) (bool, error) {
	query := `UPDATE registration_events SET is_reverted = TRUE WHERE id = $1 AND is_reverted = FALSE`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return false, fmt.Errorf("mark registration event reverted: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
