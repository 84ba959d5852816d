package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/threadkeep/threadstock-api/internal/domain"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

var _ repository.IssuanceRepository = (*IssuanceRepo)(nil)

// IssuanceRepo implementación de IssuanceRepository sobre PostgreSQL.
type IssuanceRepo struct {
	q Querier
}

// NewIssuanceRepository construye el adaptador.
func NewIssuanceRepository(q Querier) *IssuanceRepo {
	return &IssuanceRepo{q: q}
}

const issuanceColumns = `i.id, i.stock_line_id, i.requested_quantity, i.requested_by, i.approved_by,
	i.requested_at, i.approved_at, i.status, i.bin_snapshot, i.column_snapshot,
	i.receipt_number, i.rejection_reason, i.rejection_comment`

func scanIssuance(row pgx.Row, withJoins bool) (*entity.Issuance, error) {
	var is entity.Issuance
	var approvedBy, receiptNumber, rejectionReason, rejectionComment *string
	dest := []any{
		&is.ID, &is.StockLineID, &is.RequestedQuantity, &is.RequestedBy, &approvedBy,
		&is.RequestedAt, &is.ApprovedAt, &is.Status, &is.BinSnapshot, &is.ColumnSnapshot,
		&receiptNumber, &rejectionReason, &rejectionComment,
	}
	var shade, tkt, requestedByName, approvedByName *string
	if withJoins {
		dest = append(dest, &shade, &tkt, &requestedByName, &approvedByName)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if approvedBy != nil {
		is.ApprovedBy = *approvedBy
	}
	if receiptNumber != nil {
		is.ReceiptNumber = *receiptNumber
	}
	if rejectionReason != nil {
		is.RejectionReason = *rejectionReason
	}
	if rejectionComment != nil {
		is.RejectionComment = *rejectionComment
	}
	if withJoins {
		if shade != nil {
			is.Shade = *shade
		}
		if tkt != nil {
			is.Tkt = *tkt
		}
		if requestedByName != nil {
			is.RequestedByName = *requestedByName
		}
		if approvedByName != nil {
			is.ApprovedByName = *approvedByName
		}
	}
	return &is, nil
}

// Create inserta una solicitud de emisión.
func (r *IssuanceRepo) Create(is *entity.Issuance) error {
	query := `
		INSERT INTO issuances (id, stock_line_id, requested_quantity, requested_by, approved_by,
			requested_at, approved_at, status, bin_snapshot, column_snapshot,
			receipt_number, rejection_reason, rejection_comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		is.ID, is.StockLineID, is.RequestedQuantity, is.RequestedBy, nullIfEmpty(is.ApprovedBy),
		is.RequestedAt, is.ApprovedAt, is.Status, is.BinSnapshot, is.ColumnSnapshot,
		nullIfEmpty(is.ReceiptNumber), nullIfEmpty(is.RejectionReason), nullIfEmpty(is.RejectionComment),
	)
	if err != nil {
		return fmt.Errorf("create issuance: %w", err)
	}
	return nil
}

// GetByID obtiene una emisión por ID con datos de línea y usuarios para
// recibos y vistas de detalle. Devuelve nil si no existe.
func (r *IssuanceRepo) GetByID(id string) (*entity.Issuance, error) {
	query := `
		SELECT ` + issuanceColumns + `, sl.shade, sl.tkt, ru.username, au.username
		FROM issuances i
		JOIN stock_lines sl ON sl.id = i.stock_line_id
		JOIN users ru ON ru.id = i.requested_by
		LEFT JOIN users au ON au.id = i.approved_by
		WHERE i.id = $1`
	is, err := scanIssuance(r.q.QueryRow(context.Background(), query, id), true)
	if err != nil {
		return nil, fmt.Errorf("get issuance: %w", err)
	}
	return is, nil
}

// GetForUpdate bloquea la fila de la emisión (SELECT FOR UPDATE) de modo que
// una sola decisión concurrente sobre la misma solicitud pueda avanzar.
func (r *IssuanceRepo) GetForUpdate(id string) (*entity.Issuance, error) {
	query := `SELECT ` + issuanceColumns + ` FROM issuances i WHERE i.id = $1 FOR UPDATE`
	is, err := scanIssuance(r.q.QueryRow(context.Background(), query, id), false)
	if err != nil {
		return nil, fmt.Errorf("get issuance for update: %w", err)
	}
	return is, nil
}

// Update persiste la decisión sobre una emisión.
func (r *IssuanceRepo) Update(is *entity.Issuance) error {
	query := `
		UPDATE issuances
		SET approved_by = $2, approved_at = $3, status = $4,
			receipt_number = $5, rejection_reason = $6, rejection_comment = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		is.ID, nullIfEmpty(is.ApprovedBy), is.ApprovedAt, is.Status,
		nullIfEmpty(is.ReceiptNumber), nullIfEmpty(is.RejectionReason), nullIfEmpty(is.RejectionComment),
	)
	if err != nil {
		return fmt.Errorf("update issuance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
