package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación read-only de CatalogRepository sobre PostgreSQL.
// Va directo contra el pool; las vistas de lectura no participan en
// transacciones de escritura.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador de consultas.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

func collectStockLines(rows pgx.Rows) ([]*entity.StockLine, error) {
	defer rows.Close()
	var lines []*entity.StockLine
	for rows.Next() {
		var l entity.StockLine
		var createdBy *string
		err := rows.Scan(
			&l.ID, &l.Key.Shade, &l.Key.Tkt, &l.Key.BinNo, &l.Key.ColumnName,
			&l.Quantity, &l.Category, &l.Brand, &createdBy, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan stock line: %w", err)
		}
		if createdBy != nil {
			l.CreatedBy = *createdBy
		}
		lines = append(lines, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ListLines devuelve todas las líneas, las más escasas primero.
func (r *CatalogRepo) ListLines(ctx context.Context) ([]*entity.StockLine, error) {
	query := `
		SELECT ` + stockLineColumns + `
		FROM stock_lines
		ORDER BY quantity ASC, shade, tkt`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock lines: %w", err)
	}
	return collectStockLines(rows)
}

// ListLinesByColumn devuelve las líneas de una columna ordenadas por
// ubicación.
func (r *CatalogRepo) ListLinesByColumn(ctx context.Context, columnName string) ([]*entity.StockLine, error) {
	query := `
		SELECT ` + stockLineColumns + `
		FROM stock_lines
		WHERE column_name = $1
		ORDER BY bin_no, shade, tkt`
	rows, err := r.q.Query(ctx, query, columnName)
	if err != nil {
		return nil, fmt.Errorf("list stock lines by column: %w", err)
	}
	return collectStockLines(rows)
}

// ColumnSummaries agrupa las líneas por columna con totales.
func (r *CatalogRepo) ColumnSummaries(ctx context.Context) ([]repository.ColumnSummaryResult, error) {
	query := `
		SELECT column_name, COALESCE(SUM(quantity), 0), COUNT(*)
		FROM stock_lines
		GROUP BY column_name
		ORDER BY column_name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("column summaries: %w", err)
	}
	defer rows.Close()

	var results []repository.ColumnSummaryResult
	for rows.Next() {
		var res repository.ColumnSummaryResult
		if err := rows.Scan(&res.ColumnName, &res.TotalQuantity, &res.LineCount); err != nil {
			return nil, fmt.Errorf("scan column summary: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ListRegistrationEvents devuelve el historial de registro, más recientes
// primero, con el username del autor resuelto por join. El filtro q compara
// por subcadena (ILIKE) contra los campos snapshot y la marca.
func (r *CatalogRepo) ListRegistrationEvents(ctx context.Context, q string, limit, offset int) ([]*entity.RegistrationEvent, error) {
	query := `
		SELECT e.id, e.stock_line_id, e.shade, e.tkt, e.bin_no, e.column_name,
			e.category, e.brand, e.qty_change, e.old_quantity, e.new_quantity,
			e.action, e.is_reverted, e.reverted_from, e.created_by, e.created_at,
			u.username
		FROM registration_events e
		LEFT JOIN users u ON u.id = e.created_by
		WHERE $1 = ''
			OR e.shade ILIKE '%' || $1 || '%'
			OR e.tkt ILIKE '%' || $1 || '%'
			OR e.bin_no ILIKE '%' || $1 || '%'
			OR e.column_name ILIKE '%' || $1 || '%'
			OR e.brand ILIKE '%' || $1 || '%'
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list registration events: %w", err)
	}
	defer rows.Close()

	var events []*entity.RegistrationEvent
	for rows.Next() {
		var e entity.RegistrationEvent
		var revertedFrom, createdBy, createdByName *string
		err := rows.Scan(
			&e.ID, &e.StockLineID, &e.Key.Shade, &e.Key.Tkt, &e.Key.BinNo, &e.Key.ColumnName,
			&e.Category, &e.Brand, &e.QtyChange, &e.OldQuantity, &e.NewQuantity,
			&e.Action, &e.IsReverted, &revertedFrom, &createdBy, &e.CreatedAt,
			&createdByName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan registration event: %w", err)
		}
		if revertedFrom != nil {
			e.RevertedFrom = *revertedFrom
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		if createdByName != nil {
			e.CreatedByName = *createdByName
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

const issuanceJoinedColumns = issuanceColumns + `, sl.shade, sl.tkt, ru.username, au.username`

const issuanceJoins = `
		FROM issuances i
		JOIN stock_lines sl ON sl.id = i.stock_line_id
		JOIN users ru ON ru.id = i.requested_by
		LEFT JOIN users au ON au.id = i.approved_by`

func collectIssuances(rows pgx.Rows) ([]*entity.Issuance, error) {
	defer rows.Close()
	var issuances []*entity.Issuance
	for rows.Next() {
		var is entity.Issuance
		var approvedBy, receiptNumber, rejectionReason, rejectionComment *string
		var approvedByName *string
		err := rows.Scan(
			&is.ID, &is.StockLineID, &is.RequestedQuantity, &is.RequestedBy, &approvedBy,
			&is.RequestedAt, &is.ApprovedAt, &is.Status, &is.BinSnapshot, &is.ColumnSnapshot,
			&receiptNumber, &rejectionReason, &rejectionComment,
			&is.Shade, &is.Tkt, &is.RequestedByName, &approvedByName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan issuance: %w", err)
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
		if approvedByName != nil {
			is.ApprovedByName = *approvedByName
		}
		issuances = append(issuances, &is)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return issuances, nil
}

// ListIssuances devuelve el historial de emisiones, más recientes primero.
// El filtro q compara contra shade/tkt de la línea, usuarios y estado.
func (r *CatalogRepo) ListIssuances(ctx context.Context, q string, limit, offset int) ([]*entity.Issuance, error) {
	query := `
		SELECT ` + issuanceJoinedColumns + issuanceJoins + `
		WHERE $1 = ''
			OR sl.shade ILIKE '%' || $1 || '%'
			OR sl.tkt ILIKE '%' || $1 || '%'
			OR ru.username ILIKE '%' || $1 || '%'
			OR au.username ILIKE '%' || $1 || '%'
			OR i.status ILIKE '%' || $1 || '%'
		ORDER BY i.requested_at DESC, i.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list issuances: %w", err)
	}
	return collectIssuances(rows)
}

// ListPendingIssuances devuelve la cola de aprobación, más recientes primero.
func (r *CatalogRepo) ListPendingIssuances(ctx context.Context) ([]*entity.Issuance, error) {
	query := `
		SELECT ` + issuanceJoinedColumns + issuanceJoins + `
		WHERE i.status = 'PENDING'
		ORDER BY i.requested_at DESC, i.id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending issuances: %w", err)
	}
	return collectIssuances(rows)
}

// CountPendingIssuances cuenta las solicitudes pendientes para el badge del
// tablero.
func (r *CatalogRepo) CountPendingIssuances(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM issuances WHERE status = 'PENDING'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending issuances: %w", err)
	}
	return count, nil
}
