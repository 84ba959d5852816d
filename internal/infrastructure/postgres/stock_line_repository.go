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

var _ repository.StockLineRepository = (*StockLineRepo)(nil)

// StockLineRepo implementación de StockLineRepository sobre PostgreSQL
// (usable con pool o tx).
type StockLineRepo struct {
	q Querier
}

// NewStockLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLineRepository(q Querier) *StockLineRepo {
	return &StockLineRepo{q: q}
}

const stockLineColumns = `id, shade, tkt, bin_no, column_name, quantity, category, brand, created_by, created_at, updated_at`

func scanStockLine(row pgx.Row) (*entity.StockLine, error) {
	var l entity.StockLine
	var createdBy *string
	err := row.Scan(
		&l.ID, &l.Key.Shade, &l.Key.Tkt, &l.Key.BinNo, &l.Key.ColumnName,
		&l.Quantity, &l.Category, &l.Brand, &createdBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if createdBy != nil {
		l.CreatedBy = *createdBy
	}
	return &l, nil
}

// GetByID obtiene una línea por ID. Devuelve nil si no existe.
func (r *StockLineRepo) GetByID(id string) (*entity.StockLine, error) {
	query := `SELECT ` + stockLineColumns + ` FROM stock_lines WHERE id = $1`
	line, err := scanStockLine(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get stock line: %w", err)
	}
	return line, nil
}

// GetByKey busca por coincidencia exacta de los cuatro campos de la clave SKU.
func (r *StockLineRepo) GetByKey(key entity.SKUKey) (*entity.StockLine, error) {
	query := `
		SELECT ` + stockLineColumns + `
		FROM stock_lines
		WHERE shade = $1 AND tkt = $2 AND bin_no = $3 AND column_name = $4`
	line, err := scanStockLine(r.q.QueryRow(context.Background(), query,
		key.Shade, key.Tkt, key.BinNo, key.ColumnName))
	if err != nil {
		return nil, fmt.Errorf("get stock line by key: %w", err)
	}
	return line, nil
}

// GetByKeyForUpdate bloquea la fila por clave SKU (SELECT FOR UPDATE) para
// que dos registros de la misma clave no pierdan actualizaciones.
func (r *StockLineRepo) GetByKeyForUpdate(key entity.SKUKey) (*entity.StockLine, error) {
	query := `
		SELECT ` + stockLineColumns + `
		FROM stock_lines
		WHERE shade = $1 AND tkt = $2 AND bin_no = $3 AND column_name = $4
		FOR UPDATE`
	line, err := scanStockLine(r.q.QueryRow(context.Background(), query,
		key.Shade, key.Tkt, key.BinNo, key.ColumnName))
	if err != nil {
		return nil, fmt.Errorf("get stock line by key for update: %w", err)
	}
	return line, nil
}

// GetForUpdate bloquea la fila por ID (SELECT FOR UPDATE).
func (r *StockLineRepo) GetForUpdate(id string) (*entity.StockLine, error) {
	query := `SELECT ` + stockLineColumns + ` FROM stock_lines WHERE id = $1 FOR UPDATE`
	line, err := scanStockLine(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get stock line for update: %w", err)
	}
	return line, nil
}

// Create inserta una línea nueva. Si otra transacción ya insertó la misma
// clave SKU devuelve domain.ErrDuplicateKey sin abortar la transacción
// (ON CONFLICT DO NOTHING, no hay 23505), así el caso de uso puede releer la
// fila ganadora y fusionar como actualización.
func (r *StockLineRepo) Create(line *entity.StockLine) error {
	query := `
		INSERT INTO stock_lines (id, shade, tkt, bin_no, column_name, quantity, category, brand, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT ON CONSTRAINT stock_lines_sku_key DO NOTHING`
	createdBy := (*string)(nil)
	if line.CreatedBy != "" {
		createdBy = &line.CreatedBy
	}
	tag, err := r.q.Exec(context.Background(), query,
		line.ID, line.Key.Shade, line.Key.Tkt, line.Key.BinNo, line.Key.ColumnName,
		line.Quantity, line.Category, line.Brand, createdBy, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateKey
	}
	return nil
}

// Update persiste cantidad, categoría, marca y updated_at.
func (r *StockLineRepo) Update(line *entity.StockLine) error {
	query := `
		UPDATE stock_lines
		SET quantity = $2, category = $3, brand = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		line.ID, line.Quantity, line.Category, line.Brand, line.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Reserve decrementa la cantidad solo si alcanza: un único UPDATE
// condicional, chequeo y resta en la misma sentencia. Es el único camino por
// el que una emisión reduce stock; cero filas afectadas significa que la
// cantidad disponible era menor a la pedida.
func (r *StockLineRepo) Reserve(id string, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	query := `
		UPDATE stock_lines
		SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2`
	tag, err := r.q.Exec(context.Background(), query, id, qty)
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}
