package repository

import "github.com/threadkeep/threadstock-api/internal/domain/entity"

// StockLineRepository define el puerto para consultar/actualizar líneas de
// stock por su clave SKU. Los métodos de escritura se usan dentro de
// transacciones para garantizar consistencia.
type StockLineRepository interface {
	GetByID(id string) (*entity.StockLine, error)
	// GetByKey busca por coincidencia exacta de los cuatro campos de la clave.
	// Devuelve nil (sin error) si no existe.
	GetByKey(key entity.SKUKey) (*entity.StockLine, error)
	// GetByKeyForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetByKeyForUpdate(key entity.SKUKey) (*entity.StockLine, error)
	// GetForUpdate bloquea por ID la fila para update.
	GetForUpdate(id string) (*entity.StockLine, error)
	// Create inserta una línea nueva; devuelve domain.ErrDuplicateKey si la
	// clave SKU ya existe (otro registro concurrente ganó la inserción).
	Create(line *entity.StockLine) error
	// Update persiste cantidad, categoría y marca (last-write-wins) y updated_at.
	Update(line *entity.StockLine) error
	// Reserve es el único punto por el que la cantidad disminuye por emisión:
	// un decremento condicional atómico (UPDATE ... WHERE quantity >= qty).
	// Devuelve domain.ErrInsufficientStock si la cantidad no alcanza.
	Reserve(id string, qty int64) error
}
