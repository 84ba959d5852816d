package entity

import "time"

// Categorías válidas de una línea de stock.
const (
	CategoryDomestic = "DOMESTIC"
	CategoryExport   = "EXPORT"
)

// ValidCategory indica si la categoría es una de las permitidas.
func ValidCategory(c string) bool {
	return c == CategoryDomestic || c == CategoryExport
}

// SKUKey identifica una línea de stock por sus cuatro campos físicos.
// No es un ID sustituto: dos registros con la misma clave refieren a la
// misma línea y se fusionan.
type SKUKey struct {
	Shade      string
	Tkt        string
	BinNo      string
	ColumnName string
}

// StockLine representa la cantidad disponible de un hilo en un bin/columna.
// Se crea con el primer registro de su clave SKU y nunca se borra; las
// mutaciones posteriores son registros (suma), emisiones y reversiones (resta).
// Invariante: Quantity >= 0 después de toda mutación.
type StockLine struct {
	ID        string
	Key       SKUKey
	Quantity  int64
	Category  string // DOMESTIC | EXPORT
	Brand     string
	CreatedBy string // UserID
	CreatedAt time.Time
	UpdatedAt time.Time
}
