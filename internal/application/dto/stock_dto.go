package dto

import "time"

// RegisterStockRequest body para POST /api/stock/registrations.
// Los cuatro campos de la clave SKU identifican la línea: si ya existe una
// con la misma clave, la cantidad se suma sobre ella.
type RegisterStockRequest struct {
	Shade      string `json:"shade"`
	Tkt        string `json:"tkt"`
	BinNo      string `json:"bin_no"`
	ColumnName string `json:"column_name"`
	Category   string `json:"category"` // DOMESTIC | EXPORT
	Brand      string `json:"brand"`
	Quantity   int64  `json:"quantity"`
}

// StockLineResponse representación de una línea de stock.
type StockLineResponse struct {
	ID         string    `json:"id"`
	Shade      string    `json:"shade"`
	Tkt        string    `json:"tkt"`
	BinNo      string    `json:"bin_no"`
	ColumnName string    `json:"column_name"`
	Quantity   int64     `json:"quantity"`
	Category   string    `json:"category"`
	Brand      string    `json:"brand"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RegistrationEventResponse fila del historial de registros.
type RegistrationEventResponse struct {
	ID           string    `json:"id"`
	StockLineID  string    `json:"stock_line_id"`
	Shade        string    `json:"shade"`
	Tkt          string    `json:"tkt"`
	BinNo        string    `json:"bin_no"`
	ColumnName   string    `json:"column_name"`
	Category     string    `json:"category"`
	Brand        string    `json:"brand"`
	QtyChange    int64     `json:"qty_change"`
	OldQuantity  int64     `json:"old_quantity"`
	NewQuantity  int64     `json:"new_quantity"`
	Action       string    `json:"action"`
	IsReverted   bool      `json:"is_reverted"`
	RevertedFrom string    `json:"reverted_from,omitempty"`
	CreatedBy    string    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterStockResponse respuesta del registro: línea resultante y evento.
type RegisterStockResponse struct {
	Line  StockLineResponse         `json:"line"`
	Event RegistrationEventResponse `json:"event"`
}
