package entity

import "time"

// Acciones de un evento de registro.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionRevert = "REVERT"
)

// RegistrationEvent es un registro de auditoría inmutable de un cambio de
// cantidad. Los campos de la clave SKU, categoría y marca son un snapshot al
// momento del evento, independiente de ediciones posteriores de la línea.
// El único campo mutable es IsReverted (false -> true exactamente una vez).
// Invariante: NewQuantity = OldQuantity + QtyChange.
type RegistrationEvent struct {
	ID            string
	StockLineID   string
	Key           SKUKey
	Category      string
	Brand         string
	QtyChange     int64 // positivo para CREATE/UPDATE, negativo para REVERT
	OldQuantity   int64
	NewQuantity   int64
	Action        string // CREATE | UPDATE | REVERT
	IsReverted    bool
	RevertedFrom  string // ID del evento revertido, vacío si no aplica
	CreatedBy     string // UserID
	CreatedByName string // username, poblado por joins en listados
	CreatedAt     time.Time
}
