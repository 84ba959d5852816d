package entity

import "time"

// Estados de una solicitud de emisión. Transiciones permitidas:
// PENDING -> APPROVED o PENDING -> REJECTED, en una sola dirección.
const (
	IssuanceStatusPending  = "PENDING"
	IssuanceStatusApproved = "APPROVED"
	IssuanceStatusRejected = "REJECTED"
)

// Motivos de rechazo. OTHER exige comentario no vacío.
const (
	RejectionDamaged      = "DAMAGED"
	RejectionWrongRequest = "WRONG_REQUEST"
	RejectionOutOfScope   = "OUT_OF_SCOPE"
	RejectionOther        = "OTHER"
)

// ValidRejectionReason indica si el código de motivo es uno de los permitidos.
func ValidRejectionReason(r string) bool {
	switch r {
	case RejectionDamaged, RejectionWrongRequest, RejectionOutOfScope, RejectionOther:
		return true
	}
	return false
}

// Issuance es una solicitud de retiro de cantidad sobre una línea de stock.
// RequestedQuantity se fija al crearla y nunca se muta. BinSnapshot y
// ColumnSnapshot congelan la ubicación al momento de la solicitud: movimientos
// posteriores del stock no alteran recibos históricos. El número de recibo se
// asigna únicamente al pasar a APPROVED.
type Issuance struct {
	ID                string
	StockLineID       string
	RequestedQuantity int64
	RequestedBy       string // UserID
	ApprovedBy        string // UserID, vacío hasta decidir
	RequestedAt       time.Time
	ApprovedAt        *time.Time
	Status            string // PENDING | APPROVED | REJECTED
	BinSnapshot       string
	ColumnSnapshot    string
	ReceiptNumber     string
	RejectionReason   string
	RejectionComment  string

	// Campos de lectura poblados por joins en listados.
	Shade           string
	Tkt             string
	RequestedByName string
	ApprovedByName  string
}
