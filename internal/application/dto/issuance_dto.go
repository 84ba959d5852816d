package dto

import "time"

// CreateIssuanceRequest body para POST /api/issuances.
type CreateIssuanceRequest struct {
	StockLineID string `json:"stock_line_id"`
	Quantity    int64  `json:"quantity"`
}

// RejectIssuanceRequest body para POST /api/issuances/:id/reject.
// Comment es obligatorio cuando Reason es OTHER.
type RejectIssuanceRequest struct {
	Reason  string `json:"reason"` // DAMAGED | WRONG_REQUEST | OUT_OF_SCOPE | OTHER
	Comment string `json:"comment,omitempty"`
}

// IssuanceResponse representación de una solicitud de emisión.
// BinSnapshot y ColumnSnapshot son la ubicación congelada al solicitar;
// ReceiptNumber solo existe en solicitudes aprobadas.
type IssuanceResponse struct {
	ID                string     `json:"id"`
	StockLineID       string     `json:"stock_line_id"`
	Shade             string     `json:"shade,omitempty"`
	Tkt               string     `json:"tkt,omitempty"`
	RequestedQuantity int64      `json:"requested_quantity"`
	RequestedBy       string     `json:"requested_by,omitempty"`
	ApprovedBy        string     `json:"approved_by,omitempty"`
	RequestedAt       time.Time  `json:"requested_at"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	Status            string     `json:"status"`
	BinSnapshot       string     `json:"bin_snapshot"`
	ColumnSnapshot    string     `json:"column_snapshot"`
	ReceiptNumber     string     `json:"receipt_number,omitempty"`
	RejectionReason   string     `json:"rejection_reason,omitempty"`
	RejectionComment  string     `json:"rejection_comment,omitempty"`
}
