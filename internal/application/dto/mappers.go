package dto

import "github.com/threadkeep/threadstock-api/internal/domain/entity"

// FromStockLine convierte la entidad a su representación HTTP.
func FromStockLine(l *entity.StockLine) StockLineResponse {
	return StockLineResponse{
		ID:         l.ID,
		Shade:      l.Key.Shade,
		Tkt:        l.Key.Tkt,
		BinNo:      l.Key.BinNo,
		ColumnName: l.Key.ColumnName,
		Quantity:   l.Quantity,
		Category:   l.Category,
		Brand:      l.Brand,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// FromRegistrationEvent convierte un evento del libro a fila de historial.
// CreatedBy expone el username cuando el listado lo trae por join.
func FromRegistrationEvent(e *entity.RegistrationEvent) RegistrationEventResponse {
	createdBy := e.CreatedByName
	if createdBy == "" {
		createdBy = e.CreatedBy
	}
	return RegistrationEventResponse{
		ID:           e.ID,
		StockLineID:  e.StockLineID,
		Shade:        e.Key.Shade,
		Tkt:          e.Key.Tkt,
		BinNo:        e.Key.BinNo,
		ColumnName:   e.Key.ColumnName,
		Category:     e.Category,
		Brand:        e.Brand,
		QtyChange:    e.QtyChange,
		OldQuantity:  e.OldQuantity,
		NewQuantity:  e.NewQuantity,
		Action:       e.Action,
		IsReverted:   e.IsReverted,
		RevertedFrom: e.RevertedFrom,
		CreatedBy:    createdBy,
		CreatedAt:    e.CreatedAt,
	}
}

// FromIssuance convierte una solicitud de emisión a su representación HTTP.
func FromIssuance(i *entity.Issuance) IssuanceResponse {
	requestedBy := i.RequestedByName
	if requestedBy == "" {
		requestedBy = i.RequestedBy
	}
	approvedBy := i.ApprovedByName
	if approvedBy == "" {
		approvedBy = i.ApprovedBy
	}
	return IssuanceResponse{
		ID:                i.ID,
		StockLineID:       i.StockLineID,
		Shade:             i.Shade,
		Tkt:               i.Tkt,
		RequestedQuantity: i.RequestedQuantity,
		RequestedBy:       requestedBy,
		ApprovedBy:        approvedBy,
		RequestedAt:       i.RequestedAt,
		ApprovedAt:        i.ApprovedAt,
		Status:            i.Status,
		BinSnapshot:       i.BinSnapshot,
		ColumnSnapshot:    i.ColumnSnapshot,
		ReceiptNumber:     i.ReceiptNumber,
		RejectionReason:   i.RejectionReason,
		RejectionComment:  i.RejectionComment,
	}
}

// FromUser convierte un usuario a su representación pública (sin hash).
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
