package dto

// DashboardResponse líneas ordenadas por cantidad ascendente más la cola de
// aprobación (solo visible para quien puede aprobar).
type DashboardResponse struct {
	Lines        []StockLineResponse `json:"lines"`
	CanApprove   bool                `json:"can_approve"`
	PendingCount int                 `json:"pending_count"`
}

// ColumnSummaryDTO resumen de una columna física del almacén. DetailPath es
// la ruta de detalle que el colaborador externo codifica como QR.
type ColumnSummaryDTO struct {
	ColumnName    string `json:"column_name"`
	TotalQuantity int64  `json:"total_quantity"`
	LineCount     int    `json:"line_count"`
	DetailPath    string `json:"detail_path"`
}

// ColumnDetailResponse líneas de una columna con su total.
type ColumnDetailResponse struct {
	ColumnName    string              `json:"column_name"`
	TotalQuantity int64               `json:"total_quantity"`
	Lines         []StockLineResponse `json:"lines"`
}
