package catalog

import (
	"context"
	"strings"

	"github.com/threadkeep/threadstock-api/internal/application/dto"
	"github.com/threadkeep/threadstock-api/internal/domain"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

// UseCase agrupa las consultas de lectura del inventario: tablero,
// historiales, cola de aprobación y resúmenes por columna. Cada llamada
// lanza una consulta fresca contra la BD (sin estado entre llamadas).
type UseCase struct {
	catalogRepo  repository.CatalogRepository
	lineRepo     repository.StockLineRepository
	issuanceRepo repository.IssuanceRepository
}

// NewUseCase construye el caso de uso de lectura.
func NewUseCase(
	catalogRepo repository.CatalogRepository,
	lineRepo repository.StockLineRepository,
	issuanceRepo repository.IssuanceRepository,
) *UseCase {
	return &UseCase{catalogRepo: catalogRepo, lineRepo: lineRepo, issuanceRepo: issuanceRepo}
}

// Dashboard devuelve las líneas ordenadas por cantidad ascendente y, si el
// actor puede aprobar, el tamaño de la cola de solicitudes pendientes.
func (uc *UseCase) Dashboard(ctx context.Context, actor entity.Actor) (*dto.DashboardResponse, error) {
	lines, err := uc.catalogRepo.ListLines(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.DashboardResponse{
		Lines:      make([]dto.StockLineResponse, 0, len(lines)),
		CanApprove: actor.CanApprove(),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.FromStockLine(l))
	}
	if resp.CanApprove {
		count, err := uc.catalogRepo.CountPendingIssuances(ctx)
		if err != nil {
			return nil, err
		}
		resp.PendingCount = count
	}
	return resp, nil
}

// GetLine devuelve una línea por ID.
func (uc *UseCase) GetLine(ctx context.Context, id string) (*dto.StockLineResponse, error) {
	line, err := uc.lineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromStockLine(line)
	return &resp, nil
}

// GetIssuance devuelve una solicitud por ID (datos del recibo incluidos).
func (uc *UseCase) GetIssuance(ctx context.Context, id string) (*dto.IssuanceResponse, error) {
	iss, err := uc.issuanceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if iss == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromIssuance(iss)
	return &resp, nil
}

// RegistrationHistory historial de eventos del más reciente al más antiguo,
// filtrado por subcadena sobre shade/tkt/bin/columna/marca.
func (uc *UseCase) RegistrationHistory(ctx context.Context, q string, page dto.PageRequest) ([]dto.RegistrationEventResponse, error) {
	page.DefaultPage()
	events, err := uc.catalogRepo.ListRegistrationEvents(ctx, strings.TrimSpace(q), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RegistrationEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.FromRegistrationEvent(e))
	}
	return out, nil
}

// IssuanceHistory historial de solicitudes del más reciente al más antiguo,
// filtrado por shade/tkt, solicitante, aprobador y estado.
func (uc *UseCase) IssuanceHistory(ctx context.Context, q string, page dto.PageRequest) ([]dto.IssuanceResponse, error) {
	page.DefaultPage()
	issuances, err := uc.catalogRepo.ListIssuances(ctx, strings.TrimSpace(q), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IssuanceResponse, 0, len(issuances))
	for _, i := range issuances {
		out = append(out, dto.FromIssuance(i))
	}
	return out, nil
}

// PendingIssuances cola de aprobación (solo solicitudes PENDING).
func (uc *UseCase) PendingIssuances(ctx context.Context) ([]dto.IssuanceResponse, error) {
	issuances, err := uc.catalogRepo.ListPendingIssuances(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IssuanceResponse, 0, len(issuances))
	for _, i := range issuances {
		out = append(out, dto.FromIssuance(i))
	}
	return out, nil
}

// Columns resumen por columna física del almacén. DetailPath es la ruta que
// el colaborador externo codifica como QR para llegar al detalle.
func (uc *UseCase) Columns(ctx context.Context) ([]dto.ColumnSummaryDTO, error) {
	summaries, err := uc.catalogRepo.ColumnSummaries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ColumnSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.ColumnSummaryDTO{
			ColumnName:    s.ColumnName,
			TotalQuantity: s.TotalQuantity,
			LineCount:     s.LineCount,
			DetailPath:    "/api/columns/" + s.ColumnName,
		})
	}
	return out, nil
}

// ColumnDetail líneas de una columna ordenadas por bin, shade, tkt, con el
// total disponible de la columna.
func (uc *UseCase) ColumnDetail(ctx context.Context, columnName string) (*dto.ColumnDetailResponse, error) {
	columnName = strings.TrimSpace(columnName)
	if columnName == "" {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.catalogRepo.ListLinesByColumn(ctx, columnName)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFound
	}
	resp := &dto.ColumnDetailResponse{
		ColumnName: columnName,
		Lines:      make([]dto.StockLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.TotalQuantity += l.Quantity
		resp.Lines = append(resp.Lines, dto.FromStockLine(l))
	}
	return resp, nil
}
