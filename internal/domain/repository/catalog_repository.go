package repository

import (
	"context"

	"github.com/threadkeep/threadstock-api/internal/domain/entity"
)

// ColumnSummaryResult resultado crudo de la consulta de columnas.
// Lo produce la DB; el use case lo convierte en DTO.
type ColumnSummaryResult struct {
	ColumnName    string
	TotalQuantity int64
	LineCount     int
}

// CatalogRepository define las consultas de lectura del inventario:
// tablero, historiales y resúmenes por columna. Las implementaciones son
// read-only; cada llamada lanza una consulta fresca, consistente al momento.
type CatalogRepository interface {
	// ListLines devuelve todas las líneas ordenadas por cantidad ascendente
	// (las más escasas primero, como las muestra el tablero).
	ListLines(ctx context.Context) ([]*entity.StockLine, error)

	// ListLinesByColumn devuelve las líneas de una columna ordenadas por
	// bin, shade, tkt.
	ListLinesByColumn(ctx context.Context, columnName string) ([]*entity.StockLine, error)

	// ColumnSummaries agrupa por columna con la cantidad total disponible.
	ColumnSummaries(ctx context.Context) ([]ColumnSummaryResult, error)

	// ListRegistrationEvents devuelve eventos del más reciente al más
	// antiguo. q filtra por subcadena (sin distinguir mayúsculas) sobre los
	// snapshots shade/tkt/bin/column y la marca.
	ListRegistrationEvents(ctx context.Context, q string, limit, offset int) ([]*entity.RegistrationEvent, error)

	// ListIssuances devuelve solicitudes de la más reciente a la más
	// antigua. q filtra sobre shade/tkt de la línea, usuario solicitante,
	// aprobador y estado.
	ListIssuances(ctx context.Context, q string, limit, offset int) ([]*entity.Issuance, error)

	// ListPendingIssuances devuelve la cola de aprobación (PENDING) de la
	// más reciente a la más antigua.
	ListPendingIssuances(ctx context.Context) ([]*entity.Issuance, error)

	// CountPendingIssuances cuenta las solicitudes PENDING.
	CountPendingIssuances(ctx context.Context) (int, error)
}
