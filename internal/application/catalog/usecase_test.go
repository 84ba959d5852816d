package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadkeep/threadstock-api/internal/application/catalog"
	"github.com/threadkeep/threadstock-api/internal/domain"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCatalogRepo struct {
	lines        []*entity.StockLine
	summaries    []repository.ColumnSummaryResult
	pendingCount int
}

func (r *fakeCatalogRepo) ListLines(context.Context) ([]*entity.StockLine, error) {
	return r.lines, nil
}

func (r *fakeCatalogRepo) ListLinesByColumn(_ context.Context, columnName string) ([]*entity.StockLine, error) {
	var out []*entity.StockLine
	for _, l := range r.lines {
		if l.Key.ColumnName == columnName {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) ColumnSummaries(context.Context) ([]repository.ColumnSummaryResult, error) {
	return r.summaries, nil
}

func (r *fakeCatalogRepo) ListRegistrationEvents(context.Context, string, int, int) ([]*entity.RegistrationEvent, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) ListIssuances(context.Context, string, int, int) ([]*entity.Issuance, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) ListPendingIssuances(context.Context) ([]*entity.Issuance, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) CountPendingIssuances(context.Context) (int, error) {
	return r.pendingCount, nil
}

func line(id, column string, qty int64) *entity.StockLine {
	return &entity.StockLine{
		ID: id,
		Key: entity.SKUKey{
			Shade:      "R-204",
			Tkt:        "40",
			BinNo:      "B12",
			ColumnName: column,
		},
		Quantity: qty,
		Category: entity.CategoryDomestic,
		Brand:    "Coats",
	}
}

func newUseCase(repo *fakeCatalogRepo) *catalog.UseCase {
	// Las consultas por ID no se ejercitan en estos tests
	return catalog.NewUseCase(repo, nil, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_AprobadorVeLaCola(t *testing.T) {
	repo := &fakeCatalogRepo{
		lines:        []*entity.StockLine{line("l1", "C1", 3), line("l2", "C2", 90)},
		pendingCount: 4,
	}
	uc := newUseCase(repo)

	out, err := uc.Dashboard(context.Background(), entity.Actor{ID: "a", Role: entity.RolePower})
	require.NoError(t, err)

	assert.True(t, out.CanApprove)
	assert.Equal(t, 4, out.PendingCount)
	require.Len(t, out.Lines, 2)
	assert.Equal(t, "l1", out.Lines[0].ID)
}

func TestDashboard_ViewerNoVeLaCola(t *testing.T) {
	repo := &fakeCatalogRepo{
		lines:        []*entity.StockLine{line("l1", "C1", 3)},
		pendingCount: 4,
	}
	uc := newUseCase(repo)

	out, err := uc.Dashboard(context.Background(), entity.Actor{ID: "v", Role: entity.RoleViewer})
	require.NoError(t, err)

	assert.False(t, out.CanApprove)
	assert.Equal(t, 0, out.PendingCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Columnas
// ──────────────────────────────────────────────────────────────────────────────

func TestColumns_ArmaDetailPath(t *testing.T) {
	repo := &fakeCatalogRepo{
		summaries: []repository.ColumnSummaryResult{
			{ColumnName: "C1", TotalQuantity: 120, LineCount: 3},
			{ColumnName: "C2", TotalQuantity: 45, LineCount: 1},
		},
	}
	uc := newUseCase(repo)

	out, err := uc.Columns(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "/api/columns/C1", out[0].DetailPath)
	assert.Equal(t, int64(120), out[0].TotalQuantity)
}

func TestColumnDetail_CalculaElTotal(t *testing.T) {
	repo := &fakeCatalogRepo{
		lines: []*entity.StockLine{
			line("l1", "C1", 30),
			line("l2", "C1", 12),
			line("l3", "C2", 99),
		},
	}
	uc := newUseCase(repo)

	out, err := uc.ColumnDetail(context.Background(), "C1")
	require.NoError(t, err)

	assert.Equal(t, int64(42), out.TotalQuantity)
	assert.Len(t, out.Lines, 2)
}

func TestColumnDetail_ColumnaInexistente(t *testing.T) {
	uc := newUseCase(&fakeCatalogRepo{})

	_, err := uc.ColumnDetail(context.Background(), "ZZ")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ColumnDetail(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
