package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadkeep/threadstock-api/internal/application/stock"
	"github.com/threadkeep/threadstock-api/internal/domain"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeLineRepo struct {
	lines map[string]*entity.StockLine // por ID
}

func newFakeLineRepo() *fakeLineRepo {
	return &fakeLineRepo{lines: make(map[string]*entity.StockLine)}
}

func (r *fakeLineRepo) GetByID(id string) (*entity.StockLine, error) {
	l, ok := r.lines[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLineRepo) GetByKey(key entity.SKUKey) (*entity.StockLine, error) {
	for _, l := range r.lines {
		if l.Key == key {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLineRepo) GetByKeyForUpdate(key entity.SKUKey) (*entity.StockLine, error) {
	return r.GetByKey(key)
}

func (r *fakeLineRepo) GetForUpdate(id string) (*entity.StockLine, error) {
	return r.GetByID(id)
}

func (r *fakeLineRepo) Create(line *entity.StockLine) error {
	for _, l := range r.lines {
		if l.Key == line.Key {
			return domain.ErrDuplicateKey
		}
	}
	cp := *line
	r.lines[line.ID] = &cp
	return nil
}

func (r *fakeLineRepo) Update(line *entity.StockLine) error {
	if _, ok := r.lines[line.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *line
	r.lines[line.ID] = &cp
	return nil
}

func (r *fakeLineRepo) Reserve(id string, qty int64) error {
	l, ok := r.lines[id]
	if !ok || l.Quantity < qty {
		return domain.ErrInsufficientStock
	}
	l.Quantity -= qty
	return nil
}

type fakeEventRepo struct {
	events map[string]*entity.RegistrationEvent
	order  []string
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*entity.RegistrationEvent)}
}

func (r *fakeEventRepo) Create(e *entity.RegistrationEvent) error {
	cp := *e
	r.events[e.ID] = &cp
	r.order = append(r.order, e.ID)
	return nil
}

func (r *fakeEventRepo) GetByID(id string) (*entity.RegistrationEvent, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEventRepo) MarkReverted(id string) (bool, error) {
	e, ok := r.events[id]
	if !ok || e.IsReverted {
		return false, nil
	}
	e.IsReverted = true
	return true, nil
}

// fakeTxRunner ejecuta el callback directo contra los fakes, sin transacción.
type fakeTxRunner struct {
	lines  repository.StockLineRepository
	events *fakeEventRepo
}

func (tr *fakeTxRunner) Run(_ context.Context, fn func(
	lineRepo repository.StockLineRepository,
	eventRepo repository.RegistrationEventRepository,
) error) error {
	return fn(tr.lines, tr.events)
}

func newUseCase() (*stock.RegistrationUseCase, *fakeLineRepo, *fakeEventRepo) {
	lines := newFakeLineRepo()
	events := newFakeEventRepo()
	uc := stock.NewRegistrationUseCase(&fakeTxRunner{lines: lines, events: events})
	return uc, lines, events
}

var admin = entity.Actor{ID: "admin-1", Name: "admin", Role: entity.RoleAdmin}

func registerInput(qty int64) stock.RegisterStockInput {
	return stock.RegisterStockInput{
		Key: entity.SKUKey{
			Shade:      "R-204",
			Tkt:        "40",
			BinNo:      "B12",
			ColumnName: "C3",
		},
		Category: entity.CategoryDomestic,
		Brand:    "Coats",
		Quantity: qty,
		Actor:    admin,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterStock
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterStock_CreaLineaNueva(t *testing.T) {
	uc, lines, events := newUseCase()

	line, event, err := uc.RegisterStock(context.Background(), registerInput(50))
	require.NoError(t, err)

	assert.Equal(t, int64(50), line.Quantity)
	assert.Equal(t, "R-204", line.Key.Shade)
	assert.Len(t, lines.lines, 1)

	require.Len(t, events.order, 1)
	assert.Equal(t, entity.ActionCreate, event.Action)
	assert.Equal(t, int64(0), event.OldQuantity)
	assert.Equal(t, int64(50), event.NewQuantity)
	assert.Equal(t, int64(50), event.QtyChange)
	assert.Equal(t, line.ID, event.StockLineID)
	assert.Equal(t, admin.ID, event.CreatedBy)
}

func TestRegisterStock_FusionaPorClave(t *testing.T) {
	uc, lines, _ := newUseCase()

	_, _, err := uc.RegisterStock(context.Background(), registerInput(50))
	require.NoError(t, err)

	in := registerInput(30)
	in.Category = entity.CategoryExport
	in.Brand = "Madeira"
	line, event, err := uc.RegisterStock(context.Background(), in)
	require.NoError(t, err)

	// Misma clave → una sola línea, cantidad sumada
	assert.Len(t, lines.lines, 1)
	assert.Equal(t, int64(80), line.Quantity)

	// Last-write-wins en categoría y marca
	assert.Equal(t, entity.CategoryExport, line.Category)
	assert.Equal(t, "Madeira", line.Brand)

	assert.Equal(t, entity.ActionUpdate, event.Action)
	assert.Equal(t, int64(50), event.OldQuantity)
	assert.Equal(t, int64(80), event.NewQuantity)
	assert.Equal(t, event.OldQuantity+event.QtyChange, event.NewQuantity)
}

func TestRegisterStock_NormalizaClave(t *testing.T) {
	uc, lines, _ := newUseCase()

	_, _, err := uc.RegisterStock(context.Background(), registerInput(10))
	require.NoError(t, err)

	// Misma clave con espacios y minúsculas: debe fusionar, no crear otra línea
	in := registerInput(5)
	in.Key = entity.SKUKey{Shade: " r-204 ", Tkt: "40", BinNo: "b12", ColumnName: " c3"}
	line, _, err := uc.RegisterStock(context.Background(), in)
	require.NoError(t, err)

	assert.Len(t, lines.lines, 1)
	assert.Equal(t, int64(15), line.Quantity)
	assert.Equal(t, "R-204", line.Key.Shade)
}

// staleFirstReadRepo simula la ventana de carrera del primer registro: la
// primera lectura por clave no ve nada (la transacción rival aún no había
// confirmado) aunque la fila ya esté en el repo al llegar al insert.
type staleFirstReadRepo struct {
	*fakeLineRepo
	looked bool
}

func (r *staleFirstReadRepo) GetByKeyForUpdate(key entity.SKUKey) (*entity.StockLine, error) {
	if !r.looked {
		r.looked = true
		return nil, nil
	}
	return r.fakeLineRepo.GetByKeyForUpdate(key)
}

func TestRegisterStock_CarreraDePrimerRegistro(t *testing.T) {
	lines := newFakeLineRepo()
	events := newFakeEventRepo()

	// La fila ganadora ya existe cuando el perdedor intenta insertar
	winner := &entity.StockLine{
		ID:       "line-winner",
		Key:      entity.SKUKey{Shade: "R-204", Tkt: "40", BinNo: "B12", ColumnName: "C3"},
		Quantity: 50,
		Category: entity.CategoryDomestic,
		Brand:    "Coats",
	}
	require.NoError(t, lines.Create(winner))

	uc := stock.NewRegistrationUseCase(&fakeTxRunner{
		lines:  &staleFirstReadRepo{fakeLineRepo: lines},
		events: events,
	})

	line, event, err := uc.RegisterStock(context.Background(), registerInput(30))
	require.NoError(t, err)

	// El perdedor no falla: relee la fila ganadora y fusiona como actualización
	assert.Len(t, lines.lines, 1)
	assert.Equal(t, "line-winner", line.ID)
	assert.Equal(t, int64(80), line.Quantity)
	assert.Equal(t, entity.ActionUpdate, event.Action)
	assert.Equal(t, int64(50), event.OldQuantity)
	assert.Equal(t, int64(80), event.NewQuantity)
}

func TestRegisterStock_ValidaEntrada(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*stock.RegisterStockInput)
	}{
		{"cantidad cero", func(in *stock.RegisterStockInput) { in.Quantity = 0 }},
		{"cantidad negativa", func(in *stock.RegisterStockInput) { in.Quantity = -5 }},
		{"shade vacío", func(in *stock.RegisterStockInput) { in.Key.Shade = "  " }},
		{"tkt vacío", func(in *stock.RegisterStockInput) { in.Key.Tkt = "" }},
		{"bin vacío", func(in *stock.RegisterStockInput) { in.Key.BinNo = "" }},
		{"columna vacía", func(in *stock.RegisterStockInput) { in.Key.ColumnName = "" }},
		{"categoría inválida", func(in *stock.RegisterStockInput) { in.Category = "WHOLESALE" }},
		{"marca vacía", func(in *stock.RegisterStockInput) { in.Brand = " " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := registerInput(10)
			tc.mutate(&in)
			_, _, err := uc.RegisterStock(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RevertRegistration
// ──────────────────────────────────────────────────────────────────────────────

func TestRevertRegistration_DeshaceElEvento(t *testing.T) {
	uc, lines, events := newUseCase()
	ctx := context.Background()

	_, _, err := uc.RegisterStock(ctx, registerInput(50))
	require.NoError(t, err)
	_, ev2, err := uc.RegisterStock(ctx, registerInput(30))
	require.NoError(t, err)

	line, revert, err := uc.RevertRegistration(ctx, ev2.ID, admin)
	require.NoError(t, err)

	assert.Equal(t, int64(50), line.Quantity)
	assert.Equal(t, entity.ActionRevert, revert.Action)
	assert.Equal(t, int64(-30), revert.QtyChange)
	assert.Equal(t, int64(80), revert.OldQuantity)
	assert.Equal(t, int64(50), revert.NewQuantity)
	assert.Equal(t, ev2.ID, revert.RevertedFrom)

	// El original queda marcado, la línea persistida refleja la resta
	orig, _ := events.GetByID(ev2.ID)
	assert.True(t, orig.IsReverted)
	persisted, _ := lines.GetByID(line.ID)
	assert.Equal(t, int64(50), persisted.Quantity)
}

func TestRevertRegistration_SoloUnaVez(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	_, ev, err := uc.RegisterStock(ctx, registerInput(50))
	require.NoError(t, err)

	_, _, err = uc.RevertRegistration(ctx, ev.ID, admin)
	require.NoError(t, err)

	_, _, err = uc.RevertRegistration(ctx, ev.ID, admin)
	assert.ErrorIs(t, err, domain.ErrAlreadyReverted)
}

func TestRevertRegistration_UnRevertNoEsRevertible(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	_, ev, err := uc.RegisterStock(ctx, registerInput(50))
	require.NoError(t, err)
	_, revert, err := uc.RevertRegistration(ctx, ev.ID, admin)
	require.NoError(t, err)

	_, _, err = uc.RevertRegistration(ctx, revert.ID, admin)
	assert.ErrorIs(t, err, domain.ErrRevertNotRevertible)
}

func TestRevertRegistration_StockInsuficiente(t *testing.T) {
	uc, lines, _ := newUseCase()
	ctx := context.Background()

	line, ev, err := uc.RegisterStock(ctx, registerInput(50))
	require.NoError(t, err)

	// Emisiones posteriores dejaron la línea por debajo del qty_change original
	require.NoError(t, lines.Reserve(line.ID, 45))

	_, _, err = uc.RevertRegistration(ctx, ev.ID, admin)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La cantidad no se tocó
	persisted, _ := lines.GetByID(line.ID)
	assert.Equal(t, int64(5), persisted.Quantity)
}

func TestRevertRegistration_EventoInexistente(t *testing.T) {
	uc, _, _ := newUseCase()

	_, _, err := uc.RevertRegistration(context.Background(), "no-existe", admin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRevertRegistration_ConservaSnapshotDelOriginal(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	line, ev, err := uc.RegisterStock(ctx, registerInput(50))
	require.NoError(t, err)

	// La línea cambia de marca después del evento; el REVERT copia el
	// snapshot del evento original, no el estado actual de la línea
	in := registerInput(10)
	in.Brand = "Madeira"
	_, _, err = uc.RegisterStock(ctx, in)
	require.NoError(t, err)

	_, revert, err := uc.RevertRegistration(ctx, ev.ID, admin)
	require.NoError(t, err)

	assert.Equal(t, "Coats", revert.Brand)
	assert.Equal(t, line.Key, revert.Key)
}
