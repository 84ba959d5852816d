package issuance_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadkeep/threadstock-api/internal/application/issuance"
	"github.com/threadkeep/threadstock-api/internal/domain"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeLineRepo struct {
	lines map[string]*entity.StockLine
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
	cp := *line
	r.lines[line.ID] = &cp
	return nil
}

func (r *fakeLineRepo) Update(line *entity.StockLine) error {
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

type fakeIssuanceRepo struct {
	issuances map[string]*entity.Issuance
}

func (r *fakeIssuanceRepo) Create(is *entity.Issuance) error {
	cp := *is
	r.issuances[is.ID] = &cp
	return nil
}

func (r *fakeIssuanceRepo) GetByID(id string) (*entity.Issuance, error) {
	is, ok := r.issuances[id]
	if !ok {
		return nil, nil
	}
	cp := *is
	return &cp, nil
}

func (r *fakeIssuanceRepo) GetForUpdate(id string) (*entity.Issuance, error) {
	return r.GetByID(id)
}

func (r *fakeIssuanceRepo) Update(is *entity.Issuance) error {
	if _, ok := r.issuances[is.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *is
	r.issuances[is.ID] = &cp
	return nil
}

// fakeReceipts numera recibos con un contador en memoria.
type fakeReceipts struct {
	n int64
}

func (r *fakeReceipts) Next() (string, error) {
	r.n++
	return fmt.Sprintf("R%06d", r.n), nil
}

type fakeTxRunner struct {
	lines     *fakeLineRepo
	issuances *fakeIssuanceRepo
	receipts  *fakeReceipts
}

func (tr *fakeTxRunner) RunIssuance(_ context.Context, fn func(
	lineRepo repository.StockLineRepository,
	issuanceRepo repository.IssuanceRepository,
	receipts issuance.ReceiptSource,
) error) error {
	return fn(tr.lines, tr.issuances, tr.receipts)
}

type fixture struct {
	uc        *issuance.WorkflowUseCase
	lines     *fakeLineRepo
	issuances *fakeIssuanceRepo
	line      *entity.StockLine
}

func newFixture(t *testing.T, quantity int64) *fixture {
	t.Helper()
	lines := &fakeLineRepo{lines: make(map[string]*entity.StockLine)}
	issuances := &fakeIssuanceRepo{issuances: make(map[string]*entity.Issuance)}
	line := &entity.StockLine{
		ID: "line-1",
		Key: entity.SKUKey{
			Shade:      "R-204",
			Tkt:        "40",
			BinNo:      "B12",
			ColumnName: "C3",
		},
		Quantity:  quantity,
		Category:  entity.CategoryDomestic,
		Brand:     "Coats",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, lines.Create(line))
	uc := issuance.NewWorkflowUseCase(&fakeTxRunner{
		lines:     lines,
		issuances: issuances,
		receipts:  &fakeReceipts{},
	})
	return &fixture{uc: uc, lines: lines, issuances: issuances, line: line}
}

var (
	adminActor = entity.Actor{ID: "admin-1", Name: "admin", Role: entity.RoleAdmin}
	userActor  = entity.Actor{ID: "user-1", Name: "operaria1", Role: entity.RoleUser}
)

// ──────────────────────────────────────────────────────────────────────────────
// RequestIssuance
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestIssuance_UsuarioQuedaPendiente(t *testing.T) {
	fx := newFixture(t, 100)

	iss, err := fx.uc.RequestIssuance(context.Background(), "line-1", 40, userActor)
	require.NoError(t, err)

	assert.Equal(t, entity.IssuanceStatusPending, iss.Status)
	assert.Empty(t, iss.ReceiptNumber)
	assert.Empty(t, iss.ApprovedBy)
	assert.Nil(t, iss.ApprovedAt)

	// La solicitud pendiente no toca el stock
	line, _ := fx.lines.GetByID("line-1")
	assert.Equal(t, int64(100), line.Quantity)

	// La ubicación queda congelada en la solicitud
	assert.Equal(t, "B12", iss.BinSnapshot)
	assert.Equal(t, "C3", iss.ColumnSnapshot)
}

func TestRequestIssuance_AdminSeAutoAprueba(t *testing.T) {
	fx := newFixture(t, 100)

	iss, err := fx.uc.RequestIssuance(context.Background(), "line-1", 40, adminActor)
	require.NoError(t, err)

	assert.Equal(t, entity.IssuanceStatusApproved, iss.Status)
	assert.Equal(t, adminActor.ID, iss.ApprovedBy)
	assert.NotNil(t, iss.ApprovedAt)
	assert.Equal(t, "R000001", iss.ReceiptNumber)

	// La reserva es inmediata
	line, _ := fx.lines.GetByID("line-1")
	assert.Equal(t, int64(60), line.Quantity)
}

func TestRequestIssuance_AutoAprobacionSinStock(t *testing.T) {
	fx := newFixture(t, 10)

	_, err := fx.uc.RequestIssuance(context.Background(), "line-1", 40, adminActor)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada persistido: ni solicitud ni cambio de stock
	assert.Empty(t, fx.issuances.issuances)
	line, _ := fx.lines.GetByID("line-1")
	assert.Equal(t, int64(10), line.Quantity)
}

func TestRequestIssuance_LineaInexistente(t *testing.T) {
	fx := newFixture(t, 100)

	_, err := fx.uc.RequestIssuance(context.Background(), "no-existe", 5, userActor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestIssuance_ValidaEntrada(t *testing.T) {
	fx := newFixture(t, 100)
	ctx := context.Background()

	_, err := fx.uc.RequestIssuance(ctx, "line-1", 0, userActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.RequestIssuance(ctx, "", 5, userActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ApproveIssuance
// ──────────────────────────────────────────────────────────────────────────────

func TestApproveIssuance_ApruebaYReserva(t *testing.T) {
	fx := newFixture(t, 100)
	ctx := context.Background()

	pending, err := fx.uc.RequestIssuance(ctx, "line-1", 40, userActor)
	require.NoError(t, err)

	iss, err := fx.uc.ApproveIssuance(ctx, pending.ID, adminActor)
	require.NoError(t, err)

	assert.Equal(t, entity.IssuanceStatusApproved, iss.Status)
	assert.Equal(t, adminActor.ID, iss.ApprovedBy)
	assert.Equal(t, "R000001", iss.ReceiptNumber)

	line, _ := fx.lines.GetByID("line-1")
	assert.Equal(t, int64(60), line.Quantity)
}

func TestApproveIssuance_SoloAprobadores(t *testing.T) {
	fx := newFixture(t, 100)

	_, err := fx.uc.ApproveIssuance(context.Background(), "cualquiera", userActor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestApproveIssuance_SolicitudYaDecidida(t *testing.T) {
	fx := newFixture(t, 100)
	ctx := context.Background()

	pending, err := fx.uc.RequestIssuance(ctx, "line-1", 40, userActor)
	require.NoError(t, err)
	_, err = fx.uc.ApproveIssuance(ctx, pending.ID, adminActor)
	require.NoError(t, err)

	// La segunda decisión sobre la misma solicitud no avanza
	_, err = fx.uc.ApproveIssuance(ctx, pending.ID, adminActor)
	assert.ErrorIs(t, err, domain.ErrWrongState)

	// Y el stock solo se descontó una vez
	line, _ := fx.lines.GetByID("line-1")
	assert.Equal(t, int64(60), line.Quantity)
}

func TestApproveIssuance_StockCambioDesdeLaSolicitud(t *testing.T) {
	fx := newFixture(t, 100)
	ctx := context.Background()

	pending, err := fx.uc.RequestIssuance(ctx, "line-1", 80, userActor)
	require.NoError(t, err)

	// Otra emisión se llevó el stock mientras esta esperaba
	require.NoError(t, fx.lines.Reserve("line-1", 50))

	_, err = fx.uc.ApproveIssuance(ctx, pending.ID, adminActor)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La solicitud sigue pendiente, decidible cuando vuelva el stock
	persisted, _ := fx.issuances.GetByID(pending.ID)
	assert.Equal(t, entity.IssuanceStatusPending, persisted.Status)
}

func TestApproveIssuance_ConservaSnapshotDeUbicacion(t *testing.T) {
	fx := newFixture(t, 100)
	ctx := context.Background()

	pending, err := fx.uc.RequestIssuance(ctx, "line-1", 10, userActor)
	require.NoError(t, err)

	// El stock se mueve de bin entre la solicitud y la aprobación
	moved, _ := fx.lines.GetByID("line-1")
	moved.Key.BinNo = "B99"
	require.NoError(t, fx.lines.Update(moved))

	iss, err := fx.uc.ApproveIssuance(ctx, pending.ID, adminActor)
	require.NoError(t, err)

	assert.Equal(t, "B12", iss.BinSnapshot, "el recibo conserva la ubicación original")
}

func TestApproveIssuance_RecibosMonotonicos(t *testing.T) {
	fx := newFixture(t, 100)
	ctx := context.Background()

	first, err := fx.uc.RequestIssuance(ctx, "line-1", 10, adminActor)
	require.NoError(t, err)

	pending, err := fx.uc.RequestIssuance(ctx, "line-1", 10, userActor)
	require.NoError(t, err)
	second, err := fx.uc.ApproveIssuance(ctx, pending.ID, adminActor)
	require.NoError(t, err)

	assert.Equal(t, "R000001", first.ReceiptNumber)
	assert.Equal(t, "R000002", second.ReceiptNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// RejectIssuance
// ──────────────────────────────────────────────────────────────────────────────

func TestRejectIssuance_RechazaSinTocarStock(t *testing.T) {
	fx := newFixture(t, 100)
	ctx := context.Background()

	pending, err := fx.uc.RequestIssuance(ctx, "line-1", 40, userActor)
	require.NoError(t, err)

	iss, err := fx.uc.RejectIssuance(ctx, pending.ID, adminActor, entity.RejectionDamaged, "")
	require.NoError(t, err)

	assert.Equal(t, entity.IssuanceStatusRejected, iss.Status)
	assert.Equal(t, entity.RejectionDamaged, iss.RejectionReason)
	assert.Empty(t, iss.ReceiptNumber, "un rechazo nunca lleva recibo")

	line, _ := fx.lines.GetByID("line-1")
	assert.Equal(t, int64(100), line.Quantity)
}

func TestRejectIssuance_OtherExigeComentario(t *testing.T) {
	fx := newFixture(t, 100)
	ctx := context.Background()

	pending, err := fx.uc.RequestIssuance(ctx, "line-1", 40, userActor)
	require.NoError(t, err)

	_, err = fx.uc.RejectIssuance(ctx, pending.ID, adminActor, entity.RejectionOther, "  ")
	assert.ErrorIs(t, err, domain.ErrMissingComment)

	iss, err := fx.uc.RejectIssuance(ctx, pending.ID, adminActor, entity.RejectionOther, "pedido duplicado")
	require.NoError(t, err)
	assert.Equal(t, "pedido duplicado", iss.RejectionComment)
}

func TestRejectIssuance_MotivoInvalido(t *testing.T) {
	fx := newFixture(t, 100)

	_, err := fx.uc.RejectIssuance(context.Background(), "cualquiera", adminActor, "NO_ME_GUSTA", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRejectIssuance_SoloAprobadores(t *testing.T) {
	fx := newFixture(t, 100)

	_, err := fx.uc.RejectIssuance(context.Background(), "cualquiera", userActor, entity.RejectionDamaged, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRejectIssuance_SolicitudYaDecidida(t *testing.T) {
	fx := newFixture(t, 100)
	ctx := context.Background()

	approved, err := fx.uc.RequestIssuance(ctx, "line-1", 10, adminActor)
	require.NoError(t, err)

	_, err = fx.uc.RejectIssuance(ctx, approved.ID, adminActor, entity.RejectionDamaged, "")
	assert.ErrorIs(t, err, domain.ErrWrongState)
}
