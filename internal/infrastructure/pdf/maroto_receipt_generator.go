// Package pdf implementa la representación imprimible del recibo de emisión
// de stock.
//
// Layout de la página A5 apaisada:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: ThreadStock  │  N° Recibo + Fecha   │
//	│  ──────────────────────────────────────────  │
//	│  ARTÍCULO: Shade / TKT / Bin / Columna       │
//	│  ──────────────────────────────────────────  │
//	│  CANTIDAD ENTREGADA                          │
//	│  Solicitante / Aprobador                     │
//	│  ──────────────────────────────────────────  │
//	│  Leyenda de conservación                     │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/threadkeep/threadstock-api/internal/application/issuance"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 31, Green: 78, Blue: 61}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ issuance.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa issuance.ReceiptPDFGenerator usando
// Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF del recibo y devuelve sus bytes. La
// emisión debe estar APPROVED y traer los campos de join poblados
// (shade, tkt, usernames); las ubicaciones salen de los snapshots.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, is *entity.Issuance) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de emisión "+is.ReceiptNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(is))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(articleRow(is))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(quantityRow(is))
	m.AddRows(partiesRow(is))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del sistema (izq) y número de recibo + fecha (der).
func headerRow(is *entity.Issuance) core.Row {
	fecha := "—"
	if is.ApprovedAt != nil {
		fecha = is.ApprovedAt.Format("02/01/2006 15:04")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ThreadStock", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Recibo de emisión de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(is.ReceiptNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// articleRow: identificación del artículo con la ubicación congelada al
// momento de la solicitud.
func articleRow(is *entity.Issuance) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ARTÍCULO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Shade %s  ·  TKT %s", is.Shade, is.Tkt), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Bin: %s   |   Columna: %s",
				is.BinSnapshot, is.ColumnSnapshot,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// quantityRow: cantidad entregada, grande y centrada.
func quantityRow(is *entity.Issuance) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CANTIDAD ENTREGADA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center,
				Color: colorGray, Top: 2,
			}),
			text.New(strconv.FormatInt(is.RequestedQuantity, 10)+" conos", props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Center,
				Color: colorPrimary, Top: 7,
			}),
		),
	)
}

// partiesRow: quién solicitó y quién aprobó.
func partiesRow(is *entity.Issuance) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New("Solicitado por", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(is.RequestedByName, props.Text{Size: 9, Top: 6}),
		),
		col.New(6).Add(
			text.New("Aprobado por", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(is.ApprovedByName, props.Text{Size: 9, Align: align.Right, Top: 6}),
		),
	)
}

// footerRow: leyenda de conservación.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Este recibo documenta la salida física de stock del almacén. "+
				"Consérvelo como soporte del movimiento.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}
