// Package pdf implementa la generación del reporte de valoración de
// inventario de un producto: la vista de costo agregada y el detalle de los
// lotes activos en orden FIFO.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de valoración  │  Producto + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: costo promedio / unidades / lotes / rango fechas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Recibido | Lote | Cant. | P.Compra | Flete/U | Costo │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: valor de inventario al costo                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appinventory.ValuationPDFGenerator = (*MarotoValuationGenerator)(nil)

// MarotoValuationGenerator implementa inventory.ValuationPDFGenerator usando Maroto v2.
type MarotoValuationGenerator struct{}

// NewMarotoValuationGenerator construye el generador.
func NewMarotoValuationGenerator() *MarotoValuationGenerator { return &MarotoValuationGenerator{} }

// GenerateValuationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoValuationGenerator) GenerateValuationPDF(
	_ context.Context,
	info *entity.ProductCostInfo,
	lots []*entity.InventoryLot,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Valoración de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(info))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(info))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLotRows(lots) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(lots))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y producto + recuento (der).
func headerRow(info *entity.ProductCostInfo) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("VALORACIÓN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Costeo FIFO por lotes", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Producto: "+info.ProductID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(fmt.Sprintf("Lotes activos: %d", info.LotCount), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// summaryRow: costo promedio, unidades y rango de recepción.
func summaryRow(info *entity.ProductCostInfo) core.Row {
	dateRange := "—"
	if info.OldestLotDate != nil && info.NewestLotDate != nil {
		dateRange = info.OldestLotDate.Format("02/01/2006") + " a " + info.NewestLotDate.Format("02/01/2006")
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RESUMEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Costo promedio: $%s   |   Unidades: %s   |   Recepciones: %s",
				info.AverageCost.StringFixed(2),
				info.TotalQuantity.String(),
				dateRange,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de lotes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Recibido", 2, align.Left),
		h("Lote", 2, align.Left),
		h("Cant.", 1, align.Center),
		h("P. Compra", 2, align.Right),
		h("Flete/U", 2, align.Right),
		h("Costo U.", 1, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableLotRows: una fila por lote activo.
func tableLotRows(lots []*entity.InventoryLot) []core.Row {
	result := make([]core.Row, 0, len(lots))
	for _, l := range lots {
		lotNumber := l.LotNumber
		if lotNumber == "" {
			lotNumber = "—"
		}
		value := l.CurrentQuantity.Mul(l.UnitCost)
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				l.ReceivedDate.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				lotNumber,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.CurrentQuantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.PurchasePrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.FreightCostPerUnit.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				"$"+l.UnitCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+value.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: valor total del inventario al costo.
func totalRow(lots []*entity.InventoryLot) core.Row {
	total := decimal.Zero
	for _, l := range lots {
		total = total.Add(l.CurrentQuantity.Mul(l.UnitCost))
	}
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL AL COSTO", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New("$"+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}
