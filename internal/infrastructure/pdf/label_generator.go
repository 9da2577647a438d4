package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/sahil-erp/internal/application/reports"
)

// Tres etiquetas por fila, 4 de las 12 columnas cada una.
const labelsPerRow = 3

// GenerateLabelSheet una celda por etiqueta: nombre, detalle, código de barras y precio;
// con withQR se agrega un QR con el mismo código.
func (g *MarotoPDFGenerator) GenerateLabelSheet(_ context.Context, labels []reports.Label, withQR bool) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Labels", true).
		WithAuthor(g.issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	for start := 0; start < len(labels); start += labelsPerRow {
		end := start + labelsPerRow
		if end > len(labels) {
			end = len(labels)
		}
		m.AddRows(labelRows(labels[start:end], withQR)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

// labelRows una tanda de hasta labelsPerRow etiquetas, en filas: texto, barras, precio y QR.
func labelRows(batch []reports.Label, withQR bool) []core.Row {
	cell := func(f func(reports.Label) core.Component) []core.Col {
		cols := make([]core.Col, 0, labelsPerRow)
		for _, l := range batch {
			cols = append(cols, col.New(12/labelsPerRow).Add(f(l)))
		}
		for len(cols) < labelsPerRow {
			cols = append(cols, col.New(12/labelsPerRow))
		}
		return cols
	}

	rows := []core.Row{
		row.New(5).Add(cell(func(l reports.Label) core.Component {
			return text.New(l.Name, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1})
		})...),
		row.New(4).Add(cell(func(l reports.Label) core.Component {
			return text.New(l.Detail, props.Text{Size: 6, Align: align.Center, Color: colorGray})
		})...),
		row.New(12).Add(cell(func(l reports.Label) core.Component {
			return code.NewBar(l.Barcode, props.Barcode{Percent: 85, Center: true})
		})...),
		row.New(5).Add(cell(func(l reports.Label) core.Component {
			return text.New(l.Barcode+"   Rs. "+l.Price, props.Text{Size: 7, Align: align.Center, Top: 1})
		})...),
	}
	if withQR {
		rows = append(rows, row.New(20).Add(cell(func(l reports.Label) core.Component {
			return code.NewQr(l.Barcode, props.Rect{Percent: 90, Center: true})
		})...))
	}
	return append(rows, row.New(6))
}
