// Package pdf genera el reporte imprimible de entradas de stock.
//
// Layout de la página A4 (cabecera repetida en cada página):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO + fecha de generación   │   N° de entradas           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Nombre | Cant. | Imagen | Fecha | Código       │
//	│  (código de barras Code128 cuando el valor es imprimible)   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	appstock "github.com/jhoicas/stock-intake/internal/application/stock"
	"github.com/jhoicas/stock-intake/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 242, Green: 246, Blue: 250}
)

const timeLayout = "2006-01-02 15:04"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStockReport implementa stock.ReportGenerator usando Maroto v2.
type MarotoStockReport struct {
	title string
	loc   *time.Location
	now   func() time.Time
}

var _ appstock.ReportGenerator = (*MarotoStockReport)(nil)

// NewMarotoStockReport construye el generador. loc nil = UTC.
func NewMarotoStockReport(title string, loc *time.Location) *MarotoStockReport {
	if loc == nil {
		loc = time.UTC
	}
	if title == "" {
		title = "Stock entries"
	}
	return &MarotoStockReport{title: title, loc: loc, now: time.Now}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoStockReport) GenerateStockReport(ctx context.Context, entries []*entity.Stock) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterHeader(
		titleRow(g.title, g.now().In(g.loc), len(entries)),
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}),
		tableHeaderRow(),
	); err != nil {
		return nil, fmt.Errorf("pdf: cabecera: %w", err)
	}

	for i, s := range entries {
		if i%200 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		m.AddRows(entryRow(s, g.loc, i%2 == 1))
	}
	if len(entries) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin entradas registradas.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(title string, generated time.Time, count int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+generated.Format(timeLayout), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(strconv.Itoa(count)+" entradas", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 4,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Nombre", 2, align.Left),
		h("Cant.", 1, align.Center),
		h("Imagen", 4, align.Left),
		h("Fecha", 2, align.Left),
		h("Código", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func entryRow(s *entity.Stock, loc *time.Location, striped bool) core.Row {
	cell := func(v string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(v, props.Text{Size: 7.5, Align: a, Top: 2, Left: 1, Right: 1}))
	}
	r := row.New(12).Add(
		cell(strconv.FormatInt(s.ID, 10), 1, align.Center),
		cell(s.Name, 2, align.Left),
		cell(strconv.Itoa(s.Quantity), 1, align.Center),
		col.New(4).Add(text.New(s.ImageURL, props.Text{Size: 6, Top: 2, Left: 1, Right: 1, Color: colorGray})),
		cell(s.UploadedAt.In(loc).Format(timeLayout), 2, align.Left),
		barcodeCol(s.Barcode),
	)
	if striped {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// barcodeCol dibuja Code128 si el valor es ASCII imprimible; si no, lo deja como texto.
func barcodeCol(value string) core.Col {
	switch {
	case value == "":
		return col.New(2)
	case !code128Safe(value):
		return col.New(2).Add(text.New(value, props.Text{Size: 7, Align: align.Center, Top: 2}))
	}
	return col.New(2).Add(
		code.NewBar(value, props.Barcode{Percent: 70, Center: true, Proportion: props.Proportion{Width: 20, Height: 5}}),
	)
}

func code128Safe(s string) bool {
	if len(s) > 48 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
