// Package spreadsheet genera la exportación .xlsx de las entradas de stock.
package spreadsheet

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	appstock "github.com/jhoicas/stock-intake/internal/application/stock"
	"github.com/jhoicas/stock-intake/internal/domain/entity"
)

// SheetName nombre de la única hoja del libro.
const SheetName = "StockEntries"

// TimeLayout formato de UploadedAt en la hoja.
const TimeLayout = "2006-01-02 15:04:05"

var header = []interface{}{"ID", "Name", "Quantity", "ImageURL", "UploadedAt"}

var colWidths = map[string]float64{"A": 8, "B": 28, "C": 10, "D": 60, "E": 20}

// ExcelizeGenerator implementa stock.SpreadsheetGenerator con excelize.
type ExcelizeGenerator struct {
	loc *time.Location
}

var _ appstock.SpreadsheetGenerator = (*ExcelizeGenerator)(nil)

// NewExcelizeGenerator loc es la zona en que se muestra UploadedAt (nil = UTC).
func NewExcelizeGenerator(loc *time.Location) *ExcelizeGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &ExcelizeGenerator{loc: loc}
}

// GenerateStockSheet escribe la cabecera y una fila por entrada, en el orden recibido.
func (g *ExcelizeGenerator) GenerateStockSheet(ctx context.Context, entries []*entity.Stock) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE6F1"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "E1", bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	for c, w := range colWidths {
		if err := f.SetColWidth(SheetName, c, c, w); err != nil {
			return nil, fmt.Errorf("xlsx: ancho %s: %w", c, err)
		}
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("xlsx: fijar cabecera: %w", err)
	}

	for i, s := range entries {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			s.ID,
			s.Name,
			s.Quantity,
			s.ImageURL,
			s.UploadedAt.In(g.loc).Format(TimeLayout),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
