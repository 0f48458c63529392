package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-intake/internal/domain"
	"github.com/jhoicas/stock-intake/internal/domain/entity"
)

// Formatos de exportación.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
	exportFileBase  = "stock_entries"
	exportBatchSize = 500
)

// ErrUnknownFormat formato de exportación no soportado.
var ErrUnknownFormat = fmt.Errorf("%w: formato de exportación no soportado", domain.ErrInvalidInput)

// ExportInput selección a exportar. All ignora Page y recorre toda la tabla.
type ExportInput struct {
	Page   int
	All    bool
	Format string
}

// ExportFile archivo generado listo para descargar.
type ExportFile struct {
	Format      string
	FileName    string
	ContentType string
	Content     []byte
	Rows        int
}

// ParseFormat normaliza el formato; vacío equivale a xlsx.
func ParseFormat(raw string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(raw)); f {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", ErrUnknownFormat
	}
}

// Export genera el archivo con las entradas de la página indicada (o de todas).
// Una selección vacía produce igualmente un archivo válido con solo la cabecera.
func (uc *UseCase) Export(ctx context.Context, in ExportInput) (*ExportFile, error) {
	format, err := ParseFormat(in.Format)
	if err != nil {
		return nil, err
	}

	entries, err := uc.collect(ctx, in)
	if err != nil {
		return nil, err
	}

	out := &ExportFile{Format: format, Rows: len(entries)}
	switch format {
	case FormatPDF:
		if uc.report == nil {
			return nil, fmt.Errorf("%w: generador PDF no configurado", ErrUnknownFormat)
		}
		out.Content, err = uc.report.GenerateStockReport(ctx, entries)
		out.ContentType = pdfContentType
	default:
		if uc.sheet == nil {
			return nil, fmt.Errorf("%w: generador XLSX no configurado", ErrUnknownFormat)
		}
		out.Content, err = uc.sheet.GenerateStockSheet(ctx, entries)
		out.ContentType = xlsxContentType
	}
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", format, err)
	}
	out.FileName = exportFileBase + "." + format

	uc.log.Info().Str("format", format).Int("rows", out.Rows).Bool("all", in.All).Msg("exportación generada")
	return out, nil
}

func (uc *UseCase) collect(ctx context.Context, in ExportInput) ([]*entity.Stock, error) {
	if !in.All {
		offset, ok := pageOffset(in.Page, uc.pageSize)
		if !ok {
			return nil, nil
		}
		list, err := uc.repo.List(ctx, uc.pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("listar stock: %w", err)
		}
		return list, nil
	}

	var all []*entity.Stock
	for offset := 0; ; offset += exportBatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch, err := uc.repo.List(ctx, exportBatchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("listar stock (offset %d): %w", offset, err)
		}
		all = append(all, batch...)
		if len(batch) < exportBatchSize {
			return all, nil
		}
	}
}
