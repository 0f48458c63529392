package stock

import (
	"context"
	"io"

	"github.com/jhoicas/stock-intake/internal/domain/entity"
)

// BlobStore almacena la imagen de una entrada y devuelve su URL pública.
// La implementación decide la clave final (prefijo aleatorio + nombre saneado).
type BlobStore interface {
	Put(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (url string, err error)
}

// SpreadsheetGenerator genera el libro .xlsx con las entradas recibidas.
type SpreadsheetGenerator interface {
	GenerateStockSheet(ctx context.Context, entries []*entity.Stock) ([]byte, error)
}

// ReportGenerator genera el reporte PDF con las entradas recibidas.
type ReportGenerator interface {
	GenerateStockReport(ctx context.Context, entries []*entity.Stock) ([]byte, error)
}

// ImageFile imagen recibida en el multipart de subida.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}
