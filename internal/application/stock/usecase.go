package stock

import (
	"time"

	"github.com/jhoicas/stock-intake/internal/application/dto"
	"github.com/jhoicas/stock-intake/internal/domain/entity"
	"github.com/jhoicas/stock-intake/internal/domain/repository"
	"github.com/jhoicas/stock-intake/pkg/logger"
)

// DefaultPageSize tamaño de página del listado si no se configura otro.
const DefaultPageSize = 25

// Options parámetros opcionales del caso de uso.
type Options struct {
	PageSize int
	Logger   *logger.Logger
	Clock    func() time.Time
}

// UseCase casos de uso de entradas de stock: subida, listado paginado y exportación.
type UseCase struct {
	repo     repository.StockRepository
	store    BlobStore
	sheet    SpreadsheetGenerator
	report   ReportGenerator
	pageSize int
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. store puede ser nil en procesos que solo listan o exportan (CLI).
func NewUseCase(
	repo repository.StockRepository,
	store BlobStore,
	sheet SpreadsheetGenerator,
	report ReportGenerator,
	opts Options,
) *UseCase {
	uc := &UseCase{
		repo:     repo,
		store:    store,
		sheet:    sheet,
		report:   report,
		pageSize: opts.PageSize,
		log:      opts.Logger,
		now:      opts.Clock,
	}
	if uc.pageSize <= 0 {
		uc.pageSize = DefaultPageSize
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc
}

// PageSize devuelve el tamaño de página efectivo.
func (uc *UseCase) PageSize() int { return uc.pageSize }

func toStockResponse(s *entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		ID:         s.ID,
		Name:       s.Name,
		Quantity:   s.Quantity,
		ImageURL:   s.ImageURL,
		UploadedAt: s.UploadedAt,
		Dimensions: s.Dimensions,
		Barcode:    s.Barcode,
		Location:   s.Location,
	}
}
