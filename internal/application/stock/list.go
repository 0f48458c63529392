package stock

import (
	"context"
	"fmt"
	"math"

	"github.com/jhoicas/stock-intake/internal/application/dto"
	"github.com/jhoicas/stock-intake/internal/domain/entity"
)

// List devuelve la página solicitada (1-based) ordenada de la más reciente a la más antigua.
// Una página menor que 1 se trata como 1; una página más allá del final devuelve items vacíos.
func (uc *UseCase) List(ctx context.Context, page int) (*dto.StockListResponse, error) {
	if page < 1 {
		page = 1
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar stock: %w", err)
	}
	totalPages := TotalPages(total, uc.pageSize)

	// Más allá de la última página no hay filas: no se consulta (y el OFFSET no desborda).
	var list []*entity.Stock
	if page <= totalPages {
		offset, ok := pageOffset(page, uc.pageSize)
		if ok {
			list, err = uc.repo.List(ctx, uc.pageSize, offset)
			if err != nil {
				return nil, fmt.Errorf("listar stock: %w", err)
			}
		}
	}

	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toStockResponse(s))
	}
	return &dto.StockListResponse{
		Items: items,
		Page: dto.PageResponse{
			Page:       page,
			PageSize:   uc.pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// TotalPages calcula ceil(total/size); sin filas sigue habiendo una página (vacía).
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// pageOffset calcula (page-1)*size; ok=false cuando el resultado no cabe en int.
func pageOffset(page, size int) (offset int, ok bool) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		return 0, true
	}
	if page-1 > math.MaxInt/size {
		return 0, false
	}
	return (page - 1) * size, true
}
