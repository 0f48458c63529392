package repository

import (
	"context"

	"github.com/jhoicas/stock-intake/internal/domain/entity"
)

// StockRepository define el puerto de persistencia para las entradas de stock (DIP).
type StockRepository interface {
	// Create inserta la fila y asigna stock.ID.
	Create(ctx context.Context, stock *entity.Stock) error
	// List devuelve una página ordenada por uploaded_at descendente.
	List(ctx context.Context, limit, offset int) ([]*entity.Stock, error)
	// Count devuelve el total exacto de filas.
	Count(ctx context.Context) (int, error)
}
