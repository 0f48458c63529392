package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-intake/internal/domain/entity"
	"github.com/jhoicas/stock-intake/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre la tabla stocks (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create inserta la entrada y asigna el id generado por la base de datos.
func (r *StockRepo) Create(ctx context.Context, s *entity.Stock) error {
	query := `
		INSERT INTO stocks (name, quantity, dimensions, barcode, location, image_url, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.Name, s.Quantity, s.Dimensions, s.Barcode, s.Location, s.ImageURL, s.UploadedAt,
	).Scan(&s.ID)
	if err != nil {
		return wrapPgError("insert stock", err)
	}
	return nil
}

// List lista entradas de la más reciente a la más antigua con paginación.
func (r *StockRepo) List(ctx context.Context, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT id, name, quantity, dimensions, barcode, location, image_url, uploaded_at
		FROM stocks ORDER BY uploaded_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapPgError("list stocks", err)
	}
	defer rows.Close()
	list := make([]*entity.Stock, 0, limit)
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.Name, &s.Quantity, &s.Dimensions, &s.Barcode,
			&s.Location, &s.ImageURL, &s.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	return list, nil
}

// Count devuelve el total exacto de entradas.
func (r *StockRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stocks`).Scan(&n); err != nil {
		return 0, wrapPgError("count stocks", err)
	}
	return n, nil
}
