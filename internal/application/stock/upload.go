package stock

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/stock-intake/internal/application/dto"
	"github.com/jhoicas/stock-intake/internal/domain"
	"github.com/jhoicas/stock-intake/internal/domain/entity"
)

var (
	// ErrMissingFields falta la imagen o la ubicación.
	ErrMissingFields = fmt.Errorf("%w: faltan campos requeridos", domain.ErrInvalidInput)
	// ErrInvalidQuantity quantity no es representable como entero.
	ErrInvalidQuantity = fmt.Errorf("%w: quantity debe ser un número entero", domain.ErrInvalidInput)
)

// Upload almacena la imagen y registra la entrada de stock.
//
// Retorna:
//   - ErrMissingFields / ErrInvalidQuantity  si la entrada no pasa las verificaciones de presencia.
//   - domain.ErrStorage                       si falla la subida al almacenamiento.
//   - domain.ErrPersistence                   si falla el insert (la imagen queda subida).
func (uc *UseCase) Upload(ctx context.Context, in dto.UploadStockRequest, file *ImageFile) (*dto.UploadStockResponse, error) {
	location := strings.TrimSpace(in.Location)
	if file == nil || file.Body == nil || location == "" {
		return nil, ErrMissingFields
	}
	quantity, err := ParseQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	if uc.store == nil {
		return nil, fmt.Errorf("%w: almacenamiento no configurado", domain.ErrStorage)
	}

	url, err := uc.store.Put(ctx, file.Name, file.ContentType, file.Body, file.Size)
	if err != nil {
		uc.log.Error().Err(err).Str("file", file.Name).Msg("subida de imagen")
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	stock := &entity.Stock{
		Name:       strings.TrimSpace(in.Name),
		Quantity:   quantity,
		Dimensions: strings.TrimSpace(in.Dimensions),
		Barcode:    strings.TrimSpace(in.Barcode),
		Location:   location,
		ImageURL:   url,
		UploadedAt: uc.now().UTC(),
	}
	if err := uc.repo.Create(ctx, stock); err != nil {
		uc.log.Error().Err(err).Str("image_url", url).Msg("registro de stock")
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	uc.log.Info().
		Int64("id", stock.ID).
		Str("location", stock.Location).
		Int("quantity", stock.Quantity).
		Msg("entrada de stock registrada")
	return &dto.UploadStockResponse{Success: true, URL: url}, nil
}

// ParseQuantity interpreta la cantidad del formulario. Vacío equivale a 0; se aceptan
// notaciones numéricas con valor entero ("3", "3.0", "1e3") dentro del rango de INTEGER.
func ParseQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ErrInvalidQuantity
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, ErrInvalidQuantity
	}
	return int(f), nil
}
