package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stock-intake/internal/application/dto"
	appstock "github.com/jhoicas/stock-intake/internal/application/stock"
	"github.com/jhoicas/stock-intake/internal/domain"
	"github.com/jhoicas/stock-intake/pkg/metrics"
)

// Mensajes de /api/upload; el formulario los muestra tal cual.
const (
	msgMissingFields   = "Missing required fields"
	msgInvalidQuantity = "Quantity must be an integer"
	msgUploadFailed    = "Upload failed"
)

// StockHandler maneja la subida, el listado y la exportación de entradas de stock.
type StockHandler struct {
	uc *appstock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *appstock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir entrada de stock
// @Tags         stocks
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "Imagen"
// @Param        location    formData  string  true   "Ubicación"
// @Param        name        formData  string  false  "Nombre"
// @Param        quantity    formData  string  false  "Cantidad (entero)"
// @Param        dimensions  formData  string  false  "Dimensiones"
// @Param        barcode     formData  string  false  "Código de barras"
// @Success      200  {object}  dto.UploadStockResponse
// @Failure      400  {object}  dto.UploadErrorResponse
// @Failure      500  {object}  dto.UploadErrorResponse
// @Router       /api/upload [post]
func (h *StockHandler) Upload(c *fiber.Ctx) error {
	in := dto.UploadStockRequest{
		Name:       c.FormValue("name"),
		Quantity:   c.FormValue("quantity"),
		Dimensions: c.FormValue("dimensions"),
		Barcode:    c.FormValue("barcode"),
		Location:   c.FormValue("location"),
	}

	fh, err := c.FormFile("file")
	if err != nil {
		// Sin multipart o sin parte "file": mismo error que un campo vacío.
		metrics.UploadsTotal.WithLabelValues(metrics.UploadInvalid).Inc()
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadErrorResponse{Error: msgMissingFields})
	}
	f, err := fh.Open()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(metrics.UploadStorageError).Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(dto.UploadErrorResponse{Error: msgUploadFailed})
	}
	defer f.Close()

	out, err := h.uc.Upload(c.UserContext(), in, &appstock.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	switch {
	case err == nil:
		metrics.UploadsTotal.WithLabelValues(metrics.UploadOK).Inc()
		return c.JSON(out)
	case errors.Is(err, appstock.ErrMissingFields):
		metrics.UploadsTotal.WithLabelValues(metrics.UploadInvalid).Inc()
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadErrorResponse{Error: msgMissingFields})
	case errors.Is(err, appstock.ErrInvalidQuantity):
		metrics.UploadsTotal.WithLabelValues(metrics.UploadInvalid).Inc()
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadErrorResponse{Error: msgInvalidQuantity})
	case errors.Is(err, domain.ErrStorage):
		metrics.UploadsTotal.WithLabelValues(metrics.UploadStorageError).Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(dto.UploadErrorResponse{Error: msgUploadFailed})
	default:
		metrics.UploadsTotal.WithLabelValues(metrics.UploadDBError).Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(dto.UploadErrorResponse{Error: dbErrorMessage(err)})
	}
}

// dbErrorMessage devuelve el mensaje de Postgres sin el contexto interno ("persistencia: insert stock: ...").
func dbErrorMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Message != "" {
		return pgErr.Message
	}
	return err.Error()
}

// List godoc
// @Summary      Listar entradas de stock (más recientes primero)
// @Tags         stocks
// @Produce      json
// @Param        page  query  int  false  "Página (1-based)"  default(1)
// @Success      200   {object}  dto.StockListResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar entradas de stock
// @Description  Por defecto exporta la página indicada; all=true exporta todas las entradas.
// @Tags         stocks
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        page    query  int     false  "Página (1-based)"  default(1)
// @Param        all     query  bool    false  "Exportar todo"
// @Param        format  query  string  false  "xlsx | pdf"        default(xlsx)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stocks/export [get]
func (h *StockHandler) Export(c *fiber.Ctx) error {
	file, err := h.uc.Export(c.UserContext(), appstock.ExportInput{
		Page:   c.QueryInt("page", 1),
		All:    c.QueryBool("all", false),
		Format: c.Query("format"),
	})
	if err != nil {
		if errors.Is(err, appstock.ErrUnknownFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORMAT", Message: "formato debe ser xlsx o pdf"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	metrics.ExportsTotal.WithLabelValues(file.Format).Inc()
	c.Attachment(file.FileName)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Content)
}
