package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	appstock "github.com/jhoicas/stock-intake/internal/application/stock"
)

const displayTimeLayout = "2006-01-02 15:04"

// WebHandler renderiza las páginas HTML (formulario de subida y listado).
type WebHandler struct {
	uc      *appstock.UseCase
	appName string
	loc     *time.Location
}

// NewWebHandler loc es la zona en que se muestran las fechas (nil = UTC).
func NewWebHandler(uc *appstock.UseCase, appName string, loc *time.Location) *WebHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &WebHandler{uc: uc, appName: appName, loc: loc}
}

type entryView struct {
	ID         int64
	Name       string
	Quantity   int
	Dimensions string
	Barcode    string
	Location   string
	ImageURL   string
	UploadedAt string
}

type pageLink struct {
	Number  int
	Current bool
}

// Index formulario de subida.
func (h *WebHandler) Index(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{"AppName": h.appName}, "layouts/main")
}

// StockEntries listado paginado con botón de exportación.
func (h *WebHandler) StockEntries(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	entries := make([]entryView, 0, len(out.Items))
	for _, s := range out.Items {
		entries = append(entries, entryView{
			ID:         s.ID,
			Name:       s.Name,
			Quantity:   s.Quantity,
			Dimensions: s.Dimensions,
			Barcode:    s.Barcode,
			Location:   s.Location,
			ImageURL:   s.ImageURL,
			UploadedAt: s.UploadedAt.In(h.loc).Format(displayTimeLayout),
		})
	}

	p := out.Page
	pages := make([]pageLink, 0, p.TotalPages)
	for i := 1; i <= p.TotalPages; i++ {
		pages = append(pages, pageLink{Number: i, Current: i == p.Page})
	}

	return c.Render("stock_entries", fiber.Map{
		"AppName":    h.appName,
		"Entries":    entries,
		"Page":       p.Page,
		"TotalPages": p.TotalPages,
		"Pages":      pages,
		"HasPrev":    p.HasPrev(),
		"HasNext":    p.HasNext(),
		"PrevPage":   p.Page - 1,
		"NextPage":   p.Page + 1,
		"ExportURL":  "/api/stocks/export?page=" + strconv.Itoa(p.Page),
	}, "layouts/main")
}
