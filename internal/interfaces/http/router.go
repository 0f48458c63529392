package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appstock "github.com/jhoicas/stock-intake/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC  *appstock.UseCase
	AppName  string
	Location *time.Location // zona horaria de las fechas en las vistas
}

// Router registra las rutas de la API, las páginas HTML y /metrics.
func Router(app *fiber.App, deps RouterDeps) {
	stockHandler := NewStockHandler(deps.StockUC)
	webHandler := NewWebHandler(deps.StockUC, deps.AppName, deps.Location)

	// Páginas
	app.Get("/", webHandler.Index)
	app.Get("/stock-entries", webHandler.StockEntries)

	// API
	api := app.Group("/api")
	api.Post("/upload", stockHandler.Upload)

	stocks := api.Group("/stocks")
	stocks.Get("/", stockHandler.List)
	stocks.Get("/export", stockHandler.Export)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
