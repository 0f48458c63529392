package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	appstock "github.com/jhoicas/stock-intake/internal/application/stock"
	"github.com/jhoicas/stock-intake/internal/infrastructure/blob"
	infrapdf "github.com/jhoicas/stock-intake/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-intake/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-intake/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/stock-intake/internal/interfaces/http"
	"github.com/jhoicas/stock-intake/pkg/config"
	"github.com/jhoicas/stock-intake/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("blob_driver", cfg.Blob.Driver).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.App.Timezone).Msg("zona horaria inválida, se usa UTC")
		loc = time.UTC
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.DefaultPoolOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	store, err := blob.New(ctx, cfg.Blob)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}

	stockRepo := postgres.NewStockRepository(pool)
	stockUC := appstock.NewUseCase(
		stockRepo,
		store,
		spreadsheet.NewExcelizeGenerator(loc),
		infrapdf.NewMarotoStockReport(cfg.App.Name, loc),
		appstock.Options{
			PageSize: cfg.List.PageSize,
			Logger:   log.Named("stock"),
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitBytes(),
		Views:        httpRouter.NewViewsEngine(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: httpRouter.LocalRequestID,
	}))
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(httpRouter.Metrics())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name + " API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Driver local: las URLs devueltas apuntan a /blobs/<prefix>/<clave>.
	if cfg.Blob.Driver == config.BlobDriverLocal {
		app.Static("/blobs", cfg.Blob.LocalDir, fiber.Static{MaxAge: 3600})
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:  stockUC,
		AppName:  cfg.App.Name,
		Location: loc,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
