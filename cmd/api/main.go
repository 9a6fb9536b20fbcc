package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/vidrieria-api/internal/application/catalog"
	"github.com/jhoicas/vidrieria-api/internal/application/inventory"
	"github.com/jhoicas/vidrieria-api/internal/application/pricing"
	"github.com/jhoicas/vidrieria-api/internal/domain/repository"
	"github.com/jhoicas/vidrieria-api/internal/infrastructure/cache"
	"github.com/jhoicas/vidrieria-api/internal/infrastructure/metrics"
	"github.com/jhoicas/vidrieria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vidrieria-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/vidrieria-api/internal/interfaces/http"
	"github.com/jhoicas/vidrieria-api/pkg/config"
	"github.com/jhoicas/vidrieria-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	appMetrics := metrics.New()

	itemRepo := postgres.NewInventoryItemRepository(pool)
	txRepo := postgres.NewStockTransactionRepository(pool)
	pgCatalog := postgres.NewCatalogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Catálogo: Redis delante de Postgres solo si REDIS_ADDR está configurado.
	var catalogRepo repository.CatalogRepository = pgCatalog
	var invalidator catalog.CacheInvalidator
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, el catálogo se leerá de PostgreSQL")
		}
		catalogCache := cache.NewCatalogCache(pgCatalog, rdb, cfg.Redis.TTL, appMetrics, log.Component("catalog_cache"))
		catalogRepo = catalogCache
		invalidator = catalogCache
	}

	quoteUC := pricing.NewQuoteUseCase(catalogRepo, itemRepo, appMetrics, log.Zerolog())
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, appMetrics, log.Zerolog())
	consumeUC := inventory.NewConsumeWorkOrderUseCase(txRunner, catalogRepo, appMetrics, log.Zerolog())
	historyUC := inventory.NewHistoryUseCase(itemRepo, txRepo)
	rebuildUC := inventory.NewRebuildUseCase(itemRepo, txRepo)
	replenishmentUC := inventory.NewReplenishmentUseCase(itemRepo, txRepo)
	importUC := catalog.NewImportPricesUseCase(
		xlsx.NewPriceTableReader(), catalogRepo, pgCatalog, invalidator, log.Zerolog(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), appMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Vidriería API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado")
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = appMetrics.Handler()
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Quote:            quoteUC,
		RegisterMovement: registerMovementUC,
		ConsumeWorkOrder: consumeUC,
		History:          historyUC,
		Rebuild:          rebuildUC,
		Replenishment:    replenishmentUC,
		ImportPrices:     importUC,
		MetricsHandler:   metricsHandler,
		ServiceName:      cfg.App.Name,
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
