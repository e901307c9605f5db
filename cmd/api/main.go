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

	"github.com/jhoicas/Rentabilidad-api/internal/application/catalog"
	"github.com/jhoicas/Rentabilidad-api/internal/application/simulation"
	"github.com/jhoicas/Rentabilidad-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Rentabilidad-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Rentabilidad-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Rentabilidad-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/Rentabilidad-api/internal/interfaces/http"
	"github.com/jhoicas/Rentabilidad-api/pkg/config"
	"github.com/jhoicas/Rentabilidad-api/pkg/logger"
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

	// Caché de simulaciones: opcional; sin Redis se resuelve siempre.
	var resultCache simulation.ResultCache = simulation.NopCache{}
	if cfg.Redis.Enabled() {
		rc := cache.NewRedisResultCache(cache.NewClient(cfg.Redis), cfg.Redis.TTL, log)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché desactivada")
			rc.Close()
		} else {
			resultCache = rc
			defer rc.Close()
		}
	}

	exporter := spreadsheet.NewExporter()
	report := infrapdf.NewRoasReport(cfg.Report.Locale)
	scenarioRepo := postgres.NewScenarioRepository(pool)

	simulationUC := simulation.NewSimulationUseCase(resultCache, exporter, report, log.Component("simulation"))
	scenarioUC := simulation.NewScenarioUseCase(scenarioRepo, postgres.NewTxRunner(pool), simulationUC)
	kitUC := catalog.NewKitUseCase(simulationUC, exporter, log.Component("catalog"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Rentabilidad API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SimulationUC: simulationUC,
		ScenarioUC:   scenarioUC,
		KitUC:        kitUC,
		ParseImport:  spreadsheet.ParseScenarioRows,
		Logger:       log,
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
