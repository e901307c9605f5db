package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rentabilidad-api/internal/application/catalog"
	"github.com/jhoicas/Rentabilidad-api/internal/application/simulation"
	"github.com/jhoicas/Rentabilidad-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SimulationUC *simulation.SimulationUseCase
	ScenarioUC   *simulation.ScenarioUseCase
	KitUC        *catalog.KitUseCase
	ParseImport  ScenarioParser
	Logger       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Calculadora (sin estado)
	profitability := api.Group("/profitability")
	profitabilityHandler := NewProfitabilityHandler(deps.SimulationUC, deps.ParseImport, log.Component("profitability_handler"))
	profitability.Post("/simulate", profitabilityHandler.Simulate)
	profitability.Post("/export", profitabilityHandler.Export)
	profitability.Post("/import", profitabilityHandler.Import)

	// Escenarios guardados (por empresa)
	scenarios := api.Group("/scenarios", TenantMiddleware())
	scenarioHandler := NewScenarioHandler(deps.ScenarioUC, deps.ParseImport, log.Component("scenario_handler"))
	scenarios.Post("/", scenarioHandler.Create)
	scenarios.Post("/import", scenarioHandler.Import)
	scenarios.Get("/", scenarioHandler.List)
	scenarios.Get("/:id", scenarioHandler.GetByID)
	scenarios.Put("/:id", scenarioHandler.Update)
	scenarios.Delete("/:id", scenarioHandler.Delete)
	scenarios.Get("/:id/simulation", scenarioHandler.Simulate)

	// Kits
	kits := api.Group("/kits")
	kitHandler := NewKitHandler(deps.KitUC, log.Component("kit_handler"))
	kits.Post("/generate", kitHandler.Generate)
	kits.Post("/export", kitHandler.Export)
	kits.Post("/simulate", kitHandler.Simulate)
}
