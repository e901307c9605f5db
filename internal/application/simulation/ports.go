package simulation

import (
	"context"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/profitability"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/repository"
)

// ResultCache memoriza Solve por entradas. Un error de caché nunca interrumpe la simulación.
type ResultCache interface {
	Get(ctx context.Context, in profitability.CostInputs) (profitability.Result, bool, error)
	Set(ctx context.Context, in profitability.CostInputs, res profitability.Result) error
}

// WorkbookExporter genera planillas XLSX: una simulación o el resumen de un lote.
type WorkbookExporter interface {
	ExportSimulation(resp *dto.SimulationResponse) ([]byte, error)
	ExportBatch(resp *dto.BatchSimulationResponse) ([]byte, error)
}

// ReportRenderer genera el reporte PDF de una simulación.
type ReportRenderer interface {
	RenderSimulation(ctx context.Context, title string, resp *dto.SimulationResponse) ([]byte, error)
}

// ScenarioTxRunner ejecuta fn con un repositorio atado a una transacción: commit si fn no falla.
type ScenarioTxRunner interface {
	RunScenarios(ctx context.Context, fn func(repo repository.ScenarioRepository) error) error
}

// NopCache caché desactivada (sin Redis configurado).
type NopCache struct{}

func (NopCache) Get(context.Context, profitability.CostInputs) (profitability.Result, bool, error) {
	return profitability.Result{}, false, nil
}

func (NopCache) Set(context.Context, profitability.CostInputs, profitability.Result) error {
	return nil
}
