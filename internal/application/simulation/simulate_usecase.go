// Package simulation contiene los casos de uso de la calculadora de rentabilidad:
// simulación puntual, por lotes, exportación y escenarios guardados.
package simulation

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/domain"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/profitability"
	"github.com/jhoicas/Rentabilidad-api/pkg/logger"
)

// Formatos de exportación soportados.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// SimulationUseCase valida, resuelve (con caché) y arma la respuesta de la calculadora.
type SimulationUseCase struct {
	cache    ResultCache
	workbook WorkbookExporter
	report   ReportRenderer
	log      *logger.Logger
}

// NewSimulationUseCase construye el caso de uso. cache nil equivale a NopCache.
func NewSimulationUseCase(cache ResultCache, workbook WorkbookExporter, report ReportRenderer, log *logger.Logger) *SimulationUseCase {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SimulationUseCase{cache: cache, workbook: workbook, report: report, log: log}
}

// Simulate resuelve el PV y la tabla ROAS. Un objetivo inviable no es error: feasible = false.
func (uc *SimulationUseCase) Simulate(ctx context.Context, req dto.SimulationRequest) (*dto.SimulationResponse, error) {
	req.TargetMode = strings.ToUpper(strings.TrimSpace(req.TargetMode))
	in := ToCostInputs(req)
	if err := profitability.Validate(in); err != nil {
		return nil, err
	}

	res := uc.solve(ctx, in)
	if !res.Converged {
		uc.log.Warn().
			Str("target_mode", string(in.TargetMode)).
			Float64("target_value", in.TargetValue).
			Int("iterations", res.Iterations).
			Msg("solver de margen neto sin convergencia, se devuelve la mejor aproximación")
	}
	return toResponse(req, in, res), nil
}

// SimulateBatch simula cada fila importada; los errores por fila no detienen el lote.
func (uc *SimulationUseCase) SimulateBatch(ctx context.Context, rows []dto.ScenarioImportRow) *dto.BatchSimulationResponse {
	out := &dto.BatchSimulationResponse{Items: make([]dto.BatchItemDTO, 0, len(rows)), Total: len(rows)}
	for _, row := range rows {
		item := dto.BatchItemDTO{Row: row.Row, Name: row.Name, ProductSKU: row.ProductSKU}
		resp, err := uc.Simulate(ctx, row.Request)
		if err != nil {
			item.Error = err.Error()
			out.Failed++
		} else {
			item.Result = resp
		}
		out.Items = append(out.Items, item)
	}
	uc.log.Info().Int("total", out.Total).Int("failed", out.Failed).Msg("simulación por lotes")
	return out
}

// ExportBatch simula el lote y devuelve la planilla resumen (una fila por escenario).
func (uc *SimulationUseCase) ExportBatch(ctx context.Context, rows []dto.ScenarioImportRow) ([]byte, *dto.BatchSimulationResponse, error) {
	out := uc.SimulateBatch(ctx, rows)
	b, err := uc.workbook.ExportBatch(out)
	if err != nil {
		return nil, out, fmt.Errorf("simulation: exportar lote: %w", err)
	}
	return b, out, nil
}

// Export simula y devuelve el archivo en el formato pedido junto con su content-type.
func (uc *SimulationUseCase) Export(ctx context.Context, req dto.SimulationRequest, format, title string) ([]byte, string, error) {
	resp, err := uc.Simulate(ctx, req)
	if err != nil {
		return nil, "", err
	}
	return uc.Render(ctx, resp, format, title)
}

// Render genera el archivo de una simulación ya resuelta.
func (uc *SimulationUseCase) Render(ctx context.Context, resp *dto.SimulationResponse, format, title string) ([]byte, string, error) {
	if title == "" {
		title = "Simulación de rentabilidad"
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatXLSX, "":
		b, err := uc.workbook.ExportSimulation(resp)
		if err != nil {
			return nil, "", fmt.Errorf("simulation: exportar xlsx: %w", err)
		}
		return b, ContentTypeXLSX, nil
	case FormatPDF:
		b, err := uc.report.RenderSimulation(ctx, title, resp)
		if err != nil {
			return nil, "", fmt.Errorf("simulation: exportar pdf: %w", err)
		}
		return b, ContentTypePDF, nil
	}
	return nil, "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
}

// solve consulta la caché y cae a Solve. Los errores de caché solo se registran.
func (uc *SimulationUseCase) solve(ctx context.Context, in profitability.CostInputs) profitability.Result {
	if res, ok, err := uc.cache.Get(ctx, in); err != nil {
		uc.log.Warn().Err(err).Msg("caché de simulaciones: lectura")
	} else if ok {
		return res
	}

	res := profitability.Solve(in)
	if err := uc.cache.Set(ctx, in, res); err != nil {
		uc.log.Warn().Err(err).Msg("caché de simulaciones: escritura")
	}
	return res
}
