// Package catalog genera variantes de catálogo (SKU, nombre, kits) y simula su precio.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/application/simulation"
	"github.com/jhoicas/Rentabilidad-api/internal/domain"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/kit"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/profitability"
	"github.com/jhoicas/Rentabilidad-api/pkg/logger"
)

// KitExporter genera la planilla de variantes para carga masiva en el marketplace.
type KitExporter interface {
	ExportKitVariants(title string, variants []dto.KitVariantDTO) ([]byte, error)
}

// KitUseCase casos de uso del generador de kits.
type KitUseCase struct {
	simulator *simulation.SimulationUseCase
	exporter  KitExporter
	log       *logger.Logger
}

// NewKitUseCase construye el caso de uso.
func NewKitUseCase(simulator *simulation.SimulationUseCase, exporter KitExporter, log *logger.Logger) *KitUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &KitUseCase{simulator: simulator, exporter: exporter, log: log}
}

// Generate arma las variantes de la composición pedida.
func (uc *KitUseCase) Generate(req dto.KitRequest) (*dto.KitResponse, error) {
	variants, err := kit.Generate(toComposition(req))
	if err != nil {
		return nil, err
	}
	out := &dto.KitResponse{Variants: make([]dto.KitVariantDTO, 0, len(variants)), Total: len(variants)}
	for _, v := range variants {
		out.Variants = append(out.Variants, toVariantDTO(v))
	}
	uc.log.Debug().Str("base_sku", req.BaseSKU).Int("variants", out.Total).Msg("kits generados")
	return out, nil
}

// Export genera las variantes y las devuelve como XLSX.
func (uc *KitUseCase) Export(req dto.KitRequest) ([]byte, error) {
	resp, err := uc.Generate(req)
	if err != nil {
		return nil, err
	}
	b, err := uc.exporter.ExportKitVariants(req.Title, resp.Variants)
	if err != nil {
		return nil, fmt.Errorf("catalog: exportar kits: %w", err)
	}
	return b, nil
}

// Simulate resuelve el precio de un kit de n unidades a partir de los costos unitarios.
func (uc *KitUseCase) Simulate(ctx context.Context, req dto.KitSimulationRequest) (*dto.SimulationResponse, error) {
	if req.KitSize < 1 {
		return nil, fmt.Errorf("%w: kit_size debe ser >= 1", domain.ErrInvalidInput)
	}
	req.Unit.TargetMode = strings.ToUpper(strings.TrimSpace(req.Unit.TargetMode))
	unit := simulation.ToCostInputs(req.Unit)
	if err := profitability.Validate(unit); err != nil {
		return nil, err
	}
	scaled := simulation.FromCostInputs(kit.KitInputs(unit, req.KitSize))
	return uc.simulator.Simulate(ctx, scaled)
}

func toComposition(req dto.KitRequest) kit.Composition {
	attrs := make([]kit.Attribute, 0, len(req.Attributes))
	for _, a := range req.Attributes {
		values := make([]kit.Option, 0, len(a.Values))
		for _, v := range a.Values {
			values = append(values, kit.Option{Label: v.Label, Code: v.Code})
		}
		attrs = append(attrs, kit.Attribute{Name: a.Name, Values: values})
	}
	return kit.Composition{
		BaseSKU:    req.BaseSKU,
		Title:      req.Title,
		Attributes: attrs,
		KitSizes:   req.KitSizes,
	}
}

func toVariantDTO(v kit.Variant) dto.KitVariantDTO {
	opts := make([]dto.KitSelectionDTO, 0, len(v.Options))
	for _, o := range v.Options {
		opts = append(opts, dto.KitSelectionDTO{Attribute: o.Attribute, Value: o.Value, Code: o.Code})
	}
	return dto.KitVariantDTO{SKU: v.SKU, Name: v.Name, KitSize: v.KitSize, Options: opts}
}
