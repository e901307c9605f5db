package simulation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/profitability"
)

// ToCostInputs convierte el DTO decimal a las entradas float64 del solver.
func ToCostInputs(req dto.SimulationRequest) profitability.CostInputs {
	return profitability.CostInputs{
		ProductCost:                  req.ProductCost.InexactFloat64(),
		OperationalCostFixed:         req.OperationalCostFixed.InexactFloat64(),
		OperationalCostPercent:       req.OperationalCostPercent.InexactFloat64(),
		ShippingFixedCost:            req.ShippingFixedCost.InexactFloat64(),
		MarketplaceCommissionPercent: req.MarketplaceCommissionPercent.InexactFloat64(),
		TaxPercent:                   req.TaxPercent.InexactFloat64(),
		InvoicedSharePercent:         floatPtr(req.InvoicedSharePercent),
		TargetMode:                   profitability.TargetMode(req.TargetMode),
		TargetValue:                  req.TargetValue.InexactFloat64(),
		CurrentRoas:                  floatPtr(req.CurrentRoas),
	}
}

// FromCostInputs operación inversa, usada cuando el caso de uso transforma las entradas (kits).
func FromCostInputs(in profitability.CostInputs) dto.SimulationRequest {
	return dto.SimulationRequest{
		ProductCost:                  decimal.NewFromFloat(in.ProductCost),
		OperationalCostFixed:         decimal.NewFromFloat(in.OperationalCostFixed),
		OperationalCostPercent:       decimal.NewFromFloat(in.OperationalCostPercent),
		ShippingFixedCost:            decimal.NewFromFloat(in.ShippingFixedCost),
		MarketplaceCommissionPercent: decimal.NewFromFloat(in.MarketplaceCommissionPercent),
		TaxPercent:                   decimal.NewFromFloat(in.TaxPercent),
		InvoicedSharePercent:         decimalPtr(in.InvoicedSharePercent),
		TargetMode:                   string(in.TargetMode),
		TargetValue:                  decimal.NewFromFloat(in.TargetValue),
		CurrentRoas:                  decimalPtr(in.CurrentRoas),
	}
}

// RequestFromScenario arma el DTO de simulación desde un escenario guardado.
func RequestFromScenario(s *entity.Scenario) dto.SimulationRequest {
	return dto.SimulationRequest{
		ProductCost:                  s.ProductCost,
		OperationalCostFixed:         s.OperationalCostFixed,
		OperationalCostPercent:       s.OperationalCostPercent,
		ShippingFixedCost:            s.ShippingFixedCost,
		MarketplaceCommissionPercent: s.MarketplaceCommissionPercent,
		TaxPercent:                   s.TaxPercent,
		InvoicedSharePercent:         s.InvoicedSharePercent,
		TargetMode:                   s.TargetMode,
		TargetValue:                  s.TargetValue,
		CurrentRoas:                  s.CurrentRoas,
	}
}

// toResponse redondea a 2 decimales todos los montos y porcentajes.
func toResponse(req dto.SimulationRequest, in profitability.CostInputs, res profitability.Result) *dto.SimulationResponse {
	rows := make([]dto.RoasRowDTO, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, dto.RoasRowDTO{
			Roas:           r.Roas,
			AdsSpend:       round2(r.AdsSpend),
			PlatformOnly:   toMetrics(r.PlatformOnly),
			FullCost:       toMetrics(r.FullCost),
			Classification: string(r.Classification),
		})
	}

	out := &dto.SimulationResponse{
		Inputs:     req,
		Price:      round2(res.Price),
		Feasible:   res.Feasible(),
		Converged:  res.Converged,
		Iterations: res.Iterations,
		Rows:       rows,
		Markers: dto.MarkersByPolicyDTO{
			PlatformOnly: toMarkers(profitability.ComputeMarkers(res.Rows, profitability.PlatformOnly)),
			FullCost:     toMarkers(profitability.ComputeMarkers(res.Rows, profitability.FullCost)),
		},
	}
	if p := profitability.Current(res, in); p != nil {
		out.Current = &dto.CurrentPointDTO{
			Roas:           round2(p.Roas),
			AdsSpend:       round2(p.AdsSpend),
			PlatformOnly:   toMetrics(p.PlatformOnly),
			FullCost:       toMetrics(p.FullCost),
			Classification: string(p.Classification),
		}
	}
	return out
}

func toMetrics(m profitability.Metrics) dto.MetricsDTO {
	return dto.MetricsDTO{
		Profit:      round2(m.Profit),
		GrossMargin: round2(m.GrossMargin),
		NetMargin:   round2(m.NetMargin),
	}
}

func toMarkers(m profitability.Markers) dto.MarkersDTO {
	return dto.MarkersDTO{
		BreakEvenRoas: m.BreakEvenRoas,
		MinimumRoas:   m.MinimumRoas,
		IdealRoas:     m.IdealRoas,
	}
}

// round2 convierte a decimal con 2 decimales; valores no finitos se reportan como 0.
func round2(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(2)
}

func floatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}

func decimalPtr(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
