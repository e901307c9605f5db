package dto

import "github.com/shopspring/decimal"

// ── Entrada ───────────────────────────────────────────────────────────────────

// SimulationRequest cuerpo de POST /api/profitability/simulate.
// Montos en moneda; porcentajes en escala 0..100.
type SimulationRequest struct {
	ProductCost                  decimal.Decimal  `json:"product_cost"`
	OperationalCostFixed         decimal.Decimal  `json:"operational_cost_fixed"`
	OperationalCostPercent       decimal.Decimal  `json:"operational_cost_percent"`
	ShippingFixedCost            decimal.Decimal  `json:"shipping_fixed_cost"`
	MarketplaceCommissionPercent decimal.Decimal  `json:"marketplace_commission_percent"`
	TaxPercent                   decimal.Decimal  `json:"tax_percent"`
	InvoicedSharePercent         *decimal.Decimal `json:"invoiced_share_percent,omitempty"` // null = 100
	TargetMode                   string           `json:"target_mode"`                      // FIXED_PRICE|FIXED_NET_PROFIT|FIXED_GROSS_MARGIN|FIXED_NET_MARGIN
	TargetValue                  decimal.Decimal  `json:"target_value"`
	CurrentRoas                  *decimal.Decimal `json:"current_roas,omitempty"`
}

// ── Salida ────────────────────────────────────────────────────────────────────

// MetricsDTO lucro y márgenes de una rama de costos.
type MetricsDTO struct {
	Profit      decimal.Decimal `json:"profit"`
	GrossMargin decimal.Decimal `json:"gross_margin"` // % sobre PV
	NetMargin   decimal.Decimal `json:"net_margin"`   // % sobre la base neta
}

// RoasRowDTO una fila de la tabla ROAS 1..30.
type RoasRowDTO struct {
	Roas           int             `json:"roas"`
	AdsSpend       decimal.Decimal `json:"ads_spend"`
	PlatformOnly   MetricsDTO      `json:"platform_only"`
	FullCost       MetricsDTO      `json:"full_cost"`
	Classification string          `json:"classification"` // LOSS|LOW_MARGIN|HEALTHY
}

// CurrentPointDTO métricas en el ROAS observado (puede no ser entero).
type CurrentPointDTO struct {
	Roas           decimal.Decimal `json:"roas"`
	AdsSpend       decimal.Decimal `json:"ads_spend"`
	PlatformOnly   MetricsDTO      `json:"platform_only"`
	FullCost       MetricsDTO      `json:"full_cost"`
	Classification string          `json:"classification"`
}

// MarkersDTO ROAS de equilibrio, mínimo (neto >= 10%) e ideal (neto >= 15%). null = "∞".
type MarkersDTO struct {
	BreakEvenRoas *int `json:"break_even_roas"`
	MinimumRoas   *int `json:"minimum_roas"`
	IdealRoas     *int `json:"ideal_roas"`
}

// MarkersByPolicyDTO marcadores para cada política de costos.
type MarkersByPolicyDTO struct {
	PlatformOnly MarkersDTO `json:"platform_only"`
	FullCost     MarkersDTO `json:"full_cost"`
}

// SimulationResponse respuesta de la simulación. Price = 0 y rows vacío => sin solución.
type SimulationResponse struct {
	Inputs     SimulationRequest  `json:"inputs"`
	Price      decimal.Decimal    `json:"price"`
	Feasible   bool               `json:"feasible"`
	Converged  bool               `json:"converged"`  // false: el solver iterativo agotó las iteraciones
	Iterations int                `json:"iterations"` // 0 en los modos de forma cerrada
	Rows       []RoasRowDTO       `json:"rows"`
	Markers    MarkersByPolicyDTO `json:"markers"`
	Current    *CurrentPointDTO   `json:"current,omitempty"`
}

// ── Importación por lotes ────────────────────────────────────────────────────

// ScenarioImportRow fila leída de una planilla de escenarios.
type ScenarioImportRow struct {
	Row        int // número de fila en la planilla (1 = encabezado)
	Name       string
	ProductSKU string
	Request    SimulationRequest
}

// BatchItemDTO resultado de una fila importada.
type BatchItemDTO struct {
	Row        int                 `json:"row"`
	Name       string              `json:"name,omitempty"`
	ProductSKU string              `json:"product_sku,omitempty"`
	Result     *SimulationResponse `json:"result,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// BatchSimulationResponse respuesta de POST /api/profitability/import.
type BatchSimulationResponse struct {
	Items  []BatchItemDTO `json:"items"`
	Total  int            `json:"total"`
	Failed int            `json:"failed"`
}
