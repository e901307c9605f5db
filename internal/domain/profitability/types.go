// Package profitability resuelve el precio de venta (PV) para un objetivo de
// rentabilidad y genera la tabla de sensibilidad ROAS 1..30.
//
// Todo el paquete es aritmética pura sobre float64: sin I/O, sin estado global y
// sin errores en el camino de cálculo. Una entrada inviable produce el resultado
// vacío (Price = 0, Rows = []), nunca un error.
package profitability

// TargetMode indica qué variable fija el usuario.
type TargetMode string

const (
	FixedPrice       TargetMode = "FIXED_PRICE"
	FixedNetProfit   TargetMode = "FIXED_NET_PROFIT"
	FixedGrossMargin TargetMode = "FIXED_GROSS_MARGIN"
	FixedNetMargin   TargetMode = "FIXED_NET_MARGIN"
)

// Valid reporta si el modo es uno de los cuatro soportados.
func (m TargetMode) Valid() bool {
	switch m {
	case FixedPrice, FixedNetProfit, FixedGrossMargin, FixedNetMargin:
		return true
	}
	return false
}

// Classification de una fila según el margen neto "solo plataforma".
type Classification string

const (
	Loss      Classification = "LOSS"
	LowMargin Classification = "LOW_MARGIN"
	Healthy   Classification = "HEALTHY"
)

// CostPolicy selecciona la rama de costos que leen los marcadores.
type CostPolicy string

const (
	PlatformOnly CostPolicy = "PLATFORM_ONLY" // comisión + envío + producto + ads
	FullCost     CostPolicy = "FULL_COST"     // además impuesto y costos operativos
)

const (
	MinRoas = 1
	MaxRoas = 30

	// Umbrales de margen neto (%) usados por la clasificación y los marcadores.
	HealthyNetMargin = 15.0
	MinimumNetMargin = 10.0
)

// CostInputs son los datos de costo de una unidad. Montos en moneda, porcentajes en 0..100.
type CostInputs struct {
	ProductCost                  float64
	OperationalCostFixed         float64
	OperationalCostPercent       float64
	ShippingFixedCost            float64
	MarketplaceCommissionPercent float64
	TaxPercent                   float64
	InvoicedSharePercent         *float64 // nil = 100% facturado
	TargetMode                   TargetMode
	TargetValue                  float64 // moneda o porcentaje según TargetMode
	CurrentRoas                  *float64
}

// Metrics resultado de una rama de costos para un ROAS dado.
type Metrics struct {
	Profit      float64
	GrossMargin float64 // % sobre PV
	NetMargin   float64 // % sobre la base neta de la rama
}

// RoasRow una fila de la tabla de sensibilidad. Ambas ramas se calculan siempre.
type RoasRow struct {
	Roas           int
	AdsSpend       float64
	PlatformOnly   Metrics
	FullCost       Metrics
	Classification Classification
}

// Metrics devuelve la rama pedida por la política.
func (r RoasRow) Metrics(policy CostPolicy) Metrics {
	if policy == FullCost {
		return r.FullCost
	}
	return r.PlatformOnly
}

// Point es una fila evaluada en un ROAS no entero (ROAS observado).
type Point struct {
	Roas           float64
	AdsSpend       float64
	PlatformOnly   Metrics
	FullCost       Metrics
	Classification Classification
}

// Markers ROAS mínimos que cumplen cada condición; nil si ninguno en 1..30 la cumple.
type Markers struct {
	BreakEvenRoas *int
	MinimumRoas   *int
	IdealRoas     *int
}

// PriceSolution precio resuelto y estado del solver iterativo.
// Converged es siempre true en los modos de forma cerrada.
type PriceSolution struct {
	Price      float64
	Converged  bool
	Iterations int
}

// Result salida de Solve. Rows tiene 30 filas o está vacío.
type Result struct {
	Price      float64
	Converged  bool
	Iterations int
	Rows       []RoasRow
}

// Feasible indica si existe un PV válido.
func (r Result) Feasible() bool {
	return r.Price > 0 && len(r.Rows) > 0
}
