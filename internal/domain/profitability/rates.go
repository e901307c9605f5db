package profitability

import "math"

// rates porcentajes normalizados a fracción y costos fijos agregados.
type rates struct {
	commission   float64
	opPercent    float64
	effectiveTax float64
	fixedCosts   float64
}

func ratesOf(in CostInputs) rates {
	invoiced := 100.0
	if in.InvoicedSharePercent != nil {
		invoiced = *in.InvoicedSharePercent
	}
	return rates{
		commission:   in.MarketplaceCommissionPercent / 100,
		opPercent:    in.OperationalCostPercent / 100,
		effectiveTax: in.TaxPercent / 100 * invoiced / 100,
		fixedCosts:   in.ProductCost + in.OperationalCostFixed + in.ShippingFixedCost,
	}
}

// variableShare suma de costos proporcionales al precio.
func (r rates) variableShare() float64 {
	return r.commission + r.effectiveTax + r.opPercent
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ratio devuelve num/den*100, o 0 si den <= 0 o el resultado no es finito.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	v := num / den * 100
	if !finite(v) {
		return 0
	}
	return v
}
