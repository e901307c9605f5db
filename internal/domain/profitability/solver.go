package profitability

import "math"

const (
	netMarginMaxIterations = 120
	netMarginTolerance     = 0.0001
	netMarginDamping       = 0.7
	netMarginFloorFactor   = 1.05
)

// SolvePrice calcula el PV que satisface TargetMode/TargetValue.
// Price <= 0 significa objetivo inviable.
func SolvePrice(in CostInputs) PriceSolution {
	r := ratesOf(in)

	switch in.TargetMode {
	case FixedPrice:
		return closedForm(in.TargetValue)

	case FixedNetProfit:
		// PV = (fijos + lucro) / (1 - (comisión + impuesto + op%))
		den := 1 - r.variableShare()
		if den <= 0 {
			return PriceSolution{Converged: true}
		}
		return closedForm((r.fixedCosts + in.TargetValue) / den)

	case FixedGrossMargin:
		// margen bruto = lucro / PV  =>  PV = fijos / (1 - (comisión + impuesto + op% + m))
		den := 1 - (r.variableShare() + in.TargetValue/100)
		if den <= 0 {
			return PriceSolution{Converged: true}
		}
		return closedForm(r.fixedCosts / den)

	case FixedNetMargin:
		return solveNetMargin(in, r)
	}
	return PriceSolution{Converged: true}
}

func closedForm(pv float64) PriceSolution {
	if !finite(pv) || pv <= 0 {
		return PriceSolution{Converged: true}
	}
	return PriceSolution{Price: pv, Converged: true}
}

// solveNetMargin itera con corrección proporcional amortiguada. El margen neto se
// mide sobre la base PV - comisión - envío, que depende de PV, por eso no hay forma cerrada.
// Al agotar las iteraciones devuelve el último PV con Converged = false.
func solveNetMargin(in CostInputs, r rates) PriceSolution {
	target := in.TargetValue / 100
	floor := netMarginFloorFactor * r.fixedCosts
	pv := math.Max(2*r.fixedCosts, 1)

	for i := 1; i <= netMarginMaxIterations; i++ {
		base := pv - pv*r.commission - in.ShippingFixedCost
		if base <= 0 {
			pv++
			continue
		}
		profit := base - in.ProductCost - in.OperationalCostFixed - pv*r.effectiveTax - pv*r.opPercent
		diff := profit/base - target
		if math.Abs(diff) < netMarginTolerance {
			return PriceSolution{Price: pv, Converged: true, Iterations: i}
		}

		pv -= diff * pv * netMarginDamping
		if !finite(pv) || pv <= 0 {
			pv = math.Max(floor, 1)
		}
		if pv < floor {
			pv = floor
		}
	}

	if !finite(pv) || pv <= 0 {
		return PriceSolution{Iterations: netMarginMaxIterations}
	}
	return PriceSolution{Price: pv, Iterations: netMarginMaxIterations}
}
