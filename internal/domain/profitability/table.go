package profitability

// BuildTable genera las 30 filas ROAS 1..30 para el precio dado.
// Precio <= 0 o no finito devuelve una tabla vacía.
func BuildTable(price float64, in CostInputs) []RoasRow {
	if !finite(price) || price <= 0 {
		return []RoasRow{}
	}
	rows := make([]RoasRow, 0, MaxRoas-MinRoas+1)
	for roas := MinRoas; roas <= MaxRoas; roas++ {
		p := EvaluateAt(price, in, float64(roas))
		rows = append(rows, RoasRow{
			Roas:           roas,
			AdsSpend:       p.AdsSpend,
			PlatformOnly:   p.PlatformOnly,
			FullCost:       p.FullCost,
			Classification: p.Classification,
		})
	}
	return rows
}

// EvaluateAt calcula ambas ramas para un ROAS arbitrario (> 0).
// ROAS <= 0 se trata como sin inversión en ads.
func EvaluateAt(price float64, in CostInputs, roas float64) Point {
	r := ratesOf(in)

	ads := 0.0
	if roas > 0 {
		ads = price / roas
	}

	commissionAmt := price * r.commission
	taxAmt := price * r.effectiveTax
	opAmt := price * r.opPercent

	// Solo plataforma: comisión, envío, producto y ads.
	basePlatform := price - commissionAmt - in.ShippingFixedCost
	profitPlatform := basePlatform - in.ProductCost - ads
	platform := Metrics{
		Profit:      profitPlatform,
		GrossMargin: ratio(profitPlatform, price),
		NetMargin:   ratio(profitPlatform, basePlatform-ads),
	}

	// Costo completo: además impuesto y costos operativos.
	baseFull := price - commissionAmt - in.ShippingFixedCost - taxAmt - in.OperationalCostFixed - opAmt
	profitBaseline := baseFull - in.ProductCost
	profitFull := profitBaseline - ads
	full := Metrics{
		Profit:      profitFull,
		GrossMargin: ratio(profitFull, price),
		NetMargin:   ratio(profitFull, baseFull-ads),
	}

	return Point{
		Roas:           roas,
		AdsSpend:       ads,
		PlatformOnly:   platform,
		FullCost:       full,
		Classification: classify(platform),
	}
}

func classify(m Metrics) Classification {
	switch {
	case m.Profit < 0:
		return Loss
	case m.NetMargin >= HealthyNetMargin:
		return Healthy
	default:
		return LowMargin
	}
}

// ComputeMarkers busca el menor ROAS de equilibrio, mínimo (neto >= 10%) e ideal (neto >= 15%)
// sobre la rama seleccionada.
func ComputeMarkers(rows []RoasRow, policy CostPolicy) Markers {
	var mk Markers
	for _, row := range rows {
		m := row.Metrics(policy)
		if mk.BreakEvenRoas == nil && m.Profit >= 0 {
			mk.BreakEvenRoas = intPtr(row.Roas)
		}
		if mk.MinimumRoas == nil && m.NetMargin >= MinimumNetMargin {
			mk.MinimumRoas = intPtr(row.Roas)
		}
		if mk.IdealRoas == nil && m.NetMargin >= HealthyNetMargin {
			mk.IdealRoas = intPtr(row.Roas)
		}
	}
	return mk
}

func intPtr(v int) *int { return &v }
