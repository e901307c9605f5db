package profitability

import (
	"fmt"

	"github.com/jhoicas/Rentabilidad-api/internal/domain"
)

type namedValue struct {
	name  string
	value float64
}

// Validate rechaza valores negativos o no finitos en el borde de entrada.
// El solver no la invoca: con entradas degeneradas simplemente devuelve el resultado vacío.
func Validate(in CostInputs) error {
	fields := []namedValue{
		{"product_cost", in.ProductCost},
		{"operational_cost_fixed", in.OperationalCostFixed},
		{"operational_cost_percent", in.OperationalCostPercent},
		{"shipping_fixed_cost", in.ShippingFixedCost},
		{"marketplace_commission_percent", in.MarketplaceCommissionPercent},
		{"tax_percent", in.TaxPercent},
		{"target_value", in.TargetValue},
	}
	if in.InvoicedSharePercent != nil {
		fields = append(fields, namedValue{"invoiced_share_percent", *in.InvoicedSharePercent})
	}
	if in.CurrentRoas != nil {
		fields = append(fields, namedValue{"current_roas", *in.CurrentRoas})
	}

	for _, f := range fields {
		if !finite(f.value) || f.value < 0 {
			return fmt.Errorf("%w: %s debe ser un número no negativo", domain.ErrInvalidInput, f.name)
		}
	}
	if !in.TargetMode.Valid() {
		return fmt.Errorf("%w: target_mode desconocido %q", domain.ErrInvalidInput, in.TargetMode)
	}
	return nil
}
