package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scenario configuración de costos guardada por una empresa para un producto.
// Los porcentajes se guardan en escala 0..100.
type Scenario struct {
	ID                           string
	CompanyID                    string
	Name                         string // único por empresa
	ProductSKU                   string
	ProductCost                  decimal.Decimal
	OperationalCostFixed         decimal.Decimal
	OperationalCostPercent       decimal.Decimal
	ShippingFixedCost            decimal.Decimal
	MarketplaceCommissionPercent decimal.Decimal
	TaxPercent                   decimal.Decimal
	InvoicedSharePercent         *decimal.Decimal // nil = 100%
	TargetMode                   string
	TargetValue                  decimal.Decimal
	CurrentRoas                  *decimal.Decimal
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}
