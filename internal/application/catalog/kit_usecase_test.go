package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rentabilidad-api/internal/application/catalog"
	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/application/simulation"
	"github.com/jhoicas/Rentabilidad-api/internal/domain"
)

type fakeKitExporter struct {
	title    string
	variants []dto.KitVariantDTO
	err      error
}

func (f *fakeKitExporter) ExportKitVariants(title string, variants []dto.KitVariantDTO) ([]byte, error) {
	f.title = title
	f.variants = variants
	if f.err != nil {
		return nil, f.err
	}
	return []byte("PK"), nil
}

func newKitUC(exp catalog.KitExporter) *catalog.KitUseCase {
	sim := simulation.NewSimulationUseCase(nil, nil, nil, nil)
	return catalog.NewKitUseCase(sim, exp, nil)
}

func camiseta() dto.KitRequest {
	return dto.KitRequest{
		BaseSKU: "CAM",
		Title:   "Camiseta",
		Attributes: []dto.KitAttributeDTO{
			{Name: "Color", Values: []dto.KitOptionDTO{{Label: "Rojo"}, {Label: "Negro", Code: "BK"}}},
		},
		KitSizes: []int{1, 2},
	}
}

func TestKitGenerate(t *testing.T) {
	uc := newKitUC(&fakeKitExporter{})

	out, err := uc.Generate(camiseta())
	require.NoError(t, err)
	assert.Equal(t, 4, out.Total)
	require.Len(t, out.Variants, 4)
	assert.Equal(t, "CAM-ROJ", out.Variants[0].SKU)
	assert.Equal(t, "CAM-ROJ-K2", out.Variants[1].SKU)
	assert.Equal(t, "CAM-BK", out.Variants[2].SKU)
	assert.Equal(t, "Camiseta Color: Negro - Kit x2", out.Variants[3].Name)
	assert.Equal(t, "BK", out.Variants[3].Options[0].Code)

	_, err = uc.Generate(dto.KitRequest{Title: "sin sku"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestKitExport(t *testing.T) {
	exp := &fakeKitExporter{}
	uc := newKitUC(exp)

	b, err := uc.Export(camiseta())
	require.NoError(t, err)
	assert.Equal(t, "PK", string(b))
	assert.Equal(t, "Camiseta", exp.title)
	assert.Len(t, exp.variants, 4)

	failing := newKitUC(&fakeKitExporter{err: errors.New("boom")})
	_, err = failing.Export(camiseta())
	assert.Error(t, err)
}

func TestKitSimulate_EscalaCostosUnitarios(t *testing.T) {
	uc := newKitUC(&fakeKitExporter{})

	unit := dto.SimulationRequest{
		ProductCost:                  decimal.NewFromInt(20),
		OperationalCostFixed:         decimal.NewFromInt(2),
		ShippingFixedCost:            decimal.NewFromInt(10),
		MarketplaceCommissionPercent: decimal.NewFromInt(20),
		TaxPercent:                   decimal.NewFromInt(4),
		TargetMode:                   "fixed_net_profit",
		TargetValue:                  decimal.NewFromInt(14),
	}

	// kit x3: (60 + 6 + 10 + 14) / (1 - 0.24) = 90 / 0.76
	resp, err := uc.Simulate(context.Background(), dto.KitSimulationRequest{KitSize: 3, Unit: unit})
	require.NoError(t, err)
	assert.True(t, resp.Inputs.ProductCost.Equal(decimal.NewFromInt(60)))
	assert.True(t, resp.Inputs.ShippingFixedCost.Equal(decimal.NewFromInt(10)))
	assert.True(t, resp.Price.Equal(decimal.RequireFromString("118.42")), resp.Price.String())

	_, err = uc.Simulate(context.Background(), dto.KitSimulationRequest{KitSize: 0, Unit: unit})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	unit.ProductCost = decimal.NewFromInt(-1)
	_, err = uc.Simulate(context.Background(), dto.KitSimulationRequest{KitSize: 2, Unit: unit})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
