package simulation_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/application/simulation"
	"github.com/jhoicas/Rentabilidad-api/internal/domain"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/profitability"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memCache struct {
	store  map[profitability.TargetMode]profitability.Result
	gets   int
	sets   int
	getErr error
	setErr error
}

func newMemCache() *memCache {
	return &memCache{store: map[profitability.TargetMode]profitability.Result{}}
}

// La clave es el modo: suficiente para los tests.
func (m *memCache) Get(_ context.Context, in profitability.CostInputs) (profitability.Result, bool, error) {
	m.gets++
	if m.getErr != nil {
		return profitability.Result{}, false, m.getErr
	}
	res, ok := m.store[in.TargetMode]
	return res, ok, nil
}

func (m *memCache) Set(_ context.Context, in profitability.CostInputs, res profitability.Result) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.store[in.TargetMode] = res
	return nil
}

type fakeExporter struct {
	calls int
	err   error
}

func (f *fakeExporter) ExportSimulation(resp *dto.SimulationResponse) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("xlsx:" + resp.Price.String()), nil
}

func (f *fakeExporter) ExportBatch(resp *dto.BatchSimulationResponse) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte(fmt.Sprintf("batch:%d/%d", resp.Failed, resp.Total)), nil
}

type fakeRenderer struct {
	title string
}

func (f *fakeRenderer) RenderSimulation(_ context.Context, title string, _ *dto.SimulationResponse) ([]byte, error) {
	f.title = title
	return []byte("%PDF-fake"), nil
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// baseRequest producto 50, envío 10, comisión 20%, impuesto 4%.
func baseRequest(mode string, target float64) dto.SimulationRequest {
	return dto.SimulationRequest{
		ProductCost:                  dec(50),
		ShippingFixedCost:            dec(10),
		MarketplaceCommissionPercent: dec(20),
		TaxPercent:                   dec(4),
		TargetMode:                   mode,
		TargetValue:                  dec(target),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Simulate
// ──────────────────────────────────────────────────────────────────────────────

func TestSimulate_PrecioFijo(t *testing.T) {
	uc := simulation.NewSimulationUseCase(nil, &fakeExporter{}, &fakeRenderer{}, nil)

	req := baseRequest("FIXED_PRICE", 150)
	req.CurrentRoas = decPtr(10)
	resp, err := uc.Simulate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Price.Equal(dec(150)))
	assert.True(t, resp.Feasible)
	assert.True(t, resp.Converged)
	require.Len(t, resp.Rows, 30)

	row := resp.Rows[9]
	assert.Equal(t, 10, row.Roas)
	assert.True(t, row.AdsSpend.Equal(dec(15)), row.AdsSpend.String())
	assert.True(t, row.PlatformOnly.Profit.Equal(dec(45)))
	assert.True(t, row.PlatformOnly.NetMargin.Equal(dec(47.37)), row.PlatformOnly.NetMargin.String())
	assert.Equal(t, "HEALTHY", row.Classification)

	require.NotNil(t, resp.Markers.PlatformOnly.BreakEvenRoas)
	assert.Equal(t, 3, *resp.Markers.PlatformOnly.BreakEvenRoas)
	assert.Equal(t, 4, *resp.Markers.FullCost.IdealRoas)

	require.NotNil(t, resp.Current)
	assert.True(t, resp.Current.PlatformOnly.Profit.Equal(row.PlatformOnly.Profit))
}

func TestSimulate_ModoEnMinusculas(t *testing.T) {
	uc := simulation.NewSimulationUseCase(nil, &fakeExporter{}, &fakeRenderer{}, nil)

	resp, err := uc.Simulate(context.Background(), baseRequest(" fixed_net_profit ", 30))
	require.NoError(t, err)
	assert.Equal(t, "FIXED_NET_PROFIT", resp.Inputs.TargetMode)
	// 90 / 0.76 = 118.421...
	assert.True(t, resp.Price.Equal(dec(118.42)), resp.Price.String())
}

func TestSimulate_Inviable(t *testing.T) {
	uc := simulation.NewSimulationUseCase(nil, &fakeExporter{}, &fakeRenderer{}, nil)

	req := baseRequest("FIXED_NET_PROFIT", 10)
	req.MarketplaceCommissionPercent = dec(96)
	resp, err := uc.Simulate(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.Feasible)
	assert.True(t, resp.Price.IsZero())
	assert.NotNil(t, resp.Rows)
	assert.Empty(t, resp.Rows)
	assert.Nil(t, resp.Markers.PlatformOnly.BreakEvenRoas)
}

func TestSimulate_SinConvergencia(t *testing.T) {
	uc := simulation.NewSimulationUseCase(nil, &fakeExporter{}, &fakeRenderer{}, nil)

	resp, err := uc.Simulate(context.Background(), baseRequest("FIXED_NET_MARGIN", 99))
	require.NoError(t, err)
	assert.False(t, resp.Converged)
	assert.Equal(t, 120, resp.Iterations)
	assert.Len(t, resp.Rows, 30)
}

func TestSimulate_EntradaInvalida(t *testing.T) {
	uc := simulation.NewSimulationUseCase(nil, &fakeExporter{}, &fakeRenderer{}, nil)

	req := baseRequest("FIXED_PRICE", 100)
	req.ProductCost = dec(-1)
	_, err := uc.Simulate(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Simulate(context.Background(), baseRequest("PRICE", 100))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSimulate_UsaCache(t *testing.T) {
	cache := newMemCache()
	uc := simulation.NewSimulationUseCase(cache, &fakeExporter{}, &fakeRenderer{}, nil)
	ctx := context.Background()

	first, err := uc.Simulate(ctx, baseRequest("FIXED_PRICE", 150))
	require.NoError(t, err)
	second, err := uc.Simulate(ctx, baseRequest("FIXED_PRICE", 150))
	require.NoError(t, err)

	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, first.Rows, second.Rows)
}

func TestSimulate_FalloDeCacheNoInterrumpe(t *testing.T) {
	cache := newMemCache()
	cache.getErr = errors.New("redis caído")
	cache.setErr = errors.New("redis caído")
	uc := simulation.NewSimulationUseCase(cache, &fakeExporter{}, &fakeRenderer{}, nil)

	resp, err := uc.Simulate(context.Background(), baseRequest("FIXED_PRICE", 150))
	require.NoError(t, err)
	assert.Len(t, resp.Rows, 30)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes y exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestSimulateBatch_ErroresPorFila(t *testing.T) {
	uc := simulation.NewSimulationUseCase(nil, &fakeExporter{}, &fakeRenderer{}, nil)

	bad := baseRequest("FIXED_PRICE", 100)
	bad.TaxPercent = dec(-4)
	out := uc.SimulateBatch(context.Background(), []dto.ScenarioImportRow{
		{Row: 2, Name: "ok", ProductSKU: "A-1", Request: baseRequest("FIXED_PRICE", 150)},
		{Row: 3, Name: "malo", Request: bad},
	})

	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Items, 2)
	assert.NotNil(t, out.Items[0].Result)
	assert.Empty(t, out.Items[0].Error)
	assert.Equal(t, "A-1", out.Items[0].ProductSKU)
	assert.Nil(t, out.Items[1].Result)
	assert.Contains(t, out.Items[1].Error, "tax_percent")
	assert.Equal(t, 3, out.Items[1].Row)
}

func TestExportBatch(t *testing.T) {
	xlsx := &fakeExporter{}
	uc := simulation.NewSimulationUseCase(nil, xlsx, &fakeRenderer{}, nil)

	b, out, err := uc.ExportBatch(context.Background(), []dto.ScenarioImportRow{
		{Row: 2, Request: baseRequest("FIXED_PRICE", 150)},
		{Row: 3, Request: baseRequest("X", 150)},
	})
	require.NoError(t, err)
	assert.Equal(t, "batch:1/2", string(b))
	assert.Equal(t, 1, out.Failed)
}

func TestExport_Formatos(t *testing.T) {
	xlsx := &fakeExporter{}
	pdf := &fakeRenderer{}
	uc := simulation.NewSimulationUseCase(nil, xlsx, pdf, nil)
	ctx := context.Background()

	b, ct, err := uc.Export(ctx, baseRequest("FIXED_PRICE", 150), "XLSX", "")
	require.NoError(t, err)
	assert.Equal(t, simulation.ContentTypeXLSX, ct)
	assert.Equal(t, "xlsx:150", string(b))

	b, ct, err = uc.Export(ctx, baseRequest("FIXED_PRICE", 150), "pdf", "Camiseta")
	require.NoError(t, err)
	assert.Equal(t, simulation.ContentTypePDF, ct)
	assert.Equal(t, "%PDF-fake", string(b))
	assert.Equal(t, "Camiseta", pdf.title)

	_, _, err = uc.Export(ctx, baseRequest("FIXED_PRICE", 150), "csv", "")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, _, err = uc.Export(ctx, baseRequest("NOPE", 150), "xlsx", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, xlsx.calls)
}

func TestExport_ErrorDelExportador(t *testing.T) {
	uc := simulation.NewSimulationUseCase(nil, &fakeExporter{err: errors.New("disco lleno")}, &fakeRenderer{}, nil)
	_, _, err := uc.Export(context.Background(), baseRequest("FIXED_PRICE", 150), "xlsx", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disco lleno")
}
