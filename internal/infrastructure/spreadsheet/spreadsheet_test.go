package spreadsheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/domain"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/profitability"
	"github.com/jhoicas/Rentabilidad-api/internal/infrastructure/spreadsheet"
)

var raw = excelize.Options{RawCellValue: true}

func intPtr(v int) *int { return &v }

func sampleResponse() *dto.SimulationResponse {
	share := decimal.NewFromInt(50)
	rows := make([]dto.RoasRowDTO, 0, 30)
	for r := 1; r <= 30; r++ {
		class := "HEALTHY"
		if r < 3 {
			class = "LOSS"
		}
		rows = append(rows, dto.RoasRowDTO{
			Roas:           r,
			AdsSpend:       decimal.NewFromInt(150).Div(decimal.NewFromInt(int64(r))).Round(2),
			PlatformOnly:   dto.MetricsDTO{Profit: decimal.NewFromInt(int64(r))},
			Classification: class,
		})
	}
	return &dto.SimulationResponse{
		Inputs: dto.SimulationRequest{
			ProductCost:          decimal.NewFromInt(50),
			TargetMode:           "FIXED_PRICE",
			TargetValue:          decimal.NewFromInt(150),
			InvoicedSharePercent: &share,
		},
		Price:     decimal.NewFromInt(150),
		Feasible:  true,
		Converged: true,
		Rows:      rows,
		Markers: dto.MarkersByPolicyDTO{
			PlatformOnly: dto.MarkersDTO{BreakEvenRoas: intPtr(3), MinimumRoas: intPtr(3), IdealRoas: intPtr(3)},
		},
		Current: &dto.CurrentPointDTO{Roas: decimal.NewFromFloat(7.5), Classification: "HEALTHY"},
	}
}

func open(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

// findRow busca la fila cuya primera columna es label.
func findRow(t *testing.T, f *excelize.File, sheet, label string) []string {
	t.Helper()
	rows, err := f.GetRows(sheet, raw)
	require.NoError(t, err)
	for _, r := range rows {
		if len(r) > 0 && r[0] == label {
			return r
		}
	}
	t.Fatalf("fila %q no encontrada en %s", label, sheet)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestExportSimulation(t *testing.T) {
	b, err := spreadsheet.NewExporter().ExportSimulation(sampleResponse())
	require.NoError(t, err)
	f := open(t, b)

	assert.Equal(t, []string{spreadsheet.SheetSummary, spreadsheet.SheetTable}, f.GetSheetList())

	assert.Equal(t, "FIXED_PRICE", findRow(t, f, spreadsheet.SheetSummary, "Modo objetivo")[1])
	assert.Equal(t, "150", findRow(t, f, spreadsheet.SheetSummary, "Precio de venta")[1])
	assert.Equal(t, "50", findRow(t, f, spreadsheet.SheetSummary, "% facturado")[1])
	assert.Equal(t, "Sí", findRow(t, f, spreadsheet.SheetSummary, "Factible")[1])

	eq := findRow(t, f, spreadsheet.SheetSummary, "ROAS de equilibrio")
	assert.Equal(t, "3", eq[1])
	assert.Equal(t, "∞", eq[2])

	cur := findRow(t, f, spreadsheet.SheetSummary, "7.5")
	assert.Equal(t, "HEALTHY", cur[4])

	rows, err := f.GetRows(spreadsheet.SheetTable, raw)
	require.NoError(t, err)
	require.Len(t, rows, 31)
	assert.Equal(t, "ROAS", rows[0][0])
	assert.Equal(t, "10", rows[10][0])
	assert.Equal(t, "15", rows[10][1])
	assert.Equal(t, "LOSS", rows[1][8])
	assert.Equal(t, "HEALTHY", rows[30][8])
}

func TestExportSimulation_SinSolucion(t *testing.T) {
	resp := &dto.SimulationResponse{Inputs: dto.SimulationRequest{TargetMode: "FIXED_NET_PROFIT"}, Rows: []dto.RoasRowDTO{}}
	b, err := spreadsheet.NewExporter().ExportSimulation(resp)
	require.NoError(t, err)
	f := open(t, b)

	assert.Equal(t, "No", findRow(t, f, spreadsheet.SheetSummary, "Factible")[1])
	assert.Equal(t, "∞", findRow(t, f, spreadsheet.SheetSummary, "ROAS ideal (neto ≥ 15%)")[1])
	rows, err := f.GetRows(spreadsheet.SheetTable)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExportKitVariants(t *testing.T) {
	variants := []dto.KitVariantDTO{
		{SKU: "CAM-ROJ-M", Name: "Camiseta Color: Rojo / Talla: M", KitSize: 1, Options: []dto.KitSelectionDTO{
			{Attribute: "Color", Value: "Rojo"}, {Attribute: "Talla", Value: "M"},
		}},
		{SKU: "CAM-ROJ-M-K2", Name: "Camiseta Color: Rojo / Talla: M - Kit x2", KitSize: 2, Options: []dto.KitSelectionDTO{
			{Attribute: "Color", Value: "Rojo"}, {Attribute: "Talla", Value: "M"},
		}},
	}
	b, err := spreadsheet.NewExporter().ExportKitVariants("Camiseta", variants)
	require.NoError(t, err)
	f := open(t, b)

	rows, err := f.GetRows(spreadsheet.SheetKits, raw)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"SKU", "Nombre", "Unidades por kit", "Color", "Talla"}, rows[0])
	assert.Equal(t, []string{"CAM-ROJ-M-K2", "Camiseta Color: Rojo / Talla: M - Kit x2", "2", "Rojo", "M"}, rows[2])

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Camiseta", props.Title)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación
// ──────────────────────────────────────────────────────────────────────────────

func buildXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseScenarioRows_XLSXConAliasEnEspanol(t *testing.T) {
	data := buildXLSX(t, [][]any{
		{"Nombre", "SKU", "Costo del producto", "Envío", "Comisión %", "Impuesto (%)", "% Facturado", "Modo", "Objetivo", "ROAS actual"},
		{"Camiseta ML", "CAM-01", 50, 10, 20, 4, 50, "margen neto", 20, 8},
		{},
		{"", "", "1.234,50", "", "", "", "", "FIXED_PRICE", "2500", ""},
	})

	rows, err := spreadsheet.ParseScenarioRows("escenarios.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 2, first.Row)
	assert.Equal(t, "Camiseta ML", first.Name)
	assert.Equal(t, "CAM-01", first.ProductSKU)
	assert.Equal(t, string(profitability.FixedNetMargin), first.Request.TargetMode)
	assert.True(t, first.Request.ShippingFixedCost.Equal(decimal.NewFromInt(10)))
	assert.True(t, first.Request.MarketplaceCommissionPercent.Equal(decimal.NewFromInt(20)))
	require.NotNil(t, first.Request.InvoicedSharePercent)
	assert.True(t, first.Request.InvoicedSharePercent.Equal(decimal.NewFromInt(50)))
	require.NotNil(t, first.Request.CurrentRoas)

	second := rows[1]
	assert.Equal(t, 4, second.Row)
	assert.Equal(t, "Fila 4", second.Name)
	assert.True(t, second.Request.ProductCost.Equal(decimal.RequireFromString("1234.5")))
	assert.Nil(t, second.Request.InvoicedSharePercent)
	assert.Nil(t, second.Request.CurrentRoas)
}

func TestParseScenarioRows_CSVPortugues(t *testing.T) {
	csv := "Nome;Custo do produto;Frete;Comissão;Imposto;Modo objetivo;Valor objetivo\n" +
		"Kit;12,5;8;16;6;preco fixo;99,90\n"

	rows, err := spreadsheet.ParseScenarioRows("cenarios.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Request.ProductCost.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, rows[0].Request.TargetValue.Equal(decimal.RequireFromString("99.9")))
	assert.Equal(t, "FIXED_PRICE", rows[0].Request.TargetMode)

	// Montos en reales con prefijo de moneda.
	reais := "nome;custo produto;modo;valor objetivo\nA;R$ 50,00;PRECO_FIXO;R$ 1.150,00\n"
	rows, err = spreadsheet.ParseScenarioRows("cenarios.csv", strings.NewReader(reais))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Request.ProductCost.Equal(decimal.RequireFromString("50")))
	assert.True(t, rows[0].Request.TargetValue.Equal(decimal.RequireFromString("1150")))
	assert.Equal(t, "FIXED_PRICE", rows[0].Request.TargetMode)
}

func TestParseScenarioRows_PrefijosDeMoneda(t *testing.T) {
	cases := map[string]string{
		"€ 9,90":        "9.9",
		"US$ 1,234.50":  "1234.5",
		"COP 45.000,00": "45000",
		"brl 12,5":      "12.5",
		"$30":           "30",
		"15 %":          "15",
	}
	for raw, want := range cases {
		csv := "costo,modo,objetivo\n\"" + raw + "\",FIXED_PRICE,10\n"
		rows, err := spreadsheet.ParseScenarioRows("x.csv", strings.NewReader(csv))
		require.NoError(t, err, raw)
		assert.True(t, rows[0].Request.ProductCost.Equal(decimal.RequireFromString(want)), "%s => %s", raw, rows[0].Request.ProductCost)
	}
}

func TestParseScenarioRows_SinExtensionDetectaCSV(t *testing.T) {
	csv := "product_cost,target_mode,target_value\n50,FIXED_NET_PROFIT,30\n"
	rows, err := spreadsheet.ParseScenarioRows("upload", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "FIXED_NET_PROFIT", rows[0].Request.TargetMode)
}

func TestParseScenarioRows_Errores(t *testing.T) {
	_, err := spreadsheet.ParseScenarioRows("x.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = spreadsheet.ParseScenarioRows("x.csv", strings.NewReader("nombre,envio\nA,10\n"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "product_cost")

	_, err = spreadsheet.ParseScenarioRows("x.csv", strings.NewReader("costo,modo,objetivo\nabc,FIXED_PRICE,10\n"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "fila 2")

	_, err = spreadsheet.ParseScenarioRows("x.csv", strings.NewReader("costo,modo,objetivo\n,,\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseTargetMode(t *testing.T) {
	cases := map[string]profitability.TargetMode{
		"FIXED_PRICE":      profitability.FixedPrice,
		"fixed net margin": profitability.FixedNetMargin,
		"Margen Bruto":     profitability.FixedGrossMargin,
		"lucro líquido":    profitability.FixedNetProfit,
		"otro":             "OTRO",
	}
	for in, want := range cases {
		assert.Equal(t, want, spreadsheet.ParseTargetMode(in), in)
	}
}

func TestExportBatch(t *testing.T) {
	ok := sampleResponse()
	resp := &dto.BatchSimulationResponse{
		Items: []dto.BatchItemDTO{
			{Row: 2, Name: "Camiseta", ProductSKU: "CAM-01", Result: ok},
			{Row: 3, Name: "Mala", Error: "valor inválido: tax_percent"},
		},
		Total:  2,
		Failed: 1,
	}
	b, err := spreadsheet.NewExporter().ExportBatch(resp)
	require.NoError(t, err)
	f := open(t, b)

	rows, err := f.GetRows(spreadsheet.SheetBatch, raw)
	require.NoError(t, err)
	assert.Equal(t, "Fila", rows[0][0])
	assert.Equal(t, []string{"2", "Camiseta", "CAM-01", "FIXED_PRICE", "150", "150", "Sí", "Sí", "0", "3", "3", "3", "∞", "∞", "∞"}, rows[1])
	assert.Equal(t, "valor inválido: tax_percent", rows[2][15])
	assert.Equal(t, []string{"Con error", "1"}, findRow(t, f, spreadsheet.SheetBatch, "Con error"))
}
