package spreadsheet

import (
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Rentabilidad-api/internal/application/catalog"
	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/application/simulation"
)

const (
	SheetSummary = "Resumen"
	SheetTable   = "Tabla ROAS"
	SheetKits    = "Variantes"
)

var (
	_ simulation.WorkbookExporter = (*Exporter)(nil)
	_ catalog.KitExporter         = (*Exporter)(nil)
)

var tableHeader = []any{
	"ROAS",
	"Inversión ads",
	"Lucro plataforma",
	"Margen bruto plataforma %",
	"Margen neto plataforma %",
	"Lucro costo total",
	"Margen bruto costo total %",
	"Margen neto costo total %",
	"Clasificación",
}

// Exporter genera las planillas de simulación y de variantes.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportSimulation arma un libro con la hoja de resumen y la tabla ROAS 1..30.
func (e *Exporter) ExportSimulation(resp *dto.SimulationResponse) ([]byte, error) {
	f := excelize.NewFile()
	err := f.SetSheetName(f.GetSheetName(0), SheetSummary)
	if err == nil {
		_, err = f.NewSheet(SheetTable)
	}
	if err == nil {
		err = f.SetDocProps(&excelize.DocProperties{Title: "Simulación de rentabilidad", Creator: "rentabilidad-api"})
	}
	if err == nil {
		err = writeSummary(newSheetWriter(f, SheetSummary), resp)
	}
	if err == nil {
		err = writeTable(newSheetWriter(f, SheetTable), resp.Rows)
	}
	return finish(f, err)
}

func writeSummary(w *sheetWriter, resp *dto.SimulationResponse) error {
	in := resp.Inputs
	w.cell(1, 1, "Simulación de rentabilidad")
	w.style("title", 1, 1, 1, 1)

	invoiced := decimal.NewFromInt(100)
	if in.InvoicedSharePercent != nil {
		invoiced = *in.InvoicedSharePercent
	}
	amounts := []struct {
		label string
		value decimal.Decimal
	}{
		{"Valor objetivo", in.TargetValue},
		{"Costo del producto", in.ProductCost},
		{"Costo operativo fijo", in.OperationalCostFixed},
		{"Costo operativo %", in.OperationalCostPercent},
		{"Envío", in.ShippingFixedCost},
		{"Comisión marketplace %", in.MarketplaceCommissionPercent},
		{"Impuesto %", in.TaxPercent},
		{"% facturado", invoiced},
		{"Precio de venta", resp.Price},
	}

	row := 3
	w.row(row, "Modo objetivo", in.TargetMode)
	row++
	for _, a := range amounts {
		w.row(row, a.label, a.value.InexactFloat64())
		w.style("amount", 2, row, 2, row)
		row++
	}
	w.style("bold", 1, row-1, 2, row-1)
	w.row(row, "Factible", yesNo(resp.Feasible))
	w.row(row+1, "Convergió", yesNo(resp.Converged))
	w.row(row+2, "Iteraciones", resp.Iterations)
	row += 4

	w.row(row, "Marcador", "Solo plataforma", "Costo total")
	w.style("header", 1, row, 3, row)
	markers := []struct {
		label    string
		platform *int
		full     *int
	}{
		{"ROAS de equilibrio", resp.Markers.PlatformOnly.BreakEvenRoas, resp.Markers.FullCost.BreakEvenRoas},
		{"ROAS mínimo (neto ≥ 10%)", resp.Markers.PlatformOnly.MinimumRoas, resp.Markers.FullCost.MinimumRoas},
		{"ROAS ideal (neto ≥ 15%)", resp.Markers.PlatformOnly.IdealRoas, resp.Markers.FullCost.IdealRoas},
	}
	for _, m := range markers {
		row++
		w.row(row, m.label, markerValue(m.platform), markerValue(m.full))
	}

	if c := resp.Current; c != nil {
		row += 2
		w.row(row, "ROAS actual", "Inversión ads", "Lucro plataforma", "Lucro costo total", "Clasificación")
		w.style("header", 1, row, 5, row)
		row++
		w.row(row,
			c.Roas.InexactFloat64(),
			c.AdsSpend.InexactFloat64(),
			c.PlatformOnly.Profit.InexactFloat64(),
			c.FullCost.Profit.InexactFloat64(),
			c.Classification,
		)
		w.style(c.Classification, 1, row, 5, row)
	}
	w.widths(28, 1, 1)
	w.widths(18, 2, 5)
	return w.err
}

func writeTable(w *sheetWriter, rows []dto.RoasRowDTO) error {
	w.row(1, tableHeader...)
	w.style("header", 1, 1, len(tableHeader), 1)
	for i, r := range rows {
		n := i + 2
		w.row(n,
			r.Roas,
			r.AdsSpend.InexactFloat64(),
			r.PlatformOnly.Profit.InexactFloat64(),
			r.PlatformOnly.GrossMargin.InexactFloat64(),
			r.PlatformOnly.NetMargin.InexactFloat64(),
			r.FullCost.Profit.InexactFloat64(),
			r.FullCost.GrossMargin.InexactFloat64(),
			r.FullCost.NetMargin.InexactFloat64(),
			r.Classification,
		)
		w.style(r.Classification, 2, n, len(tableHeader), n)
	}
	w.widths(16, 1, len(tableHeader))
	w.freezeHeader()
	return w.err
}

func markerValue(v *int) any {
	if v == nil {
		return "∞"
	}
	return *v
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
