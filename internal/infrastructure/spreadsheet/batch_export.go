package spreadsheet

import (
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
)

// SheetBatch hoja del resumen por lotes.
const SheetBatch = "Lote"

var batchHeader = []any{
	"Fila", "Nombre", "SKU", "Modo", "Objetivo", "Precio de venta", "Factible", "Convergió", "Iteraciones",
	"Equilibrio plataforma", "Mínimo plataforma", "Ideal plataforma",
	"Equilibrio costo total", "Mínimo costo total", "Ideal costo total",
	"Error",
}

// ExportBatch resume un lote de simulaciones: una fila por escenario importado.
func (e *Exporter) ExportBatch(resp *dto.BatchSimulationResponse) ([]byte, error) {
	f := excelize.NewFile()
	err := f.SetSheetName(f.GetSheetName(0), SheetBatch)
	if err == nil {
		err = writeBatch(newSheetWriter(f, SheetBatch), resp)
	}
	return finish(f, err)
}

func writeBatch(w *sheetWriter, resp *dto.BatchSimulationResponse) error {
	w.row(1, batchHeader...)
	w.style("header", 1, 1, len(batchHeader), 1)

	for i, item := range resp.Items {
		n := i + 2
		w.row(n, item.Row, item.Name, item.ProductSKU)
		if item.Error != "" {
			w.cell(len(batchHeader), n, item.Error)
			w.style("LOSS", 1, n, len(batchHeader), n)
			continue
		}
		r := item.Result
		mk := r.Markers
		w.cell(4, n, r.Inputs.TargetMode)
		w.cell(5, n, r.Inputs.TargetValue.InexactFloat64())
		w.cell(6, n, r.Price.InexactFloat64())
		w.cell(7, n, yesNo(r.Feasible))
		w.cell(8, n, yesNo(r.Converged))
		w.cell(9, n, r.Iterations)
		for j, v := range []*int{
			mk.PlatformOnly.BreakEvenRoas, mk.PlatformOnly.MinimumRoas, mk.PlatformOnly.IdealRoas,
			mk.FullCost.BreakEvenRoas, mk.FullCost.MinimumRoas, mk.FullCost.IdealRoas,
		} {
			w.cell(10+j, n, markerValue(v))
		}
		w.style("amount", 5, n, 6, n)
	}

	total := len(resp.Items) + 3
	w.row(total, "Total", resp.Total)
	w.row(total+1, "Con error", resp.Failed)
	w.style("bold", 1, total, 2, total+1)
	w.widths(14, 1, len(batchHeader))
	w.widths(28, 2, 2)
	w.widths(40, len(batchHeader), len(batchHeader))
	w.freezeHeader()
	return w.err
}
